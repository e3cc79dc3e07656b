package eclipse

import "github.com/litescript/ls-umbra/internal/geo"

// BuildPolygon assembles the umbral footprint from path samples: the
// northern limits west to east, then the southern limits back east to
// west. Samples missing either limit are dropped first, so a path whose
// ends taper off the ground still yields the interior corridor. The result
// is wound clockwise; fewer than two usable samples yield nil.
func BuildPolygon(samples []PathSample) geo.Polygon {
	var north, south []geo.Point
	for i := range samples {
		if samples[i].HasLimits() {
			north = append(north, *samples[i].Northern)
			south = append(south, *samples[i].Southern)
		}
	}
	if len(north) < 2 {
		return nil
	}

	poly := make(geo.Polygon, 0, 2*len(north))
	poly = append(poly, north...)
	for i := len(south) - 1; i >= 0; i-- {
		poly = append(poly, south[i])
	}
	return geo.NormalizeWinding(poly)
}
