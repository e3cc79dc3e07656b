package geo

import (
	"math"
	"sort"
)

// bandEps is how close to an edge's longitude span the query meridian may
// be and still count as touching it.
const bandEps = 1e-9

// Band is a north/south latitude interval at a fixed longitude.
type Band struct {
	North float64
	South float64
}

// BandAtLongitude scans every polygon edge for crossings of the given
// meridian and returns the latitude band containing refLat.
//
// Each edge whose longitude span straddles (or touches, within a small
// epsilon) the query longitude contributes one latitude by linear
// interpolation along the edge. The sorted crossing latitudes partition the
// meridian into alternating inside/outside intervals; the consecutive pair
// bracketing refLat is returned, which picks the correct band when the
// polygon crosses the meridian more than twice (a looping path). When
// refLat falls outside all crossings the nearest extreme pair is used.
//
// Returns nil when fewer than 2 crossings exist, i.e. the meridian misses
// the polygon entirely.
func BandAtLongitude(p Polygon, lon, refLat float64) *Band {
	lats := meridianCrossings(p, lon)
	if len(lats) < 2 {
		return nil
	}
	// Scanning upward, the first pair whose upper crossing reaches refLat
	// is the containing band; a refLat below every crossing stops at the
	// lowest pair, one above every crossing falls through to the highest.
	lo, hi := lats[0], lats[1]
	for i := 0; i+1 < len(lats); i++ {
		lo, hi = lats[i], lats[i+1]
		if refLat <= hi {
			break
		}
	}
	return &Band{North: hi, South: lo}
}

// OuterBand returns the outermost (min, max) latitude band at the given
// longitude, or nil when the meridian misses the polygon.
func OuterBand(p Polygon, lon float64) *Band {
	lats := meridianCrossings(p, lon)
	if len(lats) < 2 {
		return nil
	}
	return &Band{North: lats[len(lats)-1], South: lats[0]}
}

func meridianCrossings(p Polygon, lon float64) []float64 {
	if len(p) < 2 {
		return nil
	}
	var lats []float64
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		lo, hi := a.Lon, b.Lon
		if lo > hi {
			lo, hi = hi, lo
		}
		if lon < lo-bandEps || lon > hi+bandEps {
			continue
		}
		span := b.Lon - a.Lon
		t := 0.0
		if math.Abs(span) > bandEps {
			t = (lon - a.Lon) / span
		}
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		lats = append(lats, a.Lat+t*(b.Lat-a.Lat))
	}
	sort.Float64s(lats)
	return lats
}

// ClipTileByBand clips a rectangular tile against the polygon's latitude
// band, a fast approximation to full polygon clipping that is valid as long
// as the path does not reverse direction within one tile width.
//
// The band is sampled at the tile's west and east edges using the tile's
// vertical center as the reference latitude, the two bands are intersected
// (min of norths, max of souths), and the result is intersected with the
// tile itself. Returns nil when either meridian misses the polygon or the
// surviving interval is empty or inverted.
func ClipTileByBand(tile TileBounds, p Polygon) *TileBounds {
	refLat := (tile.North + tile.South) / 2

	west := BandAtLongitude(p, tile.West, refLat)
	east := BandAtLongitude(p, tile.East, refLat)
	if west == nil || east == nil {
		return nil
	}

	north := math.Min(west.North, east.North)
	south := math.Max(west.South, east.South)
	north = math.Min(north, tile.North)
	south = math.Max(south, tile.South)
	if south >= north {
		return nil
	}

	out := tile
	out.North = north
	out.South = south
	return &out
}
