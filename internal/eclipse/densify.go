package eclipse

import (
	"math"
	"time"

	"github.com/litescript/ls-umbra/internal/geo"
)

// earthRadiusKm is the mean radius used for great-circle distances.
const earthRadiusKm = 6371.0

// Densify inserts interpolated samples between consecutive path rows so no
// gap along the central line exceeds maxStepKm. Scalar columns and times
// interpolate linearly; limit points interpolate only when both rows carry
// both limits, otherwise the inserted samples have none. Every original
// sample passes through unchanged. Inputs with fewer than two samples pass
// through as-is.
func Densify(samples []PathSample, maxStepKm float64) []PathSample {
	if len(samples) < 2 || maxStepKm <= 0 {
		return samples
	}

	out := make([]PathSample, 0, len(samples))
	for i := 0; i+1 < len(samples); i++ {
		cur, next := samples[i], samples[i+1]
		dist := haversineKm(cur.Central, next.Central)
		steps := int(math.Ceil(dist / maxStepKm))
		if steps < 1 {
			steps = 1
		}
		out = append(out, cur)
		for k := 1; k < steps; k++ {
			f := float64(k) / float64(steps)
			out = append(out, interpolateSample(cur, next, f))
		}
	}
	out = append(out, samples[len(samples)-1])
	return out
}

func interpolateSample(a, b PathSample, f float64) PathSample {
	s := PathSample{
		Central:     lerpPoint(a.Central, b.Central, f),
		Ratio:       lerp(a.Ratio, b.Ratio, f),
		SunAltitude: lerp(a.SunAltitude, b.SunAltitude, f),
		SunAzimuth:  lerp(a.SunAzimuth, b.SunAzimuth, f),
		WidthKm:     lerp(a.WidthKm, b.WidthKm, f),
		DurationSec: lerp(a.DurationSec, b.DurationSec, f),
	}
	if !a.Time.IsZero() && !b.Time.IsZero() {
		s.Time = a.Time.Add(time.Duration(f * float64(b.Time.Sub(a.Time))))
	} else {
		s.Time = a.Time
	}
	if a.HasLimits() && b.HasLimits() {
		n := lerpPoint(*a.Northern, *b.Northern, f)
		sth := lerpPoint(*a.Southern, *b.Southern, f)
		s.Northern = &n
		s.Southern = &sth
	}
	return s
}

func lerp(a, b, f float64) float64 { return a + f*(b-a) }

func lerpPoint(a, b geo.Point, f float64) geo.Point {
	return geo.Point{
		Lat: lerp(a.Lat, b.Lat, f),
		Lon: lerp(a.Lon, b.Lon, f),
	}
}

// haversineKm is the great-circle distance between two points.
func haversineKm(a, b geo.Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
