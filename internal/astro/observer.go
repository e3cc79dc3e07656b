package astro

import "math"

const (
	// Reference ellipsoid: flattening and equatorial radius in meters.
	flattening        = 1.0 / 298.257
	equatorialRadiusM = 6378137.0
)

// observerConstants are the geocentric quantities of a ground site that
// stay fixed while the shadow sweeps past: rho·sin(phi') and rho·cos(phi')
// from the oblate reduction, plus the west-positive longitude in radians.
type observerConstants struct {
	rhoSinPhi float64
	rhoCosPhi float64
	lonWest   float64 // radians
}

// reduceObserver converts geodetic latitude, east-positive longitude
// (degrees) and altitude (meters) to geocentric observer constants.
func reduceObserver(latDeg, lonDeg, altM float64) observerConstants {
	lat := degToRad(latDeg)
	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	e2 := 2*flattening - flattening*flattening
	c := 1 / math.Sqrt(1-e2*sinLat*sinLat)
	s := c * (1 - e2)
	h := altM / equatorialRadiusM

	return observerConstants{
		rhoSinPhi: (s + h) * sinLat,
		rhoCosPhi: (c + h) * cosLat,
		lonWest:   degToRad(-lonDeg),
	}
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
