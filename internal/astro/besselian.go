// Package astro implements the Besselian-element shadow geometry used to
// decide whether a ground observer stands inside the Moon's umbra, and for
// how long.
package astro

import "time"

// Poly holds polynomial coefficients a0..a3, evaluated at t hours from the
// element reference time t0.
type Poly [4]float64

// At evaluates the polynomial at t.
func (p Poly) At(t float64) float64 {
	return p[0] + t*(p[1]+t*(p[2]+t*p[3]))
}

// RateAt evaluates the polynomial's derivative at t, per hour.
func (p Poly) RateAt(t float64) float64 {
	return p[1] + t*(2*p[2]+t*3*p[3])
}

// BesselianElements describe one eclipse: polynomial fits for the shadow
// axis position (x, y in Earth radii on the fundamental plane), the axis
// declination d and ephemeris hour angle mu (degrees), and the penumbral
// and umbral shadow radii l1, l2 (Earth radii).
type BesselianElements struct {
	Date   time.Time // eclipse day, midnight UTC
	T0     float64   // reference hour of day, TDT
	DeltaT float64   // TDT-UT offset in seconds

	X, Y, D, L1, L2, Mu Poly

	TanF1 float64 // penumbral shadow cone half-angle
	TanF2 float64 // umbral shadow cone half-angle
	K1    float64 // Moon radius, penumbral, in Earth radii
	K2    float64 // Moon radius, umbral, in Earth radii

	// Fit validity window in hours relative to T0. Both zero means no
	// window is declared.
	ValidFrom float64
	ValidTo   float64
}

// HasWindow reports whether a validity window is declared.
func (e *BesselianElements) HasWindow() bool {
	return e.ValidFrom != 0 || e.ValidTo != 0
}

// InWindow reports whether t (hours from T0) lies inside the declared
// validity window. Elements without a window accept any t.
func (e *BesselianElements) InWindow(t float64) bool {
	if !e.HasWindow() {
		return true
	}
	return t >= e.ValidFrom && t <= e.ValidTo
}

// TimeAt converts t hours from T0 (a TDT instant) to the corresponding UT
// wall-clock time, rounded to the millisecond.
func (e *BesselianElements) TimeAt(t float64) time.Time {
	tdt := e.Date.Add(time.Duration((e.T0 + t) * float64(time.Hour)))
	ut := tdt.Add(-time.Duration(e.DeltaT * float64(time.Second)))
	return ut.Round(time.Millisecond)
}
