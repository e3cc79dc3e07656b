package astro

import (
	"fmt"
	"math"
	"time"
)

// deltaTDivisor converts the DeltaT seconds into hour-angle radians at the
// shadow axis rotation rate.
const deltaTDivisor = 13713.44

// SolverOptions bound the Newton iterations used for the mid-eclipse and
// contact searches.
type SolverOptions struct {
	MaxIterations int
	Tolerance     float64 // hours
}

// DefaultSolverOptions returns the iteration bounds used by
// CalculateTotality.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{MaxIterations: 50, Tolerance: 1e-6}
}

// TotalityResult is the outcome of a point query against one eclipse.
//
// For a site inside the umbral path, Start/Mid/End are the second contact,
// maximum eclipse and third contact instants in UT and DurationSeconds is
// End-Start rounded to 0.1 s. For a site outside the path only Mid and
// Magnitude are meaningful.
type TotalityResult struct {
	InTotality      bool
	Magnitude       float64
	Start           time.Time
	Mid             time.Time
	End             time.Time
	DurationSeconds float64

	// Converged is false when any of the searches hit the iteration cap;
	// the capped estimate is still returned.
	Converged bool

	// OutsideWindow is set when the mid-eclipse time extrapolates beyond
	// the element fit's declared validity window.
	OutsideWindow bool
}

// shadowGeometry is the fundamental-plane state for one observer at one
// instant: separation from the shadow axis (u, v), its rate (a, b), and the
// cone radii corrected for the observer's height above the plane.
type shadowGeometry struct {
	u, v float64
	a, b float64
	n2   float64
	zeta float64
	l1p  float64
	l2p  float64
}

func geometryAt(el *BesselianElements, t float64, obs observerConstants) shadowGeometry {
	d := degToRad(el.D.At(t))
	dRate := degToRad(el.D.RateAt(t))
	muRate := degToRad(el.Mu.RateAt(t))

	h := degToRad(el.Mu.At(t)) - obs.lonWest - el.DeltaT/deltaTDivisor
	sinH, cosH := math.Sin(h), math.Cos(h)
	sinD, cosD := math.Sin(d), math.Cos(d)

	xi := obs.rhoCosPhi * sinH
	eta := obs.rhoSinPhi*cosD - obs.rhoCosPhi*cosH*sinD
	zeta := obs.rhoSinPhi*sinD + obs.rhoCosPhi*cosH*cosD

	xiRate := muRate * obs.rhoCosPhi * cosH
	etaRate := muRate*xi*sinD - zeta*dRate

	g := shadowGeometry{
		u:    el.X.At(t) - xi,
		v:    el.Y.At(t) - eta,
		a:    el.X.RateAt(t) - xiRate,
		b:    el.Y.RateAt(t) - etaRate,
		zeta: zeta,
		l1p:  el.L1.At(t) - zeta*el.TanF1,
		l2p:  el.L2.At(t) - zeta*el.TanF2,
	}
	g.n2 = g.a*g.a + g.b*g.b
	return g
}

func (g shadowGeometry) distance() float64 {
	return math.Hypot(g.u, g.v)
}

// midCorrection is the Newton step toward the time of closest approach to
// the shadow axis.
func (g shadowGeometry) midCorrection() float64 {
	return (g.u*g.a + g.v*g.b) / g.n2
}

// contactOffset is the signed half-duration at the current geometry: the
// time from closest approach to where the axis distance equals the umbral
// radius. Degenerate geometry (axis never inside the umbra at this t)
// collapses the offset to zero.
func (g shadowGeometry) contactOffset() float64 {
	n := math.Sqrt(g.n2)
	tau := (g.a*g.v - g.u*g.b) / (n * g.l2p)
	s := 1 - tau*tau
	if s < 0 {
		s = 0
	}
	return math.Sqrt(s) * math.Abs(g.l2p) / n
}

// CalculateTotality evaluates totality circumstances for a ground site at
// geodetic latitude/longitude in degrees (east positive) and altitude in
// meters, using the default solver options.
func CalculateTotality(lat, lon float64, el *BesselianElements, altitudeM float64) (TotalityResult, error) {
	return CalculateTotalityWith(lat, lon, el, altitudeM, DefaultSolverOptions())
}

// CalculateTotalityWith is CalculateTotality with explicit solver bounds.
func CalculateTotalityWith(lat, lon float64, el *BesselianElements, altitudeM float64, opts SolverOptions) (TotalityResult, error) {
	if !isFinite(lat) || !isFinite(lon) || !isFinite(altitudeM) {
		return TotalityResult{}, fmt.Errorf("totality: non-finite input lat=%v lon=%v alt=%v", lat, lon, altitudeM)
	}
	if el == nil {
		return TotalityResult{}, fmt.Errorf("totality: nil elements")
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultSolverOptions().MaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultSolverOptions().Tolerance
	}

	obs := reduceObserver(lat, lon, altitudeM)

	// Mid-eclipse: Newton iteration on the closest-approach condition,
	// starting at the reference time.
	tm := 0.0
	midConverged := false
	var g shadowGeometry
	for i := 0; i < opts.MaxIterations; i++ {
		g = geometryAt(el, tm, obs)
		corr := g.midCorrection()
		tm -= corr
		if math.Abs(corr) < opts.Tolerance {
			midConverged = true
			break
		}
	}
	g = geometryAt(el, tm, obs)

	res := TotalityResult{
		Mid:           el.TimeAt(tm),
		Converged:     midConverged,
		OutsideWindow: el.HasWindow() && !el.InWindow(tm),
	}

	m := g.distance()
	res.Magnitude = (g.l1p - m) / (g.l1p + g.l2p)

	if m >= math.Abs(g.l2p) {
		// Axis never reaches this site: partial at best.
		return res, nil
	}

	res.InTotality = true

	// Second and third contacts: seed at mid +/- the local half-duration,
	// then refine each independently.
	half := g.contactOffset()
	c2, c2OK := refineContact(el, obs, tm-half, -1, opts)
	c3, c3OK := refineContact(el, obs, tm+half, +1, opts)
	res.Converged = midConverged && c2OK && c3OK

	res.Start = el.TimeAt(c2)
	res.End = el.TimeAt(c3)
	res.DurationSeconds = math.Round((c3-c2)*3600*10) / 10
	return res, nil
}

// refineContact iterates the contact condition near a seed time. side is
// -1 for second contact (before mid) and +1 for third contact.
func refineContact(el *BesselianElements, obs observerConstants, t float64, side float64, opts SolverOptions) (float64, bool) {
	for i := 0; i < opts.MaxIterations; i++ {
		g := geometryAt(el, t, obs)
		next := t - g.midCorrection() + side*g.contactOffset()
		delta := next - t
		t = next
		if math.Abs(delta) < opts.Tolerance {
			return t, true
		}
	}
	return t, false
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
