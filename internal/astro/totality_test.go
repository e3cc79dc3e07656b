package astro

import (
	"math"
	"testing"
	"time"
)

// equatorialElements is a hand-solvable configuration: the shadow axis
// crosses the equator at the reference instant moving at 0.5 Earth radii
// per hour, declination zero, so an observer at (0, 0) sits exactly on the
// axis at t=0 and the contact times have a closed form.
func equatorialElements() *BesselianElements {
	return &BesselianElements{
		Date:  time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
		T0:    18.0,
		X:     Poly{0, 0.5, 0, 0},
		Y:     Poly{0, 0, 0, 0},
		D:     Poly{0, 0, 0, 0},
		L1:    Poly{0.5358, 0, 0, 0},
		L2:    Poly{-0.01, 0, 0, 0},
		Mu:    Poly{0, 15.0, 0, 0},
		TanF1: 0.0047,
		TanF2: 0.0046,
	}
}

func TestCalculateTotalityOnAxis(t *testing.T) {
	el := equatorialElements()

	res, err := CalculateTotality(0, 0, el, 0)
	if err != nil {
		t.Fatalf("CalculateTotality() error: %v", err)
	}
	if !res.InTotality {
		t.Fatal("on-axis observer not in totality")
	}
	if !res.Converged {
		t.Error("solver did not converge")
	}
	if res.OutsideWindow {
		t.Error("OutsideWindow = true with no declared window")
	}

	// Closed form: half-duration = |l2'|/n with l2' = -0.01 - 0.0046 and
	// n = 0.5 - 15 deg/h in radians, giving 441.3 s total.
	if math.Abs(res.DurationSeconds-441.3) > 1.0 {
		t.Errorf("DurationSeconds = %v, want 441.3 +/- 1.0", res.DurationSeconds)
	}

	wantMid := time.Date(2026, 8, 12, 18, 0, 0, 0, time.UTC)
	if d := res.Mid.Sub(wantMid); d < -time.Second || d > time.Second {
		t.Errorf("Mid = %v, want within 1s of %v", res.Mid, wantMid)
	}

	// Contacts bracket mid symmetrically for this symmetric geometry.
	lead := res.Mid.Sub(res.Start)
	trail := res.End.Sub(res.Mid)
	if diff := (lead - trail).Abs(); diff > time.Second {
		t.Errorf("asymmetric contacts: lead %v, trail %v", lead, trail)
	}
	if !res.Start.Before(res.Mid) || !res.End.After(res.Mid) {
		t.Errorf("contact ordering wrong: %v / %v / %v", res.Start, res.Mid, res.End)
	}
}

func TestCalculateTotalityOffAxis(t *testing.T) {
	el := equatorialElements()

	// 1.5 degrees north of the equatorial track: roughly 165 km, well
	// past the ~90 km umbral radius but deep in the penumbra.
	res, err := CalculateTotality(1.5, 0, el, 0)
	if err != nil {
		t.Fatalf("CalculateTotality() error: %v", err)
	}
	if res.InTotality {
		t.Fatal("off-axis observer reported in totality")
	}
	if res.Magnitude <= 0.9 || res.Magnitude >= 1.0 {
		t.Errorf("Magnitude = %v, want in (0.9, 1.0)", res.Magnitude)
	}
	if res.DurationSeconds != 0 {
		t.Errorf("DurationSeconds = %v for partial site, want 0", res.DurationSeconds)
	}
	if !res.Converged {
		t.Error("solver did not converge")
	}
}

func TestCalculateTotalityInvalidInput(t *testing.T) {
	el := equatorialElements()

	tests := []struct {
		name          string
		lat, lon, alt float64
	}{
		{"nan latitude", math.NaN(), 0, 0},
		{"nan longitude", 0, math.NaN(), 0},
		{"inf altitude", 0, 0, math.Inf(1)},
		{"negative inf latitude", math.Inf(-1), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CalculateTotality(tt.lat, tt.lon, el, tt.alt); err == nil {
				t.Error("CalculateTotality() error = nil, want invalid-input error")
			}
		})
	}

	if _, err := CalculateTotality(0, 0, nil, 0); err == nil {
		t.Error("CalculateTotality() with nil elements returned no error")
	}
}

func TestCalculateTotalityIterationCap(t *testing.T) {
	el := equatorialElements()

	// An observer 40 degrees east needs several Newton steps to walk the
	// mid estimate out to t ~ 1.85 h; a cap of one step cannot get there.
	opts := SolverOptions{MaxIterations: 1, Tolerance: 1e-6}
	res, err := CalculateTotalityWith(0, 40, el, 0, opts)
	if err != nil {
		t.Fatalf("CalculateTotalityWith() error: %v", err)
	}
	if res.Converged {
		t.Error("Converged = true with a one-iteration cap")
	}

	// With the default cap the same query converges.
	full, err := CalculateTotality(0, 40, el, 0)
	if err != nil {
		t.Fatalf("CalculateTotality() error: %v", err)
	}
	if !full.Converged {
		t.Error("default options failed to converge")
	}
}

func TestCalculateTotalityOutsideWindow(t *testing.T) {
	el := equatorialElements()
	el.ValidFrom = -0.5
	el.ValidTo = 0.5

	// Mid-eclipse for the 40E site lands near t = +1.85 h, beyond the
	// declared fit window.
	res, err := CalculateTotality(0, 40, el, 0)
	if err != nil {
		t.Fatalf("CalculateTotality() error: %v", err)
	}
	if !res.OutsideWindow {
		t.Error("OutsideWindow = false for extrapolated mid time")
	}

	onAxis, err := CalculateTotality(0, 0, el, 0)
	if err != nil {
		t.Fatalf("CalculateTotality() error: %v", err)
	}
	if onAxis.OutsideWindow {
		t.Error("OutsideWindow = true for mid time at t=0")
	}
}

func TestReduceObserver(t *testing.T) {
	// At the equator and sea level the reduction collapses to the
	// ellipse semi-axes: rho sin phi' = 0, rho cos phi' = 1.
	obs := reduceObserver(0, 0, 0)
	if math.Abs(obs.rhoSinPhi) > 1e-12 {
		t.Errorf("rhoSinPhi = %v at equator, want 0", obs.rhoSinPhi)
	}
	if math.Abs(obs.rhoCosPhi-1) > 1e-12 {
		t.Errorf("rhoCosPhi = %v at equator, want 1", obs.rhoCosPhi)
	}

	// At the pole rho sin phi' is the polar radius ratio, within the
	// flattening of 1.
	polar := reduceObserver(90, 0, 0)
	if polar.rhoSinPhi >= 1 || polar.rhoSinPhi < 0.99 {
		t.Errorf("rhoSinPhi = %v at pole, want just under 1", polar.rhoSinPhi)
	}
	if math.Abs(polar.rhoCosPhi) > 1e-9 {
		t.Errorf("rhoCosPhi = %v at pole, want 0", polar.rhoCosPhi)
	}

	// Altitude adds h = alt / equatorial radius to both terms.
	high := reduceObserver(0, 0, 6378.137)
	if math.Abs(high.rhoCosPhi-obs.rhoCosPhi-0.001) > 1e-9 {
		t.Errorf("altitude term = %v, want 0.001", high.rhoCosPhi-obs.rhoCosPhi)
	}

	// Longitude is stored west-positive.
	west := reduceObserver(0, -45, 0)
	if math.Abs(west.lonWest-math.Pi/4) > 1e-12 {
		t.Errorf("lonWest = %v for 45W, want pi/4", west.lonWest)
	}
}
