package eclipse

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-umbra/internal/astro"
)

// The reference dataset's central points are on the shadow axis at their
// tabulated times and the duration column matches the element fit, so the
// engine must reproduce the table from the elements alone.
func TestReferenceDatasetRoundTrip(t *testing.T) {
	d := ReferenceDataset2026()

	for i := range d.Samples {
		s := &d.Samples[i]
		t.Run(s.Time.UTC().Format("15:04:05"), func(t *testing.T) {
			res, err := astro.CalculateTotality(s.Central.Lat, s.Central.Lon, &d.Elements, 0)
			if err != nil {
				t.Fatalf("CalculateTotality() error: %v", err)
			}
			if !res.InTotality {
				t.Fatal("central line point not in totality")
			}
			if !res.Converged {
				t.Error("solver did not converge")
			}
			if diff := math.Abs(res.DurationSeconds - s.DurationSec); diff > 3 {
				t.Errorf("duration = %.1fs, table says %.1fs (diff %.1fs)",
					res.DurationSeconds, s.DurationSec, diff)
			}
			if diff := res.Mid.Sub(s.Time); diff < -2*time.Second || diff > 2*time.Second {
				t.Errorf("mid = %v, table says %v", res.Mid, s.Time)
			}
			if res.OutsideWindow {
				t.Error("OutsideWindow = true inside the fit window")
			}
		})
	}
}

func TestReferenceDatasetGreenlandMid(t *testing.T) {
	d := ReferenceDataset2026()

	res, err := astro.CalculateTotality(65.0, -43.699177, &d.Elements, 0)
	if err != nil {
		t.Fatalf("CalculateTotality() error: %v", err)
	}
	want := time.Date(2026, 8, 12, 17, 58, 48, 0, time.UTC)
	if diff := res.Mid.Sub(want); diff < -2*time.Second || diff > 2*time.Second {
		t.Errorf("mid = %v, want within 2s of %v", res.Mid, want)
	}
	if res.Start.After(res.Mid) || res.End.Before(res.Mid) {
		t.Errorf("contacts do not bracket mid: %v / %v / %v", res.Start, res.Mid, res.End)
	}
}

func TestReferenceDatasetOutsidePath(t *testing.T) {
	d := ReferenceDataset2026()

	// 2.6 degrees north of the central line: ~290 km, well past the
	// ~75 km half-width.
	res, err := astro.CalculateTotality(67.6, -43.699177, &d.Elements, 0)
	if err != nil {
		t.Fatalf("CalculateTotality() error: %v", err)
	}
	if res.InTotality {
		t.Fatal("point far outside the path reported in totality")
	}
	if res.Magnitude <= 0.9 || res.Magnitude >= 1.0 {
		t.Errorf("Magnitude = %v, want deep partial in (0.9, 1.0)", res.Magnitude)
	}
}

func TestNearestSample(t *testing.T) {
	d := ReferenceDataset2026()

	got := d.NearestSample(time.Date(2026, 8, 12, 17, 40, 0, 0, time.UTC))
	if got == nil {
		t.Fatal("NearestSample() = nil")
	}
	if got.Central.Lat != 65.0 {
		t.Errorf("nearest sample lat = %v, want 65.0 (Greenland row)", got.Central.Lat)
	}

	empty := &Dataset{}
	if s := empty.NearestSample(time.Now()); s != nil {
		t.Errorf("NearestSample() on empty dataset = %+v, want nil", s)
	}
}
