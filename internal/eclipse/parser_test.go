package eclipse

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-umbra/internal/geo"
)

func openTestdata(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

// The testdata files are the text form of the embedded reference dataset;
// parsing them must reproduce it exactly.
func TestParseElementsRoundTrip(t *testing.T) {
	got, warnings, err := ParseElements(openTestdata(t, "elements_2026.txt"))
	if err != nil {
		t.Fatalf("ParseElements() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("ParseElements() warnings: %v", warnings)
	}

	want := ReferenceDataset2026().Elements
	if !got.Date.Equal(want.Date) {
		t.Errorf("Date = %v, want %v", got.Date, want.Date)
	}
	scalars := []struct {
		name      string
		got, want float64
	}{
		{"T0", got.T0, want.T0},
		{"DeltaT", got.DeltaT, want.DeltaT},
		{"TanF1", got.TanF1, want.TanF1},
		{"TanF2", got.TanF2, want.TanF2},
		{"K1", got.K1, want.K1},
		{"K2", got.K2, want.K2},
		{"ValidFrom", got.ValidFrom, want.ValidFrom},
		{"ValidTo", got.ValidTo, want.ValidTo},
	}
	for _, s := range scalars {
		if s.got != s.want {
			t.Errorf("%s = %v, want %v", s.name, s.got, s.want)
		}
	}
	polys := []struct {
		name      string
		got, want [4]float64
	}{
		{"X", got.X, want.X},
		{"Y", got.Y, want.Y},
		{"D", got.D, want.D},
		{"L1", got.L1, want.L1},
		{"L2", got.L2, want.L2},
		{"Mu", got.Mu, want.Mu},
	}
	for _, p := range polys {
		if p.got != p.want {
			t.Errorf("%s = %v, want %v", p.name, p.got, p.want)
		}
	}
}

func TestParsePathTableRoundTrip(t *testing.T) {
	got, warnings, err := ParsePathTable(openTestdata(t, "path_2026.txt"))
	if err != nil {
		t.Fatalf("ParsePathTable() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("ParsePathTable() warnings: %v", warnings)
	}

	want := ReferenceDataset2026().Samples
	if len(got) != len(want) {
		t.Fatalf("parsed %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := &got[i], &want[i]
		if !g.Time.Equal(w.Time) {
			t.Errorf("sample %d time = %v, want %v", i, g.Time, w.Time)
		}
		if !pointsEqual(g.Northern, w.Northern) || !pointsEqual(g.Southern, w.Southern) {
			t.Errorf("sample %d limits = %v/%v, want %v/%v",
				i, g.Northern, g.Southern, w.Northern, w.Southern)
		}
		if math.Abs(g.Central.Lat-w.Central.Lat) > 1e-9 || math.Abs(g.Central.Lon-w.Central.Lon) > 1e-9 {
			t.Errorf("sample %d central = %+v, want %+v", i, g.Central, w.Central)
		}
		if g.Ratio != w.Ratio || g.SunAltitude != w.SunAltitude ||
			g.SunAzimuth != w.SunAzimuth || g.WidthKm != w.WidthKm || g.DurationSec != w.DurationSec {
			t.Errorf("sample %d scalar columns differ: %+v vs %+v", i, g, w)
		}
	}
}

func pointsEqual(a, b *geo.Point) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return math.Abs(a.Lat-b.Lat) < 1e-9 && math.Abs(a.Lon-b.Lon) < 1e-9
}

func TestParsePathTableTolerance(t *testing.T) {
	input := `# header comment
date 2026-08-12
17:00      -    -      -    -     65.0 -43.7   0.018  31.5  180.0  153  233.2
not-a-time 65.7 -44.0  64.3 -43.4 65.0 -43.7   0.018  31.5  180.0  153  233.2
17:30:00   65.7 -44.0  -    -     65.0 -43.7   0.018  31.5  180.0  153  233.2
17:58:48   65.7 -44.0  64.3 -43.4 65.0 -43.7   0.018  31.5  180.0  153
18:58:48   43.7 -8.8   42.3 -8.6  43.0 -8.7    0.018  6.5   250.0  128  148.1
`
	samples, warnings, err := ParsePathTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParsePathTable() error: %v", err)
	}

	// Row 1 (no limits) and row 5 parse; the bad time, the half-present
	// limit pair and the short row are skipped with warnings.
	if len(samples) != 2 {
		t.Fatalf("parsed %d samples, want 2 (got warnings %v)", len(samples), warnings)
	}
	if len(warnings) != 3 {
		t.Errorf("got %d warnings, want 3: %v", len(warnings), warnings)
	}
	if samples[0].HasLimits() {
		t.Error("limitless row parsed with limits")
	}
	if samples[0].Time.Hour() != 17 || samples[0].Time.Minute() != 0 {
		t.Errorf("HH:MM time parsed as %v", samples[0].Time)
	}
}

func TestParsePathTableRequiresDate(t *testing.T) {
	input := "17:58:48  65.7 -44.0  64.3 -43.4  65.0 -43.7  0.018  31.5  180.0  153  233.2\n"
	if _, _, err := ParsePathTable(strings.NewReader(input)); err == nil {
		t.Error("ParsePathTable() without date directive returned no error")
	}
}

func TestParseElementsMissingKey(t *testing.T) {
	input := `date 2026-08-12
t0 18.0
deltat 72.0
`
	if _, _, err := ParseElements(strings.NewReader(input)); err == nil {
		t.Error("ParseElements() with missing polynomials returned no error")
	}
}

func TestParseElementsUnknownKeyWarns(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "elements_2026.txt"))
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	input := string(data) + "gamma 0.8977\n"

	el, warnings, err := ParseElements(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseElements() error: %v", err)
	}
	if el == nil {
		t.Fatal("ParseElements() = nil elements")
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "gamma") {
		t.Errorf("warnings = %v, want one unknown-key warning", warnings)
	}
}

func TestLoadDataset(t *testing.T) {
	d, err := LoadDataset(openTestdata(t, "elements_2026.txt"), openTestdata(t, "path_2026.txt"))
	if err != nil {
		t.Fatalf("LoadDataset() error: %v", err)
	}
	if len(d.Samples) != 3 {
		t.Errorf("loaded %d samples, want 3", len(d.Samples))
	}
	if d.Elements.T0 != 18.0 {
		t.Errorf("loaded T0 = %v, want 18.0", d.Elements.T0)
	}
	if len(d.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", d.Warnings)
	}
}
