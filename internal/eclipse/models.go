// Package eclipse provides totality-path data handling: path tables,
// densification, footprint polygons, grid scoring and report output.
package eclipse

import (
	"time"

	"github.com/litescript/ls-umbra/internal/astro"
	"github.com/litescript/ls-umbra/internal/geo"
)

// PathSample is one row of an eclipse path table: the shadow outline on
// the ground at one instant.
type PathSample struct {
	Time time.Time // UT

	// Northern and Southern are the umbral limit points. They are set
	// together or not at all; near the path ends the umbra may not reach
	// the ground even though a central line exists.
	Northern *geo.Point
	Southern *geo.Point

	Central geo.Point // central line point

	Ratio       float64 // umbral/penumbral shadow diameter ratio
	SunAltitude float64 // degrees
	SunAzimuth  float64 // degrees
	WidthKm     float64 // path width on the ground
	DurationSec float64 // central duration of totality
}

// HasLimits reports whether both umbral limit points are present.
func (s *PathSample) HasLimits() bool {
	return s.Northern != nil && s.Southern != nil
}

// Dataset bundles everything known about one eclipse: the Besselian
// element fit and the tabulated path, plus any warnings collected while
// ingesting them.
type Dataset struct {
	Elements astro.BesselianElements
	Samples  []PathSample
	Warnings []string
}

// NearestSample returns the path sample whose time is closest to t, or nil
// for an empty dataset.
func (d *Dataset) NearestSample(t time.Time) *PathSample {
	var best *PathSample
	var bestDiff time.Duration
	for i := range d.Samples {
		diff := d.Samples[i].Time.Sub(t)
		if diff < 0 {
			diff = -diff
		}
		if best == nil || diff < bestDiff {
			best = &d.Samples[i]
			bestDiff = diff
		}
	}
	return best
}
