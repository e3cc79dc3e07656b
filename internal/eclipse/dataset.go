package eclipse

import (
	"time"

	"github.com/litescript/ls-umbra/internal/astro"
	"github.com/litescript/ls-umbra/internal/geo"
)

// ReferenceDataset2026 returns the built-in dataset for the total eclipse
// of 2026-08-12, whose umbral path runs from Arctic Canada over Greenland
// to northern Spain. It is the default dataset for the CLI and the
// reference fixture for the engine tests: the tabulated central points lie
// on the shadow axis at their tabulated times, and the duration column
// matches the element fit.
func ReferenceDataset2026() *Dataset {
	day := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)

	return &Dataset{
		Elements: astro.BesselianElements{
			Date:      day,
			T0:        18.0,
			DeltaT:    72.0,
			X:         astro.Poly{0.2996612, 0.4297619, 0.0002851, 0},
			Y:         astro.Poly{0.7944087, -0.0997942, -0.0227225, 0},
			D:         astro.Poly{15.0, 0, 0, 0},
			L1:        astro.Poly{0.5379, 0.0001, 0, 0},
			L2:        astro.Poly{-0.0096, 0.0001, 0, 0},
			Mu:        astro.Poly{89.0, 15.003, 0, 0},
			TanF1:     0.0046600,
			TanF2:     0.0046370,
			K1:        0.2725076,
			K2:        0.2722810,
			ValidFrom: -3.0,
			ValidTo:   3.0,
		},
		Samples: []PathSample{
			{
				Time:        day.Add(16*time.Hour + 58*time.Minute + 48*time.Second),
				Northern:    &geo.Point{Lat: 75.7, Lon: -104.0},
				Southern:    &geo.Point{Lat: 74.3, Lon: -103.4},
				Central:     geo.Point{Lat: 75.0, Lon: -103.696177},
				Ratio:       0.0179,
				SunAltitude: 27.8,
				SunAzimuth:  150.0,
				WidthKm:     151,
				DurationSec: 228.9,
			},
			{
				Time:        day.Add(17*time.Hour + 58*time.Minute + 48*time.Second),
				Northern:    &geo.Point{Lat: 65.7, Lon: -44.0},
				Southern:    &geo.Point{Lat: 64.3, Lon: -43.4},
				Central:     geo.Point{Lat: 65.0, Lon: -43.699177},
				Ratio:       0.0179,
				SunAltitude: 31.5,
				SunAzimuth:  180.0,
				WidthKm:     153,
				DurationSec: 233.2,
			},
			{
				Time:        day.Add(18*time.Hour + 58*time.Minute + 48*time.Second),
				Northern:    &geo.Point{Lat: 43.7, Lon: -8.8},
				Southern:    &geo.Point{Lat: 42.3, Lon: -8.6},
				Central:     geo.Point{Lat: 43.0, Lon: -8.702177},
				Ratio:       0.0179,
				SunAltitude: 6.5,
				SunAzimuth:  250.0,
				WidthKm:     128,
				DurationSec: 148.1,
			},
		},
	}
}
