package eclipse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-umbra/internal/astro"
	"github.com/litescript/ls-umbra/internal/geo"
)

// Path table format: whitespace-columned rows, one per UT instant.
//
//	# comment
//	date 2026-08-12
//	17:58:48  65.7 -44.0  64.3 -43.4  65.0 -43.699177  0.0179  31.5  180.0  153  233.2
//
// Columns: time, northern lat/lon, southern lat/lon, central lat/lon,
// ratio, sun altitude, sun azimuth, width km, duration s. Missing limits
// are written as "-".

// ParsePathTable reads a path table. Rows that cannot be parsed are
// skipped with a warning; only an unusable stream (no date, read failure)
// is an error.
func ParsePathTable(r io.Reader) ([]PathSample, []string, error) {
	var (
		samples  []PathSample
		warnings []string
		date     time.Time
		haveDate bool
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] == "date" {
			if len(fields) != 2 {
				warnings = append(warnings, fmt.Sprintf("line %d: malformed date directive", lineNo))
				continue
			}
			d, err := time.Parse("2006-01-02", fields[1])
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("line %d: bad date %q: %v", lineNo, fields[1], err))
				continue
			}
			date = d
			haveDate = true
			continue
		}

		if !haveDate {
			return nil, warnings, fmt.Errorf("parse path table: data row before date directive (line %d)", lineNo)
		}

		sample, err := parsePathRow(fields, date)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}
		samples = append(samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("parse path table: %w", err)
	}
	return samples, warnings, nil
}

func parsePathRow(fields []string, date time.Time) (PathSample, error) {
	if len(fields) != 12 {
		return PathSample{}, fmt.Errorf("want 12 columns, got %d", len(fields))
	}

	ts, err := parseRowTime(fields[0], date)
	if err != nil {
		return PathSample{}, err
	}

	northern, err := parseLimit(fields[1], fields[2])
	if err != nil {
		return PathSample{}, fmt.Errorf("northern limit: %w", err)
	}
	southern, err := parseLimit(fields[3], fields[4])
	if err != nil {
		return PathSample{}, fmt.Errorf("southern limit: %w", err)
	}
	if (northern == nil) != (southern == nil) {
		return PathSample{}, fmt.Errorf("only one umbral limit present")
	}

	var vals [7]float64
	for i, f := range fields[5:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return PathSample{}, fmt.Errorf("column %d: %w", i+6, err)
		}
		vals[i] = v
	}
	if !geo.ValidCoordinates(vals[0], vals[1]) {
		return PathSample{}, fmt.Errorf("central point out of range: %v %v", vals[0], vals[1])
	}

	return PathSample{
		Time:        ts,
		Northern:    northern,
		Southern:    southern,
		Central:     geo.Point{Lat: vals[0], Lon: vals[1]},
		Ratio:       vals[2],
		SunAltitude: vals[3],
		SunAzimuth:  vals[4],
		WidthKm:     vals[5],
		DurationSec: vals[6],
	}, nil
}

func parseRowTime(s string, date time.Time) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad time %q", s)
}

// parseLimit reads a lat/lon column pair; "-" in both marks an absent
// limit.
func parseLimit(latStr, lonStr string) (*geo.Point, error) {
	if latStr == "-" && lonStr == "-" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("longitude %q: %w", lonStr, err)
	}
	if !geo.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("out of range: %v %v", lat, lon)
	}
	return &geo.Point{Lat: lat, Lon: lon}, nil
}

// Elements format: key/value lines, with the six polynomials given as
// coefficient rows a0..a3.
//
//	date   2026-08-12
//	t0     18.0
//	deltat 72.0
//	tanf1  0.0046600
//	tanf2  0.0046370
//	k1     0.2725076
//	k2     0.2722810
//	valid  -3.0 3.0
//	x      0.2996612 0.4297619 0.0002851 0.0
//	...

// ParseElements reads a Besselian element file. Unknown keys warn and are
// skipped; missing required keys are an error.
func ParseElements(r io.Reader) (*astro.BesselianElements, []string, error) {
	el := &astro.BesselianElements{}
	var warnings []string
	seen := map[string]bool{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key, args := fields[0], fields[1:]

		if err := applyElementKey(el, key, args); err != nil {
			if err == errUnknownKey {
				warnings = append(warnings, fmt.Sprintf("line %d: unknown key %q", lineNo, key))
				continue
			}
			return nil, warnings, fmt.Errorf("parse elements line %d: %w", lineNo, err)
		}
		seen[key] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("parse elements: %w", err)
	}

	for _, key := range []string{"date", "t0", "deltat", "tanf1", "tanf2", "x", "y", "d", "l1", "l2", "mu"} {
		if !seen[key] {
			return nil, warnings, fmt.Errorf("parse elements: missing key %q", key)
		}
	}
	return el, warnings, nil
}

var errUnknownKey = fmt.Errorf("unknown key")

func applyElementKey(el *astro.BesselianElements, key string, args []string) error {
	switch key {
	case "date":
		if len(args) != 1 {
			return fmt.Errorf("date: want 1 value")
		}
		d, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		el.Date = d
		return nil
	case "t0", "deltat", "tanf1", "tanf2", "k1", "k2":
		if len(args) != 1 {
			return fmt.Errorf("%s: want 1 value", key)
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "t0":
			el.T0 = v
		case "deltat":
			el.DeltaT = v
		case "tanf1":
			el.TanF1 = v
		case "tanf2":
			el.TanF2 = v
		case "k1":
			el.K1 = v
		case "k2":
			el.K2 = v
		}
		return nil
	case "valid":
		if len(args) != 2 {
			return fmt.Errorf("valid: want 2 values")
		}
		from, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("valid: %w", err)
		}
		to, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("valid: %w", err)
		}
		if from >= to {
			return fmt.Errorf("valid: empty window [%v, %v]", from, to)
		}
		el.ValidFrom, el.ValidTo = from, to
		return nil
	case "x", "y", "d", "l1", "l2", "mu":
		poly, err := parsePoly(args)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "x":
			el.X = poly
		case "y":
			el.Y = poly
		case "d":
			el.D = poly
		case "l1":
			el.L1 = poly
		case "l2":
			el.L2 = poly
		case "mu":
			el.Mu = poly
		}
		return nil
	default:
		return errUnknownKey
	}
}

func parsePoly(args []string) (astro.Poly, error) {
	var p astro.Poly
	if len(args) != 4 {
		return p, fmt.Errorf("want 4 coefficients, got %d", len(args))
	}
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return p, fmt.Errorf("coefficient %d: %w", i, err)
		}
		p[i] = v
	}
	return p, nil
}

// LoadDataset parses both files into a Dataset.
func LoadDataset(elements, path io.Reader) (*Dataset, error) {
	el, warnElements, err := ParseElements(elements)
	if err != nil {
		return nil, err
	}
	samples, warnPath, err := ParsePathTable(path)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Elements: *el,
		Samples:  samples,
		Warnings: append(warnElements, warnPath...),
	}, nil
}
