// Command ls-umbra answers totality questions for the 2026-08-12 total
// solar eclipse (or any eclipse given as Besselian elements): point
// queries, path summaries, footprint export and grid coverage scoring.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/litescript/ls-umbra/internal/astro"
	"github.com/litescript/ls-umbra/internal/config"
	"github.com/litescript/ls-umbra/internal/eclipse"
	"github.com/litescript/ls-umbra/internal/geo"
	"github.com/litescript/ls-umbra/internal/logging"
	"github.com/litescript/ls-umbra/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lat := flag.Float64("lat", math.NaN(), "Site latitude in degrees (north positive)")
	lon := flag.Float64("lon", math.NaN(), "Site longitude in degrees (east positive)")
	alt := flag.Float64("alt", cfg.Query.AltitudeM, "Site altitude in meters")
	elementsPath := flag.String("elements", cfg.Dataset.Elements, "Besselian elements file (default: built-in 2026-08-12)")
	pathTable := flag.String("path", cfg.Dataset.Path, "Path table file (default: built-in 2026-08-12)")
	summaryMode := flag.Bool("summary", false, "Print the path table and exit")
	snapshotPath := flag.String("snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	gridSpec := flag.String("grid", "", "Score a grid: south,west,north,east,step (degrees)")
	maxStepKm := flag.Float64("max-step-km", cfg.Densify.MaxStepKm, "Densification step along the central line")
	workers := flag.Int("workers", cfg.Grid.Workers, "Grid scoring workers")
	logLevel := flag.String("log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("ls-umbra " + version.Version)
		return
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, runOptions{
		lat:          *lat,
		lon:          *lon,
		alt:          *alt,
		elementsPath: *elementsPath,
		pathTable:    *pathTable,
		summaryMode:  *summaryMode,
		snapshotPath: *snapshotPath,
		gridSpec:     *gridSpec,
		maxStepKm:    *maxStepKm,
		workers:      *workers,
	}, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runOptions struct {
	lat, lon, alt float64
	elementsPath  string
	pathTable     string
	summaryMode   bool
	snapshotPath  string
	gridSpec      string
	maxStepKm     float64
	workers       int
}

func run(ctx context.Context, opts runOptions, logger *logging.Logger) error {
	dataset, err := loadDataset(opts.elementsPath, opts.pathTable, logger.WithPrefix("dataset"))
	if err != nil {
		return err
	}

	if opts.summaryMode {
		eclipse.WriteSummaryTable(os.Stdout, dataset)
		return nil
	}

	if opts.gridSpec != "" {
		return runGrid(ctx, dataset, opts, logger)
	}

	havePoint := !math.IsNaN(opts.lat) && !math.IsNaN(opts.lon)
	if !havePoint && opts.snapshotPath == "" {
		return fmt.Errorf("nothing to do: give -lat/-lon, -summary, -grid or -snapshot-path")
	}

	var result *astro.TotalityResult
	if havePoint {
		res, err := astro.CalculateTotality(opts.lat, opts.lon, &dataset.Elements, opts.alt)
		if err != nil {
			return err
		}
		result = &res
		logger.Debug("query (%.4f, %.4f): inTotality=%v converged=%v",
			opts.lat, opts.lon, res.InTotality, res.Converged)
	}

	if opts.snapshotPath != "" {
		footprint := eclipse.BuildPolygon(eclipse.Densify(dataset.Samples, opts.maxStepKm))
		export := eclipse.ExportSnapshot(dataset, opts.lat, opts.lon, result, footprint)
		if err := writeSnapshot(export, opts.snapshotPath); err != nil {
			return err
		}
		if !havePoint {
			return nil
		}
	}

	eclipse.WritePointReport(os.Stdout, opts.lat, opts.lon, *result)
	return nil
}

func loadDataset(elementsPath, pathTable string, logger *logging.Logger) (*eclipse.Dataset, error) {
	if elementsPath == "" && pathTable == "" {
		logger.Debug("using built-in 2026-08-12 dataset")
		return eclipse.ReferenceDataset2026(), nil
	}
	if elementsPath == "" || pathTable == "" {
		return nil, fmt.Errorf("-elements and -path must be given together")
	}

	ef, err := os.Open(elementsPath)
	if err != nil {
		return nil, fmt.Errorf("open elements: %w", err)
	}
	defer ef.Close()
	pf, err := os.Open(pathTable)
	if err != nil {
		return nil, fmt.Errorf("open path table: %w", err)
	}
	defer pf.Close()

	dataset, err := eclipse.LoadDataset(ef, pf)
	if err != nil {
		return nil, err
	}
	for _, warning := range dataset.Warnings {
		logger.Warn("%s", warning)
	}
	logger.Info("loaded %d path samples for %s",
		len(dataset.Samples), dataset.Elements.Date.Format("2006-01-02"))
	return dataset, nil
}

// runGrid scores a uniform grid against the umbral footprint and prints
// the cells the path touches.
func runGrid(ctx context.Context, dataset *eclipse.Dataset, opts runOptions, logger *logging.Logger) error {
	grid, err := parseGridSpec(opts.gridSpec)
	if err != nil {
		return err
	}

	footprint := eclipse.BuildPolygon(eclipse.Densify(dataset.Samples, opts.maxStepKm))
	if footprint == nil {
		return fmt.Errorf("dataset has no umbral limits; cannot build footprint")
	}

	logger.Debug("scoring %dx%d grid with %d workers", grid.Rows(), grid.Cols(), opts.workers)
	scores := eclipse.ScoreGrid(ctx, grid, footprint, opts.workers)

	fmt.Printf("%-10s %-10s %9s\n", "Lat", "Lon", "Coverage")
	fmt.Println(strings.Repeat("─", 32))
	var touched int
	for _, s := range scores {
		if s.Coverage == 0 {
			continue
		}
		touched++
		fmt.Printf("%-10.3f %-10.3f %8.1f%%\n",
			(s.Bounds.North+s.Bounds.South)/2,
			(s.Bounds.East+s.Bounds.West)/2,
			s.Coverage*100)
	}
	fmt.Printf("\n%d of %d cells touch the path, coverage-weighted total %.3f\n",
		touched, len(scores), eclipse.CoverageWeightedTotal(scores))
	return nil
}

// parseGridSpec builds a unit-valued grid from "south,west,north,east,step".
func parseGridSpec(spec string) (*eclipse.Grid, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 5 {
		return nil, fmt.Errorf("grid spec %q: want south,west,north,east,step", spec)
	}
	var vals [5]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("grid spec %q: %w", spec, err)
		}
		vals[i] = v
	}
	south, west, north, east, step := vals[0], vals[1], vals[2], vals[3], vals[4]
	if step <= 0 || north <= south || east <= west {
		return nil, fmt.Errorf("grid spec %q: empty extent or non-positive step", spec)
	}
	if !geo.ValidCoordinates(south, west) || !geo.ValidCoordinates(north, east) {
		return nil, fmt.Errorf("grid spec %q: coordinates out of range", spec)
	}

	var lats, lons []float64
	for lat := south + step/2; lat < north; lat += step {
		lats = append(lats, lat)
	}
	for lon := west + step/2; lon < east; lon += step {
		lons = append(lons, lon)
	}
	values := make([][]float64, len(lats))
	for i := range values {
		values[i] = make([]float64, len(lons))
		for j := range values[i] {
			values[i][j] = 1
		}
	}
	return eclipse.NewGrid(lats, lons, values)
}

func writeSnapshot(export *eclipse.SnapshotExport, path string) error {
	if path == "-" {
		if err := export.WriteJSON(os.Stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}
