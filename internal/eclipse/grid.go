package eclipse

import (
	"context"
	"fmt"
	"sync"

	"github.com/litescript/ls-umbra/internal/geo"
)

// Grid is a regular lat/lon raster of scalar values (population, cloud
// cover, whatever is being weighed against the path). It is a value: the
// constructor copies its inputs and nothing mutates it afterwards, so a
// Grid can be shared across goroutines freely.
type Grid struct {
	lats   []float64
	lons   []float64
	values [][]float64 // [lat index][lon index]
}

// NewGrid builds a grid from cell-center coordinates and a values matrix
// with one row per latitude. Coordinates must be ascending and evenly
// spaced.
func NewGrid(lats, lons []float64, values [][]float64) (*Grid, error) {
	if len(lats) == 0 || len(lons) == 0 {
		return nil, fmt.Errorf("grid: empty axes")
	}
	if len(values) != len(lats) {
		return nil, fmt.Errorf("grid: %d value rows for %d latitudes", len(values), len(lats))
	}
	for i, row := range values {
		if len(row) != len(lons) {
			return nil, fmt.Errorf("grid: row %d has %d values for %d longitudes", i, len(row), len(lons))
		}
	}
	if err := checkAxis("latitude", lats); err != nil {
		return nil, err
	}
	if err := checkAxis("longitude", lons); err != nil {
		return nil, err
	}

	g := &Grid{
		lats: append([]float64(nil), lats...),
		lons: append([]float64(nil), lons...),
	}
	g.values = make([][]float64, len(values))
	for i, row := range values {
		g.values[i] = append([]float64(nil), row...)
	}
	return g, nil
}

func checkAxis(name string, axis []float64) error {
	for i := 1; i < len(axis); i++ {
		if axis[i] <= axis[i-1] {
			return fmt.Errorf("grid: %s axis not ascending at index %d", name, i)
		}
	}
	return nil
}

// Rows returns the latitude cell count.
func (g *Grid) Rows() int { return len(g.lats) }

// Cols returns the longitude cell count.
func (g *Grid) Cols() int { return len(g.lons) }

func (g *Grid) latStep() float64 {
	if len(g.lats) < 2 {
		return 1
	}
	return g.lats[1] - g.lats[0]
}

func (g *Grid) lonStep() float64 {
	if len(g.lons) < 2 {
		return 1
	}
	return g.lons[1] - g.lons[0]
}

// TileAt returns the bounds of the cell at the given indices: the cell
// center plus/minus half the axis resolution.
func (g *Grid) TileAt(row, col int) (geo.TileBounds, bool) {
	if row < 0 || row >= len(g.lats) || col < 0 || col >= len(g.lons) {
		return geo.TileBounds{}, false
	}
	halfLat := g.latStep() / 2
	halfLon := g.lonStep() / 2
	return geo.TileBounds{
		North: g.lats[row] + halfLat,
		South: g.lats[row] - halfLat,
		East:  g.lons[col] + halfLon,
		West:  g.lons[col] - halfLon,
	}, true
}

// ValueAt returns the value of the cell containing the point, or false
// when the point is off-grid.
func (g *Grid) ValueAt(lat, lon float64) (float64, bool) {
	row := nearestIndex(g.lats, lat, g.latStep())
	col := nearestIndex(g.lons, lon, g.lonStep())
	if row < 0 || col < 0 {
		return 0, false
	}
	return g.values[row][col], true
}

func nearestIndex(axis []float64, v, step float64) int {
	for i, c := range axis {
		if v >= c-step/2 && v < c+step/2 {
			return i
		}
	}
	return -1
}

// TileScore is the path-coverage result for one grid cell.
type TileScore struct {
	Row, Col int
	Bounds   geo.TileBounds
	Value    float64

	// Coverage is the fraction of the cell inside the umbral footprint,
	// in [0, 1]. Clipped is the band-clip bounds when the fast path found
	// overlap, nil otherwise.
	Coverage float64
	Clipped  *geo.TileBounds
}

// ScoreGrid computes path coverage for every cell. The band clip is used
// as a cheap overlap prefilter; cells that survive it get an exact polygon
// clip for the coverage fraction. Cells are scored concurrently by the
// given number of workers (minimum 1) and the result order is row-major
// regardless of worker count. A canceled context stops dispatching and
// returns the scores completed so far zeroed for the rest.
func ScoreGrid(ctx context.Context, g *Grid, path geo.Polygon, workers int) []TileScore {
	rows, cols := g.Rows(), g.Cols()
	scores := make([]TileScore, rows*cols)
	if workers < 1 {
		workers = 1
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				row, col := idx/cols, idx%cols
				scores[idx] = scoreTile(g, path, row, col)
			}
		}()
	}

dispatch:
	for idx := 0; idx < len(scores); idx++ {
		select {
		case indexes <- idx:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(indexes)
	wg.Wait()
	return scores
}

func scoreTile(g *Grid, path geo.Polygon, row, col int) TileScore {
	bounds, _ := g.TileAt(row, col)
	score := TileScore{
		Row:    row,
		Col:    col,
		Bounds: bounds,
		Value:  g.values[row][col],
	}

	score.Clipped = geo.ClipTileByBand(bounds, path)
	if score.Clipped == nil {
		return score
	}

	overlap := geo.Clip(path, bounds.Polygon())
	area := geo.SignedArea(overlap)
	if area < 0 {
		area = -area
	}
	score.Coverage = area / bounds.Area()
	if score.Coverage > 1 {
		score.Coverage = 1
	}
	return score
}

// CoverageWeightedTotal sums value x coverage over all scores, the figure
// of merit for "how much of the grid quantity sees totality".
func CoverageWeightedTotal(scores []TileScore) float64 {
	var total float64
	for _, s := range scores {
		total += s.Value * s.Coverage
	}
	return total
}
