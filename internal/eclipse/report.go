package eclipse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-umbra/internal/astro"
	"github.com/litescript/ls-umbra/internal/geo"
)

const isoMillis = "2006-01-02T15:04:05.000Z"

func formatUTC(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// WritePointReport renders a styled totality report for one site.
func WritePointReport(w io.Writer, lat, lon float64, res astro.TotalityResult) {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	totalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")).Bold(true)
	partialStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#D4A017"))

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Totality at %.5f, %.5f", lat, lon)))

	if res.InTotality {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Status:  "), totalStyle.Render("TOTAL"))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("C2:      "), formatUTC(res.Start))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Maximum: "), formatUTC(res.Mid))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("C3:      "), formatUTC(res.End))
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Duration:"), formatDuration(res.DurationSeconds))
	} else {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Status:  "), partialStyle.Render("partial"))
		fmt.Fprintf(w, "%s %.3f\n", labelStyle.Render("Magnitude:"), res.Magnitude)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Maximum: "), formatUTC(res.Mid))
	}
	if !res.Converged {
		fmt.Fprintln(w, warnStyle.Render("warning: solver hit iteration cap, times are estimates"))
	}
	if res.OutsideWindow {
		fmt.Fprintln(w, warnStyle.Render("warning: outside element fit validity window"))
	}
}

func formatDuration(seconds float64) string {
	whole := int(seconds)
	return fmt.Sprintf("%dm %04.1fs (%.1f s)", whole/60, seconds-float64(whole/60*60), seconds)
}

// WriteSummaryTable writes the path table as plain text.
func WriteSummaryTable(w io.Writer, d *Dataset) {
	fmt.Fprintf(w, "Umbral path %s\n", d.Elements.Date.Format("2006-01-02"))
	fmt.Fprintln(w, strings.Repeat("─", 92))

	if len(d.Samples) == 0 {
		fmt.Fprintln(w, "No path samples")
		return
	}

	fmt.Fprintf(w, "%-10s %-20s %-20s %-22s %7s %9s\n",
		"Time", "Northern", "Southern", "Central", "Width", "Duration")
	fmt.Fprintln(w, strings.Repeat("─", 92))

	for i := range d.Samples {
		s := &d.Samples[i]
		fmt.Fprintf(w, "%-10s %-20s %-20s %-22s %5.0fkm %8.1fs\n",
			s.Time.UTC().Format("15:04:05"),
			formatLimit(s.Northern),
			formatLimit(s.Southern),
			fmt.Sprintf("%.4f %.4f", s.Central.Lat, s.Central.Lon),
			s.WidthKm,
			s.DurationSec,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d samples\n", len(d.Samples))
	for _, warning := range d.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

func formatLimit(p *geo.Point) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f %.4f", p.Lat, p.Lon)
}

// SnapshotExport is the JSON-serializable result of a query run: the
// queried site, its totality circumstances, and optionally the footprint
// polygon used.
type SnapshotExport struct {
	GeneratedAt time.Time     `json:"generated_at"`
	EclipseDate string        `json:"eclipse_date"`
	Query       *QueryExport  `json:"query,omitempty"`
	Footprint   []PointExport `json:"footprint,omitempty"`
	Warnings    []string      `json:"warnings,omitempty"`
}

// QueryExport is a JSON-friendly point query result.
type QueryExport struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	InTotality      bool    `json:"in_totality"`
	Magnitude       float64 `json:"magnitude"`
	Start           string  `json:"start,omitempty"`
	Mid             string  `json:"mid"`
	End             string  `json:"end,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
	Converged       bool    `json:"converged"`
	OutsideWindow   bool    `json:"outside_window"`
}

// PointExport is a JSON-friendly coordinate pair.
type PointExport struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ExportSnapshot builds the export structure. res may be nil when only the
// footprint is wanted.
func ExportSnapshot(d *Dataset, lat, lon float64, res *astro.TotalityResult, footprint geo.Polygon) *SnapshotExport {
	export := &SnapshotExport{
		GeneratedAt: time.Now().UTC(),
		EclipseDate: d.Elements.Date.Format("2006-01-02"),
		Warnings:    d.Warnings,
	}

	if res != nil {
		q := &QueryExport{
			Latitude:        lat,
			Longitude:       lon,
			InTotality:      res.InTotality,
			Magnitude:       res.Magnitude,
			Mid:             formatUTC(res.Mid),
			DurationSeconds: res.DurationSeconds,
			Converged:       res.Converged,
			OutsideWindow:   res.OutsideWindow,
		}
		if res.InTotality {
			q.Start = formatUTC(res.Start)
			q.End = formatUTC(res.End)
		}
		export.Query = q
	}

	for _, v := range footprint {
		export.Footprint = append(export.Footprint, PointExport{Lat: v.Lat, Lon: v.Lon})
	}
	return export
}

// WriteJSON writes the snapshot as indented JSON.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
