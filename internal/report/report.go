// Package report renders the chart set and composes the run report.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"matumizi/internal/aggregate"
	"matumizi/internal/summary"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// AreaStat is one row of the area detail table.
type AreaStat struct {
	Area   string
	Amount float64
	Count  int
}

// Data feeds the report template.
type Data struct {
	Title           string
	Source          string
	Summary         summary.Summary
	Charts          []string // file names relative to the report
	Insights        []string
	Recommendations []string
	Stations        []summary.StationAmount
	AreaStats       []AreaStat
}

// stationTableLimit caps the station detail table like the original report.
const stationTableLimit = 6

// NewData prepares template data from the summary and the area aggregation.
func NewData(s summary.Summary, areaStats []aggregate.Group, chartPaths []string) Data {
	charts := make([]string, len(chartPaths))
	for i, p := range chartPaths {
		charts[i] = filepath.Base(p)
	}
	stations := s.ByStation
	if len(stations) > stationTableLimit {
		stations = stations[:stationTableLimit]
	}
	areas := make([]AreaStat, 0, len(areaStats))
	for _, g := range areaStats {
		f, _ := g.Sum.Float64()
		areas = append(areas, AreaStat{Area: g.Key, Amount: f, Count: g.Count})
	}
	return Data{
		Title:    "Monthly Spending Analysis (" + s.Currency + ")",
		Summary:  s,
		Charts:   charts,
		Insights: insights(s),
		Recommendations: []string{
			"Track a monthly budget vs actual for the largest categories.",
			"For fuel/transport, monitor spend by station to spot price or volume changes.",
			"Capture merchant and location as separate fields to improve accuracy and automation.",
		},
		Stations:  stations,
		AreaStats: areas,
	}
}

// insights are the executive-summary bullets derived from the top entry of
// each dimension.
func insights(s summary.Summary) []string {
	var out []string
	total := s.KPIs.TotalSpend
	pct := func(amount float64) string {
		if total == 0 {
			return "0.0"
		}
		return strconv.FormatFloat(100*amount/total, 'f', 1, 64)
	}
	if len(s.ByType) > 0 {
		t := s.ByType[0]
		out = append(out, fmt.Sprintf("Spending is concentrated: top category is %s at %.1f%% of total.", t.Type, t.SharePct))
	}
	if len(s.ByPayment) > 0 {
		p := s.ByPayment[0]
		out = append(out, fmt.Sprintf("Payments are mostly via %s (%.1f%%).", p.PaymentType, p.SharePct))
	}
	if len(s.TopMerchants) > 0 {
		m := s.TopMerchants[0]
		out = append(out, fmt.Sprintf("Top merchant is %s at %s %s (%s%%).", m.Merchant, s.Currency, formatAmount(m.Amount), pct(m.Amount)))
	}
	if len(s.TopAreas) > 0 {
		a := s.TopAreas[0]
		out = append(out, fmt.Sprintf("Top area/location is %s at %s %s (%s%%).", a.Area, s.Currency, formatAmount(a.Amount), pct(a.Amount)))
	}
	return out
}

// ComposeHTML writes the report document. Like the summary it is written
// atomically so an interrupted run leaves nothing half-finished.
func ComposeHTML(path string, data Data) error {
	tmpl, err := template.New("report.html.tmpl").Funcs(template.FuncMap{
		"money": formatAmount,
		"chart": func(charts []string, i int) string {
			if i < 0 || i >= len(charts) {
				return ""
			}
			return charts[i]
		},
	}).ParseFS(templatesFS, "templates/report.html.tmpl")
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".report-*.html")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmpl.Execute(tmp, data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("render report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename report into place: %w", err)
	}
	return nil
}

// formatAmount renders a monetary value with thousands separators and no
// decimals, e.g. 1234567.8 -> "1,234,568".
func formatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
