// Package pipeline runs a full analysis: read rows, build the ledger,
// compute the summary, render charts and compose the report.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"matumizi/internal/aggregate"
	"matumizi/internal/config"
	"matumizi/internal/ledger"
	"matumizi/internal/notify"
	"matumizi/internal/report"
	"matumizi/internal/source"
	"matumizi/internal/summary"
)

// Notifier announces completed runs. The AMQP client satisfies this; a nil
// notifier disables announcements.
type Notifier interface {
	PublishAnalysisDone(ctx context.Context, msg *notify.AnalysisDoneMessage) error
}

// Options configures one analysis run.
type Options struct {
	OutputDir      string
	SummaryPath    string
	ReportPath     string
	Currency       string
	DetailMerchant string
	TopMerchants   int
	TopAreas       int
	PivotAreas     int
	FontPath       string
	SourceLabel    string
}

// FromConfig derives run options from the process configuration.
func FromConfig(cfg *config.Config) Options {
	label := cfg.InputPath
	if cfg.InputBackend == "sheets" {
		label = "Google Sheets"
	}
	return Options{
		OutputDir:      cfg.OutputDir,
		SummaryPath:    cfg.SummaryPath(),
		ReportPath:     cfg.ReportPath(),
		Currency:       cfg.Currency,
		DetailMerchant: cfg.DetailMerchant,
		TopMerchants:   cfg.TopMerchants,
		TopAreas:       cfg.TopAreas,
		PivotAreas:     cfg.PivotAreas,
		FontPath:       cfg.ReportFont,
		SourceLabel:    label,
	}
}

// Result reports where the artifacts landed.
type Result struct {
	Summary     summary.Summary
	SummaryPath string
	ReportPath  string
	ChartPaths  []string
}

// Run executes the pipeline. All computation happens before the first write,
// so a failing input never leaves partial artifacts behind.
func Run(ctx context.Context, opts Options, reader source.RowReader, notifier Notifier) (*Result, error) {
	rows, err := reader.ReadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	slog.InfoContext(ctx, "Read input rows", "rows", len(rows))

	led, err := ledger.Build(rows)
	if err != nil {
		return nil, fmt.Errorf("build ledger: %w", err)
	}

	s := summary.Build(led, summary.Options{
		Currency:       opts.Currency,
		DetailMerchant: opts.DetailMerchant,
		TopMerchants:   opts.TopMerchants,
		TopAreas:       opts.TopAreas,
	})

	areas := aggregate.TopN(aggregate.GroupBy(led, aggregate.ByArea), opts.PivotAreas)
	rowKeys := make([]string, len(areas))
	for i, g := range areas {
		rowKeys[i] = g.Key
	}
	pivot := aggregate.PivotSum(led, rowKeys, aggregate.ByArea, aggregate.ByType)

	renderer, err := report.NewRenderer(opts.FontPath)
	if err != nil {
		return nil, fmt.Errorf("prepare renderer: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	if err := s.WriteFile(opts.SummaryPath); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}
	slog.InfoContext(ctx, "Wrote summary", "path", opts.SummaryPath)

	chartPaths, err := renderer.RenderAll(ctx, opts.OutputDir, s, pivot)
	if err != nil {
		return nil, fmt.Errorf("render charts: %w", err)
	}
	slog.InfoContext(ctx, "Rendered charts", "count", len(chartPaths))

	data := report.NewData(s, areas, chartPaths)
	data.Source = opts.SourceLabel
	if err := report.ComposeHTML(opts.ReportPath, data); err != nil {
		return nil, fmt.Errorf("compose report: %w", err)
	}
	slog.InfoContext(ctx, "Composed report", "path", opts.ReportPath)

	if notifier != nil {
		msg := notify.NewAnalysisDoneMessage(opts.SummaryPath, opts.ReportPath, s.KPIs.TotalSpend, s.KPIs.Transactions)
		if err := notifier.PublishAnalysisDone(ctx, msg); err != nil {
			// The artifacts are already on disk; a missed notification is
			// not worth failing the run over.
			slog.WarnContext(ctx, "Failed to publish analysis-done message", "error", err)
		}
	}

	return &Result{
		Summary:     s,
		SummaryPath: opts.SummaryPath,
		ReportPath:  opts.ReportPath,
		ChartPaths:  chartPaths,
	}, nil
}
