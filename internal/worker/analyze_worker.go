// Package worker processes analysis requests arriving over AMQP.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"matumizi/internal/config"
	"matumizi/internal/notify"
	"matumizi/internal/pipeline"
	"matumizi/internal/source"
)

// ReaderFactory builds a row reader for the input a request names. It lets
// the worker honor per-request input paths without knowing about backends.
type ReaderFactory func(inputPath string) (source.RowReader, error)

// AnalyzeWorker runs one analysis per request message and announces the
// result on the result queue.
type AnalyzeWorker struct {
	cfg       *config.Config
	newReader ReaderFactory
	notifier  pipeline.Notifier
}

func NewAnalyzeWorker(cfg *config.Config, newReader ReaderFactory, notifier pipeline.Notifier) *AnalyzeWorker {
	return &AnalyzeWorker{
		cfg:       cfg,
		newReader: newReader,
		notifier:  notifier,
	}
}

// HandleAnalyzeRequest processes a single analyze request from AMQP. Request
// fields override the configured input and output; empty fields fall back.
func (w *AnalyzeWorker) HandleAnalyzeRequest(ctx context.Context, msg *notify.AnalyzeRequestMessage) error {
	slog.InfoContext(ctx, "Processing analyze request",
		"input", msg.InputPath,
		"output", msg.OutputDir)

	opts := pipeline.FromConfig(w.cfg)
	inputPath := w.cfg.InputPath
	if msg.InputPath != "" {
		inputPath = msg.InputPath
		opts.SourceLabel = msg.InputPath
	}
	if msg.OutputDir != "" {
		opts.OutputDir = msg.OutputDir
		opts.SummaryPath = filepath.Join(msg.OutputDir, w.cfg.SummaryJSON)
		opts.ReportPath = filepath.Join(msg.OutputDir, w.cfg.ReportHTML)
	}

	reader, err := w.newReader(inputPath)
	if err != nil {
		return fmt.Errorf("open input %s: %w", inputPath, err)
	}

	res, err := pipeline.Run(ctx, opts, reader, w.notifier)
	if err != nil {
		return fmt.Errorf("run analysis: %w", err)
	}

	slog.InfoContext(ctx, "Analysis completed",
		"summary", res.SummaryPath,
		"report", res.ReportPath,
		"transactions", res.Summary.KPIs.Transactions)

	return nil
}
