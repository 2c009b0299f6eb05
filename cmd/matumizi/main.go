package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"matumizi/internal/cli"
	"matumizi/internal/config"
	"matumizi/internal/notify"
	"matumizi/internal/pipeline"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	var (
		inputPath = flag.String("input", "", "input file (overrides INPUT_PATH)")
		outputDir = flag.String("outdir", "", "output directory (overrides OUTPUT_DIR)")
	)
	flag.Parse()

	cfg := config.Load()
	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting matumizi",
		"backend", cfg.InputBackend,
		"input", cfg.InputPath,
		"outdir", cfg.OutputDir)

	reader, err := cli.NewRowReader(cfg, "")
	if err != nil {
		logger.Error("Failed to initialize input reader", "error", err, "backend", cfg.InputBackend)
		os.Exit(1)
	}

	// AMQP is optional for the one-shot run; an empty URL disables it.
	var notifier pipeline.Notifier
	if cfg.AMQPURL != "" {
		client, err := notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRequestQueue, cfg.AMQPResultQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		notifier = client
		logger.Info("AMQP notifications enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPResultQueue)
	}

	ctx := context.Background()
	res, err := pipeline.Run(ctx, pipeline.FromConfig(cfg), reader, notifier)
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "Analysis complete",
		"transactions", res.Summary.KPIs.Transactions,
		"total_spend", res.Summary.KPIs.TotalSpend,
		"summary", res.SummaryPath,
		"report", res.ReportPath,
		"charts", len(res.ChartPaths))
}
