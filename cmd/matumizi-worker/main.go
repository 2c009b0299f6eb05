package main

import (
	"context"
	"errors"
	"os"
	"time"

	"matumizi/internal/cli"
	"matumizi/internal/notify"
	"matumizi/internal/source"
	"matumizi/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting matumizi-worker")

	cfg := cli.LoadAndValidateWorkerConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	amqpClient, err := notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRequestQueue, cfg.AMQPResultQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	analyzeWorker := worker.NewAnalyzeWorker(cfg, func(inputPath string) (source.RowReader, error) {
		return cli.NewRowReader(cfg, inputPath)
	}, amqpClient)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	go func() {
		err := amqpClient.ConsumeAnalyzeRequests(ctx, func(msg *notify.AnalyzeRequestMessage) error {
			return analyzeWorker.HandleAnalyzeRequest(ctx, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", "error", err)
		}
	}()

	logger.Info("Worker ready",
		"exchange", cfg.AMQPExchange,
		"request_queue", cfg.AMQPRequestQueue,
		"result_queue", cfg.AMQPResultQueue)

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
