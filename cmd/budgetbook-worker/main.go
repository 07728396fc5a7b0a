package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"budgetbook/internal/amqp"
	"budgetbook/internal/cli"
	"budgetbook/internal/log"
	"budgetbook/internal/persist/gsheet"
	"budgetbook/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting budgetbook-worker")

	if cfg.GoogleSpreadsheetID == "" {
		logger.Info("No GOOGLE_SPREADSHEET_ID configured, nothing to export")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exporter, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize spreadsheet export client", "error", err)
		os.Exit(1)
	}
	logger.Info("Spreadsheet export client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	source := cli.NewBackend(logger, cfg)
	exportWorker := worker.NewExportWorker(source, exporter)

	// Catch up before waiting on messages
	if err := exportWorker.ExportAll(ctx); err != nil {
		logger.Error("Startup export failed", "error", err)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeCollectionSync(gctx, func(msg *amqp.CollectionSyncMessage) error {
			return exportWorker.HandleSyncMessage(gctx, msg)
		})
	})

	g.Go(func() error {
		return exportWorker.RunPeriodic(gctx, cfg.ExportInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
