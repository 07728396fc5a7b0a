package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"budgetbook/assets"
	"budgetbook/internal/amqp"
	"budgetbook/internal/cli"
	apphttp "budgetbook/internal/http"
	"budgetbook/internal/services"
	"budgetbook/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	backend := cli.NewBackend(logger, cfg)

	prefsRepo := cli.InitPrefs(logger, cfg.PrefsDBPath)
	if prefsRepo != nil {
		defer prefsRepo.Close()
	}

	// AMQP is optional; without it the worker just never hears about changes.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, continuing without sync messages", "error", err)
		} else {
			amqpClient = client
		}
	}

	opts := []services.Option{services.WithSeeds(assets.Seeds())}
	if amqpClient != nil {
		opts = append(opts, services.WithAMQP(amqpClient))
	}
	ledger := services.NewLedgerService(store.New(), backend, opts...)
	defer ledger.Close()

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := ledger.Load(startupCtx); err != nil {
		startupCancel()
		logger.Error("Failed to load collections", "error", err)
		os.Exit(1)
	}

	// Roll recurring bills forward once at startup, then on a ticker
	processor := services.NewRecurringProcessor(ledger)
	if created, err := processor.ProcessDueBills(startupCtx, time.Now()); err != nil {
		logger.Error("Recurring bill processing failed", "error", err)
	} else if created > 0 {
		logger.Info("Recurring bills rolled forward", "created", created)
	}
	startupCancel()

	srv := apphttp.NewServer(":"+cfg.Port, ledger, prefsRepo)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	go func() {
		if err := processor.RunPeriodic(ctx, cfg.RecurringInterval); err != nil && err != context.Canceled {
			logger.Error("Recurring processor stopped", "error", err)
		}
	}()

	logger.Info("Starting budgetbook server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	slog.Info("Server stopped gracefully")
}
