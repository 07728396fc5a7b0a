// Package cli provides common initialization utilities shared by the server
// and worker binaries.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"budgetbook/internal/config"
	"budgetbook/internal/log"
	"budgetbook/internal/persist"
	"budgetbook/internal/persist/dirstore"
	"budgetbook/internal/persist/memory"
	"budgetbook/internal/prefs"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// NewBackend creates the primary CSV storage backend from configuration.
func NewBackend(logger *log.Logger, cfg *config.Config) persist.Backend {
	switch cfg.DataBackend {
	case "dir":
		backend, err := dirstore.New(cfg.DataDir)
		if err != nil {
			logger.Error("Failed to initialize directory backend", "error", err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		return backend
	default:
		return memory.New()
	}
}

// InitPrefs opens the preferences database. A failure degrades to nil;
// callers treat nil as "preferences unavailable".
func InitPrefs(logger *log.Logger, dbPath string) *prefs.Repository {
	repo, err := prefs.NewRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize preferences database", "error", err, "path", dbPath)
		return nil
	}
	return repo
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when shutdown is complete.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup()
		}

		cancel()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown timeout reached")
		case <-time.After(2 * time.Second):
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
