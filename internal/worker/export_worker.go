// Package worker mirrors collection CSVs from primary storage to an export
// target, driven by sync messages with a periodic full pass as catch-up.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgetbook/internal/amqp"
	"budgetbook/internal/core"
	"budgetbook/internal/persist"
)

type ExportWorker struct {
	source   persist.Reader
	exporter persist.Writer
}

func NewExportWorker(source persist.Reader, exporter persist.Writer) *ExportWorker {
	return &ExportWorker{
		source:   source,
		exporter: exporter,
	}
}

// HandleSyncMessage re-exports the collection named in a sync message. The
// message carries no data; the CSV is re-read from primary storage so the
// export always reflects the latest write.
func (w *ExportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.CollectionSyncMessage) error {
	kind, ok := core.ParseKind(msg.Collection)
	if !ok {
		return fmt.Errorf("unknown collection in sync message: %s", msg.Collection)
	}

	slog.InfoContext(ctx, "Processing sync message",
		"collection", msg.Collection,
		"revision", msg.Revision)

	return w.exportKind(ctx, kind)
}

// ExportAll mirrors every collection. Collections without a source file are
// skipped, other errors abort the pass.
func (w *ExportWorker) ExportAll(ctx context.Context) error {
	for _, kind := range core.Kinds() {
		if err := w.exportKind(ctx, kind); err != nil {
			if err == persist.ErrNotFound {
				continue
			}
			return err
		}
	}
	return nil
}

func (w *ExportWorker) exportKind(ctx context.Context, kind core.Kind) error {
	fileName := core.SchemaFor(kind).FileName

	content, err := w.source.Read(ctx, fileName)
	if err != nil {
		if err == persist.ErrNotFound {
			slog.WarnContext(ctx, "No source file for collection, skipping export",
				"collection", kind.String(),
				"file", fileName)
			return persist.ErrNotFound
		}
		return fmt.Errorf("read %s: %w", fileName, err)
	}

	if err := w.exporter.Write(ctx, fileName, content); err != nil {
		return fmt.Errorf("export %s: %w", fileName, err)
	}

	slog.InfoContext(ctx, "Exported collection",
		"collection", kind.String(),
		"file", fileName)
	return nil
}

// RunPeriodic exports everything on an interval until ctx is cancelled.
// Individual pass failures are logged and retried on the next tick.
func (w *ExportWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ExportAll(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}
