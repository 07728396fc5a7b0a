// Package services orchestrates ledger mutations across the in-memory store,
// CSV persistence, and the sync message broker.
package services

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"budgetbook/internal/amqp"
	"budgetbook/internal/analytics"
	"budgetbook/internal/core"
	"budgetbook/internal/csvcodec"
	"budgetbook/internal/persist"
	"budgetbook/internal/store"
	"budgetbook/internal/view"
)

// LedgerService coordinates the record store with CSV persistence and change
// notifications. Mutations apply to the store first; persistence and
// notification failures are logged but never roll the store back.
type LedgerService struct {
	store      *store.Store
	backend    persist.Backend
	amqpClient *amqp.Client
	seeds      fs.FS
	now        func() time.Time
}

type Option func(*LedgerService)

// WithSeeds installs a filesystem of fallback CSVs used when the backend has
// no file for a collection yet.
func WithSeeds(seeds fs.FS) Option {
	return func(s *LedgerService) { s.seeds = seeds }
}

// WithAMQP enables change notifications. Without it mutations still work,
// they just stay local.
func WithAMQP(client *amqp.Client) Option {
	return func(s *LedgerService) { s.amqpClient = client }
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) { s.now = now }
}

func NewLedgerService(st *store.Store, backend persist.Backend, opts ...Option) *LedgerService {
	s := &LedgerService{
		store:   st,
		backend: backend,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every collection CSV from the backend into the store. A missing
// file falls back to the embedded seed for that collection, then to an empty
// collection. Load resets the undo history.
func (s *LedgerService) Load(ctx context.Context) error {
	for _, kind := range core.Kinds() {
		schema := core.SchemaFor(kind)

		text, err := s.backend.Read(ctx, schema.FileName)
		if err != nil {
			if err != persist.ErrNotFound {
				return fmt.Errorf("read %s: %w", schema.FileName, err)
			}
			text = s.seedFor(ctx, schema.FileName)
		}

		records := csvcodec.Parse(text)
		s.store.Replace(kind, records)

		slog.InfoContext(ctx, "Loaded collection",
			"collection", kind.String(),
			"records", len(records))
	}
	return nil
}

func (s *LedgerService) seedFor(ctx context.Context, fileName string) string {
	if s.seeds == nil {
		return ""
	}
	data, err := fs.ReadFile(s.seeds, fileName)
	if err != nil {
		slog.WarnContext(ctx, "No seed data for collection file", "file", fileName)
		return ""
	}
	slog.InfoContext(ctx, "Using seed data", "file", fileName)
	return string(data)
}

// Records returns the view of a collection after month scoping, filters,
// search, and sorting. Bills default to their fixed overdue-first ordering
// until the caller sorts explicitly.
func (s *LedgerService) Records(kind core.Kind, params view.Params) []core.Record {
	records := view.Apply(s.store.Collection(kind), kind, params)
	if kind == core.KindBills && len(params.Sort) == 0 {
		records = view.BillsOrder(records, s.now())
	}
	return records
}

// Collection returns the raw, unscoped collection.
func (s *LedgerService) Collection(kind core.Kind) []core.Record {
	return s.store.Collection(kind)
}

func (s *LedgerService) FindByID(kind core.Kind, id string) (core.Record, bool) {
	return s.store.FindByID(kind, id)
}

// Summarize aggregates the numeric summary column over the given records.
func (s *LedgerService) Summarize(kind core.Kind, records []core.Record) analytics.Summary {
	return analytics.Summarize(records, core.SchemaFor(kind).SummaryField)
}

// KPIs computes the monthly overview numbers from the full store.
func (s *LedgerService) KPIs(month string) analytics.KPIs {
	return analytics.ComputeKPIs(s.store, month)
}

func (s *LedgerService) UndoDepth() int {
	return s.store.UndoDepth()
}

// Add inserts a record, assigning an ID when the caller did not provide one.
// Amount columns are coerced so values arriving as form strings behave like
// parsed CSV cells.
func (s *LedgerService) Add(ctx context.Context, kind core.Kind, record core.Record) (core.Record, error) {
	rec := record.Clone()
	if strings.TrimSpace(rec.ID()) == "" {
		rec["id"] = core.NewID(s.now())
	}
	coerceAmounts(rec)

	s.store.Upsert(kind, rec)
	s.persistCollection(ctx, kind)
	return rec, nil
}

// Update replaces the record with the same ID.
func (s *LedgerService) Update(ctx context.Context, kind core.Kind, record core.Record) (core.Record, error) {
	rec := record.Clone()
	if strings.TrimSpace(rec.ID()) == "" {
		return nil, fmt.Errorf("update %s: missing record id", kind)
	}
	coerceAmounts(rec)

	s.store.Upsert(kind, rec)
	s.persistCollection(ctx, kind)
	return rec, nil
}

// Delete removes a record by ID. Deleting an unknown ID is a no-op.
func (s *LedgerService) Delete(ctx context.Context, kind core.Kind, id string) error {
	if !s.store.DeleteByID(kind, id) {
		return nil
	}
	s.persistCollection(ctx, kind)
	return nil
}

// DeleteMany removes several records under a single undo step.
func (s *LedgerService) DeleteMany(ctx context.Context, kind core.Kind, ids []string) (int, error) {
	removed := s.store.DeleteMany(kind, ids)
	if removed > 0 {
		s.persistCollection(ctx, kind)
	}
	return removed, nil
}

// Undo restores the most recent mutation snapshot and re-persists the
// affected collection.
func (s *LedgerService) Undo(ctx context.Context) (core.Kind, error) {
	kind, err := s.store.Undo()
	if err != nil {
		return kind, err
	}
	s.persistCollection(ctx, kind)
	return kind, nil
}

// ImportCSV replaces a collection with parsed CSV text. Rows without an ID
// get an import ID derived from the load time and row index. Import is not
// undoable.
func (s *LedgerService) ImportCSV(ctx context.Context, kind core.Kind, text string) (int, error) {
	records := csvcodec.Parse(text)
	now := s.now()
	for i, rec := range records {
		if strings.TrimSpace(rec.ID()) == "" {
			rec["id"] = core.ImportID(now, i)
		}
	}

	s.store.Replace(kind, records)
	s.persistCollection(ctx, kind)

	slog.InfoContext(ctx, "Imported collection from CSV",
		"collection", kind.String(),
		"records", len(records))
	return len(records), nil
}

// ExportCSV serializes the current collection in schema column order.
func (s *LedgerService) ExportCSV(kind core.Kind) string {
	return csvcodec.Serialize(s.store.Collection(kind), core.SchemaFor(kind))
}

// MarkBillPaid sets a bill to Paid, stamps today's date, and records a
// matching negative transaction in the viewed month.
func (s *LedgerService) MarkBillPaid(ctx context.Context, billID, month string) (core.Record, error) {
	bill, ok := s.store.FindByID(core.KindBills, billID)
	if !ok {
		return nil, fmt.Errorf("mark bill paid: bill %s not found", billID)
	}

	now := s.now()
	bill["status"] = core.StatusPaid
	bill["paid_date"] = now.UTC().Format("2006-01-02")
	s.store.Upsert(core.KindBills, bill)
	s.persistCollection(ctx, core.KindBills)

	txn := core.Record{
		"id":          core.NewID(now),
		"date":        core.MonthStart(month),
		"description": bill.Text("name"),
		"category":    "Bills",
		"amount":      -core.NumberOr0(bill["amount_due"]),
		"status":      "Completed",
	}
	s.store.Upsert(core.KindTransactions, txn)
	s.persistCollection(ctx, core.KindTransactions)

	slog.InfoContext(ctx, "Marked bill paid",
		"record_id", billID,
		"month", month,
		"amount", txn["amount"])
	return bill, nil
}

// MarkBillUnpaid reverts a bill to Pending and clears its paid date. The
// payment transaction, if any, stays; undo covers accidental marks.
func (s *LedgerService) MarkBillUnpaid(ctx context.Context, billID string) (core.Record, error) {
	bill, ok := s.store.FindByID(core.KindBills, billID)
	if !ok {
		return nil, fmt.Errorf("mark bill unpaid: bill %s not found", billID)
	}

	bill["status"] = core.StatusPending
	bill["paid_date"] = ""
	s.store.Upsert(core.KindBills, bill)
	s.persistCollection(ctx, core.KindBills)
	return bill, nil
}

// ToggleAutoPay flips a bill between Auto-Paid and Pending.
func (s *LedgerService) ToggleAutoPay(ctx context.Context, billID string) (core.Record, error) {
	bill, ok := s.store.FindByID(core.KindBills, billID)
	if !ok {
		return nil, fmt.Errorf("toggle auto-pay: bill %s not found", billID)
	}

	if strings.EqualFold(bill.Text("status"), core.StatusAutoPaid) {
		bill["status"] = core.StatusPending
	} else {
		bill["status"] = core.StatusAutoPaid
	}
	s.store.Upsert(core.KindBills, bill)
	s.persistCollection(ctx, core.KindBills)
	return bill, nil
}

// persistCollection writes the collection CSV and publishes a sync message.
// Failures are logged; the in-memory state is already committed.
func (s *LedgerService) persistCollection(ctx context.Context, kind core.Kind) {
	schema := core.SchemaFor(kind)
	content := csvcodec.Serialize(s.store.Collection(kind), schema)

	if err := s.backend.Write(ctx, schema.FileName, content); err != nil {
		slog.ErrorContext(ctx, "Failed to persist collection",
			"collection", kind.String(),
			"file", schema.FileName,
			"error", err)
	}

	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishCollectionSync(ctx, kind.String(), s.store.Revision(kind)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"collection", kind.String(),
			"error", err)
	}
}

func coerceAmounts(rec core.Record) {
	for field, value := range rec {
		if !core.AmountColumn(field) {
			continue
		}
		if text, ok := value.(string); ok {
			rec[field] = core.CoerceNumber(text)
		}
	}
}

// Close releases the broker connection. The backend has no open handles.
func (s *LedgerService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
