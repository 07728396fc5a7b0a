// Strategy registry for advancing recurring bill due dates. Each frequency
// owns the rule for computing the next occurrence.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"budgetbook/internal/core"
)

// DueDateAdvancer computes the next due date for a recurring bill.
type DueDateAdvancer interface {
	Next(due time.Time) time.Time
}

type dailyAdvancer struct{}

func (dailyAdvancer) Next(due time.Time) time.Time { return due.AddDate(0, 0, 1) }

type weeklyAdvancer struct{}

func (weeklyAdvancer) Next(due time.Time) time.Time { return due.AddDate(0, 0, 7) }

type biweeklyAdvancer struct{}

func (biweeklyAdvancer) Next(due time.Time) time.Time { return due.AddDate(0, 0, 14) }

type monthlyAdvancer struct{}

func (monthlyAdvancer) Next(due time.Time) time.Time { return due.AddDate(0, 1, 0) }

type quarterlyAdvancer struct{}

func (quarterlyAdvancer) Next(due time.Time) time.Time { return due.AddDate(0, 3, 0) }

type yearlyAdvancer struct{}

func (yearlyAdvancer) Next(due time.Time) time.Time { return due.AddDate(1, 0, 0) }

var dueDateAdvancers = map[string]DueDateAdvancer{
	"daily":     dailyAdvancer{},
	"weekly":    weeklyAdvancer{},
	"biweekly":  biweeklyAdvancer{},
	"monthly":   monthlyAdvancer{},
	"quarterly": quarterlyAdvancer{},
	"yearly":    yearlyAdvancer{},
}

// GetDueDateAdvancer returns the advancer for a frequency string. An empty
// frequency defaults to monthly.
func GetDueDateAdvancer(frequency string) (DueDateAdvancer, error) {
	key := strings.ToLower(strings.TrimSpace(frequency))
	if key == "" {
		key = "monthly"
	}
	advancer, ok := dueDateAdvancers[key]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return advancer, nil
}

// RegisterDueDateAdvancer adds or replaces the advancer for a frequency.
func RegisterDueDateAdvancer(frequency string, advancer DueDateAdvancer) {
	dueDateAdvancers[strings.ToLower(frequency)] = advancer
}

// RecurringProcessor rolls paid recurring bills forward so the next
// occurrence shows up as a fresh Pending bill.
type RecurringProcessor struct {
	ledger *LedgerService
}

func NewRecurringProcessor(ledger *LedgerService) *RecurringProcessor {
	return &RecurringProcessor{ledger: ledger}
}

// ProcessDueBills scans the bills collection and creates the next instance
// of every paid recurring bill whose due date has passed. Returns the number
// of bills created.
func (p *RecurringProcessor) ProcessDueBills(ctx context.Context, now time.Time) (int, error) {
	if p.ledger == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	bills := p.ledger.Collection(core.KindBills)
	created := 0

	for _, bill := range bills {
		if !core.BillRecurring(bill) {
			continue
		}
		if !strings.EqualFold(bill.Text("status"), core.StatusPaid) &&
			!strings.EqualFold(bill.Text("status"), core.StatusAutoPaid) {
			continue
		}

		due, ok := core.ParseISODate(bill.Text("due_date"))
		if !ok || !due.Before(now) {
			continue
		}

		advancer, err := GetDueDateAdvancer(bill.Text("frequency"))
		if err != nil {
			slog.WarnContext(ctx, "Skipping recurring bill with unknown frequency",
				"record_id", bill.ID(),
				"frequency", bill.Text("frequency"))
			continue
		}

		nextDue := advancer.Next(due).Format("2006-01-02")
		if p.hasInstance(bills, bill.Text("name"), nextDue) {
			continue
		}

		next := bill.Clone()
		next["id"] = ""
		next["status"] = core.StatusPending
		next["paid_date"] = ""
		next["due_date"] = nextDue

		if _, err := p.ledger.Add(ctx, core.KindBills, next); err != nil {
			slog.ErrorContext(ctx, "Failed to create next recurring bill",
				"record_id", bill.ID(),
				"error", err)
			continue
		}

		created++
		slog.InfoContext(ctx, "Rolled recurring bill forward",
			"record_id", bill.ID(),
			"name", bill.Text("name"),
			"next_due", nextDue)
	}

	return created, nil
}

// RunPeriodic re-runs ProcessDueBills on a ticker until ctx is cancelled.
func (p *RecurringProcessor) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			created, err := p.ProcessDueBills(ctx, time.Now())
			if err != nil {
				slog.ErrorContext(ctx, "Recurring bill processing failed", "error", err)
				continue
			}
			if created > 0 {
				slog.InfoContext(ctx, "Recurring bills rolled forward", "created", created)
			}
		}
	}
}

func (p *RecurringProcessor) hasInstance(bills []core.Record, name, dueDate string) bool {
	for _, b := range bills {
		if strings.EqualFold(b.Text("name"), name) && b.Text("due_date") == dueDate {
			return true
		}
	}
	return false
}
