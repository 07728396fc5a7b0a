package core

import (
	"strings"
	"time"
)

// Bill status values. Status is stored as free text; comparisons are
// case-insensitive so hand-edited CSVs keep working.
const (
	StatusPending  = "Pending"
	StatusPaid     = "Paid"
	StatusOverdue  = "Overdue"
	StatusAutoPaid = "Auto-Paid"
)

func statusIs(r Record, status string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Text("status")), status)
}

// BillEffectiveDate is the date a bill displays and sorts by: the paid date
// when the bill is paid and has one, the due date otherwise.
func BillEffectiveDate(r Record) string {
	if statusIs(r, StatusPaid) && strings.TrimSpace(r.Text("paid_date")) != "" {
		return r.Text("paid_date")
	}
	return r.Text("due_date")
}

// BillOverdue reports whether a bill counts as overdue on the given day.
// Overdue is derived, not necessarily stored: either the status text already
// says so, or the bill is unpaid with a due date strictly before today.
func BillOverdue(r Record, today time.Time) bool {
	status := strings.ToLower(strings.TrimSpace(r.Text("status")))
	if strings.Contains(status, "overdue") {
		return true
	}
	if status == strings.ToLower(StatusPaid) || status == strings.ToLower(StatusAutoPaid) {
		return false
	}
	due, ok := ParseISODate(r.Text("due_date"))
	if !ok {
		return false
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(day)
}

// BillRecurring reports whether the recurring flag is set. The CSV stores
// free text, so any of true/yes/1 counts.
func BillRecurring(r Record) bool {
	switch strings.ToLower(strings.TrimSpace(r.Text("recurring"))) {
	case "true", "yes", "1":
		return true
	}
	return false
}
