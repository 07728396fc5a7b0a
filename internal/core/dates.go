package core

import (
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// ParseISODate parses the leading YYYY-MM-DD of a date field.
// A record with anything else is treated as undated, never as an error.
func ParseISODate(s string) (time.Time, bool) {
	t := strings.TrimSpace(s)
	if len(t) < len(isoDate) {
		return time.Time{}, false
	}
	d, err := time.Parse(isoDate, t[:len(isoDate)])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// MonthWindow returns the inclusive [first day, last day] range of a
// "YYYY-MM" month selector.
func MonthWindow(month string) (start, end time.Time, ok bool) {
	start, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, start.AddDate(0, 1, -1), true
}

// MonthStart returns the ISO date of the first day of a "YYYY-MM" month.
func MonthStart(month string) string {
	return strings.TrimSpace(month) + "-01"
}

// InMonthWindow reports whether an ISO date falls inside [start, end].
func InMonthWindow(dateStr string, start, end time.Time) bool {
	d, ok := ParseISODate(dateStr)
	if !ok {
		return false
	}
	return !d.Before(start) && !d.After(end)
}

// HasMonthPrefix reports whether a date string belongs to a "YYYY-MM" month
// by prefix, the way income and transaction rows are month-scoped.
func HasMonthPrefix(dateStr, month string) bool {
	t := strings.TrimSpace(dateStr)
	m := strings.TrimSpace(month)
	if m == "" || !strings.HasPrefix(t, m) {
		return false
	}
	return len(t) == len(m) || t[len(m)] == '-'
}

// CurrentMonth formats a time as the "YYYY-MM" selector.
func CurrentMonth(now time.Time) string {
	return now.Format("2006-01")
}
