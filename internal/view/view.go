// Package view derives the ordered, filtered table views shown per tab.
// Derivation is a pure function of a collection snapshot and the view
// parameters; the store is never mutated.
package view

import (
	"sort"
	"strings"
	"time"

	"budgetbook/internal/core"
)

// SortKey names a column and direction. The generic table keeps a single
// active key (clicking a new column replaces the list, clicking the same
// column flips it); multiple keys act as tie-breakers when supplied.
type SortKey struct {
	Column string
	Desc   bool
}

// Params are the view parameters for one derivation pass.
type Params struct {
	// Month is the "YYYY-MM" selector scoping bills, income and
	// transactions. Budgets and categories are always included.
	Month string

	// Filters maps column name to a case-insensitive substring.
	Filters map[string]string

	// Search matches case-insensitively against any displayed column.
	Search string

	// Sort keys applied in order as tie-breakers.
	Sort []SortKey
}

// Apply derives a view: month scoping, then column filters, then free-text
// search, then the stable multi-key sort.
func Apply(records []core.Record, kind core.Kind, p Params) []core.Record {
	out := monthScope(records, kind, p.Month)
	out = applyFilters(out, p.Filters)
	out = applySearch(out, core.SchemaFor(kind), p.Search)
	if len(p.Sort) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return lessBy(out[i], out[j], p.Sort)
		})
	}
	return out
}

// Toggle implements the single-active-sort click semantics: same column
// flips direction, a different column replaces the keys with one ascending
// key.
func Toggle(current []SortKey, column string) []SortKey {
	if len(current) == 1 && current[0].Column == column {
		return []SortKey{{Column: column, Desc: !current[0].Desc}}
	}
	return []SortKey{{Column: column}}
}

// BillsOrder is the fixed ordering of the bills tab: overdue first, then
// ascending due date, dated bills before undated ones, bill name last.
func BillsOrder(records []core.Record, today time.Time) []core.Record {
	out := append([]core.Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ao, bo := core.BillOverdue(a, today), core.BillOverdue(b, today)
		if ao != bo {
			return ao
		}
		ad, aok := core.ParseISODate(a.Text("due_date"))
		bd, bok := core.ParseISODate(b.Text("due_date"))
		switch {
		case aok && bok:
			if !ad.Equal(bd) {
				return ad.Before(bd)
			}
		case aok != bok:
			return aok
		}
		return strings.ToLower(a.Text("name")) < strings.ToLower(b.Text("name"))
	})
	return out
}

func monthScope(records []core.Record, kind core.Kind, month string) []core.Record {
	month = strings.TrimSpace(month)
	if month == "" {
		return append([]core.Record(nil), records...)
	}
	switch kind {
	case core.KindBills:
		start, end, ok := core.MonthWindow(month)
		if !ok {
			return append([]core.Record(nil), records...)
		}
		out := make([]core.Record, 0, len(records))
		for _, r := range records {
			if core.InMonthWindow(r.Text("due_date"), start, end) ||
				core.InMonthWindow(r.Text("paid_date"), start, end) {
				out = append(out, r)
			}
		}
		return out
	case core.KindIncome, core.KindTransactions:
		out := make([]core.Record, 0, len(records))
		for _, r := range records {
			if core.HasMonthPrefix(r.Text("date"), month) {
				out = append(out, r)
			}
		}
		return out
	default:
		return append([]core.Record(nil), records...)
	}
}

func applyFilters(records []core.Record, filters map[string]string) []core.Record {
	for column, needle := range filters {
		needle = strings.ToLower(strings.TrimSpace(needle))
		if needle == "" {
			continue
		}
		kept := records[:0:0]
		for _, r := range records {
			if strings.Contains(strings.ToLower(r.Text(column)), needle) {
				kept = append(kept, r)
			}
		}
		records = kept
	}
	return records
}

func applySearch(records []core.Record, schema core.Schema, search string) []core.Record {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return records
	}
	out := records[:0:0]
	for _, r := range records {
		for _, column := range schema.Display {
			if strings.Contains(strings.ToLower(r.Text(column)), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func lessBy(a, b core.Record, keys []SortKey) bool {
	for _, key := range keys {
		c := compareField(a, b, key.Column)
		if c == 0 {
			continue
		}
		if key.Desc {
			return c > 0
		}
		return c < 0
	}
	return false
}

// compareField orders two records by one column: numerically when both
// values read as numbers, as case-folded strings otherwise. Missing values
// compare as empty string.
func compareField(a, b core.Record, column string) int {
	an, aok := core.AsNumber(a[column])
	bn, bok := core.AsNumber(b[column])
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a.Text(column)), strings.ToLower(b.Text(column)))
}
