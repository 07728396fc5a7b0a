// Package analytics computes summary statistics and the monthly KPI rollup.
// All amount reads go through the shared coercion utility, so non-numeric
// or missing values count as zero and nothing here can fail.
package analytics

import (
	"math"

	"budgetbook/internal/core"
)

// Summary holds column statistics for a derived view.
type Summary struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Count   int     `json:"count"`
}

// KPIs is the monthly rollup shown above the tables.
type KPIs struct {
	TotalIncome              float64 `json:"totalIncome"`
	TotalExpenses            float64 `json:"totalExpenses"`
	NetAmount                float64 `json:"netAmount"`
	BudgetUtilizationPercent float64 `json:"budgetUtilizationPercent"`
}

// Source is the read side of the record store.
type Source interface {
	Collection(kind core.Kind) []core.Record
}

// Summarize computes total, average, max, min and count over one amount
// column. An empty input yields the zero Summary; average guards the
// division.
func Summarize(records []core.Record, amountField string) Summary {
	s := Summary{Count: len(records)}
	if s.Count == 0 {
		return s
	}
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	for _, r := range records {
		v := core.NumberOr0(r[amountField])
		s.Total += v
		if v > s.Max {
			s.Max = v
		}
		if v < s.Min {
			s.Min = v
		}
	}
	s.Average = s.Total / float64(s.Count)
	return s
}

// ComputeKPIs rolls up one month: income rows plus positive transactions
// feed income, the absolute value of negative transactions feeds expenses,
// and budget utilization is the rounded mean across budget rows.
func ComputeKPIs(src Source, month string) KPIs {
	var k KPIs

	for _, r := range src.Collection(core.KindIncome) {
		if core.HasMonthPrefix(r.Text("date"), month) {
			k.TotalIncome += core.NumberOr0(r["amount"])
		}
	}
	for _, r := range src.Collection(core.KindTransactions) {
		if !core.HasMonthPrefix(r.Text("date"), month) {
			continue
		}
		amount := core.NumberOr0(r["amount"])
		if amount > 0 {
			k.TotalIncome += amount
		} else {
			k.TotalExpenses += -amount
		}
	}
	k.NetAmount = k.TotalIncome - k.TotalExpenses

	budgets := src.Collection(core.KindBudgets)
	if len(budgets) > 0 {
		var sum float64
		for _, r := range budgets {
			sum += core.NumberOr0(r["utilization"])
		}
		k.BudgetUtilizationPercent = math.Round(sum / float64(len(budgets)))
	}
	return k
}
