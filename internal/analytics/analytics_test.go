package analytics

import (
	"testing"

	"budgetbook/internal/core"
	"budgetbook/internal/store"
)

func TestSummarize(t *testing.T) {
	records := []core.Record{
		{"amount": 10.0},
		{"amount": -4.0},
		{"amount": "not a number"},
	}
	s := Summarize(records, "amount")
	if s.Count != 3 {
		t.Errorf("count = %d", s.Count)
	}
	if s.Total != 6.0 {
		t.Errorf("total = %v, want 6 (non-numeric counts as 0)", s.Total)
	}
	if s.Average != 2.0 {
		t.Errorf("average = %v", s.Average)
	}
	if s.Max != 10.0 || s.Min != -4.0 {
		t.Errorf("max/min = %v/%v", s.Max, s.Min)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, "amount")
	if s.Total != 0 || s.Average != 0 || s.Max != 0 || s.Min != 0 || s.Count != 0 {
		t.Errorf("empty summary should be all zero: %+v", s)
	}
}

func TestKPIsEmptyMonth(t *testing.T) {
	st := store.New()
	st.Replace(core.KindIncome, []core.Record{{"id": "1", "amount": 2000.0, "date": "2024-03-01"}})
	st.Replace(core.KindTransactions, []core.Record{{"id": "1", "amount": -50.0, "date": "2024-03-04"}})

	k := ComputeKPIs(st, "2019-07")
	if k.TotalIncome != 0 || k.TotalExpenses != 0 || k.NetAmount != 0 {
		t.Errorf("month with no matching dates should roll up to zero: %+v", k)
	}
}

func TestKPIsRollup(t *testing.T) {
	st := store.New()
	st.Replace(core.KindIncome, []core.Record{
		{"id": "1", "amount": 2000.0, "date": "2024-01-01"},
		{"id": "2", "amount": 500.0, "date": "2024-02-01"}, // other month
	})
	st.Replace(core.KindTransactions, []core.Record{
		{"id": "1", "amount": -120.0, "date": "2024-01-05"},
		{"id": "2", "amount": 75.0, "date": "2024-01-09"},
		{"id": "3", "amount": "oops", "date": "2024-01-10"}, // counts as 0
		{"id": "4", "amount": -999.0, "date": "2024-02-02"}, // other month
	})
	st.Replace(core.KindBudgets, []core.Record{
		{"id": "1", "utilization": 50.0},
		{"id": "2", "utilization": 75.0},
	})

	k := ComputeKPIs(st, "2024-01")
	if k.TotalIncome != 2075.0 {
		t.Errorf("income = %v, want 2075", k.TotalIncome)
	}
	if k.TotalExpenses != 120.0 {
		t.Errorf("expenses = %v, want 120", k.TotalExpenses)
	}
	if k.NetAmount != 1955.0 {
		t.Errorf("net = %v, want 1955", k.NetAmount)
	}
	if k.BudgetUtilizationPercent != 63.0 {
		t.Errorf("utilization = %v, want 63 (rounded mean)", k.BudgetUtilizationPercent)
	}
}

func TestKPIsNoBudgets(t *testing.T) {
	k := ComputeKPIs(store.New(), "2024-01")
	if k.BudgetUtilizationPercent != 0 {
		t.Errorf("no budgets should yield 0 utilization, got %v", k.BudgetUtilizationPercent)
	}
}
