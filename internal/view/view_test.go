package view

import (
	"testing"
	"time"

	"budgetbook/internal/core"
)

func bill(id, name, due, status string) core.Record {
	return core.Record{"id": id, "name": name, "due_date": due, "status": status}
}

func TestMonthScopingBills(t *testing.T) {
	rent := core.Record{"id": "1", "name": "Rent", "amount_due": 1200.0, "due_date": "2024-01-01", "status": "Pending"}
	bills := []core.Record{rent}

	inJan := Apply(bills, core.KindBills, Params{Month: "2024-01"})
	if len(inJan) != 1 {
		t.Fatalf("bill due in January missing from January view: %v", inJan)
	}
	inFeb := Apply(bills, core.KindBills, Params{Month: "2024-02"})
	if len(inFeb) != 0 {
		t.Fatalf("bill due in January leaked into February view: %v", inFeb)
	}
}

func TestMonthScopingBillsPaidDate(t *testing.T) {
	paid := core.Record{"id": "1", "name": "Rent", "due_date": "2024-01-31", "paid_date": "2024-02-02", "status": "Paid"}
	got := Apply([]core.Record{paid}, core.KindBills, Params{Month: "2024-02"})
	if len(got) != 1 {
		t.Error("bill paid in February should appear in the February view")
	}
}

func TestMonthScopingTransactionsByPrefix(t *testing.T) {
	txns := []core.Record{
		{"id": "1", "date": "2024-01-05", "description": "Groceries"},
		{"id": "2", "date": "2024-02-05", "description": "Gas"},
		{"id": "3", "date": "junk", "description": "Broken"},
	}
	got := Apply(txns, core.KindTransactions, Params{Month: "2024-01"})
	if len(got) != 1 || got[0].ID() != "1" {
		t.Errorf("transactions month scope = %v", got)
	}
}

func TestBudgetsExemptFromMonthScope(t *testing.T) {
	budgets := []core.Record{{"id": "1", "name": "Food", "amount": 400.0}}
	if got := Apply(budgets, core.KindBudgets, Params{Month: "1999-01"}); len(got) != 1 {
		t.Error("budgets must ignore the month window")
	}
}

func TestColumnFilters(t *testing.T) {
	bills := []core.Record{
		bill("1", "Rent", "2024-01-01", "Pending"),
		bill("2", "Internet", "2024-01-05", "Paid"),
	}
	got := Apply(bills, core.KindBills, Params{Filters: map[string]string{"status": " paid "}})
	if len(got) != 1 || got[0].ID() != "2" {
		t.Errorf("filter result = %v", got)
	}
	// Empty filter values are no-ops.
	got = Apply(bills, core.KindBills, Params{Filters: map[string]string{"status": "  "}})
	if len(got) != 2 {
		t.Errorf("empty filter dropped records: %v", got)
	}
}

func TestFilterMissReturnsEmptyWithoutMutation(t *testing.T) {
	bills := []core.Record{bill("1", "Rent", "2024-01-01", "Pending")}
	got := Apply(bills, core.KindBills, Params{Filters: map[string]string{"name": "zebra"}})
	if len(got) != 0 {
		t.Errorf("expected empty view, got %v", got)
	}
	if bills[0].Text("name") != "Rent" {
		t.Error("derivation mutated the input collection")
	}
}

func TestSearchAcrossDisplayedColumns(t *testing.T) {
	bills := []core.Record{
		bill("1", "Rent", "2024-01-01", "Pending"),
		bill("2", "Internet", "2024-01-05", "Paid"),
	}
	got := Apply(bills, core.KindBills, Params{Search: "PEND"})
	if len(got) != 1 || got[0].ID() != "1" {
		t.Errorf("search result = %v", got)
	}
}

func TestNumericSortAscThenDescReverses(t *testing.T) {
	budgets := []core.Record{
		{"id": "1", "amount": 400.0},
		{"id": "2", "amount": 60.0},
		{"id": "3", "amount": 1200.0},
	}
	asc := Apply(budgets, core.KindBudgets, Params{Sort: []SortKey{{Column: "amount"}}})
	desc := Apply(budgets, core.KindBudgets, Params{Sort: []SortKey{{Column: "amount", Desc: true}}})
	for i := range asc {
		if asc[i].ID() != desc[len(desc)-1-i].ID() {
			t.Fatalf("descending is not the reverse of ascending: %v vs %v", asc, desc)
		}
	}
	if asc[0].ID() != "2" || asc[2].ID() != "3" {
		t.Errorf("ascending numeric order wrong: %v", asc)
	}
}

func TestSortMissingValuesAreSafe(t *testing.T) {
	budgets := []core.Record{
		{"id": "1"},
		{"id": "2", "amount": 10.0},
	}
	got := Apply(budgets, core.KindBudgets, Params{Sort: []SortKey{{Column: "amount"}}})
	if len(got) != 2 {
		t.Fatalf("sort dropped records: %v", got)
	}
}

func TestToggle(t *testing.T) {
	keys := Toggle(nil, "amount")
	if len(keys) != 1 || keys[0].Desc {
		t.Fatalf("first click should sort ascending: %v", keys)
	}
	keys = Toggle(keys, "amount")
	if !keys[0].Desc {
		t.Error("second click on the same column should flip direction")
	}
	keys = Toggle(keys, "name")
	if len(keys) != 1 || keys[0].Column != "name" || keys[0].Desc {
		t.Errorf("clicking a new column should replace with a single ascending key: %v", keys)
	}
}

func TestBillsOrder(t *testing.T) {
	today := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	bills := []core.Record{
		bill("late", "Water", "2024-01-05", "Pending"),   // overdue
		bill("due", "Rent", "2024-01-25", "Pending"),     // upcoming
		bill("paid", "Internet", "2024-01-02", "Paid"),   // paid, early due date
		bill("undated", "Storage", "", "Pending"),        // no due date
		bill("late2", "Electric", "2024-01-03", "Pending"), // overdue, earlier
	}
	got := BillsOrder(bills, today)
	order := make([]string, len(got))
	for i, r := range got {
		order[i] = r.ID()
	}
	want := []string{"late2", "late", "paid", "due", "undated"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("bills order = %v, want %v", order, want)
		}
	}
}
