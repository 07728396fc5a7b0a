package core

import "strings"

// Kind identifies one of the five record collections.
type Kind string

const (
	KindBills        Kind = "bills"
	KindIncome       Kind = "income"
	KindTransactions Kind = "transactions"
	KindCategories   Kind = "categories"
	KindBudgets      Kind = "budgets"
)

// Kinds returns all collection kinds in canonical (tab) order.
func Kinds() []Kind {
	return []Kind{KindBills, KindIncome, KindTransactions, KindCategories, KindBudgets}
}

// ParseKind maps a tab/collection name to its Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindBills:
		return KindBills, true
	case KindIncome:
		return KindIncome, true
	case KindTransactions:
		return KindTransactions, true
	case KindCategories:
		return KindCategories, true
	case KindBudgets:
		return KindBudgets, true
	}
	return "", false
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// Schema describes the CSV layout and display columns of a collection.
// It is the single dispatch table keyed by Kind: serialization order,
// amount-bearing columns, and the columns free-text search scans.
type Schema struct {
	Kind Kind

	// FileName is the CSV file this collection persists to.
	FileName string

	// Fields is the serialization order of the CSV header.
	Fields []string

	// SummaryField is the amount column summary statistics run over.
	// Empty means the collection has no amount-bearing column.
	SummaryField string

	// Display lists the columns shown in the table view; free-text search
	// matches against these (OR across columns).
	Display []string
}

var schemas = map[Kind]Schema{
	KindBills: {
		Kind:         KindBills,
		FileName:     "bills.csv",
		Fields:       []string{"id", "name", "category", "amount_due", "due_date", "paid_date", "status", "recurring", "frequency", "payment_method", "notes"},
		SummaryField: "amount_due",
		Display:      []string{"name", "category", "amount_due", "due_date", "paid_date", "status", "frequency", "payment_method", "notes"},
	},
	KindIncome: {
		Kind:         KindIncome,
		FileName:     "income.csv",
		Fields:       []string{"id", "source", "amount", "date", "recurrence", "status"},
		SummaryField: "amount",
		Display:      []string{"source", "amount", "date", "recurrence", "status"},
	},
	KindTransactions: {
		Kind:         KindTransactions,
		FileName:     "transactions.csv",
		Fields:       []string{"id", "date", "description", "category", "amount", "status"},
		SummaryField: "amount",
		Display:      []string{"date", "description", "category", "amount", "status"},
	},
	KindCategories: {
		Kind:     KindCategories,
		FileName: "categories.csv",
		Fields:   []string{"id", "category", "subcategory"},
		Display:  []string{"category", "subcategory"},
	},
	KindBudgets: {
		Kind:         KindBudgets,
		FileName:     "budgets.csv",
		Fields:       []string{"id", "name", "amount", "period", "utilization"},
		SummaryField: "amount",
		Display:      []string{"name", "amount", "period", "utilization"},
	},
}

// SchemaFor returns the schema registered for the kind.
func SchemaFor(k Kind) Schema {
	return schemas[k]
}

// HasAmounts reports whether the collection carries an amount-bearing column.
func (s Schema) HasAmounts() bool {
	return s.SummaryField != ""
}

// AmountColumn reports whether a header names an amount-like column.
// Both the codec and the sort comparator coerce these columns numerically.
func AmountColumn(header string) bool {
	h := strings.ToLower(header)
	return strings.Contains(h, "amount") || strings.Contains(h, "utilization")
}
