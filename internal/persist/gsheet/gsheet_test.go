package gsheet

import (
	"reflect"
	"testing"
)

func TestTabName(t *testing.T) {
	if got := tabName("bills.csv"); got != "bills" {
		t.Errorf("expected bills, got %s", got)
	}
	if got := tabName("budgets"); got != "budgets" {
		t.Errorf("expected budgets, got %s", got)
	}
}

func TestCSVToValues(t *testing.T) {
	content := "id,name,amount_due\r\n1,Rent,1500\n\n2,Internet,50\n"
	got := csvToValues(content)
	want := [][]interface{}{
		{"id", "name", "amount_due"},
		{"1", "Rent", "1500"},
		{"2", "Internet", "50"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCSVToValuesEmpty(t *testing.T) {
	if got := csvToValues(""); got != nil {
		t.Errorf("expected nil for empty content, got %v", got)
	}
}
