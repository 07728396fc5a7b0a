package http

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParseViewParams(t *testing.T) {
	query, err := url.ParseQuery("month=2024-01&search=rent&filter.category=Utilities&filter.status=Pending&sort=due_date:asc,name:desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := ParseViewParams(query)

	if params.Month != "2024-01" {
		t.Errorf("expected month 2024-01, got %s", params.Month)
	}
	if params.Search != "rent" {
		t.Errorf("expected search rent, got %s", params.Search)
	}
	if params.Filters["category"] != "Utilities" || params.Filters["status"] != "Pending" {
		t.Errorf("unexpected filters: %v", params.Filters)
	}
	if len(params.Sort) != 2 {
		t.Fatalf("expected 2 sort keys, got %d", len(params.Sort))
	}
	if params.Sort[0].Column != "due_date" || params.Sort[0].Desc {
		t.Errorf("unexpected first sort key: %+v", params.Sort[0])
	}
	if params.Sort[1].Column != "name" || !params.Sort[1].Desc {
		t.Errorf("unexpected second sort key: %+v", params.Sort[1])
	}
}

func TestParseViewParamsToggle(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		column   string
		wantDesc bool
	}{
		{"no current sort", "toggle=name", "name", false},
		{"same column flips", "sort=name:asc&toggle=name", "name", true},
		{"descending flips back", "sort=name:desc&toggle=name", "name", false},
		{"other column replaces", "sort=name:desc&toggle=due_date", "due_date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			params := ParseViewParams(query)
			if len(params.Sort) != 1 {
				t.Fatalf("expected a single sort key, got %d", len(params.Sort))
			}
			if params.Sort[0].Column != tt.column || params.Sort[0].Desc != tt.wantDesc {
				t.Errorf("unexpected sort key: %+v", params.Sort[0])
			}
		})
	}
}

func TestParseViewParamsEmpty(t *testing.T) {
	params := ParseViewParams(url.Values{})

	if params.Month != "" || params.Search != "" {
		t.Errorf("expected zero params, got %+v", params)
	}
	if params.Filters != nil {
		t.Errorf("expected nil filters, got %v", params.Filters)
	}
	if params.Sort != nil {
		t.Errorf("expected nil sort, got %v", params.Sort)
	}
}

func TestDecodeRecordJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/records/bills",
		strings.NewReader(`{"name":"  Rent  ","amount_due":"1500"}`))
	req.Header.Set("Content-Type", "application/json")

	record, err := DecodeRecord(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record["name"] != "Rent" {
		t.Errorf("expected trimmed name, got %v", record["name"])
	}
	if record["amount_due"] != "1500" {
		t.Errorf("expected amount_due 1500, got %v", record["amount_due"])
	}
}

func TestDecodeRecordForm(t *testing.T) {
	form := url.Values{}
	form.Set("description", "Groceries")
	form.Set("amount", "42.50")

	req := httptest.NewRequest("POST", "/api/records/transactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	record, err := DecodeRecord(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record["description"] != "Groceries" {
		t.Errorf("expected Groceries, got %v", record["description"])
	}
	if record["amount"] != "42.50" {
		t.Errorf("expected 42.50, got %v", record["amount"])
	}
}

func TestDecodeRecordInvalidJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/records/bills", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")

	if _, err := DecodeRecord(req); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  plain  ", "plain"},
		{"with\x00control\x01chars", "withcontrolchars"},
		{"keeps\ttabs and\nnewlines", "keeps\ttabs and\nnewlines"},
	}

	for _, tt := range tests {
		if got := sanitizeInput(tt.input); got != tt.expected {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
