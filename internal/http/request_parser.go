// Utilities for turning query strings and request bodies into view
// parameters and records.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"budgetbook/internal/core"
	"budgetbook/internal/view"
)

// ParseViewParams reads the table view controls from a query string:
//
//	month=2024-01
//	search=rent
//	filter.category=Utilities
//	sort=due_date:asc,name:desc
//	toggle=name
//
// toggle applies the header-click semantics on top of sort: clicking the
// active column flips its direction, any other column becomes the single
// ascending key.
func ParseViewParams(query url.Values) view.Params {
	params := view.Params{
		Month:  strings.TrimSpace(query.Get("month")),
		Search: strings.TrimSpace(query.Get("search")),
	}

	for key, values := range query {
		name, found := strings.CutPrefix(key, "filter.")
		if !found || len(values) == 0 {
			continue
		}
		if params.Filters == nil {
			params.Filters = make(map[string]string)
		}
		params.Filters[name] = values[0]
	}

	for _, part := range strings.Split(query.Get("sort"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		column, direction, _ := strings.Cut(part, ":")
		params.Sort = append(params.Sort, view.SortKey{
			Column: strings.TrimSpace(column),
			Desc:   strings.EqualFold(strings.TrimSpace(direction), "desc"),
		})
	}

	if column := strings.TrimSpace(query.Get("toggle")); column != "" {
		params.Sort = view.Toggle(params.Sort, column)
	}

	return params
}

// DecodeRecord reads a record from a JSON body or an HTML form. Nested JSON
// values are flattened to their text form; the ledger re-coerces amounts.
func DecodeRecord(r *http.Request) (core.Record, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(contentType, "application/json") {
		var record core.Record
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			return nil, errors.New("invalid JSON body")
		}
		if record == nil {
			return nil, errors.New("empty record")
		}
		sanitizeRecord(record)
		return record, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.New("invalid form body")
	}
	if len(r.PostForm) == 0 {
		return nil, errors.New("empty record")
	}

	record := make(core.Record, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			record[key] = sanitizeInput(values[0])
		}
	}
	return record, nil
}

func sanitizeRecord(record core.Record) {
	for key, value := range record {
		if text, ok := value.(string); ok {
			record[key] = sanitizeInput(text)
		}
	}
}

// sanitizeInput removes control characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
