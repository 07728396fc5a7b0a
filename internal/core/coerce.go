// Package core holds the record model shared by the codec, store, view and
// analytics layers: collection kinds and schemas, best-effort numeric
// coercion, and bill date/status helpers.
//
// Coercion contract: amount-like text becomes float64 when it parses as a
// number, otherwise the trimmed original text is kept unchanged. Reading an
// amount back treats anything non-numeric as zero. Neither direction ever
// returns an error.
package core

import (
	"strconv"
	"strings"
)

// CoerceNumber converts text to float64 when it parses as a number,
// otherwise returns the trimmed text as-is.
func CoerceNumber(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	return t
}

// NumberOr0 reads a field value as a number, treating non-numeric and
// missing values as 0.
func NumberOr0(v any) float64 {
	f, _ := AsNumber(v)
	return f
}

// AsNumber reports whether a field value is numeric, parsing string values
// on the fly so un-coerced columns still compare numerically.
func AsNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
