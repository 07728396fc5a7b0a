package core

import (
	"fmt"
	"strconv"
	"time"
)

// Record is one row of a collection. Values are either float64 (amount-like
// columns whose source text parsed as a number) or string (everything else,
// kept verbatim). Missing fields read as empty string.
type Record map[string]any

// ID returns the record identifier stringified, or "" when absent.
func (r Record) ID() string {
	return r.Text("id")
}

// Text returns a field stringified for display and comparison.
// Numbers render without a forced decimal tail (12.5, not 12.50).
func (r Record) Text(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}

// Clone returns a deep copy. Values are scalars, so copying the map suffices.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneAll deep-copies a collection snapshot.
func CloneAll(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// NewID derives a fresh record id from the creation time.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// ImportID derives a synthetic id for row rowIndex of a bulk CSV import.
// Rows imported in the same millisecond stay distinct and ordered.
func ImportID(now time.Time, rowIndex int) string {
	return fmt.Sprintf("%d_%d", now.UnixMilli(), rowIndex)
}
