// Package csvcodec converts between CSV text and record collections.
//
// The format is deliberately plain: comma-delimited, positional, no quoting
// or escaping. Free text containing a comma will therefore shift columns on
// the next read; this matches the files the tracker has always produced and
// stays compatible with them. Newlines in field values are flattened to
// spaces on write for the same reason.
package csvcodec

import (
	"strings"

	"budgetbook/internal/core"
)

const bom = "\ufeff"

// Parse converts CSV text into ordered records. The first non-empty line is
// the header row; each following line is zipped against it by column index.
// Amount-like columns are numerically coerced. Malformed rows degrade
// (missing cells read empty, extra cells are dropped); Parse never fails.
func Parse(text string) []core.Record {
	text = strings.TrimPrefix(text, bom)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil
	}

	headers := strings.Split(lines[0], ",")
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, bom))
	}

	records := make([]core.Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := strings.Split(line, ",")
		rec := make(core.Record, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			var cell string
			if i < len(cells) {
				cell = strings.TrimSpace(cells[i])
			}
			if core.AmountColumn(h) {
				rec[h] = core.CoerceNumber(cell)
			} else {
				rec[h] = cell
			}
		}
		records = append(records, rec)
	}
	return records
}

// Serialize writes records back to CSV text in the schema's field order.
// Missing fields serialize as empty cells; embedded newlines become spaces.
func Serialize(records []core.Record, schema core.Schema) string {
	var b strings.Builder
	b.WriteString(strings.Join(schema.Fields, ","))
	b.WriteByte('\n')

	cells := make([]string, len(schema.Fields))
	for _, rec := range records {
		for i, field := range schema.Fields {
			cells[i] = flatten(rec.Text(field))
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func flatten(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
