// Package tabular normalizes CSV payloads downloaded from the chart
// site before they are returned to tool callers.
//
// The only transformation is dropping the redundant Entity column when
// every row carries a precise Code value. Anything that fails to parse
// is passed through untouched: this is a read-only convenience layer
// and callers must not crash on unexpected upstream formats.
package tabular

import (
	"encoding/csv"
	"strings"
)

// Column names the normalizer cares about.
const (
	entityColumn = "Entity"
	codeColumn   = "Code"
)

// Stats describes the normalized payload.
type Stats struct {
	// Rows is the number of data rows (the header excluded).
	Rows int

	// Columns is the number of columns after normalization.
	Columns int

	// ParseError holds the parse failure when the input was passed
	// through unprocessed. Empty on success.
	ParseError string
}

// Normalize parses raw as CSV and drops the Entity column when a Code
// column exists and no row has an empty, null or whitespace-only code.
// The completeness check runs over every row of the original content,
// never a sample: a single missing code anywhere keeps Entity.
//
// On parse failure the input is returned verbatim with the error noted
// in Stats.ParseError.
func Normalize(raw string) (string, Stats) {
	r := csv.NewReader(strings.NewReader(raw))
	records, err := r.ReadAll()
	if err != nil {
		return raw, Stats{ParseError: err.Error()}
	}
	if len(records) == 0 {
		return raw, Stats{}
	}

	header := records[0]
	stats := Stats{Rows: len(records) - 1, Columns: len(header)}

	entityIdx := indexOf(header, entityColumn)
	codeIdx := indexOf(header, codeColumn)
	if entityIdx < 0 || codeIdx < 0 || !codeComplete(records[1:], codeIdx) {
		return raw, stats
	}

	out := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, 0, len(rec)-1)
		for i, field := range rec {
			if i == entityIdx {
				continue
			}
			row = append(row, field)
		}
		out = append(out, row)
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.WriteAll(out); err != nil {
		// Serialization of already-parsed records should not fail;
		// fall back to the original content if it somehow does.
		return raw, Stats{Rows: stats.Rows, Columns: stats.Columns, ParseError: err.Error()}
	}

	stats.Columns = len(header) - 1
	return b.String(), stats
}

// codeComplete reports whether every row has a non-blank code value.
func codeComplete(rows [][]string, codeIdx int) bool {
	for _, rec := range rows {
		if codeIdx >= len(rec) {
			return false
		}
		v := strings.TrimSpace(rec[codeIdx])
		if v == "" || strings.EqualFold(v, "null") {
			return false
		}
	}
	return true
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
