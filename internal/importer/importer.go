// Package importer turns customer and product spreadsheets into records.
// Files come from Greek office software as often as not, so headers are
// accepted in both English and Greek and the raw bytes may be Windows-1253.
package importer

import (
	"errors"
	"strings"
)

var ErrEmptyFile = errors.New("file contains no data rows")

// Result summarizes one import run. Rows that failed validation or
// collided with existing records are reported in Errors; the rest were
// written.
type Result struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// columnIndex maps known header labels to their cell position.
// Labels are matched case-insensitively after trimming.
type columnIndex map[string]int

func indexColumns(header []string, labels map[string]string) columnIndex {
	idx := columnIndex{}
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		if field, ok := labels[key]; ok {
			idx[field] = i
		}
	}

	return idx
}

func (c columnIndex) cell(row []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}
