// Package tabular reads CSV and XLSX uploads into raw string rows.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kpapadakis/emporos/internal/encoding"
)

var ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")

// Rows parses the uploaded file into rows of cells. The first row is
// expected to be the header. CSV content is decoded to UTF-8 first;
// XLSX cells are already Unicode.
func Rows(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return csvRows(r)
	case ".xlsx":
		return xlsxRows(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func csvRows(r io.Reader) ([][]string, error) {
	decoded, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding csv: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true    // Allow sloppy quotes if necessary

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	return rows, nil
}

func xlsxRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}
