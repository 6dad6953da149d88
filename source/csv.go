package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golf-atlas/models"
)

// ErrNotText is returned when the header row holds NUL bytes, as it does for
// a spreadsheet archive or a UTF-16 export served in place of a CSV.
var ErrNotText = errors.New("document is not a text CSV")

// Table is a tokenized CSV document.
type Table struct {
	Headers []string
	Rows    []models.RawRow
}

// ParseCSV tokenizes a CSV document with a header row. Ragged rows and stray
// quotes are tolerated; blank lines are skipped. When a header repeats, the
// later column wins. A document with no header row yields an empty Table.
// A header row with NUL bytes fails with ErrNotText.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for _, h := range headers {
		if strings.ContainsRune(h, 0) {
			return nil, fmt.Errorf("read csv header: %w", ErrNotText)
		}
	}

	t := &Table{Headers: headers}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line+1, err)
		}
		line++

		row := make(models.RawRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ParseCSVBytes is ParseCSV over an in-memory document.
func ParseCSVBytes(body []byte) (*Table, error) {
	return ParseCSV(bytes.NewReader(body))
}
