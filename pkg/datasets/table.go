package datasets

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// Table is a parsed export restricted to a definition's column subset. The
// header already carries the localized output names; column positions match
// the definition's column order.
type Table struct {
	Header []string
	Rows   [][]string
}

// ParseExport reads a semicolon-delimited export (already transcoded to
// UTF-8) and keeps only the definition's columns, renamed. A missing
// expected column fails the whole parse.
func ParseExport(def Definition, raw []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = ';'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed %s export: %w", def.Name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty %s export", def.Name)
	}

	header := records[0]
	indexes := make([]int, len(def.Columns))
	for i, col := range def.Columns {
		idx := -1
		for j, name := range header {
			if strings.TrimSpace(name) == col.Source {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%s export is missing expected column %q", def.Name, col.Source)
		}
		indexes[i] = idx
	}

	outHeader := make([]string, len(def.Columns))
	for i, col := range def.Columns {
		outHeader[i] = col.Output
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]string, len(indexes))
		for i, idx := range indexes {
			row[i] = record[idx]
		}
		rows = append(rows, row)
	}

	return &Table{Header: outHeader, Rows: rows}, nil
}

// AppendColumn adds a derived column. values must have one entry per row.
func (t *Table) AppendColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// Render serializes the table as comma-delimited UTF-8 CSV.
func (t *Table) Render() (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(t.Header); err != nil {
		return "", err
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
