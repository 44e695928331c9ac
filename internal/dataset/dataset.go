// Copyright (c) 2026 Andrés Rodríguez Cantú <acantu@tec.mx>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrSourceUnavailable indicates a configured dataset's backing file is
	// missing or unreadable.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrParse indicates the backing file exists but could not be decoded
	// into a tabular form.
	ErrParse = errors.New("parse error")
)

// Table is the in-memory tabular form of a loaded dataset. The first row of
// the backing file becomes Columns; everything after is Rows. Cells are kept
// as strings, the way they arrive from CSV and from excelize's GetRows.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, or -1. Matching is
// case-insensitive and ignores surrounding whitespace.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// FindColumn returns the index of the first column whose name contains all
// of the provided tokens (case-insensitive), or -1. Spreadsheet headers in
// the wild are messy ("MuslimPopulation_PctOfPopWhoAreMuslim_pct_2024update")
// so exact matching is rarely an option.
func (t *Table) FindColumn(tokens ...string) int {
	for i, c := range t.Columns {
		name := strings.ToLower(c)
		found := true
		for _, tok := range tokens {
			if !strings.Contains(name, strings.ToLower(tok)) {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is ragged and the
// column falls off its end.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// JSON renders the table as a JSON array of row objects keyed by column
// name, which is the shape the output pipeline slices and dices.
func (t *Table) JSON() (bytes.Buffer, error) {
	rows := make([]map[string]string, 0, len(t.Rows))
	for i := range t.Rows {
		row := make(map[string]string, len(t.Columns))
		for j, col := range t.Columns {
			row[col] = t.Cell(i, j)
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	b, err := json.Marshal(rows)
	if err != nil {
		return buf, err
	}
	buf.Write(b)
	return buf, nil
}
