// Package dataset holds the in-memory tabular form shared by every stage of
// the pipeline: an ordered header row plus string cells, exactly as the
// spreadsheet exports deliver them.
//
// Tables are treated as immutable snapshots. Anything that changes headers or
// cells returns a copy so concurrent requests reading the same session never
// observe partial writes.
package dataset

import (
	"fmt"
	"strings"
)

// Table is a fully materialized sheet.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// New builds a table, padding or truncating rows to the header width.
func New(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, fit(r, len(columns)))
	}
	return t
}

func fit(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	c := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		c.Rows[i] = append([]string(nil), r...)
	}
	return c
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool { return t.Len() == 0 }

// Index returns the position of the first column with exactly this name, or -1.
func (t *Table) Index(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// IndexFold is Index with case- and surrounding-whitespace-insensitive matching.
func (t *Table) IndexFold(name string) int {
	if t == nil {
		return -1
	}
	want := Key(name)
	for i, c := range t.Columns {
		if Key(c) == want {
			return i
		}
	}
	return -1
}

// Has reports whether a column with exactly this name exists.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Cell returns the trimmed cell at (row, col) and whether it is non-null.
// Out-of-range positions are null.
func (t *Table) Cell(row, col int) (string, bool) {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return "", false
	}
	v := strings.TrimSpace(t.Rows[row][col])
	if IsNull(v) {
		return "", false
	}
	return v, true
}

// Value looks a cell up by column name.
func (t *Table) Value(row int, column string) (string, bool) {
	return t.Cell(row, t.Index(column))
}

// Rename returns a copy whose headers are replaced through fn.
func (t *Table) Rename(fn func(col string) string) *Table {
	c := t.Clone()
	for i, col := range c.Columns {
		c.Columns[i] = fn(col)
	}
	return c
}

// Check verifies every row has exactly one cell per column.
func (t *Table) Check() error {
	if t == nil {
		return fmt.Errorf("dataset: nil table")
	}
	for i, r := range t.Rows {
		if len(r) != len(t.Columns) {
			return fmt.Errorf("dataset: row %d has %d cells, header has %d", i, len(r), len(t.Columns))
		}
	}
	return nil
}

// Key is the join key form used everywhere names are compared: lower-cased
// and trimmed.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsNull reports whether a trimmed cell should be treated as missing.
// Spreadsheet tooling renders missing floats as "nan" in some exports.
func IsNull(v string) bool {
	switch strings.ToLower(v) {
	case "", "nan", "null", "none", "n/a":
		return true
	}
	return false
}
