package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common frame errors
var (
	ErrColumnNotFound = errors.New("column not found")
)

// Frame holds one parsed tabular resource: an ordered header and the data
// rows beneath it. Frames are transient; after the preview is logged they
// are discarded, nothing persists them.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of data rows (the header is not a row).
func (f *Frame) NumRows() int {
	return len(f.Rows)
}

// NumCols returns the number of columns in the header.
func (f *Frame) NumCols() int {
	return len(f.Columns)
}

// Cell pairs a column name with one row's value for that column.
type Cell struct {
	Column string
	Value  string
}

// String renders the cell as column=value.
func (c Cell) String() string {
	return c.Column + "=" + c.Value
}

// Head returns up to n column/value pairs from the first data row, in column
// order. It returns nil when the frame has no rows. A row shorter than the
// header yields only the cells it has.
func (f *Frame) Head(n int) []Cell {
	if len(f.Rows) == 0 || n <= 0 {
		return nil
	}

	row := f.Rows[0]
	if n > len(f.Columns) {
		n = len(f.Columns)
	}
	if n > len(row) {
		n = len(row)
	}

	cells := make([]Cell, 0, n)
	for i := 0; i < n; i++ {
		cells = append(cells, Cell{Column: f.Columns[i], Value: row[i]})
	}
	return cells
}

// Preview renders Head(n) as a single log-friendly string, for example
// "Month=JAN, 1958=340, 1959=360". An empty frame previews as "(no rows)".
func (f *Frame) Preview(n int) string {
	cells := f.Head(n)
	if len(cells) == 0 {
		return "(no rows)"
	}

	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// Column returns every row's value for the named column, in row order.
// Rows too short to reach the column contribute an empty string.
func (f *Frame) Column(name string) ([]string, error) {
	idx := -1
	for i, col := range f.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}

	values := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values, nil
}

// HasColumn reports whether the frame's header contains the named column.
func (f *Frame) HasColumn(name string) bool {
	for _, col := range f.Columns {
		if col == name {
			return true
		}
	}
	return false
}
