// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

// Package table implements the in-memory row set passed between pipeline
// stages, and the schema enforcer that makes any such row set match a
// registered schema exactly before it crosses a layer boundary.
package table

import "fmt"

// Table is an ordered-column, row-oriented table. Values are nil (null) or
// one of: string, bool, int, int16, int32, int64, float32, float64,
// time.Time. Column order is preserved from construction.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]any
}

// New creates an empty table with the given column order.
func New(cols ...string) *Table {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	return &Table{cols: cols, index: index}
}

// Columns returns the column names in order. The slice must not be mutated.
func (t *Table) Columns() []string {
	return t.cols
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Append adds one row. The row length must match the column count; a
// mismatch is a programming error and panics.
func (t *Table) Append(row ...any) {
	if len(row) != len(t.cols) {
		panic(fmt.Sprintf("table: row has %d values, table has %d columns", len(row), len(t.cols)))
	}
	t.rows = append(t.rows, row)
}

// Row returns the i-th row. The slice must not be mutated.
func (t *Table) Row(i int) []any {
	return t.rows[i]
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the value at row i, column name. The second result is false
// when the column does not exist.
func (t *Table) Value(i int, name string) (any, bool) {
	idx, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.rows[i][idx], true
}
