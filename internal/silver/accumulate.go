// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package silver

import (
	"strconv"
	"strings"

	"github.com/pitchlake/pitchlake/internal/schema"
	"github.com/pitchlake/pitchlake/internal/table"
)

// accumulator collects keyed rows for a dimension or fact table. The same
// entity reappears across match documents; the last observed version wins
// while the first-seen order is kept, so repeated runs over the same corpus
// produce identical tables.
type accumulator struct {
	cols  []string
	order []string
	rows  map[string][]any
}

func newAccumulator(tableName string) *accumulator {
	return &accumulator{
		cols: schema.MustGet(tableName).Columns(),
		rows: make(map[string][]any),
	}
}

func (a *accumulator) put(key string, row ...any) {
	if len(row) != len(a.cols) {
		panic("accumulator: row arity mismatch")
	}
	if _, seen := a.rows[key]; !seen {
		a.order = append(a.order, key)
	}
	a.rows[key] = row
}

func (a *accumulator) build() *table.Table {
	t := table.New(a.cols...)
	for _, key := range a.order {
		t.Append(a.rows[key]...)
	}
	return t
}

// dimKey joins id parts into a deduplication key. The second result is
// false when any part is nil: a row without its full key is not a valid
// dimension member.
func dimKey(parts ...*int64) (string, bool) {
	b := make([]string, len(parts))
	for i, p := range parts {
		if p == nil {
			return "", false
		}
		b[i] = strconv.FormatInt(*p, 10)
	}
	return strings.Join(b, ":"), true
}
