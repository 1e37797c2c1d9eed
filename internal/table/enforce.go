// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pitchlake/pitchlake/internal/schema"
)

// ShapeReport records how an input table differed from its registered
// schema during enforcement. A non-empty report is a diagnostic, not an
// error: the enforced output always matches the registry exactly. In strict
// mode the caller turns any non-clean report into a failure.
type ShapeReport struct {
	// Table is the registered schema name the input was enforced against.
	Table string

	// Missing lists registry columns absent from the input; they were
	// materialized as all-null columns of the registered type.
	Missing []string

	// Dropped lists input columns not present in the registry.
	Dropped []string

	// Lossy counts, per column, casts that lost precision (integer
	// narrowing out of range, float-to-integer truncation, float32
	// overflow).
	Lossy map[string]int

	// Failed counts, per column, values that could not be converted to the
	// registered type at all and became null.
	Failed map[string]int
}

// Clean reports whether enforcement changed or degraded anything.
func (r *ShapeReport) Clean() bool {
	return len(r.Missing) == 0 && len(r.Dropped) == 0 && len(r.Lossy) == 0 && len(r.Failed) == 0
}

// String summarizes the report for logs and error messages.
func (r *ShapeReport) String() string {
	var parts []string
	if len(r.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing=%v", r.Missing))
	}
	if len(r.Dropped) > 0 {
		parts = append(parts, fmt.Sprintf("dropped=%v", r.Dropped))
	}
	if len(r.Lossy) > 0 {
		parts = append(parts, fmt.Sprintf("lossy=%v", r.Lossy))
	}
	if len(r.Failed) > 0 {
		parts = append(parts, fmt.Sprintf("failed=%v", r.Failed))
	}
	if len(parts) == 0 {
		return "clean"
	}
	return strings.Join(parts, " ")
}

func (r *ShapeReport) addLossy(col string) {
	if r.Lossy == nil {
		r.Lossy = make(map[string]int)
	}
	r.Lossy[col]++
}

func (r *ShapeReport) addFailed(col string) {
	if r.Failed == nil {
		r.Failed = make(map[string]int)
	}
	r.Failed[col]++
}

// Enforce projects, casts, and fills t so the result matches the registered
// schema exactly: output column set and order equal the registry's, shared
// columns are cast to the registered type, missing columns become all-null
// columns, and extra input columns are dropped. Differences are recorded in
// the returned ShapeReport.
//
// An empty input table is returned unchanged with a clean report; only an
// unknown schema name is an error.
func Enforce(t *Table, name string) (*Table, *ShapeReport, error) {
	sch, err := schema.Get(name)
	if err != nil {
		return nil, nil, err
	}

	report := &ShapeReport{Table: name}

	if t == nil || t.Len() == 0 {
		// Empty-input short-circuit: nothing to project or cast.
		if t == nil {
			t = New()
		}
		return t, report, nil
	}

	srcIdx := make([]int, len(sch.Fields))
	for i, f := range sch.Fields {
		srcIdx[i] = t.ColumnIndex(f.Name)
		if srcIdx[i] < 0 {
			report.Missing = append(report.Missing, f.Name)
		}
	}
	for _, col := range t.Columns() {
		if sch.Index(col) < 0 {
			report.Dropped = append(report.Dropped, col)
		}
	}

	out := New(sch.Columns()...)
	for i := 0; i < t.Len(); i++ {
		src := t.Row(i)
		row := make([]any, len(sch.Fields))
		for j, f := range sch.Fields {
			if srcIdx[j] < 0 {
				continue // stays null
			}
			v, outcome := castValue(src[srcIdx[j]], f.Type)
			switch outcome {
			case castLossy:
				report.addLossy(f.Name)
			case castFailed:
				report.addFailed(f.Name)
			}
			row[j] = v
		}
		out.rows = append(out.rows, row)
	}

	return out, report, nil
}

// EnforceStrict is Enforce with any shape difference promoted to an error.
func EnforceStrict(t *Table, name string) (*Table, *ShapeReport, error) {
	out, report, err := Enforce(t, name)
	if err != nil {
		return nil, nil, err
	}
	if !report.Clean() {
		return nil, report, fmt.Errorf("strict enforcement of %q failed: %s", name, report)
	}
	return out, report, nil
}

type castOutcome int

const (
	castOK castOutcome = iota
	castLossy
	castFailed
)

// castValue converts v to the registered type using the narrowest lossless
// conversion available. Nulls pass through; empty strings become null for
// non-string targets (CSV null spelling). Precision loss is reported, never
// silent: integer narrowing saturates and is marked lossy, float-to-integer
// truncation of a fractional value is lossy, float32 overflow saturates and
// is lossy. Values that cannot be converted at all become null and are
// marked failed.
func castValue(v any, to schema.Type) (any, castOutcome) {
	if v == nil {
		return nil, castOK
	}
	if s, isStr := v.(string); isStr && s == "" && to != schema.TypeString {
		return nil, castOK
	}

	switch to {
	case schema.TypeString:
		if p := AsString(v); p != nil {
			return *p, castOK
		}
		return nil, castFailed

	case schema.TypeBool:
		if p := AsBool(v); p != nil {
			return *p, castOK
		}
		return nil, castFailed

	case schema.TypeInt16:
		return castInt(v, math.MinInt16, math.MaxInt16, func(n int64) any { return int16(n) })
	case schema.TypeInt32:
		return castInt(v, math.MinInt32, math.MaxInt32, func(n int64) any { return int32(n) })
	case schema.TypeInt64:
		return castInt(v, math.MinInt64, math.MaxInt64, func(n int64) any { return n })

	case schema.TypeFloat32:
		p := AsFloat64(v)
		if p == nil {
			return nil, castFailed
		}
		f := *p
		if f > math.MaxFloat32 {
			return float32(math.MaxFloat32), castLossy
		}
		if f < -math.MaxFloat32 {
			return float32(-math.MaxFloat32), castLossy
		}
		return float32(f), castOK

	case schema.TypeFloat64:
		if p := AsFloat64(v); p != nil {
			return *p, castOK
		}
		return nil, castFailed

	case schema.TypeDate:
		p := AsTime(v)
		if p == nil {
			return nil, castFailed
		}
		y, m, d := p.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), castOK

	case schema.TypeTimestamp:
		if p := AsTime(v); p != nil {
			return p.UTC(), castOK
		}
		return nil, castFailed

	default:
		return nil, castFailed
	}
}

// castInt converts v to an integer within [min, max], saturating out-of-range
// values and marking them lossy.
func castInt(v any, min, max int64, narrow func(int64) any) (any, castOutcome) {
	outcome := castOK

	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case float32:
		return castInt(float64(x), min, max, narrow)
	case float64:
		if x != math.Trunc(x) {
			outcome = castLossy
		}
		n = int64(x)
	case string:
		s := strings.TrimSpace(x)
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				return nil, castFailed
			}
			if f != math.Trunc(f) {
				outcome = castLossy
			}
			parsed = int64(f)
		}
		n = parsed
	case bool:
		if x {
			n = 1
		}
	default:
		return nil, castFailed
	}

	if n < min {
		return narrow(min), castLossy
	}
	if n > max {
		return narrow(max), castLossy
	}
	return narrow(n), outcome
}
