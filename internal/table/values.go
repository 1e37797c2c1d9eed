// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package table

import (
	"strconv"
	"strings"
	"time"
)

// Typed value readers. These normalize the union of value representations a
// table can carry (native Go types from builders, strings from landed CSV,
// driver types from a storage scan) into pointer types where nil means null.
// Unparseable values read as null; the enforcer is where parse failures are
// counted and reported.

// AsInt64 reads v as *int64.
func AsInt64(v any) *int64 {
	switch x := v.(type) {
	case nil:
		return nil
	case int64:
		return &x
	case int:
		n := int64(x)
		return &n
	case int16:
		n := int64(x)
		return &n
	case int32:
		n := int64(x)
		return &n
	case float32:
		n := int64(x)
		return &n
	case float64:
		n := int64(x)
		return &n
	case string:
		if x == "" {
			return nil
		}
		if n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64); err == nil {
			return &n
		}
		// CSV exports sometimes carry integers as "12.0".
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			n := int64(f)
			return &n
		}
		return nil
	default:
		return nil
	}
}

// AsInt32 reads v as *int32.
func AsInt32(v any) *int32 {
	n := AsInt64(v)
	if n == nil {
		return nil
	}
	x := int32(*n)
	return &x
}

// AsFloat64 reads v as *float64.
func AsFloat64(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return &x
	case float32:
		f := float64(x)
		return &f
	case int:
		f := float64(x)
		return &f
	case int16:
		f := float64(x)
		return &f
	case int32:
		f := float64(x)
		return &f
	case int64:
		f := float64(x)
		return &f
	case string:
		if x == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return &f
		}
		return nil
	default:
		return nil
	}
}

// AsString reads v as *string.
func AsString(v any) *string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return &x
	case bool:
		s := strconv.FormatBool(x)
		return &s
	case int:
		s := strconv.Itoa(x)
		return &s
	case int16:
		s := strconv.FormatInt(int64(x), 10)
		return &s
	case int32:
		s := strconv.FormatInt(int64(x), 10)
		return &s
	case int64:
		s := strconv.FormatInt(x, 10)
		return &s
	case float32:
		s := strconv.FormatFloat(float64(x), 'g', -1, 32)
		return &s
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		return &s
	case time.Time:
		s := x.Format(time.RFC3339)
		return &s
	default:
		return nil
	}
}

// AsBool reads v as *bool. Strings accept true/false, t/f, 1/0, yes/no in
// any case, matching the spellings seen in upstream CSV exports.
func AsBool(v any) *bool {
	switch x := v.(type) {
	case nil:
		return nil
	case bool:
		return &x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "t", "1", "yes":
			b := true
			return &b
		case "false", "f", "0", "no":
			b := false
			return &b
		default:
			return nil
		}
	case int:
		b := x != 0
		return &b
	case int64:
		b := x != 0
		return &b
	default:
		return nil
	}
}

// timestampLayouts are accepted in order when parsing timestamp strings.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// AsTime reads v as *time.Time.
func AsTime(v any) *time.Time {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		return &x
	case string:
		if x == "" {
			return nil
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, strings.TrimSpace(x)); err == nil {
				return &ts
			}
		}
		return nil
	default:
		return nil
	}
}
