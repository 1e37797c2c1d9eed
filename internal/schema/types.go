// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package schema

import "fmt"

// Type is the semantic column type used by the registry. Every layer
// boundary is typed in these terms; the coercion below maps them onto the
// DuckDB column type system when tables are materialized.
type Type int

const (
	TypeInvalid Type = iota
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeBool
	TypeString
	TypeDate
	TypeTimestamp
)

// String returns the semantic type name.
func (t Type) String() string {
	switch t {
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeDate:
		return "date"
	case TypeTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// DuckDB returns the DuckDB column type equivalent to the registry type.
// This is the single coercion point between the semantic type system and
// the storage engine's columnar types.
func (t Type) DuckDB() string {
	switch t {
	case TypeInt16:
		return "SMALLINT"
	case TypeInt32:
		return "INTEGER"
	case TypeInt64:
		return "BIGINT"
	case TypeFloat32:
		return "FLOAT"
	case TypeFloat64:
		return "DOUBLE"
	case TypeBool:
		return "BOOLEAN"
	case TypeString:
		return "VARCHAR"
	case TypeDate:
		return "DATE"
	case TypeTimestamp:
		return "TIMESTAMP"
	default:
		return "VARCHAR"
	}
}

// IsNumeric reports whether the type is an integer or floating point type.
func (t Type) IsNumeric() bool {
	switch t {
	case TypeInt16, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64:
		return true
	default:
		return false
	}
}
