// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

// Package schema is the single source of truth for every table shape in the
// warehouse. Each bronze, silver, and gold table is registered at startup as
// an ordered field list; the enforcer and the storage layer both derive
// column order, column types, and DDL from the registry and nowhere else.
package schema

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSchema is returned by Get for names that were never registered.
// An unknown schema name is a programming error and aborts the stage; it is
// never downgraded to a diagnostic.
var ErrUnknownSchema = errors.New("unknown schema")

// Field is one column of a registered table: a name and a semantic type.
type Field struct {
	Name string
	Type Type
}

// Schema is an ordered field list for one table. Order is significant:
// enforced tables and DDL both follow registration order exactly.
type Schema struct {
	Name   string
	Fields []Field
}

// Index returns the position of the named field, or -1 if absent.
func (s Schema) Index(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Columns returns the field names in registration order.
func (s Schema) Columns() []string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = f.Name
	}
	return cols
}

// Field returns the named field and whether it exists.
func (s Schema) Field(name string) (Field, bool) {
	if i := s.Index(name); i >= 0 {
		return s.Fields[i], true
	}
	return Field{}, false
}

var registry = map[string]Schema{}

// register adds a schema to the registry. Duplicate registration panics:
// the registry is assembled once from package-level definitions and a
// duplicate name means two definitions claim the same table.
func register(name string, fields []Field) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("schema %q registered twice", name))
	}
	registry[name] = Schema{Name: name, Fields: fields}
}

// Get returns the registered schema for name, or ErrUnknownSchema.
func Get(name string) (Schema, error) {
	s, ok := registry[name]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	return s, nil
}

// MustGet returns the registered schema for name and panics if it does not
// exist. Use only for names that are compile-time constants.
func MustGet(name string) Schema {
	s, err := Get(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns all registered schema names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
