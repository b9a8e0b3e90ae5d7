// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

// Kind is the value type of a schema field. It decides how raw query-string
// values are converted before they are bound to SQL.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInt
	KindBool
	KindTime
)

// Field describes one client-visible field of an entity.
type Field struct {
	// Column is the SQL expression the field maps to. An empty column makes
	// the field projectable only: it can be listed in "fields" but cannot be
	// filtered or sorted on.
	Column string

	// Kind is the value type used for filter conversion.
	Kind Kind
}

// Schema is the allow-list of fields a list endpoint accepts.
type Schema struct {
	// Fields maps JSON field names to their definitions.
	Fields map[string]Field

	// DefaultSort is used when the request has no "sort" parameter.
	DefaultSort []Sort

	// TieBreaker is the column appended to every ORDER BY so pagination is
	// stable. Usually the primary key.
	TieBreaker string
}

// field returns the definition of name and whether it exists.
func (s Schema) field(name string) (Field, bool) {
	f, ok := s.Fields[name]
	return f, ok
}
