// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"math"
	"net/http"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/nitesh01487/natours/internal/apperr"
)

const (
	// DefaultPage is the page used when none or a malformed one is given.
	DefaultPage = 1
	// DefaultLimit is the page size used when none or a malformed one is given.
	DefaultLimit = 100
)

// Operator is a comparison operator of a filter.
type Operator string

const (
	OpEq  Operator = "eq"
	OpGte Operator = "gte"
	OpGt  Operator = "gt"
	OpLte Operator = "lte"
	OpLt  Operator = "lt"
)

// Valid reports whether o is one of the supported operators.
func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpGte, OpGt, OpLte, OpLt:
		return true
	}
	return false
}

// Filter is a single predicate on a column. An eq filter with several values
// becomes an IN predicate.
type Filter struct {
	Column string
	Op     Operator
	Values []any
}

// Eq is a shorthand for an equality filter on column.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Values: []any{value}}
}

func (f Filter) sqlizer() sq.Sqlizer {
	var v any = f.Values[0]
	if f.Op == OpEq && len(f.Values) > 1 {
		v = f.Values
	}

	switch f.Op {
	case OpGte:
		return sq.GtOrEq{f.Column: v}
	case OpGt:
		return sq.Gt{f.Column: v}
	case OpLte:
		return sq.LtOrEq{f.Column: v}
	case OpLt:
		return sq.Lt{f.Column: v}
	default:
		return sq.Eq{f.Column: v}
	}
}

// Sort is one ORDER BY term.
type Sort struct {
	Column string
	Desc   bool
}

func (s Sort) String() string {
	if s.Desc {
		return s.Column + " DESC"
	}
	return s.Column + " ASC"
}

// Query is an immutable, validated list request. The zero value selects the
// first page of DefaultLimit rows with no filters.
type Query struct {
	filters    []Filter
	sort       []Sort
	fields     []string
	exclude    bool
	page       int
	limit      int
	strict     bool
	tieBreaker string
}

// Filters returns a copy of the query's predicates.
func (q Query) Filters() []Filter {
	return slices.Clone(q.filters)
}

// Sort returns a copy of the query's ORDER BY terms, tie breaker excluded.
func (q Query) Sort() []Sort {
	return slices.Clone(q.sort)
}

// Fields returns the requested projection. Nil means every field.
func (q Query) Fields() []string {
	return slices.Clone(q.fields)
}

// ExcludesFields reports whether Fields lists the fields to drop ("-name")
// rather than the fields to keep.
func (q Query) ExcludesFields() bool {
	return q.exclude
}

// Page returns the 1-based page number.
func (q Query) Page() int {
	if q.page < 1 {
		return DefaultPage
	}
	return q.page
}

// Limit returns the page size.
func (q Query) Limit() int {
	if q.limit < 1 {
		return DefaultLimit
	}
	return q.limit
}

// Offset returns (page-1)*limit. A product that does not fit an int
// saturates at math.MaxInt, which still selects an empty page.
func (q Query) Offset() int {
	page, limit := q.Page(), q.Limit()
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Strict reports whether an out-of-range page is an error.
func (q Query) Strict() bool {
	return q.strict
}

// WithFilter returns a copy of q with f added.
func (q Query) WithFilter(f Filter) Query {
	q.filters = append(slices.Clone(q.filters), f)
	return q
}

// WithStrictPaging returns a copy of q that treats a page past the last
// result as not found.
func (q Query) WithStrictPaging(strict bool) Query {
	q.strict = strict
	return q
}

// ApplyFilters adds the WHERE predicates of q to b.
func (q Query) ApplyFilters(b sq.SelectBuilder) sq.SelectBuilder {
	for _, f := range q.filters {
		b = b.Where(f.sqlizer())
	}
	return b
}

// Apply adds predicates, ordering and pagination of q to b.
func (q Query) Apply(b sq.SelectBuilder) sq.SelectBuilder {
	b = q.ApplyFilters(b)

	orderBy := make([]string, 0, len(q.sort)+1)
	hasTieBreaker := false
	for _, s := range q.sort {
		orderBy = append(orderBy, s.String())
		if s.Column == q.tieBreaker {
			hasTieBreaker = true
		}
	}
	if q.tieBreaker != "" && !hasTieBreaker {
		orderBy = append(orderBy, Sort{Column: q.tieBreaker}.String())
	}
	if len(orderBy) > 0 {
		b = b.OrderBy(orderBy...)
	}

	return b.Limit(uint64(q.Limit())).Offset(uint64(q.Offset()))
}

// CheckPage returns a not found error when strict paging is on and the page
// starts past total matching rows. The first page is always valid.
func (q Query) CheckPage(total int) error {
	if !q.strict || q.Page() == 1 {
		return nil
	}
	if q.Offset() >= total {
		return apperr.Operational(http.StatusNotFound, "This page does not exist", nil)
	}
	return nil
}
