// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nitesh01487/natours/internal/apperr"
)

// Reserved parameter names. Every other key is a filter.
const (
	ParamPage   = "page"
	ParamSort   = "sort"
	ParamLimit  = "limit"
	ParamFields = "fields"
)

func isReserved(key string) bool {
	switch key {
	case ParamPage, ParamSort, ParamLimit, ParamFields:
		return true
	}
	return false
}

// Parse builds a [Query] from request parameters, validating every filter,
// sort and projection field against schema.
//
// Filters are written as field=value (equality, repeatable for IN) or
// field[op]=value with op one of gte, gt, lte, lt, eq. Malformed page or
// limit values fall back to the defaults.
func Parse(schema Schema, params url.Values) (Query, error) {
	q := Query{
		page:       parsePositive(params.Get(ParamPage), DefaultPage),
		limit:      parsePositive(params.Get(ParamLimit), DefaultLimit),
		tieBreaker: schema.TieBreaker,
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if isReserved(key) {
			continue
		}
		filter, err := parseFilter(schema, key, params[key])
		if err != nil {
			return Query{}, err
		}
		q.filters = append(q.filters, filter...)
	}

	sortParam := joinParam(params[ParamSort])
	if sortParam == "" {
		q.sort = slices.Clone(schema.DefaultSort)
	} else {
		sorts, err := parseSort(schema, sortParam)
		if err != nil {
			return Query{}, err
		}
		q.sort = sorts
	}

	if fieldsParam := joinParam(params[ParamFields]); fieldsParam != "" {
		fields, exclude, err := parseFields(schema, fieldsParam)
		if err != nil {
			return Query{}, err
		}
		q.fields = fields
		q.exclude = exclude
	}

	return q, nil
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func joinParam(values []string) string {
	return strings.Trim(strings.Join(values, ","), ", ")
}

// splitKey splits "price[gte]" into ("price", "gte").
func splitKey(key string) (string, Operator, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, OpEq, nil
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", apperr.Validation(key, "malformed filter key")
	}
	return key[:open], Operator(key[open+1 : len(key)-1]), nil
}

func parseFilter(schema Schema, key string, raw []string) ([]Filter, error) {
	name, op, err := splitKey(key)
	if err != nil {
		return nil, err
	}

	field, ok := schema.field(name)
	if !ok || field.Column == "" {
		return nil, apperr.Validation(name, "filtering on this field is not allowed")
	}
	if !op.Valid() {
		return nil, apperr.Validation(name, fmt.Sprintf("unsupported operator %q", op))
	}

	values := make([]any, 0, len(raw))
	for _, r := range raw {
		v, err := convert(field.Kind, r)
		if err != nil {
			return nil, apperr.Validation(name, err.Error())
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, nil
	}

	if op == OpEq {
		return []Filter{{Column: field.Column, Op: op, Values: values}}, nil
	}

	// Range operators are ANDed when repeated.
	filters := make([]Filter, 0, len(values))
	for _, v := range values {
		filters = append(filters, Filter{Column: field.Column, Op: op, Values: []any{v}})
	}
	return filters, nil
}

func convert(kind Kind, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case KindNumber:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return v, nil
	case KindInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return v, nil
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return v, nil
	case KindTime:
		for _, layout := range []string{time.RFC3339, time.DateTime, time.DateOnly} {
			if v, err := time.Parse(layout, raw); err == nil {
				return v, nil
			}
		}
		return nil, fmt.Errorf("%q is not a date", raw)
	default:
		return raw, nil
	}
}

func parseSort(schema Schema, raw string) ([]Sort, error) {
	parts := strings.Split(raw, ",")
	sorts := make([]Sort, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")

		field, ok := schema.field(name)
		if !ok || field.Column == "" {
			return nil, apperr.Validation("sort", fmt.Sprintf("sorting on %q is not allowed", name))
		}
		sorts = append(sorts, Sort{Column: field.Column, Desc: desc})
	}
	return sorts, nil
}

// parseFields accepts either a keep list ("name,price") or a drop list
// ("-description,-images"). Mixing both is rejected.
func parseFields(schema Schema, raw string) ([]string, bool, error) {
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	included, excluded := false, false
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "-") {
			excluded = true
			name = strings.TrimPrefix(name, "-")
		} else {
			included = true
		}
		if included && excluded {
			return nil, false, apperr.Validation("fields", "cannot mix included and excluded fields")
		}
		if _, ok := schema.field(name); !ok {
			return nil, false, apperr.Validation("fields", fmt.Sprintf("unknown field %q", name))
		}
		if !slices.Contains(fields, name) {
			fields = append(fields, name)
		}
	}
	return fields, excluded, nil
}
