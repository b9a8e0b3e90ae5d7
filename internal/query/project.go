// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"encoding/json"
	"fmt"
)

// idField is always kept by a keep list projection.
const idField = "id"

// Project limits the JSON representation of v (a struct or a slice of
// structs) to the requested fields. Without a projection v is returned as is.
func (q Query) Project(v any) (any, error) {
	if len(q.fields) == 0 {
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error marshaling value for projection: %w", err)
	}

	var generic any
	if err = json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("error unmarshaling value for projection: %w", err)
	}

	listed := make(map[string]struct{}, len(q.fields)+1)
	for _, f := range q.fields {
		listed[f] = struct{}{}
	}
	if !q.exclude {
		listed[idField] = struct{}{}
	}

	switch typed := generic.(type) {
	case []any:
		for i, item := range typed {
			typed[i] = projectObject(item, listed, q.exclude)
		}
		return typed, nil
	default:
		return projectObject(typed, listed, q.exclude), nil
	}
}

// projectObject drops the listed keys when exclude is set, otherwise every
// key that is not listed.
func projectObject(v any, listed map[string]struct{}, exclude bool) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for k := range obj {
		if _, ok := listed[k]; ok == exclude {
			delete(obj, k)
		}
	}
	return obj
}
