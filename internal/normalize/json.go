// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ShapeError reports that an upstream JSON document is missing an expected
// field. It is distinct from "no content": the upstream's shape changed.
type ShapeError struct {
	Field string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("upstream shape: missing field %q", e.Field)
}

// DecodeObject parses body as a single JSON object.
func DecodeObject(body []byte) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("parsing JSON body: %w", err)
	}
	return obj, nil
}

// Field walks path through nested objects and returns the terminal value.
// Any missing or non-object intermediate yields a *ShapeError naming the
// dotted path up to the failure.
func Field(obj map[string]any, path ...string) (any, error) {
	cur := any(obj)
	for i, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, &ShapeError{Field: strings.Join(path[:i+1], ".")}
		}
		cur, ok = m[key]
		if !ok {
			return nil, &ShapeError{Field: strings.Join(path[:i+1], ".")}
		}
	}
	return cur, nil
}

// StringField is Field for string-valued leaves.
func StringField(obj map[string]any, path ...string) (string, error) {
	v, err := Field(obj, path...)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &ShapeError{Field: strings.Join(path, ".")}
	}
	return s, nil
}

// NumberField is Field for numeric leaves. encoding/json decodes every JSON
// number into float64, so that is what callers get.
func NumberField(obj map[string]any, path ...string) (float64, error) {
	v, err := Field(obj, path...)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &ShapeError{Field: strings.Join(path, ".")}
	}
	return f, nil
}

// SliceField is Field for array-valued leaves.
func SliceField(obj map[string]any, path ...string) ([]any, error) {
	v, err := Field(obj, path...)
	if err != nil {
		return nil, err
	}
	s, ok := v.([]any)
	if !ok {
		return nil, &ShapeError{Field: strings.Join(path, ".")}
	}
	return s, nil
}
