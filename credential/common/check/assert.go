package check

import (
	"fmt"
	"net/url"

	"golang.org/x/exp/slices"
)

// Mode selects whether temporal validity windows are enforced. Issuance
// checks date formats only; verification additionally enforces bounds.
type Mode int

const (
	ModeIssue Mode = iota
	ModeVerify
)

// AssertRecord asserts that v is a JSON object, rejecting arrays, null and
// scalars. When allowEmpty is false an empty object is also rejected.
// The object is returned for further field assertions.
func AssertRecord(path string, v interface{}, allowEmpty bool) (map[string]interface{}, error) {
	if v == nil {
		return nil, NewStructuralErrorf(path, "must be an object")
	}
	rec, ok := v.(map[string]interface{})
	if !ok {
		return nil, NewStructuralErrorf(path, "must be an object, got %T", v)
	}
	if !allowEmpty && len(rec) == 0 {
		return nil, NewStructuralErrorf(path, "must be a non-empty object")
	}
	return rec, nil
}

// AssertAllowMultiple applies fn to v, or to every element of v when v is an
// array. An empty array fails: single-or-array fields always carry at least
// one value. The first element failure is returned with its indexed path.
func AssertAllowMultiple(path string, v interface{}, fn func(path string, item interface{}) error) error {
	arr, ok := v.([]interface{})
	if !ok {
		return fn(path, v)
	}
	if len(arr) == 0 {
		return NewStructuralErrorf(path, "must not be an empty array")
	}
	for i, item := range arr {
		if err := fn(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
			return err
		}
	}
	return nil
}

// AssertURI asserts that v is a string parsing as an absolute URI, i.e. one
// with a non-empty scheme.
func AssertURI(path string, v interface{}) error {
	s, ok := v.(string)
	if !ok {
		return NewStructuralErrorf(path, "must be a URI string, got %T", v)
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return NewStructuralErrorf(path, "must be an absolute URI: %q", s)
	}
	return nil
}

// AssertType asserts that v holds one or more type strings and that the
// required sentinel type is among them.
func AssertType(path string, v interface{}, required string) error {
	types, err := typeStrings(path, v)
	if err != nil {
		return err
	}
	if !slices.Contains(types, required) {
		return NewStructuralErrorf(path, "must include the type %q", required)
	}
	return nil
}

// AssertTypePresent asserts that v holds at least one type string, without
// requiring any particular value.
func AssertTypePresent(path string, v interface{}) error {
	_, err := typeStrings(path, v)
	return err
}

func typeStrings(path string, v interface{}) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []interface{}:
		if len(t) == 0 {
			return nil, NewStructuralErrorf(path, "must have at least one type")
		}
		types := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, NewStructuralErrorf(path, "must contain only type strings, got %T", item)
			}
			types = append(types, s)
		}
		return types, nil
	case nil:
		return nil, NewStructuralErrorf(path, "is required")
	default:
		return nil, NewStructuralErrorf(path, "must be a string or an array of strings, got %T", v)
	}
}
