package jsonmap

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/maps"
)

// JSONMap represents a raw JSON document as a map.
type JSONMap map[string]interface{}

// FromJSON decodes raw JSON bytes into a JSONMap.
func FromJSON(data []byte) (JSONMap, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("JSON string is empty")
	}

	var m JSONMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return m, nil
}

// ToJSON serializes the JSONMap to JSON.
func (m JSONMap) ToJSON() ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("JSONMap is nil")
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSONMap: %w", err)
	}
	return data, nil
}

// Clone returns a shallow copy of the JSONMap.
func (m JSONMap) Clone() JSONMap {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// WithoutProof returns a shallow copy with the proof field removed.
// Signing inputs and verification inputs are computed over this form.
func (m JSONMap) WithoutProof() JSONMap {
	mCopy := make(JSONMap, len(m))
	for k, v := range m {
		if k != "proof" {
			mCopy[k] = v
		}
	}
	return mCopy
}

// ID returns the document's "id" field if it is a string, or "" otherwise.
func (m JSONMap) ID() string {
	id, _ := m["id"].(string)
	return id
}

// IssuerID returns the identifier of the document's issuer. The issuer field
// may be a plain URI string or an object carrying an "id" field.
func (m JSONMap) IssuerID() string {
	switch issuer := m["issuer"].(type) {
	case string:
		return issuer
	case map[string]interface{}:
		id, _ := issuer["id"].(string)
		return id
	default:
		return ""
	}
}

// AsArray normalizes a single-or-array JSON value into a slice. A nil value
// yields nil.
func AsArray(value interface{}) []interface{} {
	if value == nil {
		return nil
	}
	if arr, ok := value.([]interface{}); ok {
		return arr
	}
	return []interface{}{value}
}
