package check

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertRecord(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		allowEmpty  bool
		expectError bool
	}{
		{name: "Valid object", input: map[string]interface{}{"id": "x"}},
		{name: "Empty object rejected", input: map[string]interface{}{}, expectError: true},
		{name: "Empty object allowed", input: map[string]interface{}{}, allowEmpty: true},
		{name: "Nil rejected", input: nil, expectError: true},
		{name: "Array rejected", input: []interface{}{"a"}, expectError: true},
		{name: "String rejected", input: "x", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := AssertRecord("doc.field", tt.input, tt.allowEmpty)
			if tt.expectError {
				var structural *StructuralError
				require.Error(t, err)
				assert.True(t, errors.As(err, &structural))
				assert.Equal(t, "doc.field", structural.Path)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rec)
		})
	}
}

func TestAssertAllowMultiple(t *testing.T) {
	requireString := func(path string, item interface{}) error {
		if _, ok := item.(string); !ok {
			return NewStructuralErrorf(path, "must be a string")
		}
		return nil
	}

	t.Run("Single value", func(t *testing.T) {
		assert.NoError(t, AssertAllowMultiple("doc.field", "a", requireString))
	})

	t.Run("Array applies element-wise", func(t *testing.T) {
		err := AssertAllowMultiple("doc.field", []interface{}{"a", 1}, requireString)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "doc.field[1]")
	})

	t.Run("Empty array rejected", func(t *testing.T) {
		err := AssertAllowMultiple("doc.field", []interface{}{}, requireString)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty array")
	})
}

func TestAssertURI(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		expectError bool
	}{
		{name: "HTTPS URI", input: "https://example.edu/issuers/14"},
		{name: "DID URI", input: "did:example:issuer"},
		{name: "URN", input: "urn:uuid:3978344f-8596-4c3a-a978-8fcaba3903c5"},
		{name: "Relative path rejected", input: "issuers/14", expectError: true},
		{name: "Empty string rejected", input: "", expectError: true},
		{name: "Non-string rejected", input: 42, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertURI("doc.id", tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAssertType(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		expectError bool
	}{
		{name: "Single matching string", input: "VerifiableCredential"},
		{name: "Array containing sentinel", input: []interface{}{"VerifiableCredential", "AlumniCredential"}},
		{name: "Array missing sentinel", input: []interface{}{"AlumniCredential"}, expectError: true},
		{name: "Empty array", input: []interface{}{}, expectError: true},
		{name: "Missing", input: nil, expectError: true},
		{name: "Non-string member", input: []interface{}{1}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertType("doc.type", tt.input, "VerifiableCredential")
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAssertDateTime(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		expectError bool
	}{
		{name: "UTC with Z", input: "2024-03-10T04:24:12Z"},
		{name: "Fractional seconds", input: "2024-03-10T04:24:12.123Z"},
		{name: "Explicit offset", input: "2024-03-10T04:24:12+07:00"},
		{name: "Lowercase z rejected", input: "2024-03-10T04:24:12z", expectError: true},
		{name: "Lowercase t rejected", input: "2024-03-10t04:24:12Z", expectError: true},
		{name: "Offset without colon rejected", input: "2024-03-10T04:24:12+0700", expectError: true},
		{name: "Missing timezone rejected", input: "2024-03-10T04:24:12", expectError: true},
		{name: "Date only rejected", input: "2024-03-10", expectError: true},
		{name: "Non-string rejected", input: 1710044652, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssertDateTime("doc.date", tt.input)
			if tt.expectError {
				var structural *StructuralError
				require.Error(t, err)
				assert.True(t, errors.As(err, &structural))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAssertValidDate(t *testing.T) {
	now, err := time.Parse(time.RFC3339, "2024-06-01T12:00:00Z")
	require.NoError(t, err)

	t.Run("No bounds checks format only", func(t *testing.T) {
		assert.NoError(t, AssertValidDate("doc.date", "1990-01-01T00:00:00Z", Bounds{}))
	})

	t.Run("After max is temporal", func(t *testing.T) {
		err := AssertValidDate("doc.date", "2030-01-01T00:00:00Z",
			Bounds{Max: now, MaxMsg: "credential is not yet valid"})
		var temporal *TemporalError
		require.Error(t, err)
		require.True(t, errors.As(err, &temporal))
		assert.Equal(t, "credential is not yet valid", temporal.Msg)
	})

	t.Run("Before min is temporal", func(t *testing.T) {
		err := AssertValidDate("doc.date", "2020-01-01T00:00:00Z",
			Bounds{Min: now, MinMsg: "credential has expired"})
		var temporal *TemporalError
		require.Error(t, err)
		require.True(t, errors.As(err, &temporal))
		assert.Equal(t, "credential has expired", temporal.Msg)
	})

	t.Run("Inside bounds", func(t *testing.T) {
		assert.NoError(t, AssertValidDate("doc.date", "2024-06-01T11:59:59Z",
			Bounds{Max: now, MaxMsg: "not yet valid"}))
	})

	t.Run("Bad format is structural even with bounds", func(t *testing.T) {
		err := AssertValidDate("doc.date", "June 1st 2024", Bounds{Max: now, MaxMsg: "x"})
		var structural *StructuralError
		require.Error(t, err)
		assert.True(t, errors.As(err, &structural))
	})
}
