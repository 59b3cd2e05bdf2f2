package check

import (
	"fmt"
)

// StructuralError reports a document shape violation: a missing required
// field, a wrong type or cardinality, a malformed URI, or a malformed
// dateTime string. It is terminal for the validation call that raised it.
type StructuralError struct {
	Path string
	Msg  string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%q %s", e.Path, e.Msg)
}

// NewStructuralErrorf builds a StructuralError for the given field path.
func NewStructuralErrorf(path, format string, args ...interface{}) *StructuralError {
	return &StructuralError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// TemporalError reports a well-formed date that falls outside its required
// validity window. It is kept distinct from StructuralError for diagnostics
// but is handled identically.
type TemporalError struct {
	Path string
	Msg  string
}

func (e *TemporalError) Error() string {
	return fmt.Sprintf("%q %s", e.Path, e.Msg)
}
