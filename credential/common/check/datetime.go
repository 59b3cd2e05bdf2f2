package check

import (
	"regexp"
	"time"
)

// dateTimePattern is a strict profile of the XML-Schema dateTime form:
// uppercase T and Z, and explicit offsets only as +/-HH:MM.
var dateTimePattern = regexp.MustCompile(
	`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])` +
		`T([01]\d|2[0-3]):[0-5]\d:[0-5]\d(\.\d+)?` +
		`(Z|[+-]([01]\d|2[0-3]):[0-5]\d)$`)

// AssertDateTime asserts that value is a string matching the strict dateTime
// profile.
func AssertDateTime(path string, value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", NewStructuralErrorf(path, "must be a dateTime string, got %T", value)
	}
	if !dateTimePattern.MatchString(s) {
		return "", NewStructuralErrorf(path, "must be a valid dateTime: %q", s)
	}
	return s, nil
}

// Bounds describes the validity window applied to a parsed date. A zero Min
// or Max leaves that side unbounded. MinMsg and MaxMsg name the respective
// violations so that "has expired" and "is not yet valid" surface distinctly.
type Bounds struct {
	Min    time.Time
	MinMsg string
	Max    time.Time
	MaxMsg string
}

// AssertValidDate asserts that value matches the strict dateTime profile and,
// where bounds are supplied, that the parsed instant falls inside them.
// Format violations are structural; bound violations are temporal.
func AssertValidDate(path string, value interface{}, b Bounds) error {
	s, err := AssertDateTime(path, value)
	if err != nil {
		return err
	}

	t, parseErr := time.Parse(time.RFC3339, s)
	if parseErr != nil {
		return NewStructuralErrorf(path, "must be a valid dateTime: %q", s)
	}

	if !b.Min.IsZero() && t.Before(b.Min) {
		return &TemporalError{Path: path, Msg: b.MinMsg}
	}
	if !b.Max.IsZero() && t.After(b.Max) {
		return &TemporalError{Path: path, Msg: b.MaxMsg}
	}
	return nil
}
