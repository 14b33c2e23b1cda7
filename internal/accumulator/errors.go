// internal/accumulator/errors.go
package accumulator

import (
	"errors"
	"fmt"
)

// Field identifies which kind of line failed to parse.
type Field string

const (
	FieldCount Field = "count" // First line: number of values to follow.
	FieldValue Field = "value" // One of the N value lines.
)

var (
	// ErrInvalidInput matches every *ParseError via errors.Is.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnexpectedEOF = errors.New("unexpected end of input")
	ErrNegativeCount = errors.New("count must not be negative")
	ErrNotInteger    = errors.New("not a base-10 integer")
)

// ParseError reports a line that could not be read as the expected integer,
// including a line that is missing because the input ended early.
type ParseError struct {
	Line  int    // 1-based line number within the input.
	Field Field  // What the line was expected to hold.
	Text  string // Trimmed line content; empty when the input ended.
	Err   error  // Underlying cause.
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrUnexpectedEOF) {
		return fmt.Sprintf("%v: line %d (%s): %v", ErrInvalidInput, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%v: line %d (%s): %q: %v", ErrInvalidInput, e.Line, e.Field, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets callers test any parse failure with errors.Is(err, ErrInvalidInput).
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}
