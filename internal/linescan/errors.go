package linescan

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is matched by every data-shape error the scanner returns.
// Use errors.Is to test for it.
var ErrMalformedInput = errors.New("malformed input")

// Reasons for malformed input. Both wrap ErrMalformedInput.
var (
	// ErrUnterminatedQuote indicates the stream ended inside a quoted field.
	ErrUnterminatedQuote = fmt.Errorf("%w: unterminated quoted field", ErrMalformedInput)

	// ErrUnexpectedAfterQuote indicates a character other than a space, comma
	// or line terminator followed the closing quote of a quoted field.
	ErrUnexpectedAfterQuote = fmt.Errorf("%w: unexpected character after closed quoted field", ErrMalformedInput)
)

// ParseError represents a malformed record with position information.
// Lines and columns are 1-indexed and count characters, not bytes.
type ParseError struct {
	// StartLine is the line where the failing record started.
	StartLine int
	// Line is the line of the character that triggered the error.
	Line int
	// Column is the column of the character that triggered the error.
	Column int
	// Err is the underlying reason.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.StartLine == e.Line {
		return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error on line %d (started line %d), column %d: %v",
		e.Line, e.StartLine, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
