// Package csv provides error types for CSV scanning.
package csv

import "github.com/shapestone/shape-csvscan/internal/linescan"

// ParseError represents a malformed record with position information.
// It provides detailed context about where the error occurred in the CSV data.
//
// Fields:
//   - StartLine: line where the failing record started (1-indexed)
//   - Line: line of the offending character (1-indexed)
//   - Column: column of the offending character (1-indexed, in characters)
//   - Err: the underlying reason, one of the errors below
type ParseError = linescan.ParseError

// Parsing errors. ErrUnterminatedQuote and ErrUnexpectedAfterQuote both
// match ErrMalformedInput with errors.Is.
var (
	// ErrMalformedInput matches every malformed-input error.
	ErrMalformedInput = linescan.ErrMalformedInput

	// ErrUnterminatedQuote indicates the input ended inside a quoted field.
	ErrUnterminatedQuote = linescan.ErrUnterminatedQuote

	// ErrUnexpectedAfterQuote indicates a character other than a space, comma
	// or line break directly after a closing quote, as in "abc"x.
	ErrUnexpectedAfterQuote = linescan.ErrUnexpectedAfterQuote
)
