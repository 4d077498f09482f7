package csv

import (
	"io"
	"strings"

	"github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-csvscan/internal/charsource"
	"github.com/shapestone/shape-csvscan/internal/linescan"
)

// Scanner reads CSV records one at a time from a character stream.
// Only the current record and one character of lookahead are held in memory,
// so arbitrarily large inputs can be processed.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	scanner := csv.NewScanner(file).SetHasHeaders(true)
//	for scanner.Scan() {
//	    record := scanner.Record()
//	    name, _ := record.GetByName("name")
//	    fmt.Println(name)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
//
// A Scanner is not safe for concurrent use.
type Scanner struct {
	lines       *linescan.Scanner
	hasHeaders  bool
	reuseRecord bool
	headers     []string
	current     []string
	count       int
	err         error
	done        bool
}

// NewScanner creates a new Scanner that reads CSV from the given io.Reader.
// The reader must yield UTF-8; use NewScannerWithEncoding for other encodings.
// The Scanner does not close the reader.
//
// By default, the scanner assumes no headers. Use SetHasHeaders(true) to treat
// the first row as headers.
//
// Example:
//
//	scanner := csv.NewScanner(reader)
func NewScanner(reader io.Reader) *Scanner {
	return newScanner(charsource.FromReader(reader))
}

// NewScannerWithEncoding creates a Scanner over a reader in the encoding named
// by label ("windows-1252", "utf-16le", ...). The encoding is never guessed;
// an empty label means UTF-8.
func NewScannerWithEncoding(reader io.Reader, label string) (*Scanner, error) {
	decoded, err := charsource.Decode(reader, label)
	if err != nil {
		return nil, err
	}
	return NewScanner(decoded), nil
}

// NewScannerFromStream creates a Scanner over a shape-core tokenizer stream.
func NewScannerFromStream(stream tokenizer.Stream) *Scanner {
	return newScanner(charsource.FromStream(stream))
}

// NewScannerFromString creates a Scanner over an in-memory string.
func NewScannerFromString(input string) *Scanner {
	return newScanner(strings.NewReader(input))
}

func newScanner(src linescan.RuneSource) *Scanner {
	return &Scanner{lines: linescan.New(src)}
}

// SetHasHeaders sets whether the first row should be treated as headers.
// If true, the first row will be used as column names for GetByName() access.
// Returns the Scanner for method chaining.
//
// Example:
//
//	scanner := csv.NewScanner(reader).SetHasHeaders(true)
func (s *Scanner) SetHasHeaders(hasHeaders bool) *Scanner {
	s.hasHeaders = hasHeaders
	return s
}

// SetReuseRecord sets whether Scan stores each record in the fields slice
// of the previous one. When true, a Record obtained before the latest Scan
// may show the newer values; copy it with Fields to keep it. Field strings
// themselves are never modified.
// Returns the Scanner for method chaining.
//
// Example:
//
//	scanner := csv.NewScanner(reader).SetReuseRecord(true)
func (s *Scanner) SetReuseRecord(reuse bool) *Scanner {
	s.reuseRecord = reuse
	return s
}

// NextRecord reads the next record.
//
// It returns io.EOF once the input is exhausted. An empty line is a record
// with one empty field, not the end of the input. Malformed input returns a
// *ParseError matching ErrMalformedInput; the Scanner does not resynchronize
// after it. Read errors from the underlying reader are returned unchanged.
//
// NextRecord ignores SetHasHeaders; headers are only split off by Scan.
func (s *Scanner) NextRecord() ([]string, error) {
	record, err := s.lines.NextRecord()
	if err != nil {
		return nil, err
	}
	s.count++
	return record, nil
}

// Scan advances the scanner to the next record.
// It returns false when there are no more records or an error occurs.
// After Scan returns false, the Err method will return any error that occurred.
//
// Example:
//
//	for scanner.Scan() {
//	    record := scanner.Record()
//	    // process record
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	if s.hasHeaders && s.headers == nil {
		headers, ok := s.advance()
		if !ok {
			return false
		}
		s.headers = headers
	}

	record, ok := s.advance()
	if !ok {
		s.current = nil
		return false
	}
	s.current = record
	return true
}

func (s *Scanner) advance() ([]string, bool) {
	var dst []string
	if s.reuseRecord {
		dst = s.current[:0]
	}
	record, err := s.lines.ReadRecord(dst)
	if err != nil {
		s.done = true
		if err != io.EOF {
			s.err = err
		}
		return nil, false
	}
	s.count++
	return record, true
}

// Record returns the current record.
// This should only be called after Scan() returns true.
//
// When SetReuseRecord is enabled, the returned Record shares its fields
// with the records read by later calls to Scan.
func (s *Scanner) Record() Record {
	if s.current == nil {
		return Record{fields: []string{}, headers: s.headers}
	}
	return Record{
		fields:  s.current,
		headers: s.headers,
	}
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil if no error occurred or at EOF.
func (s *Scanner) Err() error {
	return s.err
}

// Headers returns the column headers if SetHasHeaders(true) was called.
// Returns an empty slice if no headers were set.
// This is available after the first call to Scan().
func (s *Scanner) Headers() []string {
	if s.headers == nil {
		return []string{}
	}
	return s.headers
}

// Count returns the number of records read so far, headers included.
func (s *Scanner) Count() int {
	return s.count
}

// Position locates a character in the input: Offset counts characters before
// it, Line and Column are 1-indexed.
type Position = linescan.Position

// RecordStart reports where the most recently read record started.
func (s *Scanner) RecordStart() Position {
	return s.lines.RecordStart()
}
