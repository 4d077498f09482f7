// Package linescan implements a streaming CSV record scanner.
//
// The scanner reads one character at a time from a RuneSource and keeps a
// single character of lookahead. Each call to NextRecord returns one record:
//
//   - fields are separated by ','
//   - records end at '\n', '\r', "\r\n" or "\n\r"
//   - a field starting with '"' is quoted; inside it ',', '"' pairs and line
//     breaks are data, and "" stands for one quote
//   - spaces before a field and after a closing quote are skipped
//   - a quote inside an unquoted field is data
package linescan

import (
	"io"
	"unicode/utf8"
)

// state is the parse state within the current record.
type state uint8

const (
	stateLineStart    state = iota // nothing examined yet
	stateFieldStart                // after a ',', before the field commits to a mode
	stateQuotedData                // inside a quoted field
	stateUnquotedData              // inside an unquoted field
	stateFieldEnd                  // a quoted field has been closed
)

// Scanner turns a character stream into records.
//
// A Scanner is not safe for concurrent use. The source is borrowed: the
// Scanner never closes it.
type Scanner struct {
	rd reader

	// buf holds every field of the current record back to back; lengths holds
	// the byte length of each completed field. Both are reset on entry to
	// NextRecord and reused across calls.
	buf     []byte
	lengths []int

	start Position
}

// New creates a Scanner reading from src.
func New(src RuneSource) *Scanner {
	return &Scanner{
		rd:      newReader(src),
		buf:     make([]byte, 0, 256),
		lengths: make([]int, 0, 16),
	}
}

// NextRecord reads the next record.
//
// It returns io.EOF when the stream ends before any character of a record has
// been read. An empty line is not the end of the stream: it yields a record
// with one empty field. Malformed input yields a *ParseError wrapping
// ErrMalformedInput. Errors from the source other than io.EOF are returned
// as is.
//
// The returned slice is owned by the caller.
func (s *Scanner) NextRecord() ([]string, error) {
	return s.ReadRecord(nil)
}

// ReadRecord is NextRecord storing the fields in dst when its capacity
// allows. The result aliases dst, so a caller passing the previous record
// back in overwrites it.
func (s *Scanner) ReadRecord(dst []string) ([]string, error) {
	s.buf = s.buf[:0]
	s.lengths = s.lengths[:0]
	s.start = s.rd.upcoming()

	st := stateLineStart
	fieldLen := 0

	for {
		ch, ok, err := s.rd.next()
		if err != nil {
			return nil, err
		}

		if !ok {
			switch st {
			case stateQuotedData:
				return nil, s.fail(ErrUnterminatedQuote)
			case stateLineStart:
				return nil, io.EOF
			}
			s.lengths = append(s.lengths, fieldLen)
			return s.pack(dst), nil
		}

		switch ch {
		case '\n', '\r':
			if st != stateQuotedData {
				if err := s.skipPairedBreak(ch); err != nil {
					return nil, err
				}
				s.lengths = append(s.lengths, fieldLen)
				return s.pack(dst), nil
			}

		case ',':
			if st != stateQuotedData {
				s.lengths = append(s.lengths, fieldLen)
				fieldLen = 0
				st = stateFieldStart
				continue
			}

		case '"':
			switch st {
			case stateQuotedData:
				next, ok, err := s.rd.next()
				if err != nil {
					return nil, err
				}
				if !ok || next != '"' {
					if ok {
						s.rd.unread(next)
					}
					st = stateFieldEnd
					continue
				}
				// "" inside quotes: keep one quote
			case stateLineStart, stateFieldStart:
				st = stateQuotedData
				continue
			}

		case ' ':
			if st == stateLineStart || st == stateFieldStart || st == stateFieldEnd {
				continue
			}
		}

		if st == stateFieldEnd {
			return nil, s.fail(ErrUnexpectedAfterQuote)
		}

		n := len(s.buf)
		s.buf = utf8.AppendRune(s.buf, ch)
		fieldLen += len(s.buf) - n

		if st == stateLineStart || st == stateFieldStart {
			st = stateUnquotedData
		}
	}
}

// RecordStart reports where the record returned by the last NextRecord call
// started.
func (s *Scanner) RecordStart() Position {
	return s.start
}

// skipPairedBreak consumes the character after the line break ch when the two
// form a "\r\n" or "\n\r" pair, and leaves it for the next read otherwise.
func (s *Scanner) skipPairedBreak(ch rune) error {
	next, ok, err := s.rd.next()
	if err != nil || !ok {
		return err
	}
	if (ch == '\r' && next == '\n') || (ch == '\n' && next == '\r') {
		return nil
	}
	s.rd.unread(next)
	return nil
}

// pack slices the accumulation buffer into fields, reusing dst if it fits.
func (s *Scanner) pack(dst []string) []string {
	record := dst[:0]
	if cap(record) < len(s.lengths) {
		record = make([]string, len(s.lengths))
	}
	record = record[:len(s.lengths)]
	data := string(s.buf)
	p := 0
	for i, n := range s.lengths {
		record[i] = data[p : p+n]
		p += n
	}
	return record
}

func (s *Scanner) fail(reason error) error {
	return &ParseError{
		StartLine: s.start.Line,
		Line:      s.rd.cur.line,
		Column:    s.rd.cur.column,
		Err:       reason,
	}
}
