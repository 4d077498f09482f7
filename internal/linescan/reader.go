package linescan

import "io"

// RuneSource supplies decoded characters one at a time, in order.
// It reports the end of the stream with io.EOF. *bufio.Reader and
// *strings.Reader satisfy it.
type RuneSource interface {
	ReadRune() (r rune, size int, err error)
}

// Position locates a character in the stream.
type Position struct {
	// Offset counts characters consumed before this one.
	Offset int
	// Line is 1-indexed. "\r\n" and "\n\r" pairs count as one line break.
	Line int
	// Column is 1-indexed.
	Column int
}

// cursor tracks the position of the last consumed character.
type cursor struct {
	offset int
	line   int
	column int
	nl     rune // newline that opened the current line, zero once a pair is complete
}

func (c *cursor) advance(ch rune) {
	c.offset++
	switch ch {
	case '\n', '\r':
		if c.nl != 0 && c.nl != ch {
			c.nl = 0
			return
		}
		c.line++
		c.column = 0
		c.nl = ch
	default:
		c.column++
		c.nl = 0
	}
}

// reader is the pushback-aware view of a RuneSource. It holds at most one
// character that was read from the source but not yet consumed.
type reader struct {
	src      RuneSource
	ahead    rune
	hasAhead bool
	eof      bool
	cur      cursor
	prev     cursor
}

func newReader(src RuneSource) reader {
	return reader{src: src, cur: cursor{line: 1}}
}

// next returns the pending pushback character if there is one, otherwise the
// next character from the source. ok is false at end of stream. Once the
// source has reported io.EOF it is not read again.
func (r *reader) next() (ch rune, ok bool, err error) {
	if r.hasAhead {
		ch = r.ahead
		r.hasAhead = false
	} else {
		if r.eof {
			return 0, false, nil
		}
		ch, _, err = r.src.ReadRune()
		if err == io.EOF {
			r.eof = true
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
	}
	r.prev = r.cur
	r.cur.advance(ch)
	return ch, true, nil
}

// unread returns ch, the character just returned by next, to the pushback slot.
func (r *reader) unread(ch rune) {
	r.ahead = ch
	r.hasAhead = true
	r.cur = r.prev
}

// upcoming reports the position the next consumed character will have,
// unless it is a line break.
func (r *reader) upcoming() Position {
	return Position{Offset: r.cur.offset, Line: r.cur.line, Column: r.cur.column + 1}
}
