// Package charsource provides the character sources a line scanner reads from.
//
// A character source is any io.RuneReader. This package adapts the other
// shapes input arrives in: shape-core tokenizer streams, plain io.Readers,
// and byte streams in a named legacy encoding.
package charsource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned by Decode for a label it does not recognize.
var ErrUnknownEncoding = errors.New("unknown encoding")

// FromStream adapts a shape-core tokenizer stream.
//
// Example:
//
//	src := charsource.FromStream(tokenizer.NewStream("a,b\n"))
func FromStream(stream tokenizer.Stream) io.RuneReader {
	return &streamReader{stream: stream}
}

type streamReader struct {
	stream tokenizer.Stream
}

// ReadRune implements io.RuneReader. The end of the stream is io.EOF.
func (r *streamReader) ReadRune() (rune, int, error) {
	ch, ok := r.stream.NextChar()
	if !ok {
		return 0, 0, io.EOF
	}
	size := utf8.RuneLen(ch)
	if size < 0 {
		size = 1
	}
	return ch, size, nil
}

// FromReader returns r itself when it already reads runes, and a buffered
// reader over it otherwise.
func FromReader(r io.Reader) io.RuneReader {
	if rr, ok := r.(io.RuneReader); ok {
		return rr
	}
	return bufio.NewReader(r)
}

// Decode wraps r so that it yields UTF-8 decoded from the encoding named by
// label. Labels follow the WHATWG Encoding Standard ("utf-8", "windows-1252",
// "iso-8859-1", "utf-16le", "shift_jis", ...). An empty label returns r
// unchanged. The encoding is never guessed.
func Decode(r io.Reader, label string) (io.Reader, error) {
	if label == "" {
		return r, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
