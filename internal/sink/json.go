package sink

import (
	"bufio"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonSink writes each record as a JSON array of strings.
type jsonSink struct {
	w                *bufio.Writer
	newlineDelimited bool
	n                int
	closed           bool
}

func newJSONSink(w io.Writer, newlineDelimited bool) *jsonSink {
	return &jsonSink{w: bufio.NewWriter(w), newlineDelimited: newlineDelimited}
}

func (s *jsonSink) Write(record []string) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if !s.newlineDelimited {
		sep := ",\n"
		if s.n == 0 {
			sep = "[\n"
		}
		if _, err := s.w.WriteString(sep); err != nil {
			return err
		}
	}
	s.n++
	if _, err := s.w.Write(data); err != nil {
		return err
	}
	if s.newlineDelimited {
		_, err = s.w.WriteString("\n")
	}
	return err
}

func (s *jsonSink) Flush() error {
	if !s.newlineDelimited && !s.closed {
		s.closed = true
		if s.n == 0 {
			s.w.WriteString("[]\n")
		} else {
			s.w.WriteString("\n]\n")
		}
	}
	return s.w.Flush()
}
