package sink

import (
	"encoding/csv"
	"fmt"
	"io"
)

// csvSink re-encodes records as RFC 4180 CSV.
type csvSink struct {
	w *csv.Writer
}

func newCSVSink(w io.Writer) *csvSink {
	return &csvSink{w: csv.NewWriter(w)}
}

func (s *csvSink) Write(record []string) error {
	if err := s.w.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (s *csvSink) Flush() error {
	s.w.Flush()
	return s.w.Error()
}
