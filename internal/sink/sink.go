// Package sink writes scanned records out in one of several formats.
package sink

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the names New accepts.
var Formats = []string{"count", "text", "json", "csv"}

// Sink receives records one at a time. Flush must be called once after the
// last record; a sink may buffer until then.
type Sink interface {
	Write(record []string) error
	Flush() error
}

type config struct {
	limit            int
	color            bool
	newlineDelimited bool
}

// Option configures New.
type Option func(*config)

// WithLimit stops writing after n records. Later records are accepted and
// dropped. A negative n means no limit.
func WithLimit(n int) Option {
	return func(c *config) {
		c.limit = n
	}
}

// WithColor enables colored output for the text format.
func WithColor(enabled bool) Option {
	return func(c *config) {
		c.color = enabled
	}
}

// WithNewlineDelimited selects one JSON array per line (the default) or a
// single enclosing JSON array for the json format.
func WithNewlineDelimited(enabled bool) Option {
	return func(c *config) {
		c.newlineDelimited = enabled
	}
}

// New returns a sink writing format to w.
func New(format string, w io.Writer, opts ...Option) (Sink, error) {
	cfg := &config{limit: -1, newlineDelimited: true}
	for _, opt := range opts {
		opt(cfg)
	}

	var s Sink
	switch strings.ToLower(format) {
	case "count":
		return discard{}, nil
	case "text":
		s = newTextSink(w, cfg.color)
	case "json":
		s = newJSONSink(w, cfg.newlineDelimited)
	case "csv":
		s = newCSVSink(w)
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
	if cfg.limit >= 0 {
		s = &limited{Sink: s, remaining: cfg.limit}
	}
	return s, nil
}

type discard struct{}

func (discard) Write([]string) error { return nil }
func (discard) Flush() error         { return nil }

type limited struct {
	Sink
	remaining int
}

func (l *limited) Write(record []string) error {
	if l.remaining <= 0 {
		return nil
	}
	l.remaining--
	return l.Sink.Write(record)
}
