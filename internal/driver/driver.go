// Package driver pulls records from a scanner into a sink and reports
// throughput while it goes.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shapestone/shape-csvscan/internal/sink"
)

// DefaultProgressEvery is the number of records between progress reports.
const DefaultProgressEvery = 10000

// RecordSource yields records until it returns io.EOF.
type RecordSource interface {
	NextRecord() ([]string, error)
}

// ProgressFunc is called with the number of records read so far and the
// time since Run started.
type ProgressFunc func(records int, elapsed time.Duration)

// Stats summarizes a run.
type Stats struct {
	Records int
	Elapsed time.Duration
}

type config struct {
	every    int
	progress ProgressFunc
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures Run.
type Option func(*config)

// WithProgressEvery sets how many records pass between progress reports.
// Zero or less disables reporting.
func WithProgressEvery(n int) Option {
	return func(c *config) {
		c.every = n
	}
}

// WithProgress sets the function progress is reported to.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) {
		c.progress = fn
	}
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// Run reads src until it is exhausted, writing every record to dst. The
// stats gathered so far are returned even when Run fails.
func Run(ctx context.Context, src RecordSource, dst sink.Sink, opts ...Option) (Stats, error) {
	cfg := &config{
		every:  DefaultProgressEvery,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	start := cfg.now()
	var stats Stats
	finish := func() Stats {
		stats.Elapsed = cfg.now().Sub(start)
		return stats
	}
	// Records written before a failure are still flushed.
	fail := func(err error) (Stats, error) {
		_ = dst.Flush()
		return finish(), err
	}

	for {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		record, err := src.NextRecord()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(fmt.Errorf("record %d: %w", stats.Records+1, err))
		}

		if err := dst.Write(record); err != nil {
			return fail(fmt.Errorf("failed to write record %d: %w", stats.Records+1, err))
		}
		stats.Records++

		if cfg.every > 0 && stats.Records%cfg.every == 0 {
			elapsed := cfg.now().Sub(start)
			cfg.logger.Debug("progress", "records", stats.Records, "elapsed", elapsed)
			if cfg.progress != nil {
				cfg.progress(stats.Records, elapsed)
			}
		}
	}

	if err := dst.Flush(); err != nil {
		return finish(), fmt.Errorf("failed to flush output: %w", err)
	}
	cfg.logger.Debug("scan complete", "records", stats.Records)
	return finish(), nil
}
