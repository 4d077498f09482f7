package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-csvscan/internal/driver"
	"github.com/shapestone/shape-csvscan/internal/input"
	"github.com/shapestone/shape-csvscan/internal/sink"
	"github.com/shapestone/shape-csvscan/pkg/csv"
)

func runScan(cmd *cobra.Command, location string, opts *scanOptions) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	rc, err := input.Open(cmd.Context(), location,
		input.WithMmap(opts.mmap),
		input.WithCompression(opts.compression),
		input.WithEncoding(opts.encoding),
		input.WithRegion(opts.region),
		input.WithStdin(cmd.InOrStdin()),
		input.WithLogger(logger),
	)
	if err != nil {
		if errors.Is(err, input.ErrNotFound) && location == defaultInput {
			return fmt.Errorf("%w\nUnpack %s from PerfEOS_IISTrace.7z first, then run csvscan again", err, defaultInput)
		}
		return err
	}
	defer rc.Close()

	out := cmd.OutOrStdout()
	dst, err := sink.New(opts.format, out,
		sink.WithLimit(opts.limit),
		sink.WithColor(!opts.noColor),
	)
	if err != nil {
		return err
	}

	// Progress shares stdout only when no records are printed there.
	progressOut := cmd.ErrOrStderr()
	if strings.EqualFold(opts.format, "count") {
		progressOut = out
	}
	report := func(records int, elapsed time.Duration) {
		fmt.Fprintf(progressOut, "%d   %s\n", records, elapsed)
	}

	stats, err := driver.Run(cmd.Context(), csv.NewScanner(rc), dst,
		driver.WithProgressEvery(opts.progressEvery),
		driver.WithProgress(report),
		driver.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintln(progressOut, stats.Records)
		return err
	}
	report(stats.Records, stats.Elapsed)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
