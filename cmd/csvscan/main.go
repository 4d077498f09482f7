// Command csvscan streams a CSV file through the record scanner and reports
// how fast it goes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-csvscan/internal/driver"
)

var version = "dev" // set at build time via -ldflags "-X main.version=..."

// defaultInput is scanned when no location is given.
const defaultInput = "PerfEOS_IISTrace.csv"

type scanOptions struct {
	progressEvery int
	format        string
	limit         int
	encoding      string
	compression   string
	mmap          bool
	noColor       bool
	verbose       bool
	region        string
}

func newRootCmd() *cobra.Command {
	opts := &scanOptions{}

	rootCmd := &cobra.Command{
		Use:   "csvscan [file | s3://bucket/key | -]",
		Short: "Stream CSV records and report throughput",
		Long: `csvscan reads CSV records one at a time, printing a progress line
every --progress-every records and a final count with the elapsed time.

Files ending in .gz, .zst or .sz are decompressed on the fly.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			location := defaultInput
			if len(args) == 1 {
				location = args[0]
			}
			return runScan(cmd, location, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&opts.progressEvery, "progress-every", "n", driver.DefaultProgressEvery, "Records between progress lines (0 disables)")
	flags.StringVarP(&opts.format, "format", "f", "count", "Output format: count, text, json or csv")
	flags.IntVar(&opts.limit, "limit", -1, "Write at most this many records (all are still scanned)")
	flags.StringVarP(&opts.encoding, "encoding", "e", "", "Character encoding of the input, e.g. windows-1252")
	flags.StringVar(&opts.compression, "compression", "", "Force a decompressor: gzip, zstd, snappy or none")
	flags.BoolVar(&opts.mmap, "mmap", false, "Memory-map local files")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored text output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug details to stderr")
	flags.StringVar(&opts.region, "region", "", "AWS region for s3:// locations")

	rootCmd.AddCommand(newReplCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
