package input

import (
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
)

// config holds the settings for Open.
type config struct {
	fs          billy.Filesystem
	mmap        bool
	compression string
	encoding    string
	objects     ObjectGetter
	region      string
	stdin       io.Reader
	logger      *slog.Logger
}

func defaultConfig() *config {
	return &config{
		stdin:  os.Stdin,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures Open.
type Option func(*config)

// WithFilesystem opens local paths on fs instead of the operating system's
// filesystem. Memory mapping is disabled on a custom filesystem.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(c *config) {
		c.fs = fs
	}
}

// WithMmap memory-maps local files instead of reading them through a file
// descriptor. Platforms without mmap read the whole file into memory.
func WithMmap(enabled bool) Option {
	return func(c *config) {
		c.mmap = enabled
	}
}

// WithCompression forces a decompressor ("gzip", "zstd", "snappy" or "none")
// instead of choosing one from the file extension.
func WithCompression(name string) Option {
	return func(c *config) {
		c.compression = name
	}
}

// WithEncoding decodes the input from the named character encoding.
func WithEncoding(label string) Option {
	return func(c *config) {
		c.encoding = label
	}
}

// WithObjectGetter serves s3:// locations from g instead of a client built
// from the default AWS configuration.
func WithObjectGetter(g ObjectGetter) Option {
	return func(c *config) {
		c.objects = g
	}
}

// WithRegion sets the AWS region for the default S3 client.
func WithRegion(region string) Option {
	return func(c *config) {
		c.region = region
	}
}

// WithStdin sets the reader used for the "-" location.
func WithStdin(r io.Reader) Option {
	return func(c *config) {
		c.stdin = r
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
