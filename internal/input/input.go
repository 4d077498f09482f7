// Package input opens the byte streams a scan reads from.
//
// A location is "-" for standard input, "s3://bucket/key" for an S3 object,
// or a file path. Compressed inputs are unwrapped by extension (.gz, .zst,
// .sz, .snappy) and the result can be decoded from a legacy character
// encoding before it reaches the scanner.
package input

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/shapestone/shape-csvscan/internal/charsource"
)

var (
	// ErrNotFound indicates the location does not exist.
	ErrNotFound = errors.New("input not found")

	// ErrUnknownCompression indicates an unsupported WithCompression name.
	ErrUnknownCompression = errors.New("unknown compression")

	// ErrInvalidLocation indicates a malformed location such as "s3://bucket".
	ErrInvalidLocation = errors.New("invalid location")
)

// Open opens location for reading. The caller must close the result; closing
// it never closes standard input.
func Open(ctx context.Context, location string, opts ...Option) (io.ReadCloser, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var (
		rc  io.ReadCloser
		err error
	)
	switch {
	case location == "-":
		rc = io.NopCloser(cfg.stdin)
	case strings.HasPrefix(location, objectScheme):
		rc, err = openObject(ctx, location, cfg)
	default:
		rc, err = openFile(location, cfg)
	}
	if err != nil {
		return nil, err
	}

	out, err := unwrap(rc, location, cfg)
	if err != nil {
		rc.Close()
		return nil, err
	}
	cfg.logger.Debug("input opened", "location", location, "compression", compressionFor(location, cfg), "encoding", cfg.encoding)
	return out, nil
}

func openFile(name string, cfg *config) (io.ReadCloser, error) {
	if cfg.mmap && cfg.fs == nil {
		data, cleanup, err := mapFile(name)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
			}
			return nil, err
		}
		return &readCloser{Reader: bytes.NewReader(data), closers: []io.Closer{closerFunc(cleanup)}}, nil
	}

	fs, path, err := filesystemFor(name, cfg)
	if err != nil {
		return nil, err
	}
	f, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// filesystemFor returns the filesystem to open name on and the path to use.
// Without a custom filesystem, paths are made absolute and opened on the
// operating system's root.
func filesystemFor(name string, cfg *config) (billy.Filesystem, string, error) {
	if cfg.fs != nil {
		return cfg.fs, name, nil
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve %q: %w", name, err)
	}
	return osfs.New(string(filepath.Separator)), abs, nil
}

// unwrap layers decompression and character decoding over rc.
func unwrap(rc io.ReadCloser, location string, cfg *config) (io.ReadCloser, error) {
	out := &readCloser{Reader: rc, closers: []io.Closer{rc}}

	switch compressionFor(location, cfg) {
	case "none":
	case "gzip":
		zr, err := gzip.NewReader(out.Reader)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		out.Reader = zr
		out.closers = append(out.closers, zr)
	case "zstd":
		zr, err := zstd.NewReader(out.Reader)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		zrc := zr.IOReadCloser()
		out.Reader = zrc
		out.closers = append(out.closers, zrc)
	case "snappy":
		out.Reader = snappy.NewReader(out.Reader)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, cfg.compression)
	}

	decoded, err := charsource.Decode(out.Reader, cfg.encoding)
	if err != nil {
		for _, c := range out.closers[1:] {
			c.Close()
		}
		return nil, err
	}
	out.Reader = decoded
	return out, nil
}

// compressionFor returns the configured compression, or the one implied by
// the location's extension.
func compressionFor(location string, cfg *config) string {
	if cfg.compression != "" {
		return strings.ToLower(cfg.compression)
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".gz", ".gzip":
		return "gzip"
	case ".zst", ".zstd":
		return "zstd"
	case ".sz", ".snappy":
		return "snappy"
	default:
		return "none"
	}
}

// readCloser reads from Reader and closes closers in reverse order.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var errs []error
	for i := len(rc.closers) - 1; i >= 0; i-- {
		if err := rc.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}
