//go:build unix

package input

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps name read-only into memory. The returned release func unmaps
// it; the data must not be touched afterwards.
func mapFile(name string) ([]byte, func(), error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	// The mapping outlives the descriptor.
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() == 0 {
		return []byte{}, func() {}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to mmap file: %w", err)
	}
	return data, func() { _ = unix.Munmap(data) }, nil
}
