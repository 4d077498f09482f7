//go:build !unix

package input

import (
	"fmt"
	"os"
)

// mapFile reads the whole file on platforms without mmap.
func mapFile(name string) ([]byte, func(), error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, func() {}, nil
}
