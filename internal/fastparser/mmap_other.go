//go:build !unix

package fastparser

import (
	"fmt"
	"os"
)

// MmapFile reads a file into memory on platforms without mmap support.
// The cleanup function is a no-op, kept so callers share one code path.
func MmapFile(filename string) ([]byte, func(), error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat input: %w", err)
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("failed to read input: %s is a directory", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input: %w", err)
	}

	return data, func() {}, nil
}
