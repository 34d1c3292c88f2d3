//go:build unix

package fastparser

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MmapFile maps filename read-only and returns its bytes with a cleanup
// function that unmaps and closes it.
//
// The slice is invalid after cleanup. Split copies its input, so a grid built
// from the mapping outlives it.
//
//	data, cleanup, err := MmapFile("input.txt")
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
func MmapFile(filename string) ([]byte, func(), error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	closeFile := func() { _ = f.Close() }

	info, err := f.Stat()
	switch {
	case err != nil:
		closeFile()
		return nil, nil, fmt.Errorf("failed to stat input: %w", err)
	case info.IsDir():
		closeFile()
		return nil, nil, fmt.Errorf("failed to read input: %s is a directory", filename)
	case info.Size() == 0:
		// mmap rejects zero-length mappings.
		return []byte{}, closeFile, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		closeFile()
		return nil, nil, fmt.Errorf("failed to map input: %w", err)
	}

	return data, func() {
		_ = unix.Munmap(data)
		closeFile()
	}, nil
}
