package regrid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shapestone/shape-regrid/internal/fastparser"
)

// ReadInput returns the contents of the file at path.
// Missing, unreadable and directory paths fail with ErrFileNotFound.
func ReadInput(path string) (string, error) {
	data, cleanup, err := fastparser.MmapFile(path)
	if err != nil {
		return "", newError(KindFileNotFound, path, err)
	}
	defer cleanup()

	// Copy out of the mapping before it is released.
	return string(data), nil
}

// OpenOutput creates (or truncates) the file name inside dir and returns it
// open for writing.
//
// A relative dir is resolved against root; an empty root means the working
// directory. It fails with ErrWriteNotPermitted when dir does not exist, is not
// a directory, resolves outside root, or cannot be written, and when name is
// not a plain file name.
func OpenOutput(root, dir, name string) (*os.File, error) {
	if err := checkOutputName(name); err != nil {
		return nil, err
	}

	target, err := resolveOutputDir(root, dir)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(target, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, newError(KindWriteNotPermitted, path, err)
	}
	return f, nil
}

func checkOutputName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return newError(KindWriteNotPermitted, fmt.Sprintf("invalid output name %q", name), nil)
	case strings.ContainsAny(name, `/\`):
		return newError(KindWriteNotPermitted, fmt.Sprintf("output name %q contains a path separator", name), nil)
	}
	return nil
}

// resolveOutputDir returns the symlink-free absolute form of dir, checked to
// be an existing directory inside root.
func resolveOutputDir(root, dir string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", newError(KindWriteNotPermitted, "working directory", err)
		}
		root = wd
	}
	rootReal, err := realPath(root)
	if err != nil {
		return "", newError(KindWriteNotPermitted, root, err)
	}

	if dir == "" {
		dir = "."
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	dirReal, err := realPath(dir)
	if err != nil {
		return "", newError(KindWriteNotPermitted, dir, err)
	}

	rel, err := filepath.Rel(rootReal, dirReal)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", newError(KindWriteNotPermitted, fmt.Sprintf("%s is outside %s", dir, root), err)
	}

	info, err := os.Stat(dirReal)
	if err != nil {
		return "", newError(KindWriteNotPermitted, dir, err)
	}
	if !info.IsDir() {
		return "", newError(KindWriteNotPermitted, fmt.Sprintf("%s is not a directory", dir), nil)
	}
	return dirReal, nil
}

func realPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
