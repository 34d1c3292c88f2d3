package fastparser

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMmapFile(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "input.txt")
	content := []byte("a;b;c\nd;e;f\n")
	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	data, cleanup, err := MmapFile(testFile)
	if err != nil {
		t.Fatalf("MmapFile() error = %v", err)
	}

	if string(data) != string(content) {
		t.Errorf("MmapFile() data = %q, want %q", data, content)
	}

	records, err := Split(data, ';')
	cleanup()
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	want := [][]string{{"a", "b", "c"}, {"d", "e", "f"}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %q, want %q", records, want)
	}
}

func TestMmapFile_EmptyFile(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(testFile, nil, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	data, cleanup, err := MmapFile(testFile)
	if err != nil {
		t.Fatalf("MmapFile() error = %v", err)
	}
	defer cleanup()

	if len(data) != 0 {
		t.Errorf("MmapFile() data length = %d, want 0", len(data))
	}
}

func TestMmapFile_Missing(t *testing.T) {
	_, _, err := MmapFile(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("MmapFile() error = %v, want not-exist", err)
	}
}

func TestMmapFile_Directory(t *testing.T) {
	if _, _, err := MmapFile(t.TempDir()); err == nil {
		t.Error("MmapFile() on a directory: expected error")
	}
}
