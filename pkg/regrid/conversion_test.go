package regrid_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/shapestone/shape-regrid/pkg/regrid"
)

// workspace creates a root with an input file and an "out" directory.
func workspace(t *testing.T, input string) (root, inputPath string) {
	t.Helper()

	root = t.TempDir()
	inputPath = filepath.Join(root, "input.txt")
	writeFile(t, inputPath, input)
	mkdir(t, filepath.Join(root, "out"), 0o755)
	return root, inputPath
}

func TestConverter_Convert(t *testing.T) {
	tests := []struct {
		name   string
		format string
		delim  string
		want   string
		mode   regrid.Mode
	}{
		{"linhas", "linhas", ",", "a,b\nc,d", regrid.RowMajor},
		{"l", "l", "\t", "a\tb\nc\td", regrid.RowMajor},
		{"colunas", "colunas", ",", "a,c\nb,d", regrid.ColumnMajor},
		{"c", "c", "|", "a|c\nb|d", regrid.ColumnMajor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, input := workspace(t, "a;b\nc;d\n")
			c := regrid.NewConverter(regrid.WithRoot(root))

			res, err := c.Convert(context.Background(), regrid.Job{
				Name:            tt.name,
				Input:           input,
				InputDelimiter:  ";",
				OutputDelimiter: tt.delim,
				Format:          tt.format,
				OutputDir:       "out",
				OutputName:      "result.txt",
			})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if res.Mode != tt.mode || res.Rows != 2 || res.Cols != 2 || res.Bytes != len(tt.want) {
				t.Errorf("Convert() result = %+v, want mode %v, 2x2, %d bytes", res, tt.mode, len(tt.want))
			}

			got, err := os.ReadFile(filepath.Join(root, "out", "result.txt"))
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConverter_Convert_Errors(t *testing.T) {
	valid := func(input string) regrid.Job {
		return regrid.Job{
			Name:            "job",
			Input:           input,
			InputDelimiter:  ";",
			OutputDelimiter: ",",
			Format:          "l",
			OutputDir:       "out",
			OutputName:      "result.txt",
		}
	}

	tests := []struct {
		name   string
		input  string
		mutate func(*regrid.Job)
		want   error
	}{
		{"missing input", "a;b\n", func(j *regrid.Job) { j.Input += ".missing" }, regrid.ErrFileNotFound},
		{"bad input delimiter", "a;b\n", func(j *regrid.Job) { j.InputDelimiter = "Delimiter Example" }, regrid.ErrInvalidDelimiter},
		{"bad output delimiter", "a;b\n", func(j *regrid.Job) { j.OutputDelimiter = "::" }, regrid.ErrInvalidDelimiter},
		{"bad format", "a;b\n", func(j *regrid.Job) { j.Format = "diagonal" }, regrid.ErrInvalidOutputFormat},
		{"ragged input", "a;b\nc\n", func(*regrid.Job) {}, regrid.ErrInvalidFileFormat},
		{"empty input", "", func(*regrid.Job) {}, regrid.ErrInvalidFileFormat},
		{"missing output dir", "a;b\n", func(j *regrid.Job) { j.OutputDir = "unexistent_dir/outputs/" }, regrid.ErrWriteNotPermitted},
		{"escaping output dir", "a;b\n", func(j *regrid.Job) { j.OutputDir = "../../" }, regrid.ErrWriteNotPermitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, input := workspace(t, tt.input)
			job := valid(input)
			tt.mutate(&job)

			res, err := regrid.NewConverter(regrid.WithRoot(root)).Convert(context.Background(), job)
			if res != nil {
				t.Errorf("Convert() result = %+v, want nil", res)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Convert() error = %v, want %v", err, tt.want)
			}
			var rerr *regrid.Error
			if !errors.As(err, &rerr) {
				t.Errorf("Convert() error %T is not *regrid.Error", err)
			}
			if fileExists(filepath.Join(root, "out", "result.txt")) {
				t.Error("partial output written on failure")
			}
		})
	}
}

func TestConverter_Convert_Cancelled(t *testing.T) {
	root, input := workspace(t, "a;b\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := regrid.NewConverter(regrid.WithRoot(root)).Convert(ctx, regrid.Job{
		Input: input, InputDelimiter: ";", OutputDelimiter: ",", Format: "l", OutputDir: "out", OutputName: "x",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Convert() error = %v, want context.Canceled", err)
	}
	if err != ctx.Err() {
		t.Errorf("Convert() error = %#v, want ctx.Err() unwrapped", err)
	}
	if fileExists(filepath.Join(root, "out", "x")) {
		t.Error("output written for a cancelled context")
	}
}

func TestConverter_Logging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	root, input := workspace(t, "a;b\nc\n")
	c := regrid.NewConverter(regrid.WithRoot(root), regrid.WithLogger(logger), regrid.WithDebug(true))

	_, err := c.Convert(context.Background(), regrid.Job{
		Name: "ragged", Input: input, InputDelimiter: ";", OutputDelimiter: ",", Format: "c",
		OutputDir: "out", OutputName: "x",
	})
	if !errors.Is(err, regrid.ErrInvalidFileFormat) {
		t.Fatalf("Convert() error = %v, want ErrInvalidFileFormat", err)
	}

	last := hook.LastEntry()
	if last == nil {
		t.Fatal("no log entries")
	}
	if last.Message != "conversion failed" || last.Data["job"] != "ragged" || last.Data["run_id"] == "" {
		t.Errorf("last entry = %q %v", last.Message, last.Data)
	}

	var dumped bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel && strings.HasPrefix(e.Message, "rejected input: ") {
			dumped = true
			if !strings.Contains(e.Message, "wrong number of fields") {
				t.Errorf("dump = %q, want the field count error", e.Message)
			}
		}
	}
	if !dumped {
		t.Error("expected a debug dump of the rejected input")
	}
}
