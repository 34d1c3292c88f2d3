package regrid

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shapestone/shape-regrid/internal/parser"
)

// Job describes one conversion. Tokens are validated when the job runs.
type Job struct {
	// Name labels the job in logs and batch errors.
	Name string
	// Input is the path of the delimited text to read.
	Input string
	// InputDelimiter splits input fields.
	InputDelimiter string
	// OutputDelimiter joins output fields.
	OutputDelimiter string
	// Format is one of linhas, l, colunas or c.
	Format string
	// OutputDir is the directory receiving the output file.
	OutputDir string
	// OutputName is the output file name inside OutputDir.
	OutputName string
}

// Result summarises a finished conversion.
type Result struct {
	Output string
	Rows   int
	Cols   int
	Mode   Mode
	Bytes  int
}

// Converter runs Jobs: read, parse, format, then write the output exactly once.
type Converter struct {
	logger logrus.FieldLogger
	root   string
	debug  bool
}

// NewConverter instantiates a Converter.
func NewConverter(options ...Option) *Converter {
	c := &Converter{logger: logrus.New()}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// Convert runs job. Every failure is terminal: nothing is written unless the
// whole grid was parsed and formatted, and a failed write removes the file.
//
// The returned error is an *Error whose Kind names the failing boundary, or
// ctx.Err() when ctx is already done before the job starts.
func (c *Converter) Convert(ctx context.Context, job Job) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := c.logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"job":    job.Name,
		"input":  job.Input,
	})

	res, err := c.convert(logger, job)
	if err != nil {
		logger.WithError(err).Debug("conversion failed")
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"output": res.Output,
		"rows":   res.Rows,
		"cols":   res.Cols,
		"mode":   res.Mode,
	}).Debug("conversion finished")
	return res, nil
}

func (c *Converter) convert(logger logrus.FieldLogger, job Job) (*Result, error) {
	inDelim, err := ValidateDelimiter(job.InputDelimiter)
	if err != nil {
		return nil, err
	}
	outDelim, err := ValidateDelimiter(job.OutputDelimiter)
	if err != nil {
		return nil, err
	}
	format, err := ValidateFormat(job.Format)
	if err != nil {
		return nil, err
	}

	raw, err := ReadInput(job.Input)
	if err != nil {
		return nil, err
	}
	logger.WithField("bytes", len(raw)).Debug("input read")

	grid, err := Parse(raw, inDelim)
	if err != nil {
		c.dumpRejected(logger, err)
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"rows":      grid.Rows(),
		"cols":      grid.Cols(),
		"delimiter": inDelim.Name(),
	}).Debug("input parsed")

	text := Format(grid, outDelim, format.Mode())

	f, err := OpenOutput(c.root, job.OutputDir, job.OutputName)
	if err != nil {
		return nil, err
	}
	if err := writeOnce(f, text); err != nil {
		return nil, err
	}

	return &Result{
		Output: f.Name(),
		Rows:   grid.Rows(),
		Cols:   grid.Cols(),
		Mode:   format.Mode(),
		Bytes:  len(text),
	}, nil
}

// writeOnce writes text and closes f, removing the file if either step fails.
func writeOnce(f *os.File, text string) error {
	_, werr := f.WriteString(text)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(f.Name())
		return newError(KindWriteNotPermitted, filepath.Clean(f.Name()), err)
	}
	return nil
}

// dumpRejected logs the structural detail of a parse failure in debug mode.
func (c *Converter) dumpRejected(logger logrus.FieldLogger, err error) {
	if !c.debug {
		return
	}
	var fe *parser.FormatError
	if errors.As(err, &fe) {
		logger.Debugf("rejected input: %s", spew.Sdump(fe))
		return
	}
	logger.Debugf("rejected input: %s", fmt.Sprint(err))
}
