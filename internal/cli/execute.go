package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/shapestone/shape-regrid/internal/batch"
	"github.com/shapestone/shape-regrid/internal/jobfile"
	"github.com/shapestone/shape-regrid/pkg/regrid"
)

// NewLogger builds the process logger from the parsed flags.
func NewLogger(c *Command, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if c.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	return logger
}

// Execute runs the parsed command, writing user-facing output to out.
func Execute(ctx context.Context, c *Command, out io.Writer, logger logrus.FieldLogger) error {
	switch c.Name {
	case CommandConvert:
		return convert(ctx, c, out, logger)
	case CommandBatch:
		return runBatch(ctx, c, out, logger)
	case CommandPreview:
		return preview(c, out)
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", c.Name)}
	}
}

func convert(ctx context.Context, c *Command, out io.Writer, logger logrus.FieldLogger) error {
	conv := regrid.NewConverter(
		regrid.WithLogger(logger),
		regrid.WithRoot(c.Root),
		regrid.WithDebug(c.Debug),
	)

	res, err := conv.Convert(ctx, regrid.Job{
		Name:            c.OutputName,
		Input:           c.Input,
		InputDelimiter:  c.InputDelimiter,
		OutputDelimiter: c.OutputDelimiter,
		Format:          c.Format,
		OutputDir:       c.OutputDir,
		OutputName:      c.OutputName,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "wrote %s (%d x %d, %s)\n", res.Output, res.Rows, res.Cols, res.Mode)
	return nil
}

func runBatch(ctx context.Context, c *Command, out io.Writer, logger logrus.FieldLogger) error {
	file, err := jobfile.Load(c.JobFile, logger)
	if err != nil {
		return err
	}

	conv := regrid.NewConverter(
		regrid.WithLogger(logger),
		regrid.WithRoot(file.Dir),
		regrid.WithDebug(c.Debug),
	)
	runner := batch.NewRunner(conv, batch.WithWorkers(c.Workers), batch.WithLogger(logger))

	outcomes, err := runner.Run(ctx, file.Jobs)
	done := 0
	for _, o := range outcomes {
		if o.Err == nil {
			done++
		}
	}
	fmt.Fprintf(out, "%d of %d jobs converted\n", done, len(outcomes))
	return err
}

func preview(c *Command, out io.Writer) error {
	delim, err := regrid.ValidateDelimiter(c.InputDelimiter)
	if err != nil {
		return err
	}
	format, err := regrid.ValidateFormat(c.Format)
	if err != nil {
		return err
	}

	raw, err := regrid.ReadInput(c.Input)
	if err != nil {
		return err
	}
	grid, err := regrid.Parse(raw, delim)
	if err != nil {
		return err
	}

	regrid.Preview(out, grid, format.Mode(), c.Header)
	return nil
}
