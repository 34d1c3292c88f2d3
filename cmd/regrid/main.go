package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shapestone/shape-regrid/internal/cli"
)

// main is the entrypoint for the regrid command.
func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run holds the application logic so tests can drive it with plain writers.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	cmd, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := cli.NewLogger(cmd, errW)
	return cli.Execute(ctx, cmd, outW, logger)
}
