package cli

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/alecthomas/kingpin.v2"
)

// ExitError is an error that carries a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command names.
const (
	CommandConvert = "convert"
	CommandBatch   = "batch"
	CommandPreview = "preview"
)

// Command is a parsed command line.
type Command struct {
	Name      string
	LogLevel  string
	LogFormat string
	Debug     bool

	// convert and preview
	Input          string
	InputDelimiter string
	Format         string

	// convert
	OutputDelimiter string
	OutputDir       string
	OutputName      string
	Root            string

	// preview
	Header bool

	// batch
	JobFile string
	Workers int
}

// Parse processes command-line arguments. It returns the parsed Command, a
// boolean indicating the program should exit cleanly (help was shown), or an
// *ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	c := &Command{}
	exited := false

	app := kingpin.New("regrid", "Re-delimit and re-orient delimited text files.")
	app.UsageWriter(output)
	app.ErrorWriter(output)
	app.Terminate(func(int) { exited = true })
	app.HelpFlag.Short('h')

	app.Flag("log-level", "Logging level.").Default("info").EnumVar(&c.LogLevel, "debug", "info", "warn", "error")
	app.Flag("log-format", "Log output format.").Default("text").EnumVar(&c.LogFormat, "text", "json")
	app.Flag("debug", "Dump details of rejected input to the debug log.").BoolVar(&c.Debug)

	convert := app.Command(CommandConvert, "Convert one file.")
	convert.Arg("input", "Input file.").Required().StringVar(&c.Input)
	convert.Flag("input-delimiter", `Input field delimiter; escapes such as \t are accepted.`).Short('d').Required().StringVar(&c.InputDelimiter)
	convert.Flag("output-delimiter", "Output field delimiter.").Short('o').Required().StringVar(&c.OutputDelimiter)
	convert.Flag("format", "Output orientation: linhas, l, colunas or c.").Short('f').Required().StringVar(&c.Format)
	convert.Flag("out-dir", "Output directory.").Default(".").StringVar(&c.OutputDir)
	convert.Flag("out-name", "Output file name.").Short('n').Required().StringVar(&c.OutputName)
	convert.Flag("root", "Directory outputs must stay within. Default: working directory.").StringVar(&c.Root)

	batch := app.Command(CommandBatch, "Run the conversions described by an HCL batch file.")
	batch.Arg("file", "Batch file.").Required().StringVar(&c.JobFile)
	batch.Flag("workers", "Number of concurrent jobs.").Default("4").IntVar(&c.Workers)

	preview := app.Command(CommandPreview, "Print a file as a table.")
	preview.Arg("input", "Input file.").Required().StringVar(&c.Input)
	preview.Flag("input-delimiter", "Input field delimiter.").Short('d').Required().StringVar(&c.InputDelimiter)
	preview.Flag("format", "Orientation: linhas, l, colunas or c.").Short('f').Default("linhas").StringVar(&c.Format)
	preview.Flag("header", "Render the first record as a header.").BoolVar(&c.Header)

	name, err := app.Parse(args)
	if exited {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	c.Name = name

	c.InputDelimiter = unescape(c.InputDelimiter)
	c.OutputDelimiter = unescape(c.OutputDelimiter)

	if c.Name == CommandBatch && c.Workers < 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid workers: %d", c.Workers)}
	}

	return c, false, nil
}

// unescape interprets Go escape sequences so "\t" on a command line means a
// tab. Values that are not valid escapes are returned unchanged.
func unescape(s string) string {
	if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return u
	}
	return s
}
