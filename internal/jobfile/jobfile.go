package jobfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/shapestone/shape-regrid/pkg/regrid"
)

// File is a decoded batch file.
type File struct {
	// Dir is the directory holding the batch file.
	Dir string
	// Jobs are listed in file order.
	Jobs []regrid.Job
}

// hclFile represents the top-level structure of a batch file for decoding.
type hclFile struct {
	Defaults *hclSettings `hcl:"defaults,block"`
	Jobs     []*hclJob    `hcl:"job,block"`
}

type hclSettings struct {
	InputDelimiter  *string `hcl:"input_delimiter,optional"`
	OutputDelimiter *string `hcl:"output_delimiter,optional"`
	Format          *string `hcl:"format,optional"`
	OutputDir       *string `hcl:"output_dir,optional"`
}

type hclJob struct {
	Name            string  `hcl:"name,label"`
	Input           string  `hcl:"input"`
	InputDelimiter  *string `hcl:"input_delimiter,optional"`
	OutputDelimiter *string `hcl:"output_delimiter,optional"`
	Format          *string `hcl:"format,optional"`
	OutputDir       *string `hcl:"output_dir,optional"`
	OutputName      *string `hcl:"output_name,optional"`
}

// Load parses and decodes the batch file at path.
func Load(path string, logger logrus.FieldLogger) (*File, error) {
	logger.WithField("path", path).Debug("Decoding batch file.")

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, diags)
	}

	return decode(file.Body, filepath.Dir(path), logger)
}

// Parse decodes batch file source held in memory. filename is used in
// diagnostics and dir anchors relative input paths.
func Parse(src []byte, filename, dir string, logger logrus.FieldLogger) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", filename, diags)
	}

	return decode(file.Body, dir, logger)
}

func decode(body hcl.Body, dir string, logger logrus.FieldLogger) (*File, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(body, EvalContext(), &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode batch file: %w", diags)
	}
	if len(parsed.Jobs) == 0 {
		return nil, fmt.Errorf("batch file declares no jobs")
	}

	defaults := parsed.Defaults
	if defaults == nil {
		defaults = &hclSettings{}
	}

	out := &File{Dir: dir, Jobs: make([]regrid.Job, 0, len(parsed.Jobs))}
	seen := make(map[string]bool, len(parsed.Jobs))
	// output path -> job name; concurrent jobs must not share a file.
	outputs := make(map[string]string, len(parsed.Jobs))
	for _, j := range parsed.Jobs {
		if seen[j.Name] {
			return nil, fmt.Errorf("duplicate job %q", j.Name)
		}
		seen[j.Name] = true

		input := j.Input
		if !filepath.IsAbs(input) {
			input = filepath.Join(dir, input)
		}

		job := regrid.Job{
			Name:       j.Name,
			Input:      input,
			OutputDir:  pick(j.OutputDir, defaults.OutputDir, "."),
			OutputName: pick(j.OutputName, nil, j.Name+".out"),
		}
		output := filepath.Join(job.OutputDir, job.OutputName)
		if other, ok := outputs[output]; ok {
			return nil, fmt.Errorf("duplicate output %q for jobs %q and %q", output, other, j.Name)
		}
		outputs[output] = j.Name

		var err error
		if job.InputDelimiter, err = required(j.Name, "input_delimiter", j.InputDelimiter, defaults.InputDelimiter); err != nil {
			return nil, err
		}
		if job.OutputDelimiter, err = required(j.Name, "output_delimiter", j.OutputDelimiter, defaults.OutputDelimiter); err != nil {
			return nil, err
		}
		if job.Format, err = required(j.Name, "format", j.Format, defaults.Format); err != nil {
			return nil, err
		}
		out.Jobs = append(out.Jobs, job)
	}

	logger.WithField("jobs", len(out.Jobs)).Debug("Successfully decoded batch file.")
	return out, nil
}

// EvalContext exposes the delim variable: one attribute per recognized
// delimiter, named after Delimiter.Name with dashes replaced by underscores.
func EvalContext() *hcl.EvalContext {
	delims := make(map[string]cty.Value)
	for _, d := range regrid.Delimiters() {
		delims[strings.ReplaceAll(d.Name(), "-", "_")] = cty.StringVal(d.String())
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"delim": cty.ObjectVal(delims),
		},
	}
}

// required returns the job value or the default, failing when neither is set.
func required(job, attr string, value, fallback *string) (string, error) {
	if value == nil && fallback == nil {
		return "", fmt.Errorf("job %q: missing %s and no default set", job, attr)
	}
	return pick(value, fallback, ""), nil
}

func pick(value, fallback *string, def string) string {
	if value != nil {
		return *value
	}
	if fallback != nil {
		return *fallback
	}
	return def
}
