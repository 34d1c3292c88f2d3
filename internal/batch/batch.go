// Package batch runs independent conversion jobs on a bounded worker pool.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"github.com/shapestone/shape-regrid/pkg/regrid"
)

// ErrDuplicateOutput marks a job skipped because an earlier job in the same
// run writes the same output file.
var ErrDuplicateOutput = errors.New("duplicate output")

// Converter runs a single job.
type Converter interface {
	Convert(ctx context.Context, job regrid.Job) (*regrid.Result, error)
}

// Outcome is the result of one job.
type Outcome struct {
	Job    regrid.Job
	Result *regrid.Result
	Err    error
}

// Runner executes jobs concurrently. Each job is converted on its own and
// jobs never share output files.
type Runner struct {
	conv    Converter
	workers int
	logger  logrus.FieldLogger
}

// Option defines the Runner functional option type.
type Option func(*Runner)

// WithWorkers sets the pool size. Values below 1 mean one worker.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner instantiates a Runner around conv.
func NewRunner(conv Converter, options ...Option) *Runner {
	r := &Runner{conv: conv, workers: 4, logger: logrus.New()}

	for _, opt := range options {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = 1
	}

	return r
}

// Run converts every job and returns the outcomes in job order. A job whose
// output path was already claimed by an earlier job is not run and fails with
// ErrDuplicateOutput.
//
// The returned error joins the failures of all jobs, each prefixed with the
// job name; it is nil when every job succeeded.
func (r *Runner) Run(ctx context.Context, jobs []regrid.Job) ([]Outcome, error) {
	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make([]Outcome, len(jobs))
	claimed := make(map[string]string, len(jobs))
	var wg sync.WaitGroup

	for i, job := range jobs {
		outcomes[i].Job = job

		output := filepath.Join(job.OutputDir, job.OutputName)
		if other, ok := claimed[output]; ok {
			outcomes[i].Err = fmt.Errorf("%w %q: also written by job %q", ErrDuplicateOutput, output, other)
			continue
		}
		claimed[output] = job.Name

		wg.Add(1)
		task := func() {
			defer wg.Done()
			res, err := r.conv.Convert(ctx, job)
			outcomes[i].Result, outcomes[i].Err = res, err
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			outcomes[i].Err = fmt.Errorf("failed to schedule job: %w", err)
		}
	}
	wg.Wait()

	var errs []error
	for _, o := range outcomes {
		entry := r.logger.WithField("job", o.Job.Name)
		if o.Err != nil {
			entry.WithError(o.Err).Warn("Job failed.")
			errs = append(errs, fmt.Errorf("job %q: %w", o.Job.Name, o.Err))
			continue
		}
		entry.WithField("output", o.Result.Output).Info("Job finished.")
	}

	return outcomes, errors.Join(errs...)
}
