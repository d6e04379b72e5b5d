package runner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc"

	"github.com/yaklabco/msclfmt/internal/logging"
	"github.com/yaklabco/msclfmt/pkg/format"
)

// Runner formats many files through a format.Pipeline.
type Runner struct {
	Pipeline *format.Pipeline
}

// New creates a Runner with the given pipeline.
func New(pipeline *format.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are returned in path order regardless of completion order.
// A cancelled context stops the run and returns the partial result.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("discovered files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var workers conc.WaitGroup
	for range jobs {
		workers.Go(func() {
			r.worker(ctx, workCh, outCh, opts.Pipeline)
		})
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for outcome := range outCh {
			outcomes[outcome.Path] = outcome
		}
	}()

	workers.Wait()
	close(outCh)
	<-done

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts format.PipelineOptions,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome{Path: path}
		res, err := r.Pipeline.ProcessFile(ctx, path, opts)
		if err != nil {
			logging.FromContext(ctx).Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
			outcome.Error = err
		} else {
			outcome.Result = res
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
