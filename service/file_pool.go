package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/jsplit/domain"
	"github.com/ludo-technologies/jsplit/internal/config"
)

// DefaultTimeout bounds a run when the configuration sets no timeout
const DefaultTimeout = 5 * time.Minute

// FileJob analyzes the i-th file of a run
type FileJob func(ctx context.Context, i int, path string) error

// FileError records a file whose job failed
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// FilePool runs a FileJob over many files with a bounded number of
// workers. A failing file never cancels the others; only the run timeout
// or the caller's context does.
type FilePool struct {
	workers  int
	timeout  time.Duration
	progress domain.ProgressManager
	label    string
}

// NewFilePool builds a pool from the performance settings. A non-positive
// goroutine limit selects runtime.NumCPU(); pm may be nil.
func NewFilePool(cfg config.PerformanceConfig, pm domain.ProgressManager) *FilePool {
	workers := cfg.MaxGoroutines
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FilePool{
		workers:  workers,
		timeout:  timeout,
		progress: pm,
		label:    "Analyzing files",
	}
}

// Run executes job for every path and returns the failures in input
// order. Files skipped after the deadline are reported with the context
// error.
func (p *FilePool) Run(ctx context.Context, paths []string, job FileJob) []FileError {
	if len(paths) == 0 {
		return nil
	}

	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var bar domain.TaskProgress = NoOpTaskProgress{}
	if p.progress != nil {
		bar = p.progress.StartTask(p.label, len(paths))
	}
	defer bar.Complete()

	// each worker owns one slot, so no lock is needed
	failures := make([]error, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(p.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := runCtx.Err(); err != nil {
				failures[i] = err
				return nil
			}
			failures[i] = job(runCtx, i, path)
			bar.Describe(path)
			bar.Increment(1)
			return nil
		})
	}
	_ = g.Wait()

	var out []FileError
	for i, err := range failures {
		if err != nil {
			out = append(out, FileError{Path: paths[i], Err: err})
		}
	}
	return out
}
