// Package batch runs per-file work on a bounded pool of goroutines and hands
// the results back in input order.
package batch

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// Result is the outcome of one task.
type Result[T any] struct {
	Index int
	Path  string
	Value T
	Err   error
}

// Run calls task for every path using at most jobs goroutines. Each task
// writes only its own slot, so results[i] always belongs to paths[i]. Once
// ctx is done, tasks that have not started are skipped and report ctx.Err().
func Run[T any](ctx context.Context, paths []string, jobs int, task func(ctx context.Context, path string) (T, error)) []Result[T] {
	results := make([]Result[T], len(paths))
	if len(paths) == 0 {
		return results
	}
	if jobs < 1 {
		jobs = 1
	}

	p := pool.New().WithMaxGoroutines(jobs)
	for i, path := range paths {
		p.Go(func() {
			r := &results[i]
			r.Index = i
			r.Path = path
			if err := ctx.Err(); err != nil {
				r.Err = err
				return
			}
			r.Value, r.Err = task(ctx, path)
		})
	}
	p.Wait()
	return results
}

// Failed returns the results that carry an error.
func Failed[T any](results []Result[T]) []Result[T] {
	var failed []Result[T]
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
