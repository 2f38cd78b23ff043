package iges

import "runtime"

// EvalOptions configures ValidateParallel/DiscretizeParallel's worker-pool
// behavior (spec.md §5 "Concurrency & resource model": geometric
// evaluation is pure and thread-safe on immutable entities, so the only
// knobs are how much concurrency to use and how to treat per-entity
// failures).
//
// Grounded on the teacher's pkg/v1.LoadOptions (pkg/v1/parallel.go), with
// the file-loading-specific fields (ErrorLog's chart-path framing) dropped
// since there is no file path per entity here.
type EvalOptions struct {
	// Workers is the number of worker goroutines. 0 means runtime.NumCPU().
	Workers int

	// SkipErrors continues past a failing entity instead of aborting the
	// whole batch; failures are collected and returned alongside results.
	SkipErrors bool

	// Progress, if non-nil, is called after each entity completes with
	// (done, total).
	Progress func(done, total int)
}

// DefaultEvalOptions returns the conservative defaults: one worker per CPU,
// continue past individual failures.
func DefaultEvalOptions() EvalOptions {
	return EvalOptions{
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

func (o EvalOptions) workerCount(n int) int {
	w := o.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}
