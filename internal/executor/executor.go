// internal/executor/executor.go
// Package executor runs batches of probe invocations either sequentially or
// across a bounded worker pool. Both strategies return outcomes in the same
// index order as the submitted jobs, independent of completion order.
package executor

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mwiater/benchmatrix/internal/probe"
)

// Job is one probe invocation awaiting dispatch. Index is its position in
// the submitted batch; outcomes are attributed back to it.
type Job struct {
	Index   int
	Timeout time.Duration
	Run     func(ctx context.Context) probe.Outcome
}

// Strategy dispatches a batch of jobs and returns one outcome per job, in
// submission order. A failed job never aborts the rest of the batch.
type Strategy interface {
	Name() string
	RunBatch(ctx context.Context, jobs []Job) []probe.Outcome
}

// Modes accepted in configuration.
const (
	ModeSequential = "sequential"
	ModeConcurrent = "concurrent"
)

// Sequential invokes each job in order on the calling goroutine.
type Sequential struct{}

func (Sequential) Name() string { return ModeSequential }

func (Sequential) RunBatch(ctx context.Context, jobs []Job) []probe.Outcome {
	outcomes := make([]probe.Outcome, len(jobs))
	for i, job := range jobs {
		outcomes[i] = invoke(ctx, job)
	}
	return outcomes
}

// Concurrent partitions the batch into contiguous chunks, one per worker,
// bounded by Workers. Each worker accumulates outcomes locally and merges
// them into the shared result slice under the mutex, attributed by job
// index, so contention stays off the probe invocations themselves.
type Concurrent struct {
	Workers int
}

func (Concurrent) Name() string { return ModeConcurrent }

func (c Concurrent) RunBatch(ctx context.Context, jobs []Job) []probe.Outcome {
	if len(jobs) == 0 {
		return nil
	}
	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	outcomes := make([]probe.Outcome, len(jobs))
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)

	// Balanced contiguous partitions: the first len%workers chunks carry one
	// extra job, so exactly `workers` goroutines are dispatched even when the
	// batch does not divide evenly.
	base := len(jobs) / workers
	rem := len(jobs) % workers
	start := 0
	for w := 0; w < workers; w++ {
		size := base
		if w < rem {
			size++
		}
		part := jobs[start : start+size]
		offset := start
		start += size
		group.Go(func() error {
			local := make([]probe.Outcome, len(part))
			for i, job := range part {
				local[i] = invoke(groupCtx, job)
			}
			mu.Lock()
			copy(outcomes[offset:], local)
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()
	return outcomes
}

// invoke runs one job under its deadline. Probes that do not honor context
// cancellation (a blocked syscall) keep their goroutine occupied past the
// deadline; the outcome is recorded as a timeout immediately and the
// straggler is abandoned rather than awaited, so one stuck job cannot stall
// the batch. The channel is buffered so the abandoned send does not leak.
func invoke(ctx context.Context, job Job) probe.Outcome {
	if job.Timeout <= 0 {
		return job.Run(ctx)
	}

	deadlineCtx, cancel := context.WithTimeout(ctx, job.Timeout)
	defer cancel()

	start := time.Now()
	done := make(chan probe.Outcome, 1)
	go func() {
		done <- job.Run(deadlineCtx)
	}()

	select {
	case outcome := <-done:
		return outcome
	case <-deadlineCtx.Done():
		return probe.Timeout(time.Since(start), job.Timeout)
	}
}

// ForMode returns the strategy for a configured execution mode. Unknown
// modes fall back to sequential, reported through the ok result so the
// caller can log the substitution once.
func ForMode(mode string, workers int) (Strategy, bool) {
	switch mode {
	case ModeConcurrent:
		return Concurrent{Workers: workers}, true
	case ModeSequential, "":
		return Sequential{}, true
	default:
		return Sequential{}, false
	}
}
