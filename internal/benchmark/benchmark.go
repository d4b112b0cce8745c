// internal/benchmark/benchmark.go
// Package benchmark orchestrates a run: expand the configured parameter
// matrix, execute each test case's iterations through the selected
// execution strategy, fold outcomes into statistics, and assemble the
// final report.
package benchmark

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mwiater/benchmatrix/internal/appconfig"
	"github.com/mwiater/benchmatrix/internal/cache"
	"github.com/mwiater/benchmatrix/internal/executor"
	"github.com/mwiater/benchmatrix/internal/logging"
	"github.com/mwiater/benchmatrix/internal/matrix"
	"github.com/mwiater/benchmatrix/internal/probe"
	"github.com/mwiater/benchmatrix/internal/report"
	"github.com/mwiater/benchmatrix/internal/stats"
)

// State is the orchestrator's lifecycle phase. Transitions are strictly
// forward; a finished run never re-executes a test case.
type State string

const (
	StateConfiguring State = "configuring"
	StateExpanding   State = "expanding"
	StateExecuting   State = "executing"
	StateAggregating State = "aggregating"
	StateReporting   State = "reporting"
	StateDone        State = "done"
)

// Orchestrator composes the matrix expander, execution strategies, probe,
// and aggregator for one benchmark run.
type Orchestrator struct {
	cfg    appconfig.Config
	probe  probe.Probe
	matrix *matrix.Matrix
	state  State
	warned map[string]bool
}

// New validates the configuration against the probe registry and expands
// nothing yet; matrix construction errors (an axis with no values) surface
// here as fatal configuration errors.
func New(cfg appconfig.Config) (*Orchestrator, error) {
	p, ok := probe.Lookup(cfg.Benchmark)
	if !ok {
		return nil, &appconfig.ConfigError{
			Err: fmt.Errorf("unknown benchmark %q (available: %s)", cfg.Benchmark, strings.Join(probe.Names(), ", ")),
		}
	}

	m, err := matrix.New(cfg.Axes(p.DefaultAxes()))
	if err != nil {
		return nil, &appconfig.ConfigError{Err: err}
	}

	return &Orchestrator{
		cfg:    cfg,
		probe:  p,
		matrix: m,
		state:  StateConfiguring,
		warned: make(map[string]bool),
	}, nil
}

// State returns the current lifecycle phase.
func (o *Orchestrator) State() State { return o.state }

// Matrix returns the validated parameter matrix.
func (o *Orchestrator) Matrix() *matrix.Matrix { return o.matrix }

// Run executes the full sweep and returns the assembled report. Probe
// failures are recorded per iteration and never abort the run; every test
// case in the matrix is processed to completion.
func (o *Orchestrator) Run(ctx context.Context) (report.Report, error) {
	start := time.Now()

	o.setState(StateExpanding)
	caseTotal := o.matrix.Len()
	iterations := o.cfg.Iterations()
	warmup := o.cfg.WarmupRuns()
	logging.Event("Running %s: %d test cases x %d iterations", o.probe.Name(), caseTotal, iterations)

	// The cache is created per run and discarded with it; probes never see
	// state from a previous run.
	deps := probe.Deps{Cache: cache.New[probe.Outcome]()}

	o.setState(StateExecuting)
	caseStats := make([]stats.CaseStats, 0, caseTotal)
	caseIndex := 0
	for tc := range o.matrix.Cases() {
		caseIndex++
		logging.Event("[%d/%d] %s", caseIndex, caseTotal, o.describeCase(tc))

		strategy := o.strategyFor(tc)
		if warmup > 0 {
			strategy.RunBatch(ctx, o.buildJobs(tc, warmup, deps))
		}
		outcomes := strategy.RunBatch(ctx, o.buildJobs(tc, iterations, deps))

		cs := stats.Fold(tc, outcomes)
		caseStats = append(caseStats, cs)
		logging.Progress(cs.Failed == 0,
			"  %d/%d ok (%.1f%%), avg %.2fms, min %.2fms, max %.2fms",
			cs.Successful, cs.Total, cs.SuccessRate, cs.AvgDurationMs, cs.MinDurationMs, cs.MaxDurationMs)
	}

	o.setState(StateAggregating)
	summary := stats.Merge(caseStats)

	o.setState(StateReporting)
	end := time.Now()
	result := report.New(o.probe.Name(), start, end, caseStats, summary)

	o.setState(StateDone)
	logging.Event("Run complete: %d/%d successful iterations in %.2fs", summary.Successful, summary.Total, result.TotalExecutionTime)
	return result, nil
}

// buildJobs creates one independent job per iteration of a test case. Each
// job carries the per-invocation timeout; iteration results are logged as
// they complete.
func (o *Orchestrator) buildJobs(tc matrix.TestCase, count int, deps probe.Deps) []executor.Job {
	timeout := o.cfg.Timeout()
	jobs := make([]executor.Job, count)
	for i := range jobs {
		iteration := i + 1
		jobs[i] = executor.Job{
			Index:   i,
			Timeout: timeout,
			Run: func(ctx context.Context) probe.Outcome {
				outcome := o.probe.Run(ctx, tc, deps)
				logging.Debug("iteration %d/%d: success=%t duration=%.2fms", iteration, count, outcome.Success, outcome.DurationMs)
				return outcome
			},
		}
	}
	return jobs
}

// strategyFor picks the execution strategy for a test case from its
// execution_modes axis value, defaulting to sequential. An unknown mode is
// warned about once and runs sequentially, matching the forgiving behavior
// of the individual network benchmarks.
func (o *Orchestrator) strategyFor(tc matrix.TestCase) executor.Strategy {
	mode := probe.StringValue(tc, appconfig.AxisExecutionModes, executor.ModeSequential)
	strategy, known := executor.ForMode(mode, o.cfg.Workers())
	if !known && !o.warned[mode] {
		o.warned[mode] = true
		logging.Event("Warning: unknown execution mode %q, using sequential", mode)
	}
	return strategy
}

func (o *Orchestrator) describeCase(tc matrix.TestCase) string {
	if tc.ID == "" {
		return "(single case)"
	}
	return tc.ID
}

func (o *Orchestrator) setState(next State) {
	logging.Debug("state %s -> %s", o.state, next)
	o.state = next
}
