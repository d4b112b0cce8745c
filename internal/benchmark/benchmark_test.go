package benchmark

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mwiater/benchmatrix/internal/appconfig"
	"github.com/mwiater/benchmatrix/internal/matrix"
	"github.com/mwiater/benchmatrix/internal/probe"
)

// stubProbe is a registry-backed probe with swappable behavior.
type stubProbe struct {
	name string
	axes []matrix.Axis
	run  func(ctx context.Context, tc matrix.TestCase, deps probe.Deps) probe.Outcome
}

func (s *stubProbe) Name() string                { return s.name }
func (s *stubProbe) Description() string         { return "test stub" }
func (s *stubProbe) DefaultAxes() []matrix.Axis  { return s.axes }
func (s *stubProbe) Check(context.Context) error { return nil }
func (s *stubProbe) Run(ctx context.Context, tc matrix.TestCase, deps probe.Deps) probe.Outcome {
	return s.run(ctx, tc, deps)
}

var (
	sweepStub   = &stubProbe{name: "stub_sweep"}
	failingStub = &stubProbe{name: "stub_failing"}
	cachingStub = &stubProbe{name: "stub_caching"}
)

func init() {
	probe.Register(sweepStub)
	probe.Register(failingStub)
	probe.Register(cachingStub)
}

func config(name string, params map[string]any) appconfig.Config {
	return appconfig.Config{Benchmark: name, Parameters: params}
}

func TestSweepExpandsAndAggregates(t *testing.T) {
	var calls atomic.Int64
	sweepStub.axes = []matrix.Axis{
		{Name: "size", Values: []any{10, 20}},
		{Name: "type", Values: []any{"a", "b"}},
	}
	sweepStub.run = func(_ context.Context, tc matrix.TestCase, _ probe.Deps) probe.Outcome {
		calls.Add(1)
		return probe.Ok(time.Millisecond, map[string]float64{"size": float64(tc.Values["size"].(int))})
	}

	orchestrator, err := New(config("stub_sweep", map[string]any{"iterations": 2}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.TestCases) != 4 {
		t.Fatalf("got %d test cases, want 4", len(result.TestCases))
	}
	for _, cs := range result.TestCases {
		if cs.Total != 2 || len(cs.Iterations) != 2 {
			t.Fatalf("case %s has %d outcomes, want 2", cs.Case, cs.Total)
		}
		if cs.Total != cs.Successful+cs.Failed {
			t.Fatalf("case %s counts inconsistent: %+v", cs.Case, cs)
		}
	}
	if result.Summary.Total != 8 {
		t.Fatalf("summary total = %d, want 8", result.Summary.Total)
	}
	if calls.Load() != 8 {
		t.Fatalf("probe ran %d times, want 8", calls.Load())
	}
	if orchestrator.State() != StateDone {
		t.Fatalf("final state = %s", orchestrator.State())
	}
}

func TestAlwaysFailingProbe(t *testing.T) {
	failingStub.axes = []matrix.Axis{{Name: "target", Values: []any{"x"}}}
	failingStub.run = func(context.Context, matrix.TestCase, probe.Deps) probe.Outcome {
		return probe.Failf(time.Millisecond, "unreachable")
	}

	orchestrator, err := New(config("stub_failing", map[string]any{"iterations": 3}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("probe failures must not abort the run: %v", err)
	}

	summary := result.Summary
	if summary.Successful != 0 || summary.Failed != 3 {
		t.Fatalf("summary counts = %d/%d", summary.Successful, summary.Failed)
	}
	if summary.SuccessRate != 0 || summary.AvgDurationMs != 0 {
		t.Fatalf("failed-only summary must be zero-valued: %+v", summary)
	}
	for _, cs := range result.TestCases {
		for _, outcome := range cs.Iterations {
			if outcome.Error == nil {
				t.Fatal("failed outcome missing error message")
			}
		}
	}
}

func TestCacheSharedAcrossIterations(t *testing.T) {
	var computations atomic.Int64
	cachingStub.axes = []matrix.Axis{{Name: "domains", Values: []any{"example.com"}}}
	cachingStub.run = func(_ context.Context, tc matrix.TestCase, deps probe.Deps) probe.Outcome {
		domain := probe.StringValue(tc, "domains", "")
		return deps.Cache.GetOrCompute(domain, func() probe.Outcome {
			computations.Add(1)
			return probe.Ok(time.Millisecond, nil)
		})
	}

	orchestrator, err := New(config("stub_caching", map[string]any{"iterations": 4}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if computations.Load() != 1 {
		t.Fatalf("cached computation ran %d times, want 1", computations.Load())
	}
	if result.Summary.Total != 4 {
		t.Fatalf("summary total = %d, want 4", result.Summary.Total)
	}

	// A second run gets a fresh cache.
	orchestrator, err = New(config("stub_caching", map[string]any{"iterations": 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if computations.Load() != 2 {
		t.Fatalf("second run must not reuse the first run's cache (computations = %d)", computations.Load())
	}
}

func TestZeroIterations(t *testing.T) {
	sweepStub.axes = []matrix.Axis{{Name: "size", Values: []any{1}}}
	sweepStub.run = func(context.Context, matrix.TestCase, probe.Deps) probe.Outcome {
		t.Error("probe must not run with zero iterations")
		return probe.Ok(0, nil)
	}

	orchestrator, err := New(config("stub_sweep", map[string]any{"iterations": 0}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	cs := result.TestCases[0]
	if cs.Total != 0 || cs.SuccessRate != 0 {
		t.Fatalf("zero-iteration stats = %+v", cs)
	}
}

func TestWarmupRunsDiscarded(t *testing.T) {
	var calls atomic.Int64
	sweepStub.axes = []matrix.Axis{{Name: "size", Values: []any{1}}}
	sweepStub.run = func(context.Context, matrix.TestCase, probe.Deps) probe.Outcome {
		calls.Add(1)
		return probe.Ok(time.Millisecond, nil)
	}

	orchestrator, err := New(config("stub_sweep", map[string]any{"iterations": 3, "warmup_runs": 2}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if calls.Load() != 5 {
		t.Fatalf("probe ran %d times, want 3 measured + 2 warmup", calls.Load())
	}
	if result.Summary.Total != 3 {
		t.Fatalf("warmup outcomes leaked into stats: total = %d", result.Summary.Total)
	}
}

func TestExecutionModesAxis(t *testing.T) {
	sweepStub.axes = []matrix.Axis{{Name: "size", Values: []any{1, 2}}}
	sweepStub.run = func(context.Context, matrix.TestCase, probe.Deps) probe.Outcome {
		return probe.Ok(time.Millisecond, nil)
	}

	orchestrator, err := New(config("stub_sweep", map[string]any{
		"iterations":         2,
		"concurrent_workers": 3,
		"execution_modes":    []any{"sequential", "concurrent"},
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := orchestrator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.TestCases) != 4 {
		t.Fatalf("mode axis should double the sweep: got %d cases", len(result.TestCases))
	}
	if result.Summary.Total != 8 {
		t.Fatalf("summary total = %d, want 8", result.Summary.Total)
	}
}

func TestUnknownBenchmarkIsConfigError(t *testing.T) {
	_, err := New(config("no_such_probe", nil))
	if !appconfig.IsConfigError(err) {
		t.Fatalf("got %v, want ConfigError", err)
	}
}

func TestEmptyAxisIsConfigError(t *testing.T) {
	_, err := New(config("stub_sweep", map[string]any{"size": []any{}}))
	if !appconfig.IsConfigError(err) {
		t.Fatalf("got %v, want ConfigError", err)
	}
}
