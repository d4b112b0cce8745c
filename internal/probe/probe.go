// internal/probe/probe.go
// Package probe defines the unit of work under benchmark. A probe is opaque
// to the orchestration core: it receives one test case's parameter values
// and returns a timed outcome, which may be a failure.
package probe

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mwiater/benchmatrix/internal/cache"
	"github.com/mwiater/benchmatrix/internal/matrix"
)

// Deps carries run-scoped collaborators the orchestrator constructs and
// injects into probes that need them. Probes must not hold state across runs.
type Deps struct {
	// Cache memoizes outcomes for probes whose real-world target does not
	// change within a run, keyed by probe input identity.
	Cache *cache.Store[Outcome]
}

// Probe is a pluggable timed operation.
type Probe interface {
	// Name is the registry key used as the "benchmark" config value.
	Name() string
	// Description is a one-line summary for the list command.
	Description() string
	// DefaultAxes returns the probe's sweep dimensions with their documented
	// single-value (or small) defaults, in canonical expansion order.
	DefaultAxes() []matrix.Axis
	// Run executes one iteration for the given test case. Failures are
	// reported through the outcome, never by panicking; ctx carries the
	// per-invocation deadline.
	Run(ctx context.Context, tc matrix.TestCase, deps Deps) Outcome
	// Check verifies the probe can run in the current environment.
	Check(ctx context.Context) error
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]Probe)
)

// Register adds a probe to the registry. Registering a duplicate name
// panics; it indicates a programming error, not a runtime condition.
func Register(p Probe) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[p.Name()]; exists {
		panic(fmt.Sprintf("probe %q registered twice", p.Name()))
	}
	registry[p.Name()] = p
}

// Lookup returns the registered probe for name.
func Lookup(name string) (Probe, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	p, ok := registry[name]
	return p, ok
}

// Names returns the registered probe names in sorted order.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered probes sorted by name.
func All() []Probe {
	probes := make([]Probe, 0)
	for _, name := range Names() {
		p, _ := Lookup(name)
		probes = append(probes, p)
	}
	return probes
}
