// internal/probe/alloc.go
package probe

import (
	"context"
	"time"

	"github.com/mwiater/benchmatrix/internal/matrix"
)

// allocProbe exercises the allocator: one contiguous block, or the same
// total split into fixed-size chunks. Every byte is touched so allocations
// cannot be optimized away.
type allocProbe struct{}

func init() { Register(allocProbe{}) }

const allocChunkSize = 4096

func (allocProbe) Name() string        { return "memory_allocation" }
func (allocProbe) Description() string { return "Time memory allocation patterns" }

func (allocProbe) DefaultAxes() []matrix.Axis {
	return []matrix.Axis{
		{Name: "allocation_sizes", Values: []any{1048576, 10485760}},
		{Name: "allocation_patterns", Values: []any{"contiguous", "chunked"}},
	}
}

func (allocProbe) Run(ctx context.Context, tc matrix.TestCase, _ Deps) Outcome {
	size := IntValue(tc, "allocation_sizes", 1048576)
	pattern := StringValue(tc, "allocation_patterns", "contiguous")

	start := time.Now()
	chunks := 0
	switch pattern {
	case "contiguous":
		block := make([]byte, size)
		for i := 0; i < len(block); i += allocChunkSize {
			block[i] = byte(i)
		}
		chunks = 1
	case "chunked":
		for allocated := 0; allocated < size; allocated += allocChunkSize {
			chunk := make([]byte, allocChunkSize)
			chunk[0] = byte(chunks)
			chunks++
		}
	default:
		return Failf(time.Since(start), "unknown allocation pattern %q", pattern)
	}
	elapsed := time.Since(start)

	return Ok(elapsed, map[string]float64{
		"allocated_bytes": float64(size),
		"chunks":          float64(chunks),
	})
}

func (allocProbe) Check(context.Context) error { return nil }
