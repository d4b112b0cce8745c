// internal/probe/jsonparse.go
package probe

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mwiater/benchmatrix/internal/datagen"
	"github.com/mwiater/benchmatrix/internal/matrix"
)

// jsonProbe parses generated JSON documents of varying record counts.
// Generation happens outside the timed section; only the parse is measured.
type jsonProbe struct{}

func init() { Register(jsonProbe{}) }

func (jsonProbe) Name() string        { return "json_parsing" }
func (jsonProbe) Description() string { return "Parse generated JSON documents" }

func (jsonProbe) DefaultAxes() []matrix.Axis {
	return []matrix.Axis{
		{Name: "record_counts", Values: []any{100, 1000}},
	}
}

func (jsonProbe) Run(ctx context.Context, tc matrix.TestCase, _ Deps) Outcome {
	count := IntValue(tc, "record_counts", 100)
	payload := datagen.Records(count, datagen.DefaultSeed)

	start := time.Now()
	var parsed []map[string]any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return Failf(time.Since(start), "parse json: %v", err)
	}
	elapsed := time.Since(start)

	return Ok(elapsed, map[string]float64{
		"records":       float64(len(parsed)),
		"payload_bytes": float64(len(payload)),
	})
}

func (jsonProbe) Check(context.Context) error { return nil }
