// internal/probe/csvproc.go
package probe

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/mwiater/benchmatrix/internal/datagen"
	"github.com/mwiater/benchmatrix/internal/matrix"
)

// csvProbe parses generated CSV documents of varying dimensions.
type csvProbe struct{}

func init() { Register(csvProbe{}) }

func (csvProbe) Name() string        { return "csv_processing" }
func (csvProbe) Description() string { return "Parse generated CSV documents" }

func (csvProbe) DefaultAxes() []matrix.Axis {
	return []matrix.Axis{
		{Name: "row_counts", Values: []any{100, 1000}},
		{Name: "column_counts", Values: []any{10}},
	}
}

func (csvProbe) Run(ctx context.Context, tc matrix.TestCase, _ Deps) Outcome {
	rows := IntValue(tc, "row_counts", 100)
	cols := IntValue(tc, "column_counts", 10)

	payload, err := datagen.CSV(rows, cols, datagen.DefaultSeed)
	if err != nil {
		return Fail(0, err)
	}

	start := time.Now()
	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	elapsed := time.Since(start)
	if err != nil {
		return Failf(elapsed, "parse csv: %v", err)
	}

	cells := 0
	for _, record := range records {
		cells += len(record)
	}
	return Ok(elapsed, map[string]float64{
		"rows":          float64(len(records)),
		"cells":         float64(cells),
		"payload_bytes": float64(len(payload)),
	})
}

func (csvProbe) Check(context.Context) error {
	_, err := datagen.CSV(1, 1, datagen.DefaultSeed)
	return err
}
