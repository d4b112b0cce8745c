// internal/probe/compress.go
package probe

import (
	"bytes"
	"compress/gzip"
	"context"
	"time"

	"github.com/mwiater/benchmatrix/internal/datagen"
	"github.com/mwiater/benchmatrix/internal/matrix"
)

// gzipProbe compresses a generated payload and records the ratio. Payloads
// are seeded so every iteration of a test case compresses identical bytes.
type gzipProbe struct{}

func init() { Register(gzipProbe{}) }

func (gzipProbe) Name() string        { return "gzip_compression" }
func (gzipProbe) Description() string { return "Compress generated payloads with gzip" }

func (gzipProbe) DefaultAxes() []matrix.Axis {
	return []matrix.Axis{
		{Name: "input_sizes", Values: []any{10240, 102400}},
		{Name: "data_types", Values: []any{"text"}},
		{Name: "compression_levels", Values: []any{6}},
	}
}

func (gzipProbe) Run(ctx context.Context, tc matrix.TestCase, _ Deps) Outcome {
	size := IntValue(tc, "input_sizes", 10240)
	kind := StringValue(tc, "data_types", "text")
	level := IntValue(tc, "compression_levels", gzip.DefaultCompression)

	payload, err := datagen.Bytes(size, kind, datagen.DefaultSeed)
	if err != nil {
		return Fail(0, err)
	}

	start := time.Now()
	var buf bytes.Buffer
	writer, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return Failf(time.Since(start), "invalid compression level %d: %v", level, err)
	}
	if _, err := writer.Write(payload); err != nil {
		return Failf(time.Since(start), "compress: %v", err)
	}
	if err := writer.Close(); err != nil {
		return Failf(time.Since(start), "compress: %v", err)
	}
	elapsed := time.Since(start)

	ratio := 0.0
	if buf.Len() > 0 {
		ratio = float64(len(payload)) / float64(buf.Len())
	}
	return Ok(elapsed, map[string]float64{
		"original_bytes":    float64(len(payload)),
		"compressed_bytes":  float64(buf.Len()),
		"compression_ratio": ratio,
	})
}

func (gzipProbe) Check(context.Context) error {
	_, err := datagen.Bytes(16, "text", datagen.DefaultSeed)
	return err
}
