// internal/datagen/datagen.go
// Package datagen produces deterministic test payloads for probes that sweep
// over payload size and shape. Generation is seeded so the same parameters
// always yield the same bytes, keeping iteration timings comparable.
package datagen

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
)

const textAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 \n"

// DefaultSeed keeps payloads stable across iterations of a run.
const DefaultSeed int64 = 42

// Bytes generates a payload of exactly size bytes of the given kind.
// Supported kinds: text, binary, repetitive, json.
func Bytes(size int, kind string, seed int64) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("payload size must be non-negative, got %d", size)
	}
	rng := rand.New(rand.NewSource(seed))

	switch kind {
	case "text":
		out := make([]byte, size)
		for i := range out {
			out[i] = textAlphabet[rng.Intn(len(textAlphabet))]
		}
		return out, nil

	case "binary":
		out := make([]byte, size)
		for i := range out {
			out[i] = byte(rng.Intn(256))
		}
		return out, nil

	case "repetitive":
		pattern := []byte("benchmark payload ")
		out := make([]byte, size)
		for i := range out {
			out[i] = pattern[i%len(pattern)]
		}
		return out, nil

	case "json":
		doc, err := jsonBytes(size, rng)
		if err != nil {
			return nil, err
		}
		return doc, nil

	default:
		return nil, fmt.Errorf("unknown data type: %s", kind)
	}
}

type record struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Value  int    `json:"value"`
	Active bool   `json:"active"`
	Data   string `json:"data"`
}

func jsonBytes(size int, rng *rand.Rand) ([]byte, error) {
	var records []record
	encoded := []byte("[]")
	for len(encoded) < size {
		records = append(records, record{
			ID:     len(records),
			Name:   randomString(rng, 10),
			Value:  rng.Intn(1000) + 1,
			Active: rng.Intn(2) == 1,
			Data:   randomString(rng, 50),
		})
		var err error
		encoded, err = json.Marshal(records)
		if err != nil {
			return nil, err
		}
	}
	if len(encoded) > size {
		encoded = encoded[:size]
	}
	return encoded, nil
}

// Records generates count JSON-marshalable records for parse benchmarks.
func Records(count int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	records := make([]record, count)
	for i := range records {
		records[i] = record{
			ID:     i + 1,
			Name:   randomString(rng, 10),
			Value:  rng.Intn(1000) + 1,
			Active: rng.Intn(2) == 1,
			Data:   randomString(rng, 50),
		}
	}
	encoded, _ := json.Marshal(records)
	return encoded
}

// CSV generates a CSV document with a header row plus rows data rows of
// cols columns each.
func CSV(rows, cols int, seed int64) ([]byte, error) {
	if rows < 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid csv dimensions %dx%d", rows, cols)
	}
	rng := rand.New(rand.NewSource(seed))

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := make([]string, cols)
	for i := range header {
		header[i] = "col_" + strconv.Itoa(i+1)
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	row := make([]string, cols)
	for r := 0; r < rows; r++ {
		for c := range row {
			if c%2 == 0 {
				row[c] = strconv.Itoa(rng.Intn(10000))
			} else {
				row[c] = randomString(rng, 8)
			}
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func randomString(rng *rand.Rand, length int) string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	out := make([]byte, length)
	for i := range out {
		out[i] = chars[rng.Intn(len(chars))]
	}
	return string(out)
}
