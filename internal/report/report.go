// internal/report/report.go
// Package report assembles and emits the benchmark report document.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mwiater/benchmatrix/internal/stats"
	"github.com/mwiater/benchmatrix/internal/util"
)

// Report is the contractual output of a run: written once, pretty-printed,
// to stdout after the run completes.
type Report struct {
	Benchmark          string            `json:"benchmark"`
	StartTime          int64             `json:"start_time"`
	TestCases          []stats.CaseStats `json:"test_cases"`
	Summary            stats.Summary     `json:"summary"`
	EndTime            int64             `json:"end_time"`
	TotalExecutionTime float64           `json:"total_execution_time"`
}

// New assembles a report from the run's aggregates.
func New(benchmark string, start, end time.Time, cases []stats.CaseStats, summary stats.Summary) Report {
	return Report{
		Benchmark:          benchmark,
		StartTime:          start.Unix(),
		TestCases:          cases,
		Summary:            summary,
		EndTime:            end.Unix(),
		TotalExecutionTime: end.Sub(start).Seconds(),
	}
}

// Write emits the report as indented JSON.
func Write(w io.Writer, r Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}

// Export writes the report to path. A directory path gets a generated
// file name derived from the benchmark name and iteration volume.
func Export(path string, r Report) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		name := fmt.Sprintf("%s-%d.json", util.Slugify(r.Benchmark), r.Summary.Total)
		path = filepath.Join(path, name)
	} else if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("error creating export directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding report: %w", err)
	}
	if err := util.WriteFile(path, append(data, '\n')); err != nil {
		return "", fmt.Errorf("error writing report file: %w", err)
	}
	return path, nil
}
