// internal/stats/stats.go
// Package stats reduces iteration outcomes into per-test-case statistics and
// rolls those up into a run summary. Both reductions are pure: they
// recompute from their inputs rather than mutating accumulators in place.
package stats

import (
	"github.com/mwiater/benchmatrix/internal/matrix"
	"github.com/mwiater/benchmatrix/internal/probe"
)

// CaseStats aggregates every iteration outcome for one test case.
// Durations and metric means cover successful outcomes only; an empty
// successful set yields zeros, never NaN, so the report JSON stays
// well-formed.
type CaseStats struct {
	Case          string             `json:"test_case"`
	Parameters    map[string]any     `json:"parameters"`
	Total         int                `json:"total"`
	Successful    int                `json:"successful"`
	Failed        int                `json:"failed"`
	SuccessRate   float64            `json:"success_rate"`
	AvgDurationMs float64            `json:"avg_duration_ms"`
	MinDurationMs float64            `json:"min_duration_ms"`
	MaxDurationMs float64            `json:"max_duration_ms"`
	MetricMeans   map[string]float64 `json:"metric_means,omitempty"`
	Iterations    []probe.Outcome    `json:"iterations"`
}

// Summary aggregates across all test cases, weighted by each case's
// outcome counts so cases with more iterations count proportionally.
type Summary struct {
	TestCases     int                `json:"test_cases"`
	Total         int                `json:"total"`
	Successful    int                `json:"successful"`
	Failed        int                `json:"failed"`
	SuccessRate   float64            `json:"success_rate"`
	AvgDurationMs float64            `json:"avg_duration_ms"`
	MinDurationMs float64            `json:"min_duration_ms"`
	MaxDurationMs float64            `json:"max_duration_ms"`
	MetricMeans   map[string]float64 `json:"metric_means,omitempty"`
}

// Fold reduces one test case's outcomes into CaseStats.
func Fold(tc matrix.TestCase, outcomes []probe.Outcome) CaseStats {
	cs := CaseStats{
		Case:       tc.ID,
		Parameters: tc.Values,
		Total:      len(outcomes),
		Iterations: outcomes,
	}

	var durationSum float64
	metricSums := make(map[string]float64)
	metricCounts := make(map[string]int)

	for _, outcome := range outcomes {
		if !outcome.Success {
			cs.Failed++
			continue
		}
		if cs.Successful == 0 {
			cs.MinDurationMs = outcome.DurationMs
			cs.MaxDurationMs = outcome.DurationMs
		} else {
			cs.MinDurationMs = min(cs.MinDurationMs, outcome.DurationMs)
			cs.MaxDurationMs = max(cs.MaxDurationMs, outcome.DurationMs)
		}
		cs.Successful++
		durationSum += outcome.DurationMs
		for name, value := range outcome.Metrics {
			metricSums[name] += value
			metricCounts[name]++
		}
	}

	if cs.Successful > 0 {
		cs.AvgDurationMs = durationSum / float64(cs.Successful)
	}
	if cs.Total > 0 {
		cs.SuccessRate = float64(cs.Successful) / float64(cs.Total) * 100
	}
	if len(metricSums) > 0 {
		cs.MetricMeans = make(map[string]float64, len(metricSums))
		for name, sum := range metricSums {
			cs.MetricMeans[name] = sum / float64(metricCounts[name])
		}
	}
	return cs
}

// Merge reduces per-case statistics into the run summary. Per-case duration
// means are weighted by their successful counts and metric means by each
// metric's own outcome count, so both equal the mean over every outcome
// that contributes to them.
func Merge(cases []CaseStats) Summary {
	summary := Summary{TestCases: len(cases)}

	var durationSum float64
	metricSums := make(map[string]float64)
	metricWeights := make(map[string]float64)
	boundsSet := false

	for _, cs := range cases {
		summary.Total += cs.Total
		summary.Successful += cs.Successful
		summary.Failed += cs.Failed
		if cs.Successful == 0 {
			continue
		}

		weight := float64(cs.Successful)
		durationSum += cs.AvgDurationMs * weight
		if !boundsSet {
			summary.MinDurationMs = cs.MinDurationMs
			summary.MaxDurationMs = cs.MaxDurationMs
			boundsSet = true
		} else {
			summary.MinDurationMs = min(summary.MinDurationMs, cs.MinDurationMs)
			summary.MaxDurationMs = max(summary.MaxDurationMs, cs.MaxDurationMs)
		}
		// Metrics may be present on only a subset of a case's successful
		// outcomes, so the run-level mean is accumulated per outcome rather
		// than re-weighted from the per-case means.
		for _, outcome := range cs.Iterations {
			if !outcome.Success {
				continue
			}
			for name, value := range outcome.Metrics {
				metricSums[name] += value
				metricWeights[name]++
			}
		}
	}

	if summary.Successful > 0 {
		summary.AvgDurationMs = durationSum / float64(summary.Successful)
	}
	if summary.Total > 0 {
		summary.SuccessRate = float64(summary.Successful) / float64(summary.Total) * 100
	}
	if len(metricSums) > 0 {
		summary.MetricMeans = make(map[string]float64, len(metricSums))
		for name, sum := range metricSums {
			summary.MetricMeans[name] = sum / metricWeights[name]
		}
	}
	return summary
}
