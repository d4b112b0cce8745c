// internal/probe/outcome.go
package probe

import (
	"fmt"
	"time"
)

// Failure kinds recorded on unsuccessful outcomes. Timeouts are a probe
// failure subtype with packet-loss semantics: the iteration counts as
// failed, never aborts the batch.
const (
	FailureProbe   = "probe"
	FailureTimeout = "timeout"
)

// Outcome is the result of one probe invocation. Immutable once produced.
type Outcome struct {
	Success    bool               `json:"success"`
	DurationMs float64            `json:"duration_ms"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
	Error      *string            `json:"error,omitempty"`
	ErrorKind  string             `json:"error_kind,omitempty"`
}

// Ok builds a successful outcome for the elapsed duration.
func Ok(elapsed time.Duration, metrics map[string]float64) Outcome {
	return Outcome{
		Success:    true,
		DurationMs: millis(elapsed),
		Metrics:    metrics,
	}
}

// Fail builds a failed outcome carrying the error message.
func Fail(elapsed time.Duration, err error) Outcome {
	msg := err.Error()
	return Outcome{
		DurationMs: millis(elapsed),
		Error:      &msg,
		ErrorKind:  FailureProbe,
	}
}

// Failf builds a failed outcome from a formatted message.
func Failf(elapsed time.Duration, format string, args ...any) Outcome {
	return Fail(elapsed, fmt.Errorf(format, args...))
}

// Timeout builds a failed outcome for a probe that exceeded its deadline.
func Timeout(elapsed, limit time.Duration) Outcome {
	msg := fmt.Sprintf("deadline exceeded after %s (limit %s)", elapsed.Round(time.Millisecond), limit)
	return Outcome{
		DurationMs: millis(elapsed),
		Error:      &msg,
		ErrorKind:  FailureTimeout,
	}
}

// TimedOut reports whether the outcome failed on its deadline.
func (o Outcome) TimedOut() bool {
	return o.ErrorKind == FailureTimeout
}

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
