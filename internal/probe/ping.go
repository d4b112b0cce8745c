// internal/probe/ping.go
package probe

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"time"

	"github.com/mwiater/benchmatrix/internal/matrix"
)

// pingProbe shells out to the system ping command. The subprocess blocks
// until ping's own timeout fires, so a per-job deadline on this probe is
// coarse: the deadline marks the iteration failed while the process winds
// down on its own.
type pingProbe struct{}

func init() { Register(pingProbe{}) }

func (pingProbe) Name() string        { return "ping" }
func (pingProbe) Description() string { return "Measure round-trip latency via the system ping command" }

func (pingProbe) DefaultAxes() []matrix.Axis {
	return []matrix.Axis{
		{Name: "targets", Values: []any{"8.8.8.8", "1.1.1.1"}},
	}
}

var (
	pingLossRe = regexp.MustCompile(`(\d+(?:\.\d+)?)% packet loss`)
	pingRTTRe  = regexp.MustCompile(`rtt min/avg/max/mdev = ([\d.]+)/([\d.]+)/([\d.]+)/([\d.]+) ms`)
)

func (pingProbe) Run(ctx context.Context, tc matrix.TestCase, _ Deps) Outcome {
	target := StringValue(tc, "targets", "8.8.8.8")
	count := IntValue(tc, "packet_count", 3)

	start := time.Now()
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "ping", "-n", strconv.Itoa(count), target)
	} else {
		cmd = exec.CommandContext(ctx, "ping", "-c", strconv.Itoa(count), target)
	}

	output, err := cmd.CombinedOutput()
	elapsed := time.Since(start)
	if err != nil {
		return Failf(elapsed, "ping %s failed: %v", target, err)
	}

	metrics, err := parsePingOutput(string(output))
	if err != nil {
		return Fail(elapsed, err)
	}
	return Ok(elapsed, metrics)
}

// parsePingOutput extracts packet loss and rtt statistics from Unix-style
// ping output.
func parsePingOutput(output string) (map[string]float64, error) {
	metrics := map[string]float64{
		"packet_loss":    0,
		"avg_latency_ms": 0,
		"min_latency_ms": 0,
		"max_latency_ms": 0,
	}

	if m := pingLossRe.FindStringSubmatch(output); m != nil {
		loss, _ := strconv.ParseFloat(m[1], 64)
		metrics["packet_loss"] = loss
	}

	if m := pingRTTRe.FindStringSubmatch(output); m != nil {
		minLat, _ := strconv.ParseFloat(m[1], 64)
		avgLat, _ := strconv.ParseFloat(m[2], 64)
		maxLat, _ := strconv.ParseFloat(m[3], 64)
		metrics["min_latency_ms"] = minLat
		metrics["avg_latency_ms"] = avgLat
		metrics["max_latency_ms"] = maxLat
		return metrics, nil
	}

	if metrics["packet_loss"] >= 100 {
		return nil, fmt.Errorf("all packets lost")
	}
	return nil, fmt.Errorf("could not parse ping output")
}

func (pingProbe) Check(context.Context) error {
	if _, err := exec.LookPath("ping"); err != nil {
		return fmt.Errorf("ping command not available: %w", err)
	}
	return nil
}
