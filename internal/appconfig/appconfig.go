// internal/appconfig/appconfig.go
// Package appconfig loads and interprets the benchmark configuration file.
package appconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/mwiater/benchmatrix/internal/matrix"
)

const (
	// defaultIterations is the per-test-case iteration count when the
	// configuration omits it.
	defaultIterations = 3
	// defaultWorkers bounds the concurrent strategy's pool width.
	defaultWorkers = 5
	// defaultTimeout is the per-invocation probe deadline.
	defaultTimeout = 5 * time.Second
)

// Reserved parameter names interpreted by the engine rather than swept as
// axes.
var reservedParameters = map[string]bool{
	"iterations":         true,
	"concurrent_workers": true,
	"timeout_seconds":    true,
	"warmup_runs":        true,
}

// AxisExecutionModes is the axis that selects the execution strategy per
// test case, mirroring the resolution_modes sweep of the network probes.
const AxisExecutionModes = "execution_modes"

// Config is the top-level benchmark configuration.
type Config struct {
	Benchmark  string         `json:"benchmark" mapstructure:"benchmark"`
	Parameters map[string]any `json:"parameters" mapstructure:"parameters"`
	Debug      bool           `json:"debug" mapstructure:"debug"`
	LogFile    string         `json:"logFile,omitempty" mapstructure:"logFile"`
	ExportPath string         `json:"export,omitempty" mapstructure:"export"`
	ConfigPath string         `json:"-" mapstructure:"-"`
}

// Load reads, schema-validates, and decodes the configuration at path.
// Every failure is a *ConfigError: fatal, reported once, before any
// execution.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{Err: fmt.Errorf("could not read config file %q: %w", path, err)}
	}
	if err := validateSchema(raw); err != nil {
		return Config{}, &ConfigError{Err: fmt.Errorf("invalid config file %q: %w", path, err)}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, &ConfigError{Err: fmt.Errorf("could not parse config file %q: %w", path, err)}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &ConfigError{Err: fmt.Errorf("could not decode config file %q: %w", path, err)}
	}
	if cfg.Parameters == nil {
		cfg.Parameters = make(map[string]any)
	}
	cfg.ConfigPath = path
	return cfg, nil
}

// Iterations returns the configured per-test-case iteration count. Zero is
// a valid sweep (it produces empty statistics, not an error).
func (c Config) Iterations() int {
	n := c.paramInt("iterations", defaultIterations)
	if n < 0 {
		return 0
	}
	return n
}

// Workers returns the concurrent strategy's pool width.
func (c Config) Workers() int {
	n := c.paramInt("concurrent_workers", defaultWorkers)
	if n < 1 {
		return 1
	}
	return n
}

// Timeout returns the per-invocation probe deadline.
func (c Config) Timeout() time.Duration {
	secs := c.paramFloat("timeout_seconds", defaultTimeout.Seconds())
	if secs <= 0 {
		return defaultTimeout
	}
	return time.Duration(secs * float64(time.Second))
}

// WarmupRuns returns the number of discarded warmup iterations per test
// case.
func (c Config) WarmupRuns() int {
	n := c.paramInt("warmup_runs", 0)
	if n < 0 {
		return 0
	}
	return n
}

// Axes resolves the sweep dimensions for a probe: the probe's default axes
// in canonical order, with values overridden by matching configuration
// parameters, followed by any additional configured axes in name order so
// expansion stays deterministic. Scalar parameters become single-value
// axes.
func (c Config) Axes(defaults []matrix.Axis) []matrix.Axis {
	axes := make([]matrix.Axis, 0, len(defaults))
	seen := make(map[string]bool, len(defaults))
	for _, axis := range defaults {
		if raw, ok := c.Parameters[axis.Name]; ok {
			axes = append(axes, matrix.Axis{Name: axis.Name, Values: axisValues(raw)})
		} else {
			axes = append(axes, axis)
		}
		seen[axis.Name] = true
	}

	var extra []matrix.Axis
	for name, raw := range c.Parameters {
		if seen[name] || reservedParameters[name] {
			continue
		}
		extra = append(extra, matrix.Axis{Name: name, Values: axisValues(raw)})
	}
	matrix.SortAxes(extra)
	return append(axes, extra...)
}

func axisValues(raw any) []any {
	if list, ok := raw.([]any); ok {
		return list
	}
	return []any{raw}
}

func (c Config) paramInt(name string, fallback int) int {
	switch v := c.Parameters[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func (c Config) paramFloat(name string, fallback float64) float64 {
	switch v := c.Parameters[name].(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return fallback
	}
}
