// internal/appconfig/schema.go
package appconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ConfigError marks a fatal configuration failure: unreadable file, invalid
// JSON, or a document that violates the schema. It aborts the run before
// any execution.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// configSchema constrains the engine-interpreted fields; axis parameters
// are free-form arrays or scalars validated at matrix build time.
const configSchema = `{
	"type": "object",
	"required": ["benchmark", "parameters"],
	"properties": {
		"benchmark": {"type": "string", "minLength": 1},
		"parameters": {
			"type": "object",
			"properties": {
				"iterations": {"type": "integer", "minimum": 0},
				"concurrent_workers": {"type": "integer", "minimum": 1},
				"timeout_seconds": {"type": "number", "minimum": 0},
				"warmup_runs": {"type": "integer", "minimum": 0},
				"execution_modes": {
					"oneOf": [
						{"type": "string", "enum": ["sequential", "concurrent"]},
						{
							"type": "array",
							"items": {"type": "string", "enum": ["sequential", "concurrent"]}
						}
					]
				}
			}
		},
		"debug": {"type": "boolean"},
		"logFile": {"type": "string"},
		"export": {"type": "string"}
	}
}`

func validateSchema(raw []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, issue := range result.Errors() {
		issues = append(issues, issue.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(issues, "; "))
}
