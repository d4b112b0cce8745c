// internal/probe/params.go
package probe

import (
	"fmt"
	"strconv"

	"github.com/mwiater/benchmatrix/internal/matrix"
)

// StringValue reads a string-valued parameter from the test case, falling
// back when the axis is absent. Non-string values are formatted.
func StringValue(tc matrix.TestCase, name, fallback string) string {
	value, ok := tc.Values[name]
	if !ok {
		return fallback
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// IntValue reads an integer-valued parameter from the test case. JSON
// numbers decode as float64, so both forms are accepted.
func IntValue(tc matrix.TestCase, name string, fallback int) int {
	value, ok := tc.Values[name]
	if !ok {
		return fallback
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
