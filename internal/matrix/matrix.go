// internal/matrix/matrix.go
// Package matrix expands a set of parameter axes into the ordered Cartesian
// product of test cases.
package matrix

import (
	"fmt"
	"iter"
	"sort"
	"strings"
)

// Axis is one named sweep dimension with its ordered candidate values.
// Axes are immutable once a Matrix is built.
type Axis struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

// TestCase is one concrete combination of axis values. ID is the stable
// tuple identity used as a map and cache key.
type TestCase struct {
	Index  int            `json:"index"`
	ID     string         `json:"id"`
	Values map[string]any `json:"values"`
}

// Matrix holds a validated, ordered set of axes ready for expansion.
type Matrix struct {
	axes []Axis
}

// New validates the axes and returns a Matrix. An axis declared with zero
// candidate values is a configuration error. Zero axes is allowed and
// degenerates to a single empty test case.
func New(axes []Axis) (*Matrix, error) {
	for _, axis := range axes {
		if len(axis.Values) == 0 {
			return nil, fmt.Errorf("axis %q has no candidate values", axis.Name)
		}
	}
	return &Matrix{axes: append([]Axis(nil), axes...)}, nil
}

// Axes returns the axes in declaration order.
func (m *Matrix) Axes() []Axis {
	return append([]Axis(nil), m.axes...)
}

// Len returns the number of test cases the matrix expands to.
func (m *Matrix) Len() int {
	n := 1
	for _, axis := range m.axes {
		n *= len(axis.Values)
	}
	return n
}

// Cases returns the Cartesian product as a lazy, restartable sequence in
// nested-loop order: the rightmost axis varies fastest. Combinations are
// produced on demand so large sweeps are never materialized up front.
func (m *Matrix) Cases() iter.Seq[TestCase] {
	return func(yield func(TestCase) bool) {
		cursors := make([]int, len(m.axes))
		for index := 0; ; index++ {
			if !yield(m.caseAt(index, cursors)) {
				return
			}
			pos := len(cursors) - 1
			for pos >= 0 {
				cursors[pos]++
				if cursors[pos] < len(m.axes[pos].Values) {
					break
				}
				cursors[pos] = 0
				pos--
			}
			if pos < 0 {
				return
			}
		}
	}
}

func (m *Matrix) caseAt(index int, cursors []int) TestCase {
	values := make(map[string]any, len(m.axes))
	parts := make([]string, 0, len(m.axes))
	for i, axis := range m.axes {
		value := axis.Values[cursors[i]]
		values[axis.Name] = value
		parts = append(parts, fmt.Sprintf("%s=%v", axis.Name, value))
	}
	return TestCase{
		Index:  index,
		ID:     strings.Join(parts, ","),
		Values: values,
	}
}

// SortAxes orders axes by name. Used for axes that arrive from an unordered
// source (a JSON object) so expansion order stays deterministic.
func SortAxes(axes []Axis) {
	sort.Slice(axes, func(i, j int) bool { return axes[i].Name < axes[j].Name })
}
