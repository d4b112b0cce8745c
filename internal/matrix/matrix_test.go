package matrix

import (
	"reflect"
	"testing"
)

func collect(m *Matrix) []TestCase {
	var cases []TestCase
	for tc := range m.Cases() {
		cases = append(cases, tc)
	}
	return cases
}

func TestExpandProductLength(t *testing.T) {
	m, err := New([]Axis{
		{Name: "size", Values: []any{10, 20, 30}},
		{Name: "type", Values: []any{"a", "b"}},
		{Name: "level", Values: []any{1, 2}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Len() != 12 {
		t.Fatalf("Len() = %d, want 12", m.Len())
	}
	if got := len(collect(m)); got != 12 {
		t.Fatalf("expanded %d cases, want 12", got)
	}
}

func TestExpandRightmostFastest(t *testing.T) {
	m, err := New([]Axis{
		{Name: "size", Values: []any{10, 20}},
		{Name: "type", Values: []any{"a", "b"}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []string{
		"size=10,type=a",
		"size=10,type=b",
		"size=20,type=a",
		"size=20,type=b",
	}
	cases := collect(m)
	for i, tc := range cases {
		if tc.ID != want[i] {
			t.Fatalf("case %d = %q, want %q", i, tc.ID, want[i])
		}
		if tc.Index != i {
			t.Fatalf("case %d has Index %d", i, tc.Index)
		}
	}
}

func TestExpandRestartable(t *testing.T) {
	m, err := New([]Axis{
		{Name: "size", Values: []any{1, 2}},
		{Name: "type", Values: []any{"x", "y", "z"}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first := collect(m)
	second := collect(m)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two expansions differ:\n%v\n%v", first, second)
	}
}

func TestExpandSingleAxisSingleValue(t *testing.T) {
	m, err := New([]Axis{{Name: "size", Values: []any{42}}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cases := collect(m)
	if len(cases) != 1 {
		t.Fatalf("expanded %d cases, want 1", len(cases))
	}
	if cases[0].Values["size"] != 42 {
		t.Fatalf("case values = %v", cases[0].Values)
	}
}

func TestExpandZeroAxes(t *testing.T) {
	m, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cases := collect(m)
	if len(cases) != 1 {
		t.Fatalf("expanded %d cases, want 1 degenerate case", len(cases))
	}
	if len(cases[0].Values) != 0 {
		t.Fatalf("degenerate case has values %v", cases[0].Values)
	}
}

func TestEmptyAxisRejected(t *testing.T) {
	if _, err := New([]Axis{{Name: "size", Values: nil}}); err == nil {
		t.Fatal("expected error for axis with no values")
	}
}

func TestExpandStopsEarly(t *testing.T) {
	m, err := New([]Axis{{Name: "n", Values: []any{1, 2, 3, 4}}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	seen := 0
	for range m.Cases() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("saw %d cases before break", seen)
	}
}
