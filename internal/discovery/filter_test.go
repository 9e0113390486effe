package discovery

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		names    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			names:    []string{"test_user.py::test_a", "test_payment.py::test_b", "test_order.py::test_c"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			names:    []string{"test_user.py::test_a", "test_payment.py::test_b"},
			pattern:  "*::test_a",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			names:    []string{"test_payment.py::test_refund", "test_order.py::test_c", "test_payment_service.py::test_d"},
			pattern:  "*payment*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			names:    []string{"python-relay", "python-frontend-onnx-3", "python-topi"},
			pattern:  "onnx",
			expected: 1,
		},
		{
			name:     "no matches",
			names:    []string{"test_user.py::test_a"},
			pattern:  "*nonexistent*",
			expected: 0,
		},
		{
			name:     "matches last path element only",
			names:    []string{"tests/onnx/test_ops.py::test_a", "tests/relay/test_onnx.py::test_b"},
			pattern:  "*onnx*",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.names, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_Match_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("only wildcards", func(t *testing.T) {
		for _, pattern := range []string{"*", "**"} {
			if !filter.Match("anything", pattern) {
				t.Errorf("expected %q to match everything", pattern)
			}
			if !filter.Match("tests/ops/test_a.py::test_x", pattern) {
				t.Errorf("expected %q to match an identifier", pattern)
			}
		}
	})

	t.Run("question mark", func(t *testing.T) {
		if !filter.Match("python-relay-1", "python-relay-?") {
			t.Error("expected ? to match one character")
		}
		if filter.Match("python-relay-10", "python-relay-?") {
			t.Error("expected ? not to match two characters")
		}
	})
}
