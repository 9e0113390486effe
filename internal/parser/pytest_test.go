package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const failedOutput = `============================= test session starts ==============================
collected 12 items

tests/test_ops.py ..F.......E.                                            [100%]

=========================== short test summary info ============================
FAILED tests/test_ops.py::test_dense - AssertionError: mismatch
ERROR tests/test_ops.py::test_conv - RuntimeError: out of memory
============= 1 failed, 10 passed, 2 skipped, 1 error in 3.21s =================
`

func TestPytestParser_ParseTestCounts(t *testing.T) {
	p := NewPytestParser()

	tests := []struct {
		name           string
		output         string
		success        bool
		passed, failed int
	}{
		{name: "failures and errors", output: failedOutput, passed: 10, failed: 2},
		{name: "all passed", output: "====== 42 passed in 1.00s ======\n", success: true, passed: 42},
		{name: "quiet summary", output: "..\n2 passed, 1 warning in 0.12s\n", success: true, passed: 2},
		{name: "fallback success", output: "garbage", success: true, passed: 1},
		{name: "fallback failure", output: "Segmentation fault", success: false, failed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed, failed := p.ParseTestCounts(tt.output, tt.success)
			assert.Equal(t, tt.passed, passed)
			assert.Equal(t, tt.failed, failed)
		})
	}
}

func TestPytestParser_SummaryLine(t *testing.T) {
	p := NewPytestParser()
	assert.Equal(t, "1 failed, 10 passed, 2 skipped, 1 error in 3.21s", p.SummaryLine(failedOutput))
	assert.Equal(t, "no tests ran in 0.01s", p.SummaryLine("===== no tests ran in 0.01s =====\n"))
	assert.Equal(t, "", p.SummaryLine("collected 0 items\n"))
}

func TestPytestParser_Diagnostic(t *testing.T) {
	p := NewPytestParser()

	assert.Equal(t, strings.Join([]string{
		"1 failed, 10 passed, 2 skipped, 1 error in 3.21s",
		"FAILED tests/test_ops.py::test_dense - AssertionError: mismatch",
		"ERROR tests/test_ops.py::test_conv - RuntimeError: out of memory",
	}, "\n"), p.Diagnostic(failedOutput))

	t.Run("caps failure lines", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < MaxFailureLines+5; i++ {
			fmt.Fprintf(&b, "FAILED tests/test_x.py::test_%d\n", i)
		}
		b.WriteString("25 failed in 1.00s\n")
		diag := p.Diagnostic(b.String())
		lines := strings.Split(diag, "\n")
		assert.Len(t, lines, MaxFailureLines+2)
		assert.Equal(t, "... 5 more", lines[len(lines)-1])
	})
}
