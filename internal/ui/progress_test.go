package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBarTo(&buf, 3)
	bar.Update(1, 1)
	bar.Finish()

	out := buf.String()
	assert.Contains(t, out, "Running groups:")
	assert.Contains(t, out, "passed: 1")
	assert.Contains(t, out, "failed: 1")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Running groups: [passed: 2 | failed: 0]", describe(2, 0))
}
