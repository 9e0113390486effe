package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardReport_Status(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		expected Status
	}{
		{name: "empty shard passes", statuses: nil, expected: StatusPassed},
		{name: "all passed", statuses: []Status{StatusPassed, StatusPassed}, expected: StatusPassed},
		{name: "one failed", statuses: []Status{StatusPassed, StatusFailed, StatusPassed}, expected: StatusFailed},
		{name: "one errored", statuses: []Status{StatusError}, expected: StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var report ShardReport
			for i, s := range tt.statuses {
				report.Results = append(report.Results, RunResult{Label: fmt.Sprintf("g%d", i), Status: s})
			}
			assert.Equal(t, tt.expected, report.Status())
		})
	}
}

func TestShardReport_Counts(t *testing.T) {
	report := ShardReport{Results: []RunResult{
		{Status: StatusPassed},
		{Status: StatusFailed},
		{Status: StatusError},
		{Status: StatusPassed},
	}}
	passed, failed, errored := report.Counts()
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, errored)
}

func TestRunReport_ExitCode(t *testing.T) {
	passing := ShardReport{Shard: 1, Results: []RunResult{{Status: StatusPassed}}}
	failing := ShardReport{Shard: 2, Results: []RunResult{{Status: StatusPassed}, {Status: StatusError}}}

	assert.Equal(t, 0, RunReport{}.ExitCode())
	assert.Equal(t, 0, RunReport{Shards: []ShardReport{passing}}.ExitCode())
	assert.Equal(t, 1, RunReport{Shards: []ShardReport{passing, failing}}.ExitCode())
}

func TestRunReport_Failures(t *testing.T) {
	report := RunReport{Shards: []ShardReport{
		{Shard: 1, Results: []RunResult{{Label: "a", Status: StatusPassed}}},
		{Shard: 2, Results: []RunResult{
			{Label: "b", Target: "tests/b", Ordinal: 1, Status: StatusFailed, Summary: "1 failed in 0.2s", Diagnostic: "1 failed"},
			{Label: "c", Ordinal: 2, Status: StatusPassed},
		}},
	}}

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, GroupFailure{
		Shard: 2, Ordinal: 1, Label: "b", Target: "tests/b", Status: StatusFailed,
		Summary: "1 failed in 0.2s", Diagnostic: "1 failed",
	}, failures[0])
	assert.Len(t, report.Results(), 3)
}

func TestRunReport_CaseCounts(t *testing.T) {
	report := RunReport{Shards: []ShardReport{
		{Shard: 1, Results: []RunResult{{CasesPassed: 12}, {CasesPassed: 3, CasesFailed: 1}}},
		{Shard: 2, Results: []RunResult{{Status: StatusError}}},
	}}

	passed, failed := report.CaseCounts()
	assert.Equal(t, 15, passed)
	assert.Equal(t, 1, failed)
}

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")
	var err error = fmt.Errorf("plan: %w", &DiscoveryError{Root: "tests/x", Err: cause})

	var discoveryErr *DiscoveryError
	require.True(t, errors.As(err, &discoveryErr))
	assert.Equal(t, "tests/x", discoveryErr.Root)
	assert.ErrorIs(t, err, cause)

	unknown := &UnknownShardError{Selector: "9", Known: []int{1, 2}}
	assert.Equal(t, `unknown shard "9" (declared shards: 1, 2)`, unknown.Error())
}
