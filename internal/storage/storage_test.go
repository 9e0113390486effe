package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shardctl/internal/domain"
)

func sampleReport() domain.RunReport {
	return domain.RunReport{
		Duration: 90 * time.Second,
		Shards: []domain.ShardReport{
			{
				Shard: 1,
				Results: []domain.RunResult{
					{Label: "python-relay", Target: "tests/python/relay", Ordinal: 1, Status: domain.StatusPassed, Duration: time.Second, Summary: "4 passed in 1.00s", CasesPassed: 4},
					{Label: "python-te", Target: "tests/python/te", Ordinal: 2, Status: domain.StatusFailed, Diagnostic: "1 failed", Duration: 2 * time.Second, Summary: "1 failed, 2 passed in 2.00s", CasesPassed: 2, CasesFailed: 1},
				},
			},
			{
				Shard: 2,
				Results: []domain.RunResult{
					{Label: "python-ops-1", Target: "tests/python/ops/test_a.py::test_x", Ordinal: 1, Status: domain.StatusError, Diagnostic: "exit status 4", Duration: 3 * time.Second, CasesFailed: 1},
				},
			},
		},
	}
}

func TestNewRun(t *testing.T) {
	started := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	run := NewRun("", started, sampleReport())

	assert.Equal(t, "all", run.Selector)
	assert.Equal(t, started, run.Started)
	_, err := uuid.Parse(run.ID)
	require.NoError(t, err)

	other := NewRun("2", started, sampleReport())
	assert.Equal(t, "2", other.Selector)
	assert.NotEqual(t, run.ID, other.ID)
}

type recordingStorage struct {
	saved []string
	err   error
}

func (r *recordingStorage) Save(ctx context.Context, run Run) error {
	r.saved = append(r.saved, run.ID)
	return r.err
}

func TestMulti_SavesToAllAndJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	first := &recordingStorage{err: boom}
	second := &recordingStorage{}

	run := NewRun("1", time.Now(), sampleReport())
	err := Multi{first, second}.Save(context.Background(), run)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{run.ID}, first.saved)
	assert.Equal(t, []string{run.ID}, second.saved)
}
