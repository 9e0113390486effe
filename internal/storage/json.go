package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shardctl/internal/config"
	"shardctl/internal/domain"
)

// JSONStorage stores results in a JSON file per selector under the results dir.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's results files.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Output builds the saved structure for a run: meta counts plus the
// non-passing groups.
func Output(run Run) *domain.ShardResultsOutput {
	shards := make([]int, 0, len(run.Report.Shards))
	var total, passed, failed, errored int
	for _, s := range run.Report.Shards {
		shards = append(shards, s.Shard)
		p, f, e := s.Counts()
		passed += p
		failed += f
		errored += e
		total += len(s.Results)
	}

	casesPassed, casesFailed := run.Report.CaseCounts()

	details := run.Report.Failures()
	if details == nil {
		details = []domain.GroupFailure{}
	}
	return &domain.ShardResultsOutput{
		Meta: domain.ShardResultsMeta{
			RunID:           run.ID,
			Selector:        run.Selector,
			Shards:          shards,
			TotalGroups:     total,
			PassedGroups:    passed,
			FailedGroups:    failed,
			ErroredGroups:   errored,
			PassedCases:     casesPassed,
			FailedCases:     casesFailed,
			Duration:        run.Report.Duration.String(),
			DurationSeconds: run.Report.Duration.Seconds(),
			Timestamp:       run.Started.Format(time.RFC3339),
		},
		Details: details,
	}
}

// Save writes the run to the selector's JSON file.
func (s *JSONStorage) Save(ctx context.Context, run Run) error {
	return s.SaveOutput(run.Selector, Output(run))
}

// Load reads the last results saved for selector.
func (s *JSONStorage) Load(selector string) (*domain.ShardResultsOutput, error) {
	path := s.cfg.GetOutputPath(selector)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.ShardResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes output to the selector's JSON file (e.g. after the viewer
// marks failures resolved).
func (s *JSONStorage) SaveOutput(selector string, output *domain.ShardResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath(selector)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// FailedLabels returns the labels of the non-passing groups of the last run
// for selector.
func (s *JSONStorage) FailedLabels(selector string) (map[string]bool, error) {
	output, err := s.Load(selector)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]bool, len(output.Details))
	for _, d := range output.Details {
		labels[d.Label] = true
	}
	return labels, nil
}
