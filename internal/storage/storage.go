package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"shardctl/internal/domain"
)

// Run is one invocation's report together with its identity
type Run struct {
	ID       string
	Selector string // "all" or a shard index
	Started  time.Time
	Report   domain.RunReport
}

// NewRun stamps a report with a fresh run ID
func NewRun(selector string, started time.Time, report domain.RunReport) Run {
	if selector == "" {
		selector = "all"
	}
	return Run{
		ID:       uuid.NewString(),
		Selector: selector,
		Started:  started,
		Report:   report,
	}
}

// Storage persists run results
type Storage interface {
	Save(ctx context.Context, run Run) error
}

// Multi saves to every storage and joins their errors
type Multi []Storage

// Save implements Storage
func (m Multi) Save(ctx context.Context, run Run) error {
	var errs []error
	for _, s := range m {
		if err := s.Save(ctx, run); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
