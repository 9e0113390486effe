package ui

import "shardctl/internal/domain"

// Viewer displays saved run results interactively
type Viewer interface {
	View(results *domain.ShardResultsOutput) error
}

var _ Viewer = (*ErrorViewer)(nil)
