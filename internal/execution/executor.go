package execution

import (
	"context"

	"shardctl/internal/domain"
)

// Runner executes one group and classifies its outcome. Implementations own
// process invocation, output capture and pass/fail/error classification; a
// Runner never returns a Go error for a test outcome.
type Runner interface {
	Run(ctx context.Context, label, target string) domain.RunResult
}

// RunnerFunc adapts a function to the Runner interface
type RunnerFunc func(ctx context.Context, label, target string) domain.RunResult

// Run calls f
func (f RunnerFunc) Run(ctx context.Context, label, target string) domain.RunResult {
	return f(ctx, label, target)
}

// Executor executes shard plans and returns their reports
type Executor interface {
	Execute(ctx context.Context, plan domain.ShardPlan) domain.ShardReport
	ExecuteAll(ctx context.Context, plans []domain.ShardPlan) domain.RunReport
}

// Progress receives counts after each group
type Progress interface {
	Update(passed, failed int)
	Finish()
}
