package execution

import (
	"context"
	"io"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"shardctl/internal/domain"
)

// SequentialExecutor runs the groups of a shard one at a time, in plan order,
// and keeps going after failures so a shard reports its full failure set.
type SequentialExecutor struct {
	runner   Runner
	logger   *zap.Logger
	out      io.Writer
	progress Progress

	passed, failed int
}

// NewSequentialExecutor creates a new SequentialExecutor. Labeled console
// lines go to out when it is not nil.
func NewSequentialExecutor(runner Runner, logger *zap.Logger, out io.Writer) *SequentialExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SequentialExecutor{
		runner: runner,
		logger: logger,
		out:    out,
	}
}

// SetProgress sets the progress bar for the executor
func (e *SequentialExecutor) SetProgress(progress Progress) {
	e.progress = progress
}

// ExecuteAll runs every plan in the given order and times the whole run.
func (e *SequentialExecutor) ExecuteAll(ctx context.Context, plans []domain.ShardPlan) domain.RunReport {
	start := time.Now()
	report := domain.RunReport{Shards: make([]domain.ShardReport, 0, len(plans))}
	for _, plan := range plans {
		report.Shards = append(report.Shards, e.execute(ctx, plan))
	}
	report.Duration = time.Since(start)
	if e.progress != nil {
		e.progress.Finish()
	}
	return report
}

// Execute runs one shard plan.
func (e *SequentialExecutor) Execute(ctx context.Context, plan domain.ShardPlan) domain.ShardReport {
	report := e.execute(ctx, plan)
	if e.progress != nil {
		e.progress.Finish()
	}
	return report
}

func (e *SequentialExecutor) execute(ctx context.Context, plan domain.ShardPlan) domain.ShardReport {
	report := domain.ShardReport{
		Shard:   plan.Shard,
		Results: make([]domain.RunResult, 0, len(plan.Groups)),
	}
	total := len(plan.Groups)

	e.logger.Info("shard started", zap.Int("shard", plan.Shard), zap.Int("groups", total))
	for _, group := range plan.Groups {
		e.logger.Info("running group",
			zap.Int("shard", plan.Shard),
			zap.Int("ordinal", group.Ordinal),
			zap.Int("of", total),
			zap.String("label", group.Label),
			zap.String("target", group.Target))
		e.printf(color.FgCyan, "[shard %d] (%d/%d) %s: %s\n", plan.Shard, group.Ordinal, total, group.Label, group.Target)

		start := time.Now()
		result := e.runner.Run(ctx, group.Label, group.Target)
		result.Label = group.Label
		result.Target = group.Target
		result.Ordinal = group.Ordinal
		if result.Duration == 0 {
			result.Duration = time.Since(start)
		}
		if result.Status == "" {
			result.Status = domain.StatusError
		}
		report.Results = append(report.Results, result)
		e.record(plan.Shard, result)
	}

	passed, failed, errored := report.Counts()
	e.logger.Info("shard finished",
		zap.Int("shard", plan.Shard),
		zap.String("status", string(report.Status())),
		zap.Int("passed", passed),
		zap.Int("failed", failed),
		zap.Int("errored", errored))
	return report
}

func (e *SequentialExecutor) record(shard int, result domain.RunResult) {
	fields := []zap.Field{
		zap.Int("shard", shard),
		zap.String("label", result.Label),
		zap.String("status", string(result.Status)),
		zap.Duration("duration", result.Duration),
		zap.Int("cases_passed", result.CasesPassed),
		zap.Int("cases_failed", result.CasesFailed),
	}
	switch result.Status {
	case domain.StatusPassed:
		e.passed++
		e.logger.Info("group passed", fields...)
		e.printf(color.FgGreen, "  PASS %s (%s)%s\n", result.Label, result.Duration.Round(time.Millisecond), summarySuffix(result))
	default:
		e.failed++
		e.logger.Warn("group did not pass", append(fields, zap.String("diagnostic", result.Diagnostic))...)
		e.printf(color.FgRed, "  %s %s (%s)%s\n", statusTag(result.Status), result.Label, result.Duration.Round(time.Millisecond), summarySuffix(result))
	}
	if e.progress != nil {
		e.progress.Update(e.passed, e.failed)
	}
}

func (e *SequentialExecutor) printf(attr color.Attribute, format string, args ...any) {
	if e.out == nil {
		return
	}
	_, _ = color.New(attr).Fprintf(e.out, format, args...)
}

func statusTag(s domain.Status) string {
	if s == domain.StatusFailed {
		return "FAIL"
	}
	return "ERROR"
}

// summarySuffix is the test framework's summary as shown after a result line
func summarySuffix(result domain.RunResult) string {
	if result.Summary == "" {
		return ""
	}
	return " [" + result.Summary + "]"
}
