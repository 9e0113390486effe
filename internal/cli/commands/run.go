package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shardctl/internal/cli"
	"shardctl/internal/config"
	"shardctl/internal/discovery"
	"shardctl/internal/domain"
	"shardctl/internal/execution"
	"shardctl/internal/parser"
	"shardctl/internal/planning"
	"shardctl/internal/storage"
	"shardctl/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	*base

	// newRunner builds the group runner; tests replace it
	newRunner func(cfg *config.Config) execution.Runner
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := rc.loadConfig()
	if err != nil {
		return err
	}
	if err := rc.applyProfile(cfg); err != nil {
		return err
	}

	planner, _, err := rc.planner(cfg)
	if err != nil {
		return err
	}
	selector, err := planner.ParseSelector(selectorArg(cfg, args))
	if err != nil {
		return err
	}
	name := selectorName(selector)

	// Every fan-out area is discovered before the first group runs.
	plans, err := planner.Plan(ctx, selector)
	if err != nil {
		return err
	}

	jsonStorage := storage.NewJSONStorage(cfg)
	plans, err = rc.selectGroups(cfg, jsonStorage, name, plans)
	if err != nil {
		return err
	}

	total := planning.CountGroups(plans)
	if total == 0 {
		color.New(color.FgYellow).Fprintln(rc.out, "No groups to execute")
		return nil
	}

	executor := execution.NewSequentialExecutor(rc.runner(cfg), rc.logger, rc.out)
	if cfg.Flags.Progress {
		executor.SetProgress(ui.NewProgressBar(total))
	}

	started := time.Now()
	report := executor.ExecuteAll(ctx, plans)
	run := storage.NewRun(name, started, report)
	rc.logger.Info("run finished",
		zap.String("run_id", run.ID),
		zap.String("selector", name),
		zap.String("status", string(report.Status())),
		zap.Duration("duration", report.Duration))

	if err := rc.save(ctx, cfg, jsonStorage, run); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	rc.formatter().PrintSummary(storage.Output(run))

	if code := report.ExitCode(); code != 0 {
		return &cli.ExitError{Code: code, Failed: len(report.Failures())}
	}
	return nil
}

func (rc *RunCommand) runner(cfg *config.Config) execution.Runner {
	if rc.newRunner != nil {
		return rc.newRunner(cfg)
	}
	return execution.NewCommandRunner(cfg, parser.NewPytestParser())
}

// selectGroups applies --filter and --failed after full planning.
func (rc *RunCommand) selectGroups(cfg *config.Config, st *storage.JSONStorage, name string, plans []domain.ShardPlan) ([]domain.ShardPlan, error) {
	if pattern := cfg.Flags.Filter; pattern != "" {
		filter := discovery.NewFilter()
		plans = planning.FilterGroups(plans, func(g domain.ExecutionGroup) bool {
			return filter.Match(g.Label, pattern) || filter.Match(g.Target, pattern)
		})
		rc.logger.Debug("filter applied", zap.String("pattern", pattern), zap.Int("groups", planning.CountGroups(plans)))
	}

	if cfg.Flags.OnlyFailed {
		failed, err := st.FailedLabels(name)
		if err != nil {
			return nil, fmt.Errorf("no previous results for --failed: %w", err)
		}
		plans = planning.FilterGroups(plans, func(g domain.ExecutionGroup) bool {
			return failed[g.Label]
		})
		rc.logger.Info("rerunning failed groups", zap.Int("groups", planning.CountGroups(plans)))
	}
	return plans, nil
}

// save writes the JSON results and, when a DSN is configured, the SQL rows.
func (rc *RunCommand) save(ctx context.Context, cfg *config.Config, jsonStorage *storage.JSONStorage, run storage.Run) error {
	stores := storage.Multi{jsonStorage}

	if dsn := cfg.GetResultsDSN(); dsn != "" {
		sqlStorage, err := storage.OpenMySQL(ctx, dsn)
		if err != nil {
			return err
		}
		defer sqlStorage.Close()
		if err := sqlStorage.EnsureSchema(ctx); err != nil {
			return err
		}
		stores = append(stores, sqlStorage)
	}

	if err := stores.Save(ctx, run); err != nil {
		return err
	}
	rc.logger.Debug("results saved", zap.String("path", cfg.GetOutputPath(run.Selector)))
	return nil
}
