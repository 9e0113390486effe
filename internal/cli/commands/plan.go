package commands

import (
	"context"

	"github.com/spf13/cobra"

	"shardctl/internal/domain"
	"shardctl/internal/planning"
)

// PlanCommand prints plans, checks coverage and proposes rebalanced tables
type PlanCommand struct {
	*base
}

// Execute runs the command
func (pc *PlanCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := pc.loadConfig()
	if err != nil {
		return err
	}

	if n := cfg.Flags.Rebalance; n > 0 {
		areas := planning.Rebalance(cfg.Areas, n, planning.NewRoundRobinScheduler())
		return pc.formatter().PrintAreas(areas)
	}

	if err := pc.applyProfile(cfg); err != nil {
		return err
	}
	planner, table, err := pc.planner(cfg)
	if err != nil {
		return err
	}

	if cfg.Flags.Check {
		return pc.check(ctx, planner, table)
	}

	selector, err := planner.ParseSelector(selectorArg(cfg, args))
	if err != nil {
		return err
	}
	plans, err := planner.Plan(ctx, selector)
	if err != nil {
		return err
	}
	pc.formatter().PrintPlan(plans)
	return nil
}

// check plans every shard at once and one by one and compares the two.
func (pc *PlanCommand) check(ctx context.Context, planner *planning.Planner, table *planning.Table) error {
	all, err := planner.Plan(ctx, planning.All)
	if err != nil {
		return err
	}

	var perShard []domain.ShardPlan
	for _, shard := range table.Shards() {
		plans, err := planner.Plan(ctx, shard)
		if err != nil {
			return err
		}
		perShard = append(perShard, plans...)
	}

	err = planning.CheckCoverage(all, perShard)
	pc.formatter().PrintCoverage(all, err)
	return err
}
