package planning

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"shardctl/internal/config"
	"shardctl/internal/discovery"
	"shardctl/internal/domain"
)

// All selects every declared shard
const All = 0

// Planner resolves a shard selector into ordered execution groups
type Planner struct {
	table      *Table
	discoverer *discovery.Discoverer
	suiteName  string
	logger     *zap.Logger
}

// NewPlanner creates a new Planner
func NewPlanner(table *Table, discoverer *discovery.Discoverer, suiteName string, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		table:      table,
		discoverer: discoverer,
		suiteName:  suiteName,
		logger:     logger,
	}
}

// ParseSelector turns "", "all" or a shard index into a selector. Anything
// that is not a declared shard is an *domain.UnknownShardError.
func (p *Planner) ParseSelector(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return All, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !p.table.Declared(n) {
		return 0, &domain.UnknownShardError{Selector: raw, Known: p.table.Shards()}
	}
	return n, nil
}

// Plan returns the plan of the selected shard, or of every shard in ascending
// order for All. Unknown selectors fail before any discovery runs; discovery
// for every fan-out area in the selection completes before Plan returns.
func (p *Planner) Plan(ctx context.Context, selector int) ([]domain.ShardPlan, error) {
	shards := p.table.Shards()
	if selector != All {
		if !p.table.Declared(selector) {
			return nil, &domain.UnknownShardError{Selector: strconv.Itoa(selector), Known: shards}
		}
		shards = []int{selector}
	}

	plans := make([]domain.ShardPlan, 0, len(shards))
	for _, shard := range shards {
		plan, err := p.planShard(ctx, shard)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (p *Planner) planShard(ctx context.Context, shard int) (domain.ShardPlan, error) {
	plan := domain.ShardPlan{Shard: shard}
	add := func(g domain.ExecutionGroup) {
		g.Ordinal = len(plan.Groups) + 1
		plan.Groups = append(plan.Groups, g)
	}

	for _, area := range p.table.AreasFor(shard) {
		if !area.FanOut {
			add(domain.ExecutionGroup{
				Label:  p.label(area),
				Area:   area.Label,
				Target: area.Path,
				Kind:   domain.GroupStatic,
			})
			continue
		}

		ids, err := p.discover(ctx, area)
		if err != nil {
			return domain.ShardPlan{}, err
		}
		p.logger.Info("fan-out discovery",
			zap.Int("shard", shard),
			zap.String("area", area.Label),
			zap.Int("identifiers", len(ids)))
		for i, id := range ids {
			add(domain.ExecutionGroup{
				Label:  fmt.Sprintf("%s-%d", p.label(area), i+1),
				Area:   area.Label,
				Target: string(id),
				Kind:   domain.GroupIdentifier,
			})
		}
	}

	p.logger.Debug("planned shard", zap.Int("shard", shard), zap.Int("groups", len(plan.Groups)))
	return plan, nil
}

// Discover lists the identifiers of one area
func (p *Planner) Discover(ctx context.Context, area config.Area) ([]domain.TestIdentifier, error) {
	return p.discover(ctx, area)
}

func (p *Planner) discover(ctx context.Context, area config.Area) ([]domain.TestIdentifier, error) {
	seq, err := p.discoverer.Discover(ctx, area.Path)
	if err != nil {
		return nil, err
	}
	return discovery.Collect(seq)
}

func (p *Planner) label(area config.Area) string {
	return p.suiteName + "-" + area.Label
}
