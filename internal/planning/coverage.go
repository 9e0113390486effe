package planning

import (
	"fmt"
	"sort"
	"strings"

	"shardctl/internal/domain"
)

// CheckCoverage verifies that the groups of all (the plans for All) are
// exactly the union of the per-shard plans, and that no group appears in
// more than one shard or twice within a shard.
func CheckCoverage(all []domain.ShardPlan, perShard []domain.ShardPlan) error {
	var problems []string

	allKeys := make(map[string]int)
	for _, plan := range all {
		for _, g := range plan.Groups {
			k := groupKey(g)
			if _, dup := allKeys[k]; dup {
				problems = append(problems, fmt.Sprintf("%s is planned twice", k))
			}
			allKeys[k] = plan.Shard
		}
	}

	owner := make(map[string]int)
	for _, plan := range perShard {
		for _, g := range plan.Groups {
			k := groupKey(g)
			if prev, dup := owner[k]; dup {
				problems = append(problems, fmt.Sprintf("%s is in shard %d and shard %d", k, prev, plan.Shard))
				continue
			}
			owner[k] = plan.Shard
			if _, ok := allKeys[k]; !ok {
				problems = append(problems, fmt.Sprintf("%s is in shard %d but missing from the full plan", k, plan.Shard))
			}
		}
	}
	for k, shard := range allKeys {
		if _, ok := owner[k]; !ok {
			problems = append(problems, fmt.Sprintf("%s (shard %d) is not covered by any selected shard", k, shard))
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("shard coverage check failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func groupKey(g domain.ExecutionGroup) string {
	return g.Kind.String() + ":" + g.Target
}
