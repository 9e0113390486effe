package planning

import "shardctl/internal/domain"

// FilterGroups returns the plans with only the groups keep accepts. Shards
// stay in the result even when emptied, and groups keep the ordinal they
// have in the full plan.
func FilterGroups(plans []domain.ShardPlan, keep func(domain.ExecutionGroup) bool) []domain.ShardPlan {
	filtered := make([]domain.ShardPlan, 0, len(plans))
	for _, plan := range plans {
		kept := domain.ShardPlan{Shard: plan.Shard}
		for _, g := range plan.Groups {
			if keep(g) {
				kept.Groups = append(kept.Groups, g)
			}
		}
		filtered = append(filtered, kept)
	}
	return filtered
}

// CountGroups returns the number of groups across plans
func CountGroups(plans []domain.ShardPlan) int {
	var n int
	for _, p := range plans {
		n += len(p.Groups)
	}
	return n
}
