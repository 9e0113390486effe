package planning

import "shardctl/internal/config"

// Scheduler distributes areas across shards
type Scheduler interface {
	Schedule(areas []config.Area, shardCount int) [][]config.Area
}

// RoundRobinScheduler deals areas to shards in declaration order
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes areas evenly across shards using round-robin
func (s *RoundRobinScheduler) Schedule(areas []config.Area, shardCount int) [][]config.Area {
	if shardCount <= 0 {
		shardCount = 1
	}

	distribution := make([][]config.Area, shardCount)
	for i := range distribution {
		distribution[i] = make([]config.Area, 0)
	}

	for i, area := range areas {
		distribution[i%shardCount] = append(distribution[i%shardCount], area)
	}

	return distribution
}

// Rebalance proposes a new table: every area keeps its declaration position
// and gets the shard the scheduler assigned it.
func Rebalance(areas []config.Area, shardCount int, s Scheduler) []config.Area {
	if shardCount <= 0 {
		shardCount = 1
	}
	assigned := make(map[string]int, len(areas))
	for i, bucket := range s.Schedule(areas, shardCount) {
		for _, a := range bucket {
			assigned[a.Label] = i + 1
		}
	}

	out := make([]config.Area, len(areas))
	for i, a := range areas {
		a.Shard = assigned[a.Label]
		out[i] = a
	}
	return out
}
