package domain

import "fmt"

// TestIdentifier names one executable test unit, scoped to a discovery root
// (for pytest, a node id such as "tests/test_ops.py::test_matmul").
type TestIdentifier string

// GroupKind tells the runner what kind of target a group carries
type GroupKind int

const (
	// GroupStatic targets a whole functional-area path as one opaque invocation
	GroupStatic GroupKind = iota
	// GroupIdentifier targets a single discovered test identifier
	GroupIdentifier
)

func (k GroupKind) String() string {
	switch k {
	case GroupStatic:
		return "static"
	case GroupIdentifier:
		return "identifier"
	default:
		return fmt.Sprintf("GroupKind(%d)", int(k))
	}
}

// ExecutionGroup is one schedulable unit within a shard's plan
type ExecutionGroup struct {
	Label   string    // Label used for logging and result naming
	Area    string    // Functional area the group was planned from
	Target  string    // Area path or test identifier handed to the runner
	Kind    GroupKind // Whether Target is a path or an identifier
	Ordinal int       // 1-based position within its shard
}

// ShardPlan is the ordered list of groups one shard executes
type ShardPlan struct {
	Shard  int
	Groups []ExecutionGroup
}

// Targets returns the plan's group targets in order.
func (p ShardPlan) Targets() []string {
	targets := make([]string, 0, len(p.Groups))
	for _, g := range p.Groups {
		targets = append(targets, g.Target)
	}
	return targets
}
