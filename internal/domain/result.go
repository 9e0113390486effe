package domain

import "time"

// Status is the classified outcome of one group
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
	StatusError  Status = "error"
)

// Passing reports whether s counts as a pass.
func (s Status) Passing() bool {
	return s == StatusPassed
}

// RunResult is the outcome of executing one group. It is created once the
// group finishes and is never modified afterwards.
type RunResult struct {
	Label      string        // Group label
	Target     string        // Target that was run
	Ordinal    int           // Group ordinal within its shard
	Status     Status        // Classified outcome
	Diagnostic string        // Optional text reported by the runner
	Duration   time.Duration // Time taken to execute

	// Reported by the runner from the test framework's own summary; zero when
	// the runner could not tell.
	Summary     string
	CasesPassed int
	CasesFailed int
}

// ShardReport aggregates the results of one shard
type ShardReport struct {
	Shard   int
	Results []RunResult
}

// Status is failed if any result is non-passing, else passed.
func (r ShardReport) Status() Status {
	for _, res := range r.Results {
		if !res.Status.Passing() {
			return StatusFailed
		}
	}
	return StatusPassed
}

// Counts returns the number of passed, failed and errored results.
func (r ShardReport) Counts() (passed, failed, errored int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		default:
			errored++
		}
	}
	return passed, failed, errored
}

// RunReport aggregates every shard executed by one invocation
type RunReport struct {
	Shards   []ShardReport
	Duration time.Duration
}

// Status is failed if any shard failed.
func (r RunReport) Status() Status {
	for _, s := range r.Shards {
		if s.Status() != StatusPassed {
			return StatusFailed
		}
	}
	return StatusPassed
}

// ExitCode is 0 iff every executed group passed.
func (r RunReport) ExitCode() int {
	if r.Status() == StatusPassed {
		return 0
	}
	return 1
}

// CaseCounts sums the case counts reported for every group.
func (r RunReport) CaseCounts() (passed, failed int) {
	for _, s := range r.Shards {
		for _, res := range s.Results {
			passed += res.CasesPassed
			failed += res.CasesFailed
		}
	}
	return passed, failed
}

// Results returns every result across shards in execution order.
func (r RunReport) Results() []RunResult {
	var all []RunResult
	for _, s := range r.Shards {
		all = append(all, s.Results...)
	}
	return all
}

// ShardResultsMeta contains metadata about a shard run
type ShardResultsMeta struct {
	RunID           string  `json:"run_id"`
	Selector        string  `json:"selector"`
	Shards          []int   `json:"shards"`
	TotalGroups     int     `json:"total_groups"`
	PassedGroups    int     `json:"passed_groups"`
	FailedGroups    int     `json:"failed_groups"`
	ErroredGroups   int     `json:"errored_groups"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// ShardResultsOutput is the complete output structure for a saved run
type ShardResultsOutput struct {
	Meta    ShardResultsMeta `json:"meta"`
	Details []GroupFailure   `json:"details"`
}
