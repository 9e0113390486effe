package domain

// GroupFailure represents a non-passing group in saved results
type GroupFailure struct {
	Shard      int    `json:"shard"`
	Ordinal    int    `json:"ordinal"`
	Label      string `json:"label"`
	Target     string `json:"target"`
	Status     Status `json:"status"`
	Summary    string `json:"summary,omitempty"`
	Diagnostic string `json:"diagnostic"`
	Resolved   bool   `json:"resolved,omitempty"` // Marked as looked at in the faills viewer
}

// Failures returns a GroupFailure for every non-passing result of the report.
func (r RunReport) Failures() []GroupFailure {
	var failures []GroupFailure
	for _, s := range r.Shards {
		for _, res := range s.Results {
			if res.Status.Passing() {
				continue
			}
			failures = append(failures, GroupFailure{
				Shard:      s.Shard,
				Ordinal:    res.Ordinal,
				Label:      res.Label,
				Target:     res.Target,
				Status:     res.Status,
				Summary:    res.Summary,
				Diagnostic: res.Diagnostic,
			})
		}
	}
	return failures
}
