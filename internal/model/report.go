package model

import "time"

// RunReport aggregates the outcome of one pipeline run for a query.
// It holds everything the report writers need: the verdicts plus enough
// run metadata to make the output self-describing.
type RunReport struct {
	// Query is the search query this run processed.
	Query string `json:"query"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run completed.
	FinishedAt time.Time `json:"finished_at"`

	// Candidates is the number of candidate URLs offered to the run,
	// before dedup filtering.
	Candidates int `json:"candidates"`

	// Verdicts holds one entry per newly surfaced URL, in candidate order.
	Verdicts []Verdict `json:"verdicts"`
}

// NewRunReport creates a RunReport with the start time set to now.
func NewRunReport(query string, candidates int) *RunReport {
	return &RunReport{
		Query:      query,
		StartedAt:  time.Now(),
		Candidates: candidates,
		Verdicts:   []Verdict{},
	}
}

// Finish records the completion time and the run's verdicts.
func (r *RunReport) Finish(verdicts []Verdict) {
	r.FinishedAt = time.Now()
	if verdicts == nil {
		verdicts = []Verdict{}
	}
	r.Verdicts = verdicts
}

// Duration returns the wall-clock time the run took.
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// NewURLs returns how many URLs survived dedup filtering this run.
func (r *RunReport) NewURLs() int {
	return len(r.Verdicts)
}

// CountByStatus returns how many verdicts finished with the given status.
func (r *RunReport) CountByStatus(status Status) int {
	var n int
	for _, v := range r.Verdicts {
		if v.Status == status {
			n++
		}
	}
	return n
}

// MatchedCount returns how many verdicts matched at least one signature
// in any category.
func (r *RunReport) MatchedCount() int {
	var n int
	for _, v := range r.Verdicts {
		for category := range v.Matches {
			if v.HasMatch(category) {
				n++
				break
			}
		}
	}
	return n
}

// HasMatches reports whether any verdict in the run matched a signature.
func (r *RunReport) HasMatches() bool {
	return r.MatchedCount() > 0
}
