package harness

// SubtestResult is the recorded outcome of one subtest execution.
type SubtestResult struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Outcome     Outcome `json:"outcome"`

	// DurationNS is wall-clock execution time in nanoseconds. Reported
	// for humans, excluded from report hashing.
	DurationNS int64 `json:"duration_ns"`
}

// SessionReport is the complete record of one session: every subtest's
// result in execution order, plus the session-level verdict.
type SessionReport struct {
	FixtureID   string `json:"fixture_id"`
	Description string `json:"description"`

	// Status is the session verdict: StatusPass only when setup
	// succeeded and every subtest passed.
	Status Status `json:"status"`

	// SessionError is set when the session itself failed (setup
	// failure). Nil when subtests ran.
	SessionError *Outcome `json:"session_error,omitempty"`

	// Results holds one entry per executed subtest, in order. Empty,
	// never nil, when setup failed.
	Results []SubtestResult `json:"results"`
}

// Counts tallies results by status.
type Counts struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Errors int `json:"errors"`
}

// Total is the number of counted results.
func (c Counts) Total() int {
	return c.Passed + c.Failed + c.Errors
}

// Add increments the tally for one status.
func (c *Counts) Add(s Status) {
	switch s {
	case StatusPass:
		c.Passed++
	case StatusFail:
		c.Failed++
	default:
		c.Errors++
	}
}

// Count tallies the report's subtest results by status.
func (r *SessionReport) Count() Counts {
	var c Counts
	for _, res := range r.Results {
		c.Add(res.Outcome.Status)
	}
	return c
}
