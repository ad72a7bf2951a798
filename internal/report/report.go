// Package report aggregates session reports into a single run report
// and renders it for machines and humans.
//
// Aggregation and rendering are pure: they read sessions and produce
// bytes, with no side effects, so the same aggregate renders
// identically every time. Content hashing (SessionHash, ReportHash)
// works over canonical JSON with durations excluded, so a run's
// identity depends on verdicts, not on timing.
package report

import (
	"github.com/roach88/swatch/internal/harness"
)

// LoadFailure records a fixture that never produced a session because
// its definition could not be loaded.
type LoadFailure struct {
	// Path is the fixture file as given on the command line.
	Path string `json:"path"`

	// Outcome explains the failure, normally MALFORMED_FIXTURE.
	Outcome harness.Outcome `json:"outcome"`
}

// Summary tallies an aggregate by fixture and by subtest.
type Summary struct {
	Fixtures       int `json:"fixtures"`
	FixturesPassed int `json:"fixtures_passed"`
	FixturesFailed int `json:"fixtures_failed"`
	FixtureErrors  int `json:"fixture_errors"`
	LoadFailures   int `json:"load_failures"`

	Subtests harness.Counts `json:"subtests"`
}

// AggregateReport is the complete record of one run: every session in
// run order, every fixture that failed to load, and the tallies.
type AggregateReport struct {
	Sessions     []harness.SessionReport `json:"sessions"`
	LoadFailures []LoadFailure           `json:"load_failures"`
	Summary      Summary                 `json:"summary"`
}

// Aggregate combines session reports and load failures into one run
// report. Order is preserved: sessions stay in run order, load
// failures in encounter order. Slices are never nil so the machine
// rendering is stable.
func Aggregate(sessions []harness.SessionReport, failures []LoadFailure) *AggregateReport {
	rep := &AggregateReport{
		Sessions:     make([]harness.SessionReport, 0, len(sessions)),
		LoadFailures: make([]LoadFailure, 0, len(failures)),
	}
	rep.Sessions = append(rep.Sessions, sessions...)
	rep.LoadFailures = append(rep.LoadFailures, failures...)

	s := &rep.Summary
	s.Fixtures = len(sessions) + len(failures)
	s.LoadFailures = len(failures)
	for _, session := range sessions {
		switch session.Status {
		case harness.StatusPass:
			s.FixturesPassed++
		case harness.StatusFail:
			s.FixturesFailed++
		default:
			s.FixtureErrors++
		}
		counts := session.Count()
		s.Subtests.Passed += counts.Passed
		s.Subtests.Failed += counts.Failed
		s.Subtests.Errors += counts.Errors
	}
	return rep
}

// AllPassed reports whether every fixture loaded and every session
// passed. This is the exit-zero condition.
func (r *AggregateReport) AllPassed() bool {
	return r.Summary.LoadFailures == 0 &&
		r.Summary.FixturesFailed == 0 &&
		r.Summary.FixtureErrors == 0
}

// Session returns the session for a fixture id, if the run included it.
func (r *AggregateReport) Session(fixtureID string) (harness.SessionReport, bool) {
	for _, s := range r.Sessions {
		if s.FixtureID == fixtureID {
			return s, true
		}
	}
	return harness.SessionReport{}, false
}
