package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/swatch/internal/harness"
	"github.com/roach88/swatch/internal/report"
)

// createTestStore creates a store backed by a temp-dir database.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestReport builds an aggregate with one passing session, one
// failing session, and one load failure.
func createTestReport() *report.AggregateReport {
	passing := harness.SessionReport{
		FixtureID:   "computed_basics",
		Description: "computed views resolve declared values",
		Status:      harness.StatusPass,
		Results: []harness.SubtestResult{
			{
				Name:        "color_resolves",
				Description: "declared color appears on the computed view",
				Outcome:     harness.Pass(),
				DurationNS:  1_200_000,
			},
			{
				Name:        "width_resolves",
				Description: "declared width appears on the computed view",
				Outcome:     harness.Pass(),
				DurationNS:  800_000,
			},
		},
	}

	failing := harness.SessionReport{
		FixtureID:   "cascade_primacy",
		Description: "inline declarations win over stylesheet rules",
		Status:      harness.StatusFail,
		Results: []harness.SubtestResult{
			{
				Name:        "inline_wins",
				Description: "inline color beats the stylesheet",
				Outcome:     harness.Pass(),
				DurationNS:  900_000,
			},
			{
				Name:        "width_mismatch",
				Description: "stylesheet width survives",
				Outcome: harness.Fail(harness.CodeAssertionFailed,
					`width of view "content": expected "50px", got "100px"`),
				DurationNS: 1_100_000,
			},
		},
	}

	failure := report.LoadFailure{
		Path: "fixtures/dup.yaml",
		Outcome: harness.Fault(harness.CodeMalformedFixture,
			`malformed fixture fixtures/dup.yaml: subtests[1] ("inline_wins"): duplicate name`),
	}

	return report.Aggregate([]harness.SessionReport{passing, failing}, []report.LoadFailure{failure})
}

// createTestRecord wraps createTestReport in a RunRecord.
func createTestRecord(id string, at time.Time) RunRecord {
	return RunRecord{
		ID:        id,
		CreatedAt: at,
		Report:    createTestReport(),
	}
}
