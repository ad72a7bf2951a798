package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/swatch/internal/harness"
	"github.com/roach88/swatch/internal/report"
)

// RunSummary is one row of the run listing. It mirrors the runs table:
// the tallies are the fixture-level counts recorded at write time.
type RunSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ReportHash   string    `json:"report_hash"`
	Fixtures     int       `json:"fixtures"`
	Passed       int       `json:"passed"`
	Failed       int       `json:"failed"`
	Errors       int       `json:"errors"`
	LoadFailures int       `json:"load_failures"`
}

// ListRuns returns recorded runs, newest first.
// Results are ordered deterministically: ORDER BY created_at DESC, id DESC COLLATE BINARY.
// A limit <= 0 means no limit.
//
// Returns an empty slice (not nil) if no runs have been recorded.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means unlimited
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, report_hash, fixtures, passed, failed, errors, load_failures
		FROM runs
		ORDER BY created_at DESC, id COLLATE BINARY DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		run, err := scanRunSummary(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	// Return empty slice instead of nil
	if runs == nil {
		runs = []RunSummary{}
	}

	return runs, nil
}

// GetRun retrieves a single run by ID and rebuilds its aggregate
// report from the stored rows. The rebuilt report reproduces the
// original: sessions in run order, subtest results in declaration
// order, load failures in encounter order.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetRun(ctx context.Context, id string) (RunSummary, *report.AggregateReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, report_hash, fixtures, passed, failed, errors, load_failures
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRunSummaryRow(row)
	if err != nil {
		return RunSummary{}, nil, err
	}

	sessions, err := s.readSessions(ctx, id)
	if err != nil {
		return RunSummary{}, nil, err
	}

	failures, err := s.readLoadFailures(ctx, id)
	if err != nil {
		return RunSummary{}, nil, err
	}

	// Re-aggregating recomputes the summary from the stored rows
	return run, report.Aggregate(sessions, failures), nil
}

// readSessions returns the session reports of a run in run order.
func (s *Store) readSessions(ctx context.Context, runID string) ([]harness.SessionReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fixture_id, description, status, session_error
		FROM session_reports
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query session reports: %w", err)
	}
	defer rows.Close()

	var sessions []harness.SessionReport
	for rows.Next() {
		var sess harness.SessionReport
		var status string
		var sessionErr sql.NullString

		if err := rows.Scan(&sess.FixtureID, &sess.Description, &status, &sessionErr); err != nil {
			return nil, fmt.Errorf("scan session report: %w", err)
		}

		sess.Status = harness.Status(status)
		if sessionErr.Valid {
			outcome, err := unmarshalOutcome(sessionErr.String)
			if err != nil {
				return nil, fmt.Errorf("session %s: %w", sess.FixtureID, err)
			}
			sess.SessionError = &outcome
		}

		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session reports: %w", err)
	}

	for i := range sessions {
		results, err := s.readSubtestResults(ctx, runID, sessions[i].FixtureID)
		if err != nil {
			return nil, err
		}
		sessions[i].Results = results
	}

	return sessions, nil
}

// readSubtestResults returns one session's subtest results in
// declaration order.
func (s *Store) readSubtestResults(ctx context.Context, runID, fixtureID string) ([]harness.SubtestResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, status, code, message, duration_ns
		FROM subtest_results
		WHERE run_id = ? AND fixture_id = ?
		ORDER BY position ASC
	`, runID, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("query subtest results: %w", err)
	}
	defer rows.Close()

	var results []harness.SubtestResult
	for rows.Next() {
		var res harness.SubtestResult
		var status, code string

		if err := rows.Scan(&res.Name, &res.Description, &status, &code, &res.Outcome.Message, &res.DurationNS); err != nil {
			return nil, fmt.Errorf("scan subtest result: %w", err)
		}

		res.Outcome.Status = harness.Status(status)
		res.Outcome.Code = harness.Code(code)
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subtest results: %w", err)
	}

	// Return empty slice instead of nil
	if results == nil {
		results = []harness.SubtestResult{}
	}

	return results, nil
}

// readLoadFailures returns a run's load failures in encounter order.
func (s *Store) readLoadFailures(ctx context.Context, runID string) ([]report.LoadFailure, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, code, message
		FROM load_failures
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query load failures: %w", err)
	}
	defer rows.Close()

	var failures []report.LoadFailure
	for rows.Next() {
		var f report.LoadFailure
		var code string

		if err := rows.Scan(&f.Path, &code, &f.Outcome.Message); err != nil {
			return nil, fmt.Errorf("scan load failure: %w", err)
		}

		f.Outcome.Status = harness.StatusError
		f.Outcome.Code = harness.Code(code)
		failures = append(failures, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate load failures: %w", err)
	}

	return failures, nil
}

// scanRunSummary scans a listing row into a RunSummary.
func scanRunSummary(rows *sql.Rows) (RunSummary, error) {
	var run RunSummary
	var createdAt string

	if err := rows.Scan(
		&run.ID, &createdAt, &run.ReportHash,
		&run.Fixtures, &run.Passed, &run.Failed, &run.Errors, &run.LoadFailures,
	); err != nil {
		return RunSummary{}, fmt.Errorf("scan run: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return RunSummary{}, fmt.Errorf("parse created_at: %w", err)
	}
	run.CreatedAt = ts

	return run, nil
}

// scanRunSummaryRow scans a single row into a RunSummary.
func scanRunSummaryRow(row *sql.Row) (RunSummary, error) {
	var run RunSummary
	var createdAt string

	if err := row.Scan(
		&run.ID, &createdAt, &run.ReportHash,
		&run.Fixtures, &run.Passed, &run.Failed, &run.Errors, &run.LoadFailures,
	); err != nil {
		return RunSummary{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return RunSummary{}, fmt.Errorf("parse created_at: %w", err)
	}
	run.CreatedAt = ts

	return run, nil
}
