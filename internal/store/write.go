package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/swatch/internal/report"
)

// RunRecord is one run to be recorded: its identity, when it happened,
// and the full aggregate report it produced.
type RunRecord struct {
	ID        string
	CreatedAt time.Time
	Report    *report.AggregateReport
}

// WriteRun inserts a run and all of its session reports, subtest
// results, and load failures in a single transaction.
//
// Every insert uses ON CONFLICT DO NOTHING for idempotency - recording
// the same run twice is silently ignored. Other constraint violations
// (e.g., NOT NULL) will still return errors.
//
// Session report ids are content hashes, so identical verdicts share
// an identity across runs.
func (s *Store) WriteRun(ctx context.Context, rec RunRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("write run: run id is required")
	}
	if rec.Report == nil {
		return fmt.Errorf("write run: report is required")
	}

	reportHash, err := report.ReportHash(rec.Report)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	summary := rec.Report.Summary
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, report_hash, fixtures, passed, failed, errors, load_failures)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		reportHash,
		summary.Fixtures,
		summary.FixturesPassed,
		summary.FixturesFailed,
		summary.FixtureErrors,
		summary.LoadFailures,
	)
	if err != nil {
		return fmt.Errorf("write run: insert run: %w", err)
	}

	for pos, sess := range rec.Report.Sessions {
		sessionHash, err := report.SessionHash(sess)
		if err != nil {
			return fmt.Errorf("write run: session %s: %w", sess.FixtureID, err)
		}

		// NULL when the session reached its subtests
		var sessionErr any
		if sess.SessionError != nil {
			text, err := marshalOutcome(*sess.SessionError)
			if err != nil {
				return fmt.Errorf("write run: session %s: %w", sess.FixtureID, err)
			}
			sessionErr = text
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO session_reports
			(id, run_id, position, fixture_id, description, status, session_error)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`,
			sessionHash,
			rec.ID,
			pos,
			sess.FixtureID,
			sess.Description,
			string(sess.Status),
			sessionErr,
		)
		if err != nil {
			return fmt.Errorf("write run: insert session %s: %w", sess.FixtureID, err)
		}

		for i, res := range sess.Results {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO subtest_results
				(run_id, fixture_id, position, name, description, status, code, message, duration_ns)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT DO NOTHING
			`,
				rec.ID,
				sess.FixtureID,
				i,
				res.Name,
				res.Description,
				string(res.Outcome.Status),
				string(res.Outcome.Code),
				res.Outcome.Message,
				res.DurationNS,
			)
			if err != nil {
				return fmt.Errorf("write run: insert subtest %s/%s: %w", sess.FixtureID, res.Name, err)
			}
		}
	}

	for pos, failure := range rec.Report.LoadFailures {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO load_failures
			(run_id, position, path, code, message)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT DO NOTHING
		`,
			rec.ID,
			pos,
			failure.Path,
			string(failure.Outcome.Code),
			failure.Outcome.Message,
		)
		if err != nil {
			return fmt.Errorf("write run: insert load failure %s: %w", failure.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: commit: %w", err)
	}

	return nil
}
