package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Runner executes subtest bodies in isolation. Each body runs on its
// own goroutine with a recovery barrier, so a fault in one subtest is
// converted to an error outcome instead of taking down the session.
type Runner struct {
	// Timeout bounds each body's execution. Zero disables the bound.
	Timeout time.Duration

	// Now supplies timestamps for duration measurement. Nil means
	// time.Now.
	Now func() time.Time

	// Logger receives per-subtest debug records. Nil discards them.
	Logger *slog.Logger
}

// Run executes one subtest to completion and returns its result. It
// never propagates a failure: assertion aborts, uncaught panics,
// timeouts, and context cancellation all come back as outcomes.
func (r *Runner) Run(ctx context.Context, st Subtest, env *Env) SubtestResult {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	t := newT()
	done := make(chan Outcome, 1)
	start := now()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				if _, ok := rec.(abortSubtest); ok {
					done <- t.snapshot()
					return
				}
				done <- Fault(CodeUnexpectedFault, fmt.Sprintf("uncaught fault: %v", rec))
				return
			}
			done <- t.snapshot()
		}()
		st.Body(t, env)
	}()

	var timeoutC <-chan time.Time
	if r.Timeout > 0 {
		timer := time.NewTimer(r.Timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}

	var outcome Outcome
	select {
	case outcome = <-done:
	case <-timeoutC:
		t.abandon()
		outcome = Fault(CodeSubtestTimeout, fmt.Sprintf("subtest %q exceeded %s", st.Name, r.Timeout))
	case <-ctx.Done():
		t.abandon()
		outcome = Fault(CodeUnexpectedFault, fmt.Sprintf("subtest %q canceled: %v", st.Name, ctx.Err()))
	}

	elapsed := now().Sub(start)
	logger.Debug("subtest finished",
		"name", st.Name,
		"status", outcome.Status,
		"duration", elapsed)

	return SubtestResult{
		Name:        st.Name,
		Description: st.Description,
		Outcome:     outcome,
		DurationNS:  elapsed.Nanoseconds(),
	}
}
