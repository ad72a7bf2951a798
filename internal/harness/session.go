package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// SessionState tracks a session's progress through its lifecycle.
//
// The legal transitions are:
//
//	Loaded -> SetupRunning -> SetupDone -> SubtestsRunning -> Completed
//	                       -> SetupFailed
//
// SetupFailed and Completed are terminal. Any other move is a
// programming error and panics.
type SessionState int

const (
	StateLoaded SessionState = iota
	StateSetupRunning
	StateSetupDone
	StateSetupFailed
	StateSubtestsRunning
	StateCompleted
)

func (s SessionState) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateSetupRunning:
		return "setup_running"
	case StateSetupDone:
		return "setup_done"
	case StateSetupFailed:
		return "setup_failed"
	case StateSubtestsRunning:
		return "subtests_running"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

var sessionTransitions = map[SessionState][]SessionState{
	StateLoaded:          {StateSetupRunning},
	StateSetupRunning:    {StateSetupDone, StateSetupFailed},
	StateSetupDone:       {StateSubtestsRunning},
	StateSubtestsRunning: {StateCompleted},
}

// Session executes one fixture once: setup, then every subtest in
// declaration order, then a report. Sessions are single-use; build a
// new one for each run of the same fixture.
type Session struct {
	fixture  *Fixture
	subtests []Subtest
	runner   *Runner
	logger   *slog.Logger
	clock    func() time.Time
	state    SessionState
}

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithRunner replaces the default subtest runner.
func WithRunner(r *Runner) SessionOption {
	return func(s *Session) { s.runner = r }
}

// WithLogger sets the session's logger. The default discards records.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithClock overrides the runner's time source. Durations in the
// report are measured with it, which lets tests pin them to known
// values.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.clock = now }
}

// NewSession prepares a single-use session for the fixture. The
// subtest list is copied, so later changes to the fixture do not
// affect a session already built from it.
func NewSession(f *Fixture, opts ...SessionOption) *Session {
	subtests := make([]Subtest, len(f.Subtests))
	copy(subtests, f.Subtests)

	s := &Session{
		fixture:  f,
		subtests: subtests,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:    StateLoaded,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = &Runner{Timeout: f.Timeout, Logger: s.logger}
	}
	if s.clock != nil {
		s.runner.Now = s.clock
	}
	return s
}

// State reports the session's current lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Run executes the session to completion and returns its report.
//
// Setup runs exactly once. If it fails, no subtest runs, the report
// carries a session-level error outcome, and Results is empty. If it
// succeeds, every subtest runs regardless of earlier failures and the
// report holds one result per subtest in order.
func (s *Session) Run(ctx context.Context) SessionReport {
	report := SessionReport{
		FixtureID:   s.fixture.ID,
		Description: s.fixture.Description,
		Results:     []SubtestResult{},
	}

	s.transition(StateSetupRunning)
	s.logger.Debug("session setup starting", "fixture", s.fixture.ID)

	env, err := s.runSetup(ctx)
	if err != nil {
		s.transition(StateSetupFailed)
		s.logger.Error("session setup failed", "fixture", s.fixture.ID, "error", err)
		oc := Fault(CodeSetupFailed, fmt.Sprintf("setup failed: %v", err))
		report.Status = StatusError
		report.SessionError = &oc
		return report
	}
	s.transition(StateSetupDone)

	s.transition(StateSubtestsRunning)
	for _, st := range s.subtests {
		report.Results = append(report.Results, s.runner.Run(ctx, st, env))
	}
	s.transition(StateCompleted)

	report.Status = statusOf(report.Results)
	s.logger.Debug("session completed",
		"fixture", s.fixture.ID,
		"status", report.Status,
		"subtests", len(report.Results))
	return report
}

func (s *Session) transition(to SessionState) {
	for _, next := range sessionTransitions[s.state] {
		if next == to {
			s.state = to
			return
		}
	}
	panic(fmt.Sprintf("harness: illegal session transition %s -> %s", s.state, to))
}

// runSetup invokes the fixture's setup with a recovery barrier, so a
// panicking setup is reported as a setup failure rather than crashing
// the session.
func (s *Session) runSetup(ctx context.Context) (env *Env, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			env = nil
			err = fmt.Errorf("uncaught fault in setup: %v", rec)
		}
	}()
	if s.fixture.Setup == nil {
		return nil, fmt.Errorf("fixture %s has no setup", s.fixture.ID)
	}
	env, err = s.fixture.Setup(ctx)
	if err == nil && env == nil {
		err = fmt.Errorf("setup returned no environment")
	}
	return env, err
}

// statusOf derives the session verdict from subtest results: any error
// makes the session an error, otherwise any failure makes it a
// failure, otherwise it passes.
func statusOf(results []SubtestResult) Status {
	status := StatusPass
	for _, r := range results {
		switch r.Outcome.Status {
		case StatusError:
			return StatusError
		case StatusFail:
			status = StatusFail
		}
	}
	return status
}
