package harness

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFixture(subtests ...Subtest) *Fixture {
	return &Fixture{
		ID:          "mem",
		Description: "in-memory fixture",
		Setup: func(ctx context.Context) (*Env, error) {
			return NewEnv(nil, nil), nil
		},
		Subtests: subtests,
	}
}

func passBody(_ *T, _ *Env) {}

func failBody(ht *T, _ *Env) {
	ht.Equals("100px", "50px", "width")
}

func panicBody(_ *T, _ *Env) {
	panic("wires crossed")
}

func TestSession_AllPass(t *testing.T) {
	fixture := memFixture(
		Subtest{Name: "first", Description: "a", Body: passBody},
		Subtest{Name: "second", Description: "b", Body: passBody},
		Subtest{Name: "third", Description: "c", Body: passBody},
	)

	report := NewSession(fixture).Run(context.Background())

	assert.Equal(t, "mem", report.FixtureID)
	assert.Equal(t, StatusPass, report.Status)
	assert.Nil(t, report.SessionError)
	require.Len(t, report.Results, 3)
	for _, res := range report.Results {
		assert.Equal(t, StatusPass, res.Outcome.Status)
	}
}

func TestSession_FaultyMiddleSubtestDoesNotStopRun(t *testing.T) {
	fixture := memFixture(
		Subtest{Name: "first", Body: passBody},
		Subtest{Name: "second", Body: panicBody},
		Subtest{Name: "third", Body: passBody},
	)

	report := NewSession(fixture).Run(context.Background())

	// Three declared, three reported: the fault in the middle subtest
	// is contained there.
	require.Len(t, report.Results, 3)
	assert.Equal(t, StatusPass, report.Results[0].Outcome.Status)
	assert.Equal(t, StatusError, report.Results[1].Outcome.Status)
	assert.Equal(t, CodeUnexpectedFault, report.Results[1].Outcome.Code)
	assert.Equal(t, StatusPass, report.Results[2].Outcome.Status)
	assert.Equal(t, StatusError, report.Status)
}

func TestSession_FailureDoesNotStopRun(t *testing.T) {
	fixture := memFixture(
		Subtest{Name: "first", Body: failBody},
		Subtest{Name: "second", Body: passBody},
	)

	report := NewSession(fixture).Run(context.Background())

	require.Len(t, report.Results, 2)
	assert.Equal(t, StatusFail, report.Results[0].Outcome.Status)
	assert.Equal(t, StatusPass, report.Results[1].Outcome.Status)
	assert.Equal(t, StatusFail, report.Status)
}

func TestSession_ErrorOutranksFailure(t *testing.T) {
	fixture := memFixture(
		Subtest{Name: "first", Body: failBody},
		Subtest{Name: "second", Body: panicBody},
	)

	report := NewSession(fixture).Run(context.Background())
	assert.Equal(t, StatusError, report.Status)
}

func TestSession_OrderPreserved(t *testing.T) {
	fixture := memFixture(
		Subtest{Name: "alpha", Body: passBody},
		Subtest{Name: "beta", Body: failBody},
		Subtest{Name: "gamma", Body: passBody},
		Subtest{Name: "delta", Body: panicBody},
	)

	report := NewSession(fixture).Run(context.Background())

	require.Len(t, report.Results, 4)
	names := make([]string, len(report.Results))
	for i, res := range report.Results {
		names[i] = res.Name
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, names)
}

func TestSession_SetupFailure(t *testing.T) {
	fixture := &Fixture{
		ID:          "broken_setup",
		Description: "setup cannot produce an environment",
		Setup: func(ctx context.Context) (*Env, error) {
			return nil, errors.New("document is unreadable")
		},
		Subtests: []Subtest{
			{Name: "never_runs", Body: passBody},
		},
	}

	session := NewSession(fixture)
	report := session.Run(context.Background())

	assert.Equal(t, StatusError, report.Status)
	require.NotNil(t, report.SessionError)
	assert.Equal(t, CodeSetupFailed, report.SessionError.Code)
	assert.Contains(t, report.SessionError.Message, "document is unreadable")

	// No subtest ran, and Results is empty rather than nil so reports
	// serialize as [].
	assert.NotNil(t, report.Results)
	assert.Empty(t, report.Results)
	assert.Equal(t, StateSetupFailed, session.State())
}

func TestSession_SetupPanic(t *testing.T) {
	fixture := &Fixture{
		ID: "panicky_setup",
		Setup: func(ctx context.Context) (*Env, error) {
			panic("bad wiring")
		},
		Subtests: []Subtest{{Name: "never_runs", Body: passBody}},
	}

	report := NewSession(fixture).Run(context.Background())

	assert.Equal(t, StatusError, report.Status)
	require.NotNil(t, report.SessionError)
	assert.Equal(t, CodeSetupFailed, report.SessionError.Code)
	assert.Contains(t, report.SessionError.Message, "uncaught fault in setup")
	assert.Empty(t, report.Results)
}

func TestSession_NilSetup(t *testing.T) {
	fixture := &Fixture{
		ID:       "no_setup",
		Subtests: []Subtest{{Name: "never_runs", Body: passBody}},
	}

	report := NewSession(fixture).Run(context.Background())

	assert.Equal(t, StatusError, report.Status)
	require.NotNil(t, report.SessionError)
	assert.Contains(t, report.SessionError.Message, "has no setup")
}

func TestSession_StateLifecycle(t *testing.T) {
	fixture := memFixture(Subtest{Name: "only", Body: passBody})
	session := NewSession(fixture)

	assert.Equal(t, StateLoaded, session.State())
	session.Run(context.Background())
	assert.Equal(t, StateCompleted, session.State())
}

func TestSession_SecondRunPanics(t *testing.T) {
	fixture := memFixture(Subtest{Name: "only", Body: passBody})
	session := NewSession(fixture)
	session.Run(context.Background())

	assert.Panics(t, func() {
		session.Run(context.Background())
	})
}

func TestSession_RepeatedSessionsAgree(t *testing.T) {
	fixture := memFixture(
		Subtest{Name: "steady", Description: "same verdict every time", Body: passBody},
		Subtest{Name: "mismatch", Description: "fails identically", Body: failBody},
	)

	runOnce := func() SessionReport {
		runner := &Runner{Now: stepClock(time.Millisecond)}
		return NewSession(fixture, WithRunner(runner)).Run(context.Background())
	}

	first := runOnce()
	second := runOnce()
	assert.Equal(t, first, second)
}

func TestSession_WithClockPinsDurations(t *testing.T) {
	fixture := memFixture(
		Subtest{Name: "first", Body: passBody},
		Subtest{Name: "second", Body: passBody},
	)

	report := NewSession(fixture, WithClock(stepClock(time.Millisecond))).Run(context.Background())

	require.Len(t, report.Results, 2)
	for _, res := range report.Results {
		assert.Equal(t, time.Millisecond.Nanoseconds(), res.DurationNS)
	}
}

func TestSession_CopiesSubtestsAtConstruction(t *testing.T) {
	fixture := memFixture(Subtest{Name: "original", Body: passBody})
	session := NewSession(fixture)

	fixture.Subtests[0].Name = "mutated"

	report := session.Run(context.Background())
	require.Len(t, report.Results, 1)
	assert.Equal(t, "original", report.Results[0].Name)
}

const probeDocument = `
document: {
	title: "probe"
	styles: [
		{selector: "#content", declarations: "color: red"},
	]
	root: {
		tag: "html"
		children: [
			{
				tag: "body"
				children: [
					{tag: "div", id: "content"},
				]
			},
		]
	}
}
`

func TestSession_DocumentSetupEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "probe.cue"), []byte(probeDocument), 0644))

	reg := stubRegistry(t)
	reg.MustRegister("probe_color", func(args Args) (Body, error) {
		return func(ht *T, env *Env) {
			view, err := env.Oracle.Resolve("content")
			if err != nil {
				ht.Fatalf("resolve content: %v", err)
			}
			ht.Equals(view.Value("color"), "rgb(255, 0, 0)", "content color")
		}, nil
	})

	path := writeFixtureFile(t, dir, `
fixture: doc_probe
description: "Runs against a real document"
document: probe.cue
subtests:
  - name: probe
    description: "stylesheet color reaches the computed view"
    check: probe_color
`)

	fixture, err := LoadFixture(path, reg)
	require.NoError(t, err)

	report := NewSession(fixture).Run(context.Background())
	assert.Equal(t, StatusPass, report.Status)
	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusPass, report.Results[0].Outcome.Status)
}

func TestSession_MissingDocumentIsSetupFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFixtureFile(t, dir, `
fixture: no_document
description: "Document file does not exist"
document: missing.cue
subtests:
  - name: only
    description: "only check"
    check: noop
`)

	// The manifest itself is fine; the absent document surfaces when
	// the session runs setup, not at load time.
	fixture, err := LoadFixture(path, stubRegistry(t))
	require.NoError(t, err)

	report := NewSession(fixture).Run(context.Background())
	assert.Equal(t, StatusError, report.Status)
	require.NotNil(t, report.SessionError)
	assert.Equal(t, CodeSetupFailed, report.SessionError.Code)
	assert.Contains(t, report.SessionError.Message, "loading document")
	assert.Empty(t, report.Results)
}

func TestSessionReport_Count(t *testing.T) {
	report := SessionReport{
		Results: []SubtestResult{
			{Outcome: Pass()},
			{Outcome: Fail(CodeAssertionFailed, "mismatch")},
			{Outcome: Pass()},
			{Outcome: Fault(CodeUnexpectedFault, "boom")},
		},
	}

	counts := report.Count()
	assert.Equal(t, 2, counts.Passed)
	assert.Equal(t, 1, counts.Failed)
	assert.Equal(t, 1, counts.Errors)
	assert.Equal(t, 4, counts.Total())
}
