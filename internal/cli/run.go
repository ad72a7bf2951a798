package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/swatch/internal/checks"
	"github.com/roach88/swatch/internal/harness"
	"github.com/roach88/swatch/internal/report"
	"github.com/roach88/swatch/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Timeout  time.Duration

	// Tokens allows overriding the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens store.RunTokenGenerator

	// Clock allows overriding the time source (for testing).
	// If nil, defaults to time.Now.
	Clock func() time.Time
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <fixture>...",
		Short: "Run fixture sessions and report verdicts",
		Long: `Run one session per fixture manifest and report every verdict.

All manifests load up front: a malformed manifest is reported as a
load failure without stopping the others, and a fixture id may appear
only once per run. Sessions execute in argument order, each against a
freshly loaded document, and the exit code is 0 only when every
fixture passed and every manifest loaded.

Example:
  swatch run fixtures/cascade.yaml
  swatch run --format json fixtures/cascade.yaml fixtures/computed.yaml
  swatch run --db ./swatch.db fixtures/cascade.yaml --verbose`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixtures(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for run history (optional)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "per-subtest time limit for fixtures without their own (0 disables)")

	return cmd
}

func runFixtures(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	loaded, err := loadFixtures(paths, checks.NewRegistry())
	if err != nil {
		return err
	}
	slog.Info("fixtures loaded",
		"fixtures", len(loaded.Fixtures),
		"load_failures", len(loaded.Failures))

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	// Setup signal handling so Ctrl-C stops new sessions between
	// fixtures and interrupts any subtest still running.
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, stopping", "signal", sig)
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	sessions := make([]harness.SessionReport, 0, len(loaded.Fixtures))
	interrupted := false
	for _, fixture := range loaded.Fixtures {
		if ctx.Err() != nil {
			interrupted = true
			break
		}
		timeout := fixture.Timeout
		if timeout == 0 {
			timeout = opts.Timeout
		}
		runner := &harness.Runner{Timeout: timeout, Now: clock, Logger: slog.Default()}
		session := harness.NewSession(fixture,
			harness.WithRunner(runner),
			harness.WithLogger(slog.Default()))
		sessions = append(sessions, session.Run(ctx))
	}
	if interrupted {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("interrupted after %d of %d fixtures", len(sessions), len(loaded.Fixtures)))
	}

	rep := report.Aggregate(sessions, loaded.Failures)

	runID := ""
	if opts.Database != "" {
		tokens := opts.Tokens
		if tokens == nil {
			tokens = store.UUIDv7Generator{}
		}
		slog.Info("opening database", "path", opts.Database)
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()

		rec := store.RunRecord{ID: tokens.Generate(), CreatedAt: clock(), Report: rep}
		if err := st.WriteRun(ctx, rec); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		runID = rec.ID
		slog.Info("run recorded", "id", runID, "db", opts.Database)
	}

	if err := outputRunReport(opts, cmd, rep, runID); err != nil {
		return err
	}

	if !rep.AllPassed() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d fixture(s) did not pass", failedCount(rep)))
	}
	return nil
}

// runPayload is the data section of the run command's JSON envelope:
// the machine rendering of the aggregate, plus the run id when the
// run was recorded.
type runPayload struct {
	Report json.RawMessage `json:"report"`
	RunID  string          `json:"run_id,omitempty"`
}

func outputRunReport(opts *RunOptions, cmd *cobra.Command, rep *report.AggregateReport, runID string) error {
	if opts.Format == "json" {
		raw, err := report.RenderJSON(rep)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to encode report", err)
		}
		resp := CLIResponse{
			Status: "ok",
			Data:   runPayload{Report: raw, RunID: runID},
		}
		if !rep.AllPassed() {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    "E_RUN_FAILED",
				Message: fmt.Sprintf("%d fixture(s) did not pass", failedCount(rep)),
			}
		}
		if err := writeIndentedJSON(cmd.OutOrStdout(), resp); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode report", err)
		}
		return nil
	}

	text := report.RenderText(rep, report.TextOptions{Color: opts.colorEnabled(cmd.OutOrStdout())})
	fmt.Fprint(cmd.OutOrStdout(), string(text))
	return nil
}

// failedCount is the number of fixtures that did not pass, counting
// unloadable manifests.
func failedCount(rep *report.AggregateReport) int {
	s := rep.Summary
	return s.FixturesFailed + s.FixtureErrors + s.LoadFailures
}
