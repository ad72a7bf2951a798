package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/swatch/internal/report"
	"github.com/roach88/swatch/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// showPayload is the data section of the show command's JSON envelope.
type showPayload struct {
	RunID      string          `json:"run_id"`
	CreatedAt  string          `json:"created_at"`
	ReportHash string          `json:"report_hash"`
	Report     json.RawMessage `json:"report"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Re-render one recorded run in full",
		Long: `Re-render one recorded run from its stored session reports.

The stored rows rebuild the same aggregate the run command rendered,
so the output matches what the original run printed. The exit code
reports whether the lookup succeeded, not the stored verdict.

Example:
  swatch show --db ./swatch.db 01890a5d-ac96-774b-bcce-b302099a8057
  swatch show --db ./swatch.db 01890a5d-ac96-774b-bcce-b302099a8057 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runShow(opts *ShowOptions, runID string, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	run, rep, err := st.GetRun(context.Background(), runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", runID))
		}
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	if opts.Format == "json" {
		raw, err := report.RenderJSON(rep)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to encode report", err)
		}
		return writeIndentedJSON(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data: showPayload{
				RunID:      run.ID,
				CreatedAt:  run.CreatedAt.UTC().Format(time.RFC3339Nano),
				ReportHash: run.ReportHash,
				Report:     raw,
			},
		})
	}

	// Text format
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s)\n\n", run.ID, run.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprint(out, string(report.RenderText(rep, report.TextOptions{Color: opts.colorEnabled(out)})))
	return nil
}
