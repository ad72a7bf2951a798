package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/swatch/internal/checks"
	"github.com/roach88/swatch/internal/harness"
)

// FixtureValidation holds one manifest's validation verdict.
type FixtureValidation struct {
	Path      string   `json:"path"`
	Valid     bool     `json:"valid"`
	FixtureID string   `json:"fixture_id,omitempty"`
	Subtests  int      `json:"subtests,omitempty"`
	Problems  []string `json:"problems,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <fixture>...",
		Short: "Validate fixture manifests without running them",
		Long: `Validate fixture manifests without running any session.

Each manifest is parsed and its subtests are bound to registered
checks, exactly as the run command would, and every structural problem
is reported: unparseable YAML, missing or duplicate names, unknown
checks, rejected parameters. No document is loaded and no subtest
executes.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	registry := checks.NewRegistry()
	results := make([]FixtureValidation, 0, len(paths))
	invalid := 0

	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)

		fixture, err := harness.LoadFixture(path, registry)
		if err != nil {
			var malformed *harness.MalformedFixtureError
			if !errors.As(err, &malformed) {
				return WrapExitError(ExitCommandError, "failed to load fixture", err)
			}
			invalid++
			results = append(results, FixtureValidation{
				Path:     path,
				Valid:    false,
				Problems: malformed.Problems,
			})
			continue
		}

		results = append(results, FixtureValidation{
			Path:      path,
			Valid:     true,
			FixtureID: fixture.ID,
			Subtests:  len(fixture.Subtests),
		})
	}

	if err := outputValidation(formatter, results, invalid); err != nil {
		return err
	}

	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d fixture(s) invalid", invalid))
	}
	return nil
}

func outputValidation(formatter *OutputFormatter, results []FixtureValidation, invalid int) error {
	if formatter.Format == "json" {
		if invalid == 0 {
			return formatter.Success(results)
		}
		return writeIndentedJSON(formatter.Writer, CLIResponse{
			Status: "error",
			Data:   results,
			Error: &CLIError{
				Code:    "E_VALIDATE_FAILED",
				Message: fmt.Sprintf("%d fixture(s) invalid", invalid),
			},
		})
	}

	// Text format
	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(formatter.Writer, "✓ %s: %s (%d subtests)\n", r.Path, r.FixtureID, r.Subtests)
			continue
		}
		fmt.Fprintf(formatter.Writer, "✗ %s\n", r.Path)
		for _, p := range r.Problems {
			fmt.Fprintf(formatter.Writer, "  %s\n", p)
		}
	}
	if invalid == 0 {
		fmt.Fprintln(formatter.Writer, "✓ All fixtures valid")
	}
	return nil
}
