package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/swatch/internal/checks"
	"github.com/roach88/swatch/internal/harness"
)

// fixtureListing describes one loadable manifest for the list command.
type fixtureListing struct {
	Path        string           `json:"path"`
	FixtureID   string           `json:"fixture_id"`
	Description string           `json:"description,omitempty"`
	Subtests    []subtestListing `json:"subtests"`
}

type subtestListing struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <fixture>...",
		Short: "List the fixtures and subtests in manifests",
		Long: `List fixture ids, descriptions, and subtest names per manifest.

Manifests are loaded the same way the run command loads them, so a
malformed manifest shows its problems here instead of a listing.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	registry := checks.NewRegistry()
	listings := make([]fixtureListing, 0, len(paths))
	var broken []FixtureValidation

	for _, path := range paths {
		fixture, err := harness.LoadFixture(path, registry)
		if err != nil {
			var malformed *harness.MalformedFixtureError
			if !errors.As(err, &malformed) {
				return WrapExitError(ExitCommandError, "failed to load fixture", err)
			}
			broken = append(broken, FixtureValidation{
				Path:     path,
				Valid:    false,
				Problems: malformed.Problems,
			})
			continue
		}

		listing := fixtureListing{
			Path:        path,
			FixtureID:   fixture.ID,
			Description: fixture.Description,
			Subtests:    make([]subtestListing, 0, len(fixture.Subtests)),
		}
		for _, st := range fixture.Subtests {
			listing.Subtests = append(listing.Subtests, subtestListing{
				Name:        st.Name,
				Description: st.Description,
			})
		}
		listings = append(listings, listing)
	}

	if formatter.Format == "json" {
		if len(broken) > 0 {
			if err := writeIndentedJSON(formatter.Writer, CLIResponse{
				Status: "error",
				Data:   listings,
				Error: &CLIError{
					Code:    "E_LIST_FAILED",
					Message: fmt.Sprintf("%d fixture(s) failed to load", len(broken)),
					Details: broken,
				},
			}); err != nil {
				return err
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d fixture(s) failed to load", len(broken)))
		}
		return formatter.Success(listings)
	}

	// Text format
	for _, l := range listings {
		if l.Description != "" {
			fmt.Fprintf(formatter.Writer, "%s: %s (%s)\n", l.FixtureID, l.Description, l.Path)
		} else {
			fmt.Fprintf(formatter.Writer, "%s (%s)\n", l.FixtureID, l.Path)
		}
		for _, st := range l.Subtests {
			if st.Description != "" {
				fmt.Fprintf(formatter.Writer, "  - %s: %s\n", st.Name, st.Description)
			} else {
				fmt.Fprintf(formatter.Writer, "  - %s\n", st.Name)
			}
		}
	}
	for _, b := range broken {
		fmt.Fprintf(formatter.Writer, "✗ %s: failed to load\n", b.Path)
		for _, p := range b.Problems {
			fmt.Fprintf(formatter.Writer, "  %s\n", p)
		}
	}

	if len(broken) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d fixture(s) failed to load", len(broken)))
	}
	return nil
}
