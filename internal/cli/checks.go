package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/swatch/internal/checks"
)

// checkListing describes one built-in check for the checks command.
type checkListing struct {
	Name    string   `json:"name"`
	Summary string   `json:"summary"`
	Params  []string `json:"params"`
}

// NewChecksCommand creates the checks command.
func NewChecksCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List the built-in checks fixtures can reference",
		Long: `List every built-in check with its parameter contract.

Fixture manifests bind subtests to these names; an unknown name or a
rejected parameter is a load-time problem, not a runtime one.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(rootOpts, cmd)
		},
	}

	return cmd
}

func runChecks(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	catalog := checks.Catalog()
	listings := make([]checkListing, 0, len(catalog))
	for _, c := range catalog {
		listings = append(listings, checkListing{
			Name:    c.Name,
			Summary: c.Summary,
			Params:  c.Params,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(listings)
	}

	// Text format
	for _, c := range listings {
		fmt.Fprintf(formatter.Writer, "%s\n", c.Name)
		fmt.Fprintf(formatter.Writer, "  %s\n", c.Summary)
		fmt.Fprintf(formatter.Writer, "  params: %s\n", strings.Join(c.Params, ", "))
	}
	return nil
}
