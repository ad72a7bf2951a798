package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	NoColor bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// formatAliases maps the fixture-facing format names onto the
// canonical ones, so --format=human and --format=machine keep working.
var formatAliases = map[string]string{
	"human":   "text",
	"machine": "json",
}

// NewRootCommand creates the root command for the swatch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "swatch",
		Short: "swatch - style resolution conformance harness",
		Long: `A conformance harness for style resolution engines.

Fixtures declare documents, stylesheets, and named checks in YAML;
swatch runs each fixture as an isolated session and reports every
subtest verdict, for humans or for machines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if alias, ok := formatAliases[opts.Format]; ok {
				opts.Format = alias
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text; machine|human are aliases)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable ANSI colors in text output")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewChecksCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

// Execute runs the CLI with the given arguments and returns the
// process exit code.
func Execute(args []string) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// colorEnabled reports whether text output to w should carry ANSI
// colors: never when --no-color is set, otherwise only on a terminal.
func (o *RootOptions) colorEnabled(w io.Writer) bool {
	if o.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
