package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for atreview.
// Running it without a subcommand generates the review pages.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "atreview",
		Short: "Generate review pages for assistive technology test plans",
		Long: `atreview compiles the test plans under the tests directory into one
HTML review page per pattern plus an index.

Each test is resolved for every assistive technology it applies to: the
keyboard commands come from the pattern's commands.json, the assertions from
the test metadata, and the help links from the test fixture.

While writing, the run holds review/.atreview.lock in the output directory;
a second run against the same output directory fails instead of waiting.

Configuration is loaded from .atreview/config.yaml under the root if present,
then from ATREVIEW_* environment variables. CLI flags override both.

Examples:
  atreview                       # Write review/ and index.html under the current directory
  atreview -o build              # Write under ./build
  atreview --root ../aria-at     # Read ../aria-at/tests
  atreview validate              # Resolve everything, write nothing`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE:    runCommand,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("root", ".", "Repository root holding the tests directory")
	cmd.PersistentFlags().String("config", "", "Path to config file (default: <root>/.atreview/config.yaml)")
	cmd.PersistentFlags().String("templates", "", "Directory of template overrides")
	cmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().Bool("no-git", false, "Skip last-edited and last-commit lookups")
	cmd.Flags().StringP("outDir", "o", "", "Output directory (default: the root)")

	cmd.AddCommand(NewValidateCommand())

	return cmd
}
