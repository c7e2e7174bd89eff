package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/atreview/internal/display"
	"github.com/harrison/atreview/internal/review"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Resolve every test plan without writing output",
		Long: `Load and resolve every pattern under the tests directory, checking for:
  - Malformed or missing support.json, commands.json, and test metadata
  - Tests that apply to an unknown assistive technology
  - Unknown key identifiers in commands.json
  - Missing reference rows and malformed help links
  - Template errors

Tests without commands and patterns without tests are reported as warnings.

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateWithOutput(cmd, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// validateWithOutput validates the test plans with a custom output writer (for testing)
func validateWithOutput(cmd *cobra.Command, output io.Writer) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	opts, _, err := s.pipelineOptions(cmd)
	if err != nil {
		return err
	}
	opts.Progress = nil

	result, err := review.Validate(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if len(result.SkippedPatterns) > 0 {
		display.WarnSkippedPatterns(result.SkippedPatterns).Display(output)
	}
	if len(result.MissingCommands) > 0 {
		display.WarnMissingCommands(result.MissingCommands).Display(output)
	}

	fmt.Fprintf(output, "Valid: %d patterns, %d tests\n", len(result.Patterns), result.TotalTests)
	return nil
}
