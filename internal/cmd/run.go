package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/atreview/internal/review"
)

// runCommand generates the review pages and the index
func runCommand(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cmd.SetContext(ctx)

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	opts, log, err := s.pipelineOptions(cmd)
	if err != nil {
		return err
	}
	opts.RunID = uuid.NewString()

	log.LogDebug(fmt.Sprintf("Run %s: writing reviews to %s", opts.RunID, opts.OutDir))

	result, err := review.Run(ctx, opts)
	if err != nil {
		return err
	}

	if n := len(result.MissingCommands); n > 0 {
		log.LogInfo(fmt.Sprintf("%d test/AT combinations have no commands (run \"atreview validate\" to list them)", n))
	}
	return nil
}
