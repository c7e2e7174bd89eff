package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/atreview/internal/config"
	"github.com/harrison/atreview/internal/logger"
	"github.com/harrison/atreview/internal/review"
	"github.com/harrison/atreview/internal/vcs"
)

// settings is the merged configuration of one invocation
type settings struct {
	root string
	cfg  *config.Config
}

// loadSettings layers the config file, the environment, and the flags of cmd,
// then validates the result
func loadSettings(cmd *cobra.Command) (*settings, error) {
	rootFlag, _ := cmd.Flags().GetString("root")
	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", rootFlag, err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(cmd.Context()); err != nil {
		return nil, err
	}

	// Only flags set on the command line override file and environment values
	var outDirPtr, templateDirPtr, logLevelPtr *string
	var noGitPtr *bool
	if f := cmd.Flags().Lookup("outDir"); f != nil && f.Changed {
		outDir := f.Value.String()
		outDirPtr = &outDir
	}
	if cmd.Flags().Changed("templates") {
		templateDir, _ := cmd.Flags().GetString("templates")
		templateDirPtr = &templateDir
	}
	if cmd.Flags().Changed("log-level") {
		logLevel, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &logLevel
	}
	if cmd.Flags().Changed("no-git") {
		noGit, _ := cmd.Flags().GetBool("no-git")
		noGitPtr = &noGit
	}
	cfg.MergeWithFlags(outDirPtr, templateDirPtr, logLevelPtr, noGitPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &settings{root: root, cfg: cfg}, nil
}

// pipelineOptions builds the review options of an invocation. Log lines go to
// the command's error stream; progress goes to its output stream.
func (s *settings) pipelineOptions(cmd *cobra.Command) (review.Options, *logger.ConsoleLogger, error) {
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), s.cfg.LogLevel)

	history, err := vcs.Open(s.root, s.cfg.GitHistory)
	if err != nil {
		return review.Options{}, nil, fmt.Errorf("failed to open repository history: %w", err)
	}
	if _, ok := history.(vcs.NoHistory); ok && s.cfg.GitHistory {
		log.LogDebug(fmt.Sprintf("%s is not inside a git repository; dates and commits are left blank", s.root))
	}

	return review.Options{
		TestsDir:    s.cfg.TestsPath(s.root),
		OutDir:      s.cfg.OutPath(s.root),
		TemplateDir: s.cfg.TemplatePath(s.root),
		Sentinels:   s.cfg.ScreenReaderSentinels,
		History:     history,
		Logger:      log,
		Progress:    cmd.OutOrStdout(),
	}, log, nil
}
