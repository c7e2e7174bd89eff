package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/harrison/atreview/internal/parser"
)

// Config represents atreview configuration options
type Config struct {
	// TestsDir is the directory holding support.json and one subdirectory per pattern,
	// relative to the repository root
	TestsDir string `yaml:"tests_dir"`

	// OutDir is the directory the review pages are written under ("" = repository root)
	OutDir string `yaml:"out_dir"`

	// TemplateDir overrides the embedded templates by file name ("" = embedded only)
	TemplateDir string `yaml:"template_dir"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// GitHistory enables last-edited and last-commit lookups
	GitHistory bool `yaml:"git_history"`

	// ScreenReaderSentinels are the applies_to values meaning "every registered AT"
	ScreenReaderSentinels []string `yaml:"screen_reader_sentinels"`
}

// envOverrides holds the ATREVIEW_* environment variables.
// Unset variables leave their pointer nil.
type envOverrides struct {
	OutDir      *string `env:"ATREVIEW_OUT_DIR,noinit"`
	LogLevel    *string `env:"ATREVIEW_LOG_LEVEL,noinit"`
	TemplateDir *string `env:"ATREVIEW_TEMPLATE_DIR,noinit"`
	NoGit       *bool   `env:"ATREVIEW_NO_GIT,noinit"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		TestsDir:              "tests",
		OutDir:                "",
		TemplateDir:           "",
		LogLevel:              "info",
		GitHistory:            true,
		ScreenReaderSentinels: append([]string(nil), parser.DefaultScreenReaderSentinels...),
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.TestsDir != "" {
		cfg.TestsDir = fileCfg.TestsDir
	}
	if fileCfg.OutDir != "" {
		cfg.OutDir = fileCfg.OutDir
	}
	if fileCfg.TemplateDir != "" {
		cfg.TemplateDir = fileCfg.TemplateDir
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	// git_history defaults to true, so presence has to be detected explicitly
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["git_history"]; exists {
			cfg.GitHistory = fileCfg.GitHistory
		}
		if _, exists := rawMap["screen_reader_sentinels"]; exists {
			cfg.ScreenReaderSentinels = fileCfg.ScreenReaderSentinels
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .atreview/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".atreview", "config.yaml")
	return LoadConfig(configPath)
}

// ApplyEnv overrides configuration values from ATREVIEW_* environment variables
func (c *Config) ApplyEnv(ctx context.Context) error {
	return c.applyEnvWith(ctx, envconfig.OsLookuper())
}

func (c *Config) applyEnvWith(ctx context.Context, lookuper envconfig.Lookuper) error {
	var env envOverrides
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("failed to process environment: %w", err)
	}

	if env.OutDir != nil {
		c.OutDir = *env.OutDir
	}
	if env.LogLevel != nil {
		c.LogLevel = *env.LogLevel
	}
	if env.TemplateDir != nil {
		c.TemplateDir = *env.TemplateDir
	}
	if env.NoGit != nil {
		c.GitHistory = !*env.NoGit
	}
	return nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration and environment values
func (c *Config) MergeWithFlags(outDir *string, templateDir *string, logLevel *string, noGit *bool) {
	if outDir != nil {
		c.OutDir = *outDir
	}
	if templateDir != nil {
		c.TemplateDir = *templateDir
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if noGit != nil {
		c.GitHistory = !*noGit
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if strings.TrimSpace(c.TestsDir) == "" {
		return fmt.Errorf("tests_dir cannot be empty")
	}

	for i, sentinel := range c.ScreenReaderSentinels {
		if strings.TrimSpace(sentinel) == "" {
			return fmt.Errorf("screen_reader_sentinels[%d] cannot be empty", i)
		}
	}

	return nil
}

// TestsPath returns the tests directory resolved against root
func (c *Config) TestsPath(root string) string {
	return resolve(root, c.TestsDir)
}

// OutPath returns the output directory resolved against root
func (c *Config) OutPath(root string) string {
	if c.OutDir == "" {
		return root
	}
	return resolve(root, c.OutDir)
}

// TemplatePath returns the template override directory resolved against root,
// or "" when none is configured
func (c *Config) TemplatePath(root string) string {
	if c.TemplateDir == "" {
		return ""
	}
	return resolve(root, c.TemplateDir)
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
