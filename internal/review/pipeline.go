// Package review compiles a tree of test plans into review pages.
//
// Run walks every pattern directory under the tests directory in sorted
// order, resolves each test for each applicable assistive technology, and
// writes one review page per pattern plus an index. Validate performs the
// same resolution and template execution without writing anything.
//
// Patterns are processed strictly one at a time. The run stops at the first
// error; the only tolerated gaps are AT/test pairs without commands and
// pattern directories without test fixtures.
package review

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/atreview/internal/commands"
	"github.com/harrison/atreview/internal/display"
	"github.com/harrison/atreview/internal/filelock"
	"github.com/harrison/atreview/internal/fileutil"
	"github.com/harrison/atreview/internal/models"
	"github.com/harrison/atreview/internal/parser"
	"github.com/harrison/atreview/internal/registry"
	"github.com/harrison/atreview/internal/resolver"
	"github.com/harrison/atreview/internal/vcs"
)

// ResourcesDir is the tests subdirectory holding shared resources, never a pattern
const ResourcesDir = "resources"

// Logger is the logging surface used by the pipeline
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogPatternResult(summary models.PatternSummary)
	LogSummary(result models.RunResult)
}

// Options configures a run
type Options struct {
	TestsDir    string           // Directory holding support.json and the pattern directories
	OutDir      string           // Output root; pages go to <OutDir>/review, the index to <OutDir>/index.html
	TemplateDir string           // Template override directory ("" = embedded templates)
	Sentinels   []string         // applies_to phrases meaning every registered AT (nil = defaults)
	History     vcs.History      // Version-control lookups (nil = no history)
	Logger      Logger           // Required
	Progress    io.Writer        // Receives progress lines and the summary table (nil = discard)
	RunID       string           // Identifier written to the output lock ("" = generated)
	Now         func() time.Time // Clock used for the run duration (nil = time.Now)
}

// Result describes a completed run
type Result struct {
	models.RunResult
	Reports         []*models.PatternReport // Rendered reports in discovery order
	MissingCommands []string                // "<pattern>/<file> (<AT>)" for records without commands
}

// pattern is one resolved pattern directory
type pattern struct {
	report  *models.PatternReport
	summary models.PatternSummary
}

// Run resolves every pattern and writes the review pages and index
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts = withDefaults(opts)
	start := opts.Now()

	renderer, err := NewRenderer(opts.TemplateDir)
	if err != nil {
		return nil, err
	}

	reg, patterns, result, err := resolveAll(ctx, opts)
	if err != nil {
		return nil, err
	}

	reviewDir := filepath.Join(opts.OutDir, "review")
	lock, err := filelock.AcquireOutput(reviewDir, opts.RunID)
	if err != nil {
		return nil, err
	}
	defer lock.Release()
	opts.Logger.LogDebug(fmt.Sprintf("Run %s holds %s", lock.RunID(), lock.Path()))

	progress := display.NewProgressIndicator(opts.Progress, len(patterns))

	for _, p := range patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := renderer.RenderReview(&buf, p.report, reg.All()); err != nil {
			return nil, err
		}

		file := filepath.Join(reviewDir, p.report.PatternName+".html")
		if err := filelock.AtomicWrite(file, buf.Bytes()); err != nil {
			return nil, fmt.Errorf("failed to write review of %s: %w", p.report.PatternName, err)
		}
		result.Files = append(result.Files, file)
		progress.Summarized(p.report.PatternName, file)
		opts.Logger.LogTrace(fmt.Sprintf("Rendered %d of %d patterns", progress.Current(), progress.Total()))
	}

	var buf bytes.Buffer
	if err := renderer.RenderIndex(&buf, result.Patterns); err != nil {
		return nil, err
	}
	indexFile := filepath.Join(opts.OutDir, "index.html")
	if err := filelock.AtomicWrite(indexFile, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}
	result.Files = append(result.Files, indexFile)
	progress.Generated(indexFile)

	if opts.Progress != nil {
		display.RenderSummaryTable(opts.Progress, result.Patterns)
	}
	progress.Complete()

	result.Duration = opts.Now().Sub(start)
	opts.Logger.LogSummary(result.RunResult)
	return result, nil
}

// Validate resolves every pattern and executes the templates without writing
// any file
func Validate(ctx context.Context, opts Options) (*Result, error) {
	opts = withDefaults(opts)
	start := opts.Now()

	renderer, err := NewRenderer(opts.TemplateDir)
	if err != nil {
		return nil, err
	}

	reg, patterns, result, err := resolveAll(ctx, opts)
	if err != nil {
		return nil, err
	}

	for _, p := range patterns {
		if err := renderer.RenderReview(io.Discard, p.report, reg.All()); err != nil {
			return nil, err
		}
	}
	if err := renderer.RenderIndex(io.Discard, result.Patterns); err != nil {
		return nil, err
	}

	result.Duration = opts.Now().Sub(start)
	return result, nil
}

func withDefaults(opts Options) Options {
	if opts.History == nil {
		opts.History = vcs.NoHistory{}
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

// resolveAll loads the shared inputs once, then resolves each pattern
// directory in sorted order
func resolveAll(ctx context.Context, opts Options) (*registry.Registry, []pattern, *Result, error) {
	opts.Logger.LogDebug(fmt.Sprintf("Run %s: reading tests from %s", opts.RunID, opts.TestsDir))

	reg, err := registry.Load(filepath.Join(opts.TestsDir, "support.json"))
	if err != nil {
		return nil, nil, nil, err
	}
	opts.Logger.LogTrace(fmt.Sprintf("Registry has %d assistive technologies: %v", reg.Len(), reg.Keys()))

	keys, err := commands.LoadKeys(filepath.Join(opts.TestsDir, ResourcesDir, "keys.json"))
	if err != nil {
		return nil, nil, nil, err
	}

	dirs, err := fileutil.ListSubdirectories(opts.TestsDir, []string{ResourcesDir})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list patterns in %s: %w", opts.TestsDir, err)
	}

	result := &Result{RunResult: models.RunResult{RunID: opts.RunID}}
	var patterns []pattern

	for _, name := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}

		dir := filepath.Join(opts.TestsDir, name)
		p, err := resolvePattern(dir, reg, keys, opts)
		if err != nil {
			return nil, nil, nil, err
		}
		if p == nil {
			opts.Logger.LogDebug(fmt.Sprintf("Skipping %s: no test fixtures", name))
			result.SkippedPatterns = append(result.SkippedPatterns, name)
			continue
		}

		opts.Logger.LogPatternResult(p.summary)
		patterns = append(patterns, *p)
		result.Reports = append(result.Reports, p.report)
		result.Patterns = append(result.Patterns, p.summary)
		result.TotalTests += p.summary.NumberOfTests
		result.MissingCommands = append(result.MissingCommands, MissingCommands(p.report)...)
	}

	return reg, patterns, result, nil
}

// resolvePattern loads, resolves, and numbers one pattern. It returns nil when
// the directory has no test fixtures; commands.json is only read otherwise.
func resolvePattern(dir string, reg *registry.Registry, keys map[string]string, opts Options) (*pattern, error) {
	plan, err := parser.LoadPattern(dir, parser.LoadOptions{Sentinels: opts.Sentinels})
	if err != nil {
		return nil, err
	}
	if len(plan.Tests) == 0 {
		return nil, nil
	}

	table, err := commands.LoadTable(filepath.Join(dir, "commands.json"), keys, nil)
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", plan.Pattern, err)
	}
	opts.Logger.LogTrace(fmt.Sprintf("Pattern %s: %d tasks in commands.json", plan.Pattern, table.Tasks()))

	asm := resolver.NewAssembler(reg, table, opts.Logger)
	report, err := BuildPattern(plan, asm, opts.History)
	if err != nil {
		return nil, err
	}

	summary, err := Summarize(report, plan.Dir, opts.History)
	if err != nil {
		return nil, err
	}

	return &pattern{report: report, summary: summary}, nil
}
