// Package display provides terminal UI utilities for review progress, warnings, and summaries.
//
// This package centralizes user-facing output of the atreview CLI. Log lines
// go through the logger package; everything a user reads as the result of a
// run goes through display.
//
// # Progress
//
// Use ProgressIndicator while writing review pages:
//
//	progress := display.NewProgressIndicator(os.Stdout, len(reports))
//	for _, report := range reports {
//	    // ... render report ...
//	    progress.Summarized(report.PatternName, file)
//	}
//	progress.Generated(indexFile)
//	progress.Complete()
//
// Lines are plain text unless the writer is a terminal, in which case they
// are wrapped in ANSI colors (cyan for pages, green for completion).
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.WarnMissingCommands([]string{"checkbox/test-01.html (NVDA)"})
//	warning.Display(os.Stderr)
//
// # Summary Table
//
// RenderSummaryTable prints one markdown-style row per rendered pattern and
// a total row:
//
//	display.RenderSummaryTable(os.Stdout, result.Patterns)
//
// All functions accept io.Writer interfaces for testability.
package display
