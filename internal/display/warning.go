package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Affected tests or files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Items) > 0 {
		b.WriteString("    ")
		if len(w.Items) == 1 {
			b.WriteString("Affected item:\n")
		} else {
			b.WriteString("Affected items:\n")
		}

		for i, item := range w.Items {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, item))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// WarnMissingCommands creates a warning for AT/test pairs that have no
// commands in their pattern's commands.json
func WarnMissingCommands(missing []string) Warning {
	return Warning{
		Title:      "Tests without commands",
		Message:    fmt.Sprintf("%d test/AT combinations have no commands and will render without a command list", len(missing)),
		Items:      missing,
		Suggestion: "Add the task to commands.json for each listed assistive technology",
	}
}

// WarnSkippedPatterns creates a warning for pattern directories without test fixtures
func WarnSkippedPatterns(patterns []string) Warning {
	return Warning{
		Title: "Patterns without tests",
		Items: patterns,
	}
}
