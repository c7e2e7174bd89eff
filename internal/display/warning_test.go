package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisplayWarning_TitleOnly(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title: "Configuration Missing",
	}

	w.Display(&buf)

	output := buf.String()
	if !strings.HasPrefix(output, "\x1b[33m⚠️  Warning: Configuration Missing\n") {
		t.Errorf("unexpected header in %q", output)
	}
	if !strings.HasSuffix(output, "\x1b[0m") {
		t.Error("Expected ANSI reset code at end of output")
	}
	if strings.Contains(output, "Affected") || strings.Contains(output, "Suggestion") {
		t.Errorf("optional sections should be omitted: %q", output)
	}
}

func TestDisplayWarning_Items(t *testing.T) {
	tests := []struct {
		name       string
		items      []string
		wantHeader string
	}{
		{name: "single item", items: []string{"checkbox/test-01.html (JAWS)"}, wantHeader: "    Affected item:\n"},
		{name: "multiple items", items: []string{"a (NVDA)", "b (JAWS)"}, wantHeader: "    Affected items:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Warning{Title: "T", Items: tt.items}.Display(&buf)

			output := buf.String()
			if !strings.Contains(output, tt.wantHeader) {
				t.Errorf("expected %q in %q", tt.wantHeader, output)
			}
			for i, item := range tt.items {
				line := "      " + string(rune('1'+i)) + ". " + item + "\n"
				if !strings.Contains(output, line) {
					t.Errorf("expected numbered line %q in %q", line, output)
				}
			}
		})
	}
}

func TestDisplayWarning_Complete(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:      "Tests without commands",
		Message:    "2 combinations",
		Items:      []string{"x", "y"},
		Suggestion: "Add them",
	}
	w.Display(&buf)

	want := "\x1b[33m⚠️  Warning: Tests without commands\n" +
		"    2 combinations\n" +
		"    Affected items:\n" +
		"      1. x\n" +
		"      2. y\n" +
		"    Suggestion:\n" +
		"    Add them\n" +
		"\x1b[0m"
	if got := buf.String(); got != want {
		t.Errorf("Display() =\n%q\nwant\n%q", got, want)
	}
}

func TestWarnMissingCommands(t *testing.T) {
	missing := []string{"checkbox/test-01.html (NVDA)", "menu/test-02.html (JAWS)"}
	w := WarnMissingCommands(missing)

	if w.Title != "Tests without commands" {
		t.Errorf("Title = %q", w.Title)
	}
	if !strings.HasPrefix(w.Message, "2 test/AT combinations") {
		t.Errorf("Message = %q", w.Message)
	}
	if len(w.Items) != 2 || w.Items[1] != missing[1] {
		t.Errorf("Items = %v", w.Items)
	}
	if w.Suggestion == "" {
		t.Error("expected a suggestion")
	}
}

func TestWarnSkippedPatterns(t *testing.T) {
	w := WarnSkippedPatterns([]string{"grid"})
	if w.Title != "Patterns without tests" || len(w.Items) != 1 {
		t.Errorf("WarnSkippedPatterns() = %+v", w)
	}
}
