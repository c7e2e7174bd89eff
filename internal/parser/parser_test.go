package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/atreview/internal/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func fixtureHTML(title string, helpRefs ...string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><head><title>")
	sb.WriteString(title)
	sb.WriteString("</title>\n")
	for _, ref := range helpRefs {
		sb.WriteString(`<link rel="help" href="` + ref + "\">\n")
	}
	sb.WriteString("</head><body></body></html>\n")
	return sb.String()
}

// setupCheckboxPattern creates a pattern directory with two tests
func setupCheckboxPattern(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "checkbox")

	writeFile(t, filepath.Join(dir, "data", "references.csv"),
		"refId,value\r\nreference,reference/checkbox-1.html\r\nexample,https://example.com\r\n")
	writeFile(t, filepath.Join(dir, "data", "js", "setFocusBeforeCheckbox.js"),
		"  // focus the link\n\n  testPageDocument.querySelector('a').focus();  \n")
	writeFile(t, filepath.Join(dir, "data", "js", "checkFirst.js"),
		"testPageDocument.querySelector('[role=checkbox]').click();\n")
	writeFile(t, filepath.Join(dir, "index.html"), "<html><head><title>Index</title></head></html>")

	writeFile(t, filepath.Join(dir, "test-02-operate-checkbox.html"),
		fixtureHTML("Operate a checkbox", "https://www.w3.org/TR/wai-aria-1.1/#checkbox"))
	writeFile(t, filepath.Join(dir, "test-02-operate-checkbox.json"),
		`{"applies_to": ["screen readers"], "mode": "interaction", "task": "operate checkbox",
		  "specific_user_instruction": "Toggle the checkbox",
		  "output_assertions": [["1", "State change is conveyed"]]}`)

	writeFile(t, filepath.Join(dir, "test-01-navigate-checkbox.html"),
		fixtureHTML("Navigate to a checkbox",
			"https://www.w3.org/TR/wai-aria-1.1/#checkbox",
			"https://w3c.github.io/aria-practices/examples/checkbox/checkbox-1/checkbox-1.html"))
	writeFile(t, filepath.Join(dir, "test-01-navigate-checkbox.json"),
		`{"applies_to": ["nvda", "JAWS"], "mode": ["reading", "interaction"], "task": "navigate to checkbox",
		  "setupTestPage": "setFocusBeforeCheckbox", "setup_script_description": "sets focus on a link",
		  "output_assertions": [["1", "Role is conveyed"]],
		  "additional_assertions": {"jaws": []}}`)

	return dir
}

func TestLoadPattern(t *testing.T) {
	dir := setupCheckboxPattern(t)

	plan, err := LoadPattern(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadPattern() error = %v", err)
	}

	if plan.Pattern != "checkbox" {
		t.Errorf("Pattern = %q, want checkbox", plan.Pattern)
	}
	if plan.Reference != "reference/checkbox-1.html" {
		t.Errorf("Reference = %q", plan.Reference)
	}

	if len(plan.Tests) != 2 {
		t.Fatalf("got %d tests, want 2", len(plan.Tests))
	}

	first := plan.Tests[0]
	if first.FileName != "test-01-navigate-checkbox.html" {
		t.Errorf("Tests[0].FileName = %q, tests must be sorted by file name", first.FileName)
	}
	if first.Name != "Navigate to a checkbox" {
		t.Errorf("Tests[0].Name = %q", first.Name)
	}
	if first.Location != "/checkbox/test-01-navigate-checkbox.html" {
		t.Errorf("Tests[0].Location = %q", first.Location)
	}
	if first.ReferencePath != "/checkbox/reference/checkbox-1.html" {
		t.Errorf("Tests[0].ReferencePath = %q", first.ReferencePath)
	}
	if first.Mode != "reading" {
		t.Errorf("Tests[0].Mode = %q, want reading", first.Mode)
	}
	if first.SetupScriptName != "setFocusBeforeCheckbox" {
		t.Errorf("Tests[0].SetupScriptName = %q", first.SetupScriptName)
	}
	if len(first.HelpRefs) != 2 {
		t.Errorf("Tests[0].HelpRefs = %v", first.HelpRefs)
	}
	if !filepath.IsAbs(first.FilePath) {
		t.Errorf("Tests[0].FilePath = %q, want absolute", first.FilePath)
	}

	second := plan.Tests[1]
	if second.Applicability.Kind != models.ApplicabilityAllKnown {
		t.Errorf("Tests[1] applicability = %v, want all known", second.Applicability.Kind)
	}
}

func TestLoadPattern_SetupScripts(t *testing.T) {
	dir := setupCheckboxPattern(t)

	plan, err := LoadPattern(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadPattern() error = %v", err)
	}

	if len(plan.SetupScripts) != 2 {
		t.Fatalf("got %d setup scripts, want 2", len(plan.SetupScripts))
	}

	if plan.SetupScripts[0].Name != "checkFirst" {
		t.Errorf("SetupScripts[0].Name = %q, want checkFirst", plan.SetupScripts[0].Name)
	}

	want := "\t// focus the link\n\ttestPageDocument.querySelector('a').focus();\n"
	if plan.SetupScripts[1].Body != want {
		t.Errorf("SetupScripts[1].Body = %q, want %q", plan.SetupScripts[1].Body, want)
	}
}

func TestLoadPattern_NoFixtures(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty")
	writeFile(t, filepath.Join(dir, "index.html"), "<html><head><title>Index</title></head></html>")
	writeFile(t, filepath.Join(dir, "notes.txt"), "nothing here")

	plan, err := LoadPattern(dir, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadPattern() error = %v, want nil for a pattern without fixtures", err)
	}
	if len(plan.Tests) != 0 {
		t.Errorf("got %d tests, want 0", len(plan.Tests))
	}
}

func TestLoadPattern_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, dir string)
		wantErr string
	}{
		{
			name: "missing references.csv",
			mutate: func(t *testing.T, dir string) {
				os.Remove(filepath.Join(dir, "data", "references.csv"))
			},
			wantErr: "failed to read references",
		},
		{
			name: "no reference row",
			mutate: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "data", "references.csv"), "refId,value\nexample,x\n")
			},
			wantErr: "no \"reference,\" row",
		},
		{
			name: "missing metadata",
			mutate: func(t *testing.T, dir string) {
				os.Remove(filepath.Join(dir, "test-02-operate-checkbox.json"))
			},
			wantErr: "failed to open test metadata",
		},
		{
			name: "malformed metadata",
			mutate: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "test-02-operate-checkbox.json"), `{"mode": `)
			},
			wantErr: "test-02-operate-checkbox.json",
		},
		{
			name: "fixture without title",
			mutate: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, "test-01-navigate-checkbox.html"), "<html></html>")
			},
			wantErr: "no <title>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupCheckboxPattern(t)
			tt.mutate(t, dir)

			_, err := LoadPattern(dir, LoadOptions{})
			if err == nil {
				t.Fatalf("LoadPattern() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadPattern() error = %v, want %q", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), "checkbox") {
				t.Errorf("LoadPattern() error = %v, want pattern name in message", err)
			}
		})
	}
}

func TestFindReference(t *testing.T) {
	tests := []struct {
		name   string
		csv    string
		want   string
		wantOK bool
	}{
		{"unix newlines", "a,b\nreference,ref.html\n", "ref.html", true},
		{"windows newlines", "a,b\r\nreference,ref.html\r\n", "ref.html", true},
		{"first row wins", "reference,one.html\nreference,two.html", "one.html", true},
		{"extra fields ignored", "reference,ref.html,extra", "ref.html", true},
		{"prefix must match at line start", " reference,ref.html", "", false},
		{"absent", "refId,value\n", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findReference(tt.csv)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("findReference() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLoadSetupScripts_MissingDirectory(t *testing.T) {
	scripts, err := LoadSetupScripts(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSetupScripts() error = %v", err)
	}
	if len(scripts) != 0 {
		t.Errorf("got %d scripts, want 0", len(scripts))
	}
}

// makeUnreadable removes read permission from dir for the rest of the test.
// Permission checks do not apply to root, so the test is skipped there.
func makeUnreadable(t *testing.T, dir string) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	if err := os.Chmod(dir, 0300); err != nil {
		t.Fatalf("failed to chmod %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0755) })
}

func TestLoadPattern_UnreadableDirectory(t *testing.T) {
	dir := setupCheckboxPattern(t)
	makeUnreadable(t, dir)

	plan, err := LoadPattern(dir, LoadOptions{})
	if err == nil {
		t.Fatalf("LoadPattern() = %d tests, want an error for an unreadable pattern directory", len(plan.Tests))
	}
	if !strings.Contains(err.Error(), "checkbox") {
		t.Errorf("LoadPattern() error = %v, want it to name the pattern", err)
	}
}

func TestLoadSetupScripts_UnreadableDirectory(t *testing.T) {
	dir := setupCheckboxPattern(t)
	makeUnreadable(t, filepath.Join(dir, "data", "js"))

	if _, err := LoadSetupScripts(dir); err == nil {
		t.Error("LoadSetupScripts() expected an error for an unreadable data/js directory")
	}
}
