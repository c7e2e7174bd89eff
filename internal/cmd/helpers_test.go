package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{"ATREVIEW_OUT_DIR", "ATREVIEW_LOG_LEVEL", "ATREVIEW_TEMPLATE_DIR", "ATREVIEW_NO_GIT"}

// clearEnv unsets the ATREVIEW_* variables for the duration of a test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

// writeRepo creates a repository root with a tests directory holding one
// pattern (menu) whose test applies to NVDA and JAWS but only has NVDA
// commands, and one pattern without tests (grid)
func writeRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"tests/support.json":             `{"ats": [{"key": "jaws", "name": "JAWS"}, {"key": "nvda", "name": "NVDA"}]}`,
		"tests/menu/commands.json":       `{"open menu": {"interaction": {"nvda": [["ENTER"]]}}}`,
		"tests/menu/data/references.csv": "refId,value\nreference,reference/menu.html\n",
		"tests/menu/test-01-open-menu.html": `<html><head><title>Open the menu</title>` +
			`<link rel="help" href="https://www.w3.org/TR/wai-aria-1.2/#menu"></head></html>`,
		"tests/menu/test-01-open-menu.json": `{"applies_to": ["NVDA", "JAWS"], "mode": "interaction", "task": "open menu",` +
			` "output_assertions": [[1, "Menu is announced"]]}`,
		"tests/grid/index.html": "<html></html>",
	}

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	return root
}

// execute runs the root command with args and returns its output and error streams
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
