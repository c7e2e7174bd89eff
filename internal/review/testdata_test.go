package review

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const supportJSON = `{
  "ats": [
    {"key": "jaws", "name": "JAWS"},
    {"key": "nvda", "name": "NVDA"},
    {"key": "voiceover_macos", "name": "VoiceOver for macOS"}
  ]
}`

const checkboxCommands = `{
  "navigate to checkbox": {
    "reading": {
      "jaws": [["X"], ["SHIFT_X"], ["TAB,SHIFT_TAB"]],
      "nvda": [["DOWN", "until the checkbox is reached"]]
    }
  },
  "operate checkbox": {
    "interaction": {
      "jaws": [["SPACE"]]
    }
  }
}`

const navigateFixture = `<!DOCTYPE html>
<html>
<head>
<title>Navigate to an unchecked checkbox</title>
<link rel="help" href="https://www.w3.org/TR/wai-aria-1.2/#checkbox">
<link rel="help" href="https://w3c.github.io/aria-practices/examples/checkbox/checkbox-1/checkbox-1.html">
</head>
<body></body>
</html>`

const navigateMetadata = `{
  "setup_script_description": "set focus on a link before the checkbox",
  "setupTestPage": "setFocusBeforeCheckbox",
  "applies_to": ["Screen Readers"],
  "mode": ["reading", "interaction"],
  "task": "navigate to checkbox",
  "specific_user_instruction": "Navigate to the first checkbox.",
  "output_assertions": [
    [1, "Role 'checkbox' is conveyed"],
    ["2", "State of the checkbox (not checked) is conveyed"]
  ],
  "additional_assertions": {"jaws": []}
}`

const operateFixture = `<!DOCTYPE html>
<html>
<head>
<title>Operate a checkbox</title>
<link rel="help" href="https://www.w3.org/TR/wai-aria-1.2/#aria-checked">
</head>
<body></body>
</html>`

const operateMetadata = `{
  "applies_to": ["JAWS"],
  "mode": "interaction",
  "task": "operate checkbox",
  "specific_user_instruction": "Press **Space** to toggle the checkbox.",
  "output_assertions": [[2, "Default assertion"]],
  "additional_assertions": {"jaws": [["1", "Change in state is conveyed"]]}
}`

// writeTree creates a tests directory with one complete pattern (checkbox),
// one pattern without fixtures (grid), a resources directory, and a loose file.
// It returns the tests directory.
func writeTree(t *testing.T) string {
	t.Helper()
	testsDir := filepath.Join(t.TempDir(), "tests")

	files := map[string]string{
		"support.json":                               supportJSON,
		"README.md":                                  "# tests",
		"resources/keys.json":                        `{"CUSTOM": "Custom Key"}`,
		"resources/at-commands.mjs":                  "export {};",
		"checkbox/commands.json":                     checkboxCommands,
		"checkbox/data/references.csv":               "refId,value\nreference,reference/2020-11-23_175030/checkbox-1.html\n",
		"checkbox/data/js/setFocusBeforeCheckbox.js": "// sets focus\n  testPageDocument.querySelector('#beforelink').focus();\n",
		"checkbox/index.html":                        "<html><head><title>Index</title></head></html>",
		"checkbox/test-01-navigate-checkbox.html":    navigateFixture,
		"checkbox/test-01-navigate-checkbox.json":    navigateMetadata,
		"checkbox/test-02-operate-checkbox.html":     operateFixture,
		"checkbox/test-02-operate-checkbox.json":     operateMetadata,
		"grid/index.html":                            "<html></html>",
	}

	for name, content := range files {
		path := filepath.Join(testsDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return testsDir
}
