package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/atreview/internal/fileutil"
	"github.com/harrison/atreview/internal/models"
)

// LoadSetupScripts reads every .js file in a pattern's data/js directory.
// Each non-blank line is trimmed and tab-indented. A pattern without the
// directory has no setup scripts.
func LoadSetupScripts(patternDir string) ([]models.SetupScript, error) {
	scriptsDir := filepath.Join(patternDir, "data", "js")
	if _, err := os.Stat(scriptsDir); os.IsNotExist(err) {
		return nil, nil
	}

	result, err := fileutil.ScanDirectory(scriptsDir, fileutil.ScanOptions{
		Extensions: []string{".js"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan setup scripts: %w", err)
	}

	scripts := make([]models.SetupScript, 0, len(result.Files))
	for _, file := range result.Files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read setup script: %w", err)
		}
		scripts = append(scripts, models.SetupScript{
			Name: strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
			Body: indentScript(string(data)),
		})
	}
	return scripts, nil
}

func indentScript(source string) string {
	var sb strings.Builder
	for _, line := range lineBreak.Split(source, -1) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sb.WriteString("\t")
		sb.WriteString(trimmed)
		sb.WriteString("\n")
	}
	return sb.String()
}
