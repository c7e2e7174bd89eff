package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// ReadReference returns the reference fixture path declared in a pattern's
// data/references.csv: the second field of the first row starting "reference,"
func ReadReference(patternDir string) (string, error) {
	path := filepath.Join(patternDir, "data", "references.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read references: %w", err)
	}

	reference, ok := findReference(string(data))
	if !ok {
		return "", fmt.Errorf("%s has no \"reference,\" row", path)
	}
	return reference, nil
}

func findReference(csv string) (string, bool) {
	for _, row := range lineBreak.Split(csv, -1) {
		if strings.HasPrefix(row, "reference,") {
			return strings.Split(row, ",")[1], true
		}
	}
	return "", false
}
