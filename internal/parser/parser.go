// Package parser loads one pattern directory of a test plan: its HTML
// fixtures, their JSON metadata, the reference row from data/references.csv,
// and the setup scripts under data/js.
//
// Loading is strict: a missing or malformed file is returned as an error
// naming the file. A directory without fixtures is not an error; it yields a
// plan with no tests.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/atreview/internal/fileutil"
	"github.com/harrison/atreview/internal/models"
)

// LoadOptions configures pattern loading
type LoadOptions struct {
	// Sentinels are applies_to phrases meaning "all registered ATs".
	// Nil means DefaultScreenReaderSentinels.
	Sentinels []string
}

// FindFixtures returns the absolute paths of a pattern's test fixtures:
// every .html file except index.html, sorted by file name
func FindFixtures(patternDir string) ([]string, error) {
	result, err := fileutil.ScanDirectory(patternDir, fileutil.ScanOptions{
		Extensions:   []string{".html"},
		ExcludeFiles: []string{"index.html"},
	})
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// LoadPattern loads every test of one pattern directory in discovery order
func LoadPattern(patternDir string, opts LoadOptions) (*models.TestPlan, error) {
	absDir, err := filepath.Abs(patternDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pattern directory %s: %w", patternDir, err)
	}

	plan := &models.TestPlan{
		Pattern: filepath.Base(absDir),
		Dir:     absDir,
	}

	fixtures, err := FindFixtures(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover fixtures in %s: %w", plan.Pattern, err)
	}
	if len(fixtures) == 0 {
		return plan, nil
	}

	plan.Reference, err = ReadReference(absDir)
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", plan.Pattern, err)
	}

	plan.SetupScripts, err = LoadSetupScripts(absDir)
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", plan.Pattern, err)
	}

	for _, fixturePath := range fixtures {
		test, err := loadTest(plan, fixturePath, opts)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", plan.Pattern, err)
		}
		plan.Tests = append(plan.Tests, *test)
	}

	return plan, nil
}

// loadTest combines one fixture with its sibling JSON metadata
func loadTest(plan *models.TestPlan, fixturePath string, opts LoadOptions) (*models.TestDescriptor, error) {
	fileName := filepath.Base(fixturePath)

	f, err := os.Open(fixturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	fixture, err := ParseFixture(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", fileName, err)
	}

	metadataName := strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ".json"
	mf, err := os.Open(filepath.Join(plan.Dir, metadataName))
	if err != nil {
		return nil, fmt.Errorf("failed to open test metadata: %w", err)
	}
	meta, err := DecodeMetadata(mf, opts.Sentinels)
	mf.Close()
	if err != nil {
		return nil, fmt.Errorf("metadata %s: %w", metadataName, err)
	}

	return &models.TestDescriptor{
		Name:                   fixture.Title,
		FileName:               fileName,
		FilePath:               fixturePath,
		Location:               "/" + plan.Pattern + "/" + fileName,
		ReferencePath:          "/" + plan.Pattern + "/" + plan.Reference,
		Task:                   meta.Task,
		Mode:                   meta.Mode,
		UserInstruction:        meta.UserInstruction,
		Applicability:          meta.Applicability,
		DefaultAssertions:      meta.DefaultAssertions,
		ATAssertionOverrides:   meta.ATAssertionOverrides,
		SetupScriptName:        meta.SetupScriptName,
		SetupScriptDescription: meta.SetupScriptDescription,
		HelpRefs:               fixture.HelpRefs,
	}, nil
}
