package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/harrison/atreview/internal/models"
)

// DefaultScreenReaderSentinels are the applies_to phrases that mean
// "every registered assistive technology"
var DefaultScreenReaderSentinels = []string{"desktop screen readers", "screen readers"}

// Metadata is the decoded content of a test's JSON file
type Metadata struct {
	UserInstruction        string
	Task                   string
	Mode                   models.Mode
	Applicability          models.Applicability
	DefaultAssertions      []models.RawAssertion
	ATAssertionOverrides   map[string][]models.RawAssertion
	SetupScriptDescription string
	SetupScriptName        string
}

type rawMetadata struct {
	SpecificUserInstruction string                           `json:"specific_user_instruction"`
	Task                    string                           `json:"task"`
	Mode                    *models.Mode                     `json:"mode"`
	AppliesTo               []string                         `json:"applies_to"`
	AdditionalAssertions    map[string][]models.RawAssertion `json:"additional_assertions"`
	OutputAssertions        []models.RawAssertion            `json:"output_assertions"`
	SetupScriptDescription  string                           `json:"setup_script_description"`
	SetupTestPage           string                           `json:"setupTestPage"`
}

// DecodeMetadata parses a test's JSON metadata. The first applies_to entry is
// compared case-insensitively against sentinels to detect the all-ATs form;
// nil sentinels mean DefaultScreenReaderSentinels.
func DecodeMetadata(r io.Reader, sentinels []string) (*Metadata, error) {
	var raw rawMetadata
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid test metadata: %w", err)
	}

	if raw.Mode == nil {
		return nil, fmt.Errorf("test metadata has no mode")
	}
	if len(raw.AppliesTo) == 0 {
		return nil, fmt.Errorf("test metadata has an empty applies_to")
	}

	if sentinels == nil {
		sentinels = DefaultScreenReaderSentinels
	}

	applicability := models.Explicit(raw.AppliesTo)
	if isSentinel(raw.AppliesTo[0], sentinels) {
		applicability = models.AllKnown(raw.AppliesTo)
	}

	overrides := make(map[string][]models.RawAssertion, len(raw.AdditionalAssertions))
	for key, assertions := range raw.AdditionalAssertions {
		overrides[strings.ToLower(key)] = assertions
	}

	return &Metadata{
		UserInstruction:        raw.SpecificUserInstruction,
		Task:                   raw.Task,
		Mode:                   *raw.Mode,
		Applicability:          applicability,
		DefaultAssertions:      raw.OutputAssertions,
		ATAssertionOverrides:   overrides,
		SetupScriptDescription: raw.SetupScriptDescription,
		SetupScriptName:        raw.SetupTestPage,
	}, nil
}

func isSentinel(value string, sentinels []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, s := range sentinels {
		if normalized == strings.ToLower(s) {
			return true
		}
	}
	return false
}
