package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AssistiveTechnology is one entry of the global AT registry
type AssistiveTechnology struct {
	Key  string `json:"key"`  // Stable lowercase identifier (e.g., "nvda")
	Name string `json:"name"` // Display name (e.g., "NVDA")
}

// ApplicabilityKind distinguishes the two shapes of a test's applies_to value
type ApplicabilityKind int

const (
	// ApplicabilityExplicit means the test names its ATs directly
	ApplicabilityExplicit ApplicabilityKind = iota
	// ApplicabilityAllKnown means the test applies to every registered AT
	ApplicabilityAllKnown
)

// Applicability is the declared AT scope of a test, normalized once at load time.
// Declared keeps the raw applies_to values for display.
type Applicability struct {
	Kind     ApplicabilityKind
	Keys     []string // Explicit AT keys as declared (only for ApplicabilityExplicit)
	Declared []string // Raw applies_to values
}

// AllKnown returns the wildcard applicability
func AllKnown(declared []string) Applicability {
	return Applicability{Kind: ApplicabilityAllKnown, Declared: declared}
}

// Explicit returns an applicability that names its ATs directly
func Explicit(keys []string) Applicability {
	return Applicability{Kind: ApplicabilityExplicit, Keys: keys, Declared: keys}
}

// Mode is the interaction modality a test runs under. Older metadata stores it
// as a list whose first element is authoritative; UnmarshalJSON accepts both.
type Mode string

// UnmarshalJSON decodes a mode from either a string or a non-empty list of strings
func (m *Mode) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = Mode(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("mode must be a string or a list of strings: %w", err)
	}
	if len(list) == 0 {
		return fmt.Errorf("mode list is empty")
	}
	*m = Mode(list[0])
	return nil
}

// RawAssertion is a (priority code, description) pair as stored in test metadata.
// The code may be written as a JSON number or string; any other value decodes
// to an empty code, which maps to no priority.
type RawAssertion struct {
	PriorityCode string
	Description  string
}

// UnmarshalJSON decodes a JSON array into a RawAssertion. Missing elements
// decode as empty strings and elements past the second are ignored. Only a
// value that is not an array is an error.
func (a *RawAssertion) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("assertion must be a [priority, description] array: %w", err)
	}
	if pair == nil {
		return fmt.Errorf("assertion must be a [priority, description] array, got %s", string(data))
	}

	a.PriorityCode = ""
	a.Description = ""
	if len(pair) > 0 {
		a.PriorityCode = priorityText(pair[0])
	}
	if len(pair) > 1 {
		a.Description = scalarText(pair[1])
	}
	return nil
}

// priorityText returns a number's literal text or a string's value; anything
// else yields ""
func priorityText(raw json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch v := v.(type) {
	case json.Number:
		return string(v)
	case string:
		return v
	default:
		return ""
	}
}

// scalarText returns a string's value or the literal text of a number or
// boolean; null, arrays, and objects yield ""
func scalarText(raw json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return string(v)
	case bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// HelpLink is a classified reference from a test fixture's <link rel="help">
type HelpLink struct {
	Link string // The href as written in the fixture
	Text string // Display label (ARIA specification or APG example)
}

// SetupScript is a setup-script body keyed by its file's base name
type SetupScript struct {
	Name string // File name without the .js extension
	Body string // Non-blank trimmed lines, each tab-indented and newline-terminated
}

// TestDescriptor is one test as loaded from its HTML fixture and JSON metadata
type TestDescriptor struct {
	Name                   string                    // <title> of the fixture
	FileName               string                    // Fixture file name (e.g., "test-01-navigate.html")
	FilePath               string                    // Absolute path of the fixture
	Location               string                    // "/<pattern>/<file>"
	ReferencePath          string                    // "/<pattern>/<reference>"
	Task                   string                    // Task identifier used for command lookup
	Mode                   Mode                      // Normalized interaction mode
	UserInstruction        string                    // specific_user_instruction
	Applicability          Applicability             // Declared AT scope
	DefaultAssertions      []RawAssertion            // output_assertions
	ATAssertionOverrides   map[string][]RawAssertion // additional_assertions, keyed by AT
	SetupScriptName        string                    // setupTestPage
	SetupScriptDescription string                    // setup_script_description
	HelpRefs               []string                  // href values of <link rel="help">, in document order
}

// TestPlan is the raw content of one pattern directory
type TestPlan struct {
	Pattern      string           // Directory name of the pattern
	Dir          string           // Absolute path of the pattern directory
	Reference    string           // Relative path of the canonical reference fixture
	SetupScripts []SetupScript    // Scripts from data/js
	Tests        []TestDescriptor // Tests in discovery order
}
