package models

import "time"

// Priority is the semantic label of an assertion
type Priority string

const (
	// PriorityRequired marks an assertion that must pass
	PriorityRequired Priority = "required"
	// PriorityOptional marks an assertion that should pass
	PriorityOptional Priority = "optional"
	// PriorityNone is used for unrecognized priority codes
	PriorityNone Priority = ""
)

// Assertion is an expected outcome with its resolved priority
type Assertion struct {
	Priority    Priority
	Description string
}

// ATTestRecord is the resolved detail of one test for one assistive technology.
// A nil Commands or Assertions slice means the value is absent.
type ATTestRecord struct {
	ATKey                  string
	ATName                 string
	Commands               []string
	Assertions             []Assertion
	UserInstruction        string
	ModeInstruction        string
	SetupScriptDescription string
}

// TestRecord is one numbered test in a pattern report
type TestRecord struct {
	TestNumber      int            // 1-based, in discovery order
	Name            string         // Test title
	Location        string         // "/<pattern>/<file>"
	Reference       string         // "/<pattern>/<reference>"
	AppliesTo       []string       // Raw applies_to values
	SetupScriptName string         // Name of the setup script, if any
	Task            string         // Task identifier
	Mode            string         // Normalized mode
	HelpLinks       []HelpLink     // Classified help links
	ATTests         []ATTestRecord // One record per resolved AT
	LastEdited      string         // Last commit date of the fixture
}

// PatternReport is the review content of one pattern directory
type PatternReport struct {
	PatternName  string
	Tests        []TestRecord
	SetupScripts []SetupScript
}

// PatternSummary is one row of the review index
type PatternSummary struct {
	Name              string
	NumberOfTests     int
	Commit            string // Abbreviated hash of the latest commit touching the pattern
	CommitDescription string // Full one-line description of that commit
}

// RunResult describes one complete review run
type RunResult struct {
	RunID           string           // Unique identifier of the run
	Patterns        []PatternSummary // Rendered patterns in discovery order
	SkippedPatterns []string         // Patterns with no test fixtures
	TotalTests      int              // Sum of NumberOfTests over Patterns
	Files           []string         // Written review pages followed by the index
	Duration        time.Duration    // Wall time of the run
}
