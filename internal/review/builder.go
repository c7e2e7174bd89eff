package review

import (
	"fmt"
	"strings"

	"github.com/harrison/atreview/internal/models"
	"github.com/harrison/atreview/internal/resolver"
	"github.com/harrison/atreview/internal/vcs"
)

// BuildPattern assembles every test of a plan into a numbered report.
// Tests are numbered from 1 in discovery order. A plan without tests yields
// a nil report and no error.
func BuildPattern(plan *models.TestPlan, asm *resolver.Assembler, history vcs.History) (*models.PatternReport, error) {
	if len(plan.Tests) == 0 {
		return nil, nil
	}

	report := &models.PatternReport{
		PatternName:  plan.Pattern,
		Tests:        make([]models.TestRecord, 0, len(plan.Tests)),
		SetupScripts: plan.SetupScripts,
	}

	for i := range plan.Tests {
		test := &plan.Tests[i]

		record, err := asm.AssembleTest(test)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", plan.Pattern, err)
		}

		record.TestNumber = i + 1
		record.LastEdited, err = history.LastEdited(test.FilePath)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: last edit of %s: %w", plan.Pattern, test.FileName, err)
		}

		report.Tests = append(report.Tests, *record)
	}

	return report, nil
}

// Summarize builds the index row of a report from the latest commit touching
// the pattern directory
func Summarize(report *models.PatternReport, patternDir string, history vcs.History) (models.PatternSummary, error) {
	line, err := history.LastCommitLine(patternDir)
	if err != nil {
		return models.PatternSummary{}, fmt.Errorf("pattern %s: last commit: %w", report.PatternName, err)
	}

	return models.PatternSummary{
		Name:              report.PatternName,
		NumberOfTests:     len(report.Tests),
		Commit:            strings.SplitN(line, " ", 2)[0],
		CommitDescription: line,
	}, nil
}

// MissingCommands lists "<location> (<AT name>)" for every AT record that has
// no commands, in report order
func MissingCommands(report *models.PatternReport) []string {
	var missing []string
	for _, test := range report.Tests {
		for _, at := range test.ATTests {
			if at.Commands == nil {
				missing = append(missing, fmt.Sprintf("%s (%s)", strings.TrimPrefix(test.Location, "/"), at.ATName))
			}
		}
	}
	return missing
}
