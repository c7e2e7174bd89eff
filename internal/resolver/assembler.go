package resolver

import (
	"errors"
	"fmt"

	"github.com/harrison/atreview/internal/commands"
	"github.com/harrison/atreview/internal/models"
	"github.com/harrison/atreview/internal/registry"
)

// Logger receives diagnostic messages from the assembler
type Logger interface {
	LogDebug(message string)
}

// Assembler builds ATTestRecords for the tests of one pattern. The registry is
// shared across patterns; the command resolver belongs to the pattern.
type Assembler struct {
	Registry *registry.Registry
	Commands commands.Resolver
	Logger   Logger // optional
}

// NewAssembler creates an Assembler. logger may be nil.
func NewAssembler(reg *registry.Registry, resolver commands.Resolver, logger Logger) *Assembler {
	return &Assembler{
		Registry: reg,
		Commands: resolver,
		Logger:   logger,
	}
}

// Assemble produces one record per applicable AT, in resolved order
func (a *Assembler) Assemble(test *models.TestDescriptor) ([]models.ATTestRecord, error) {
	keys, err := ResolveApplicability(test, a.Registry)
	if err != nil {
		return nil, err
	}

	mode := string(test.Mode)
	records := make([]models.ATTestRecord, 0, len(keys))
	for _, key := range keys {
		at, ok := a.Registry.Lookup(key)
		if !ok {
			// ResolveApplicability only returns registered keys
			return nil, fmt.Errorf("test %q: AT %q missing from registry after resolution", test.Name, key)
		}

		cmds, err := a.Commands.Commands(mode, test.Task, at)
		if err != nil {
			if !errors.Is(err, commands.ErrNoCommands) {
				return nil, fmt.Errorf("test %q (%s): %w", test.Name, test.FileName, err)
			}
			a.logDebug(fmt.Sprintf("%s: no commands for %s (%v)", test.FileName, at.Name, err))
			cmds = nil
		}
		if len(cmds) == 0 {
			cmds = nil
		}

		records = append(records, models.ATTestRecord{
			ATKey:                  at.Key,
			ATName:                 at.Name,
			Commands:               cmds,
			Assertions:             MergeAssertions(test.DefaultAssertions, test.ATAssertionOverrides, at.Key),
			UserInstruction:        test.UserInstruction,
			ModeInstruction:        a.Commands.ModeInstructions(mode, at),
			SetupScriptDescription: test.SetupScriptDescription,
		})
	}

	return records, nil
}

// AssembleTest builds the full record of one test except its number and
// last-edited date, which depend on discovery order and version control
func (a *Assembler) AssembleTest(test *models.TestDescriptor) (*models.TestRecord, error) {
	atTests, err := a.Assemble(test)
	if err != nil {
		return nil, err
	}

	helpLinks, err := ClassifyHelpLinks(test)
	if err != nil {
		return nil, err
	}

	return &models.TestRecord{
		Name:            test.Name,
		Location:        test.Location,
		Reference:       test.ReferencePath,
		AppliesTo:       test.Applicability.Declared,
		SetupScriptName: test.SetupScriptName,
		Task:            test.Task,
		Mode:            string(test.Mode),
		HelpLinks:       helpLinks,
		ATTests:         atTests,
	}, nil
}

func (a *Assembler) logDebug(message string) {
	if a.Logger != nil {
		a.Logger.LogDebug(message)
	}
}
