// Package commands resolves the keyboard commands and mode instructions a
// tester uses for a (mode, task, assistive technology) combination.
//
// A pattern's commands.json is shaped as
//
//	{"<task>": {"<mode>": {"<at key>": [["KEY_A,KEY_B", "optional suffix"], ...]}}}
//
// Each entry becomes one command string: its comma-separated key identifiers
// are translated through a key table and joined with ", then ".
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harrison/atreview/internal/models"
)

// ErrNoCommands reports that no command sequence is defined for a
// (mode, task, AT) combination. It is the one tolerated resolution gap.
var ErrNoCommands = errors.New("no commands defined")

// Resolver is the command resolution authority used by the record assembler
type Resolver interface {
	// Commands returns the ordered commands for the combination, or an error
	// wrapping ErrNoCommands when none are defined.
	Commands(mode, task string, at models.AssistiveTechnology) ([]string, error)

	// ModeInstructions returns the preparation text for a mode; "" when none.
	ModeInstructions(mode string, at models.AssistiveTechnology) string
}

// entry is one raw command: key identifiers plus an optional suffix
type entry []string

// CommandTable is a Resolver backed by one pattern's commands.json
type CommandTable struct {
	tasks            map[string]map[string]map[string][]entry
	keys             map[string]string
	modeInstructions map[string]map[string]string
}

// LoadTable reads commands.json from disk
func LoadTable(path string, keys map[string]string, modeInstructions map[string]map[string]string) (*CommandTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open commands file: %w", err)
	}
	defer f.Close()

	table, err := DecodeTable(f, keys, modeInstructions)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return table, nil
}

// DecodeTable parses commands.json content. Nil keys or modeInstructions fall
// back to DefaultKeys and DefaultModeInstructions.
func DecodeTable(r io.Reader, keys map[string]string, modeInstructions map[string]map[string]string) (*CommandTable, error) {
	var tasks map[string]map[string]map[string][]entry
	if err := json.NewDecoder(r).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("invalid commands.json: %w", err)
	}

	if keys == nil {
		keys = DefaultKeys
	}
	if modeInstructions == nil {
		modeInstructions = DefaultModeInstructions
	}

	return &CommandTable{
		tasks:            tasks,
		keys:             keys,
		modeInstructions: modeInstructions,
	}, nil
}

// Commands implements Resolver
func (t *CommandTable) Commands(mode, task string, at models.AssistiveTechnology) ([]string, error) {
	modes, ok := t.tasks[task]
	if !ok {
		return nil, fmt.Errorf("task %q: %w", task, ErrNoCommands)
	}
	ats, ok := modes[mode]
	if !ok {
		return nil, fmt.Errorf("task %q, mode %q: %w", task, mode, ErrNoCommands)
	}
	entries := ats[at.Key]
	if len(entries) == 0 {
		return nil, fmt.Errorf("task %q, mode %q, AT %q: %w", task, mode, at.Key, ErrNoCommands)
	}

	commands := make([]string, 0, len(entries))
	for _, e := range entries {
		if len(e) == 0 {
			return nil, fmt.Errorf("task %q, mode %q, AT %q: empty command entry", task, mode, at.Name)
		}

		var suffix string
		if len(e) > 1 {
			suffix = e[1]
		}

		var sequence []string
		for _, id := range strings.Split(e[0], ",") {
			name, known := t.keys[strings.TrimSpace(id)]
			if !known {
				return nil, fmt.Errorf("key identifier %q for AT %q, mode %q, task %q is not in the key table", e[0], at.Name, mode, task)
			}
			if suffix != "" {
				name = name + " " + suffix
			}
			sequence = append(sequence, name)
		}
		commands = append(commands, strings.Join(sequence, ", then "))
	}
	return commands, nil
}

// ModeInstructions implements Resolver
func (t *CommandTable) ModeInstructions(mode string, at models.AssistiveTechnology) string {
	return t.modeInstructions[mode][at.Key]
}

// Tasks returns the number of tasks defined in the table
func (t *CommandTable) Tasks() int {
	return len(t.tasks)
}
