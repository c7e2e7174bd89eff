package resolver

import (
	"strconv"
	"strings"

	"github.com/harrison/atreview/internal/models"
)

// PriorityFromCode maps a raw priority code to its label: 1 is required, 2 is
// optional, anything else (including unparsable codes) is the empty label.
// Only the leading integer of the code is considered, so "1", " 2" and "1.0"
// all map as expected.
func PriorityFromCode(code string) models.Priority {
	switch leadingInt(code) {
	case 1:
		return models.PriorityRequired
	case 2:
		return models.PriorityOptional
	default:
		return models.PriorityNone
	}
}

// leadingInt parses an optionally signed run of digits at the start of s.
// It returns 0 when there is none.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// MergeAssertions selects the assertions that apply to one AT: a non-empty
// override for atKey wins, otherwise the defaults. The result is nil when the
// selected list is empty.
func MergeAssertions(defaults []models.RawAssertion, overrides map[string][]models.RawAssertion, atKey string) []models.Assertion {
	selected := defaults
	if override := overrides[atKey]; len(override) > 0 {
		selected = override
	}
	if len(selected) == 0 {
		return nil
	}

	merged := make([]models.Assertion, len(selected))
	for i, raw := range selected {
		merged[i] = models.Assertion{
			Priority:    PriorityFromCode(raw.PriorityCode),
			Description: raw.Description,
		}
	}
	return merged
}
