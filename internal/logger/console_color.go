package logger

import (
	"fmt"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for summary metrics.
// Green: success, Yellow: attention, Cyan: labels
type colorScheme struct {
	success *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for metrics.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	labelColored := scheme.label.Sprint(label)
	valueColored := scheme.value.Sprintf("%v", value)
	return fmt.Sprintf("%s: %s", labelColored, valueColored)
}

// formatColorizedCount formats a count that deserves attention when non-zero.
// Zero is green, anything else yellow.
func formatColorizedCount(label string, count int, scheme *colorScheme) string {
	labelColored := scheme.label.Sprint(label)
	valueColor := scheme.success
	if count > 0 {
		valueColor = scheme.warn
	}
	return fmt.Sprintf("%s: %s", labelColored, valueColor.Sprintf("%d", count))
}
