// Package logger provides logging implementations for atreview runs.
//
// The logger package offers leveled logging of run progress plus pattern and
// run summaries. Implementations are thread-safe and write to any io.Writer.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/atreview/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// logLevel determines the minimum log level for messages to be output.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
		now:         time.Now,
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	// color.NoColor already accounts for NO_COLOR and a redirected stdout
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}

	if f, ok := w.(*os.File); ok {
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
// Format: "[HH:MM:SS] [WARN] <message>"
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
// Format: "[HH:MM:SS] [ERROR] <message>"
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// LogPatternResult logs one rendered pattern at DEBUG level.
// Format: "[HH:MM:SS] [DEBUG] Pattern <name>: <n> tests (<commit>)"
func (cl *ConsoleLogger) LogPatternResult(summary models.PatternSummary) {
	commit := summary.Commit
	if commit == "" {
		commit = "no history"
	}
	cl.LogDebug(fmt.Sprintf("Pattern %s: %d tests (%s)", summary.Name, summary.NumberOfTests, commit))
}

// LogSummary logs the run summary at INFO level.
// Format: "[HH:MM:SS] === Review Summary ===\n[HH:MM:SS] Patterns: <n>\n..."
func (cl *ConsoleLogger) LogSummary(result models.RunResult) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.timestamp()
	durationStr := formatDuration(result.Duration)

	var output string
	if cl.colorOutput {
		scheme := newColorScheme()
		header := color.New(color.Bold).Sprint("=== Review Summary ===")
		output = fmt.Sprintf("[%s] %s\n", ts, header)
		output += fmt.Sprintf("[%s] %s\n", ts, formatColorizedMetric("Patterns", len(result.Patterns), scheme))
		output += fmt.Sprintf("[%s] %s\n", ts, formatColorizedMetric("Tests", result.TotalTests, scheme))
		output += fmt.Sprintf("[%s] %s\n", ts, formatColorizedCount("Skipped", len(result.SkippedPatterns), scheme))
		output += fmt.Sprintf("[%s] %s\n", ts, formatColorizedMetric("Duration", durationStr, scheme))
	} else {
		output = fmt.Sprintf("[%s] === Review Summary ===\n", ts)
		output += fmt.Sprintf("[%s] Patterns: %d\n", ts, len(result.Patterns))
		output += fmt.Sprintf("[%s] Tests: %d\n", ts, result.TotalTests)
		output += fmt.Sprintf("[%s] Skipped: %d\n", ts, len(result.SkippedPatterns))
		output += fmt.Sprintf("[%s] Duration: %s\n", ts, durationStr)
	}

	if len(result.SkippedPatterns) > 0 {
		output += fmt.Sprintf("[%s] Skipped patterns: %s\n", ts, strings.Join(result.SkippedPatterns, ", "))
	}

	cl.writer.Write([]byte(output))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func (cl *ConsoleLogger) timestamp() string {
	return cl.now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "0s", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d > 0 && d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}

// NoOpLogger discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogTrace is a no-op implementation.
func (n *NoOpLogger) LogTrace(string) {}

// LogDebug is a no-op implementation.
func (n *NoOpLogger) LogDebug(string) {}

// LogInfo is a no-op implementation.
func (n *NoOpLogger) LogInfo(string) {}

// LogWarn is a no-op implementation.
func (n *NoOpLogger) LogWarn(string) {}

// LogError is a no-op implementation.
func (n *NoOpLogger) LogError(string) {}

// LogPatternResult is a no-op implementation.
func (n *NoOpLogger) LogPatternResult(models.PatternSummary) {}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(models.RunResult) {}
