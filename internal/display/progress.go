package display

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ProgressIndicator reports rendered review pages, one line per file, in
// the order they are written
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
	color   bool
}

// NewProgressIndicator creates a progress indicator for total review pages.
// Lines are colored only when w is a terminal.
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:  w,
		total:   total,
		current: 0,
		color:   isColorTerminal(w),
	}
}

// Summarized reports one written review page (cyan)
// Format: "Summarized <pattern> tests: <file>"
func (p *ProgressIndicator) Summarized(pattern, file string) {
	p.current++
	p.line("\x1b[36m", fmt.Sprintf("Summarized %s tests: %s", pattern, file))
}

// Generated reports the written index page
// Format: "Generated: <file>"
func (p *ProgressIndicator) Generated(file string) {
	p.line("\x1b[36m", fmt.Sprintf("Generated: %s", file))
}

// Complete reports the end of the run (green)
func (p *ProgressIndicator) Complete() {
	p.line("\x1b[32m", "Done.")
}

// Current returns the number of review pages reported so far
func (p *ProgressIndicator) Current() int {
	return p.current
}

// Total returns the number of review pages expected
func (p *ProgressIndicator) Total() int {
	return p.total
}

func (p *ProgressIndicator) line(ansi, text string) {
	if p.writer == nil {
		return
	}
	if p.color {
		fmt.Fprintf(p.writer, "%s%s\x1b[0m\n", ansi, text)
		return
	}
	fmt.Fprintln(p.writer, text)
}

func isColorTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
