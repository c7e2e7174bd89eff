package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/harrison/atreview/internal/models"
)

// createStandardTable creates a markdown-style table with left-aligned cells
func createStandardTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 100,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// RenderSummaryTable writes one row per rendered pattern followed by a total row
func RenderSummaryTable(w io.Writer, patterns []models.PatternSummary) {
	table := createStandardTable([]string{"Pattern", "Tests", "Commit", "Description"}, w)

	total := 0
	for _, p := range patterns {
		total += p.NumberOfTests
		commit := p.Commit
		if commit == "" {
			commit = "-"
		}
		description := strings.TrimSpace(p.CommitDescription)
		if description == "" {
			description = "-"
		}
		_ = table.Append([]string{p.Name, fmt.Sprintf("%d", p.NumberOfTests), commit, description})
	}
	_ = table.Append([]string{"Total", fmt.Sprintf("%d", total), "", ""})

	_ = table.Render()
}
