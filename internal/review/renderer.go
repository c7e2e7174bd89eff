package review

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/harrison/atreview/internal/models"
)

// Template file names; an override directory may provide either
const (
	ReviewTemplate = "review.html.tmpl"
	IndexTemplate  = "index.html.tmpl"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// reviewPage is the data of one pattern review page
type reviewPage struct {
	Pattern      string
	TotalTests   int
	Tests        []models.TestRecord
	ATOptions    []models.AssistiveTechnology
	SetupScripts []models.SetupScript
}

// indexPage is the data of the review index
type indexPage struct {
	Patterns []models.PatternSummary
}

// Renderer turns pattern reports into HTML documents
type Renderer struct {
	review *template.Template
	index  *template.Template
}

// NewRenderer parses the review and index templates. A template present in
// overrideDir replaces the embedded one of the same name; overrideDir may be "".
func NewRenderer(overrideDir string) (*Renderer, error) {
	review, err := loadTemplate(overrideDir, ReviewTemplate)
	if err != nil {
		return nil, err
	}
	index, err := loadTemplate(overrideDir, IndexTemplate)
	if err != nil {
		return nil, err
	}
	return &Renderer{review: review, index: index}, nil
}

func loadTemplate(overrideDir, name string) (*template.Template, error) {
	var source []byte
	if overrideDir != "" {
		data, err := os.ReadFile(filepath.Join(overrideDir, name))
		switch {
		case err == nil:
			source = data
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}
	}
	if source == nil {
		data, err := embeddedTemplates.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded template %s: %w", name, err)
		}
		source = data
	}

	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// RenderReview writes the review page of one pattern
func (r *Renderer) RenderReview(w io.Writer, report *models.PatternReport, ats []models.AssistiveTechnology) error {
	page := reviewPage{
		Pattern:      report.PatternName,
		TotalTests:   len(report.Tests),
		Tests:        report.Tests,
		ATOptions:    ats,
		SetupScripts: report.SetupScripts,
	}
	if err := r.review.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render review of %s: %w", report.PatternName, err)
	}
	return nil
}

// RenderIndex writes the index of all rendered patterns
func (r *Renderer) RenderIndex(w io.Writer, patterns []models.PatternSummary) error {
	if err := r.index.Execute(w, indexPage{Patterns: patterns}); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	return nil
}

var templateFuncs = template.FuncMap{
	"join":         strings.Join,
	"markdown":     renderMarkdown,
	"inline":       renderInlineMarkdown,
	"setupScripts": setupScriptsJS,
}

var markdown = goldmark.New()

// renderMarkdown converts instruction text to HTML. Raw HTML in the source is
// escaped by goldmark's default renderer.
func renderMarkdown(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil
}

// renderInlineMarkdown renders a phrase that is embedded in a sentence. A
// single wrapping paragraph is removed.
func renderInlineMarkdown(source string) (template.HTML, error) {
	html, err := renderMarkdown(source)
	if err != nil {
		return "", err
	}
	s := string(html)
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") && strings.Count(s, "<p>") == 1 {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<p>"), "</p>")
	}
	return template.HTML(s), nil
}

// setupScriptsJS renders setup scripts as the members of a JavaScript object
// literal, each a function of the test page document
func setupScriptsJS(scripts []models.SetupScript) template.JS {
	members := make([]string, len(scripts))
	for i, s := range scripts {
		members[i] = fmt.Sprintf("\t%s: function(testPageDocument){\n%s}", s.Name, s.Body)
	}
	return template.JS(strings.Join(members, ",\n"))
}
