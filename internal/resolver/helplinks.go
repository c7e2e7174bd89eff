package resolver

import (
	"fmt"
	"strings"

	"github.com/harrison/atreview/internal/models"
)

const examplesSegment = "examples/"

// ClassifyHelpLink labels a help reference. A link with a fragment points at
// the ARIA specification; otherwise a link with an examples/ segment points at
// an authoring-practices example. Anything else is malformed input.
func ClassifyHelpLink(href string) (models.HelpLink, error) {
	if i := strings.Index(href, "#"); i >= 0 {
		fragment := href[i+1:]
		if j := strings.Index(fragment, "#"); j >= 0 {
			fragment = fragment[:j]
		}
		return models.HelpLink{Link: href, Text: "ARIA specification: " + fragment}, nil
	}

	if i := strings.Index(href, examplesSegment); i >= 0 {
		rest := href[i+len(examplesSegment):]
		if j := strings.Index(rest, examplesSegment); j >= 0 {
			rest = rest[:j]
		}
		return models.HelpLink{Link: href, Text: "APG example: " + rest}, nil
	}

	return models.HelpLink{}, fmt.Errorf("help link %q has neither a fragment nor an examples/ segment", href)
}

// ClassifyHelpLinks classifies every help reference of a test, in order
func ClassifyHelpLinks(test *models.TestDescriptor) ([]models.HelpLink, error) {
	links := make([]models.HelpLink, 0, len(test.HelpRefs))
	for _, href := range test.HelpRefs {
		link, err := ClassifyHelpLink(href)
		if err != nil {
			return nil, fmt.Errorf("test %q (%s): %w", test.Name, test.FileName, err)
		}
		links = append(links, link)
	}
	return links, nil
}
