package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Fixture is the metadata read from a test's HTML fixture
type Fixture struct {
	Title    string   // Text of the <title> element
	HelpRefs []string // href of every <link rel="help">, in document order
}

// ParseFixture reads the title and help references from an HTML fixture.
// A fixture without a <title> is an error, as is a help link without href.
func ParseFixture(r io.Reader) (*Fixture, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	fixture := &Fixture{}
	var titleFound bool
	var walkErr error

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if walkErr != nil {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if !titleFound {
					titleFound = true
					fixture.Title = strings.TrimSpace(textContent(n))
				}
			case "link":
				if strings.EqualFold(strings.TrimSpace(attr(n, "rel")), "help") {
					href, ok := lookupAttr(n, "href")
					if !ok {
						walkErr = fmt.Errorf("<link rel=\"help\"> without href")
						return
					}
					fixture.HelpRefs = append(fixture.HelpRefs, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if walkErr != nil {
		return nil, walkErr
	}
	if !titleFound {
		return nil, fmt.Errorf("fixture has no <title>")
	}
	return fixture, nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return sb.String()
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}
