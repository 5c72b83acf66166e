// Package snapshot models the frozen content of a banking session page:
// the raw markup plus the rendered text, as handed over by the browser
// automation layer. The pipeline treats a snapshot as read-only input.
package snapshot

import (
	"strings"
	"sync"

	"golang.org/x/net/html"

	"jvillar/bankinter-csv/internal/parsererror"
)

// Page is an immutable snapshot of a session page. The zero value is not
// usable; build one with New.
type Page struct {
	markup string
	text   string
	source string

	parseOnce sync.Once
	doc       *html.Node
	parseErr  error
}

// New builds a snapshot from the page markup and its rendered text. Either
// may be empty, but not both; extraction cannot start from nothing, so that
// case surfaces as an EmptySnapshotError from Validate (and from the
// pipeline entry point).
func New(markup, renderedText, source string) *Page {
	return &Page{
		markup: markup,
		text:   renderedText,
		source: source,
	}
}

// Validate reports the systemic empty-snapshot condition.
func (p *Page) Validate() error {
	if strings.TrimSpace(p.markup) == "" && strings.TrimSpace(p.text) == "" {
		return &parsererror.EmptySnapshotError{Source: p.source}
	}
	return nil
}

// Source identifies where the snapshot came from, for logs only.
func (p *Page) Source() string {
	return p.source
}

// Markup returns the raw HTML source of the page.
func (p *Page) Markup() string {
	return p.markup
}

// Text returns the rendered text content of the page. When the automation
// layer supplied none, it is derived from the markup's text nodes with one
// line per block-level element, approximating what the browser would render.
func (p *Page) Text() string {
	if strings.TrimSpace(p.text) != "" {
		return p.text
	}
	doc, err := p.Document()
	if err != nil || doc == nil {
		return p.text
	}
	return RenderText(doc)
}

// Document parses the markup into a DOM tree, once. html.Parse tolerates
// the unclosed tags and stray markup the bank serves, so a non-empty markup
// practically always yields a tree.
func (p *Page) Document() (*html.Node, error) {
	p.parseOnce.Do(func() {
		if strings.TrimSpace(p.markup) == "" {
			return
		}
		p.doc, p.parseErr = html.Parse(strings.NewReader(p.markup))
	})
	return p.doc, p.parseErr
}

// NodeText concatenates the text nodes under n, skipping script and style
// bodies, with single spaces between fragments.
func NodeText(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// RenderText flattens the tree into rendered-looking text: inline content
// joined by spaces, one line per block-level element.
func RenderText(doc *html.Node) string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "table", "tr", "li", "div", "p", "section", "article", "h1", "h2", "h3":
				if !containsBlockChild(n) {
					if line := NodeText(n); line != "" {
						lines = append(lines, line)
					}
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(lines, "\n")
}

func containsBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "table", "tr", "li", "div", "p", "section", "article":
				return true
			}
		}
		if containsBlockChild(c) {
			return true
		}
	}
	return false
}
