// Package markdown converts Markdown pages into HTML fragments.
package markdown

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/crumbtrail/internal/frontmatter"
)

// Page is a converted Markdown document.
type Page struct {
	Title  string
	Weight int
	Draft  bool
	HTML   []byte
}

// Converter renders Markdown with GitHub-flavored extensions. Raw HTML in
// sources is omitted. A Converter is safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter creates a Converter.
func NewConverter() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Convert renders source. The title comes from frontmatter, then the first
// level-one heading, then the file name.
func (c *Converter) Convert(name string, source []byte) (*Page, error) {
	meta, body, err := frontmatter.Parse(source)
	if err != nil {
		return nil, err
	}

	root := c.md.Parser().Parse(text.NewReader(body))
	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, body, root); err != nil {
		return nil, err
	}

	title := meta.Title
	if title == "" {
		title = firstHeading(root, body)
	}
	if title == "" {
		title = TitleFromName(name)
	}
	return &Page{Title: title, Weight: meta.Weight, Draft: meta.Draft, HTML: buf.Bytes()}, nil
}

func firstHeading(root gmast.Node, source []byte) string {
	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(string(nodeText(h, source)))
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})
	return title
}

func nodeText(n gmast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			buf.Write(t.Segment.Value(source))
			continue
		}
		buf.Write(nodeText(c, source))
	}
	return buf.Bytes()
}

// TitleFromName derives a display title from a file name:
// "getting-started.md" becomes "Getting Started".
func TitleFromName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	// Casers are stateful; one per call.
	return cases.Title(language.English).String(strings.TrimSpace(base))
}
