// Package htmldoc parses HTML pages and writes breadcrumb trails into their
// container element, standing in for the browser's DOM.
package htmldoc

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/crumbtrail/internal/errors"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryRender, errors.SeverityError, "failed to parse HTML")
	}
	return &Document{root: root}, nil
}

// ElementByID returns the first element whose id attribute equals id, or nil.
func (d *Document) ElementByID(id string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && getAttr(n, "id") == id {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return found
}

// Title returns the trimmed text of the first <title> element.
func (d *Document) Title() string {
	var title string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			title = strings.TrimSpace(textContent(n))
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(d.root)
	return title
}

// Sink returns a breadcrumb sink writing into the element with the given id.
func (d *Document) Sink(containerID string) (*ElementSink, error) {
	n := d.ElementByID(containerID)
	if n == nil {
		return nil, errors.ContainerNotFound(containerID)
	}
	return &ElementSink{Node: n}, nil
}

// Render serializes the document to w.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ElementSink replaces an element's children with the written markup.
type ElementSink struct {
	Node *html.Node
}

// WriteBreadcrumb sets the element's inner content to markup.
func (s *ElementSink) WriteBreadcrumb(markup string) error {
	context := &html.Node{Type: html.ElementNode, Data: s.Node.Data, DataAtom: s.Node.DataAtom}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return errors.Wrap(err, errors.CategoryRender, errors.SeverityError, "failed to parse trail markup")
	}
	for c := s.Node.FirstChild; c != nil; {
		next := c.NextSibling
		s.Node.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		s.Node.AppendChild(n)
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
