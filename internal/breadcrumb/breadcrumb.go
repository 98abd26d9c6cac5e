package breadcrumb

import (
	"html"
	"strings"
)

const (
	// DefaultSeparator is placed between consecutive links.
	DefaultSeparator = " >> "
	// DefaultSuffix is the page extension stripped from names and appended to targets.
	DefaultSuffix = ".html"
)

// rootSegments counts the leading segments never rendered: the empty string
// before the first slash and the site root name.
const rootSegments = 2

// DefaultSkipPages lists pages, relative to the site root, that never get a trail.
func DefaultSkipPages() []string {
	return []string{"index.html", "pages.html"}
}

// Link is a single breadcrumb entry.
type Link struct {
	Name   string
	Target string
}

// Anchor renders the link as an HTML anchor element.
func (l Link) Anchor() string {
	var b strings.Builder
	b.Grow(len(l.Name) + len(l.Target) + 15)
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(l.Target))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(l.Name))
	b.WriteString(`</a>`)
	return b.String()
}

// Trail is the ordered list of links from the outermost ancestor to the current page.
type Trail []Link

// Markup joins the trail's anchors with sep. No separator trails the last link.
func (t Trail) Markup(sep string) string {
	if len(t) == 0 {
		return ""
	}
	anchors := make([]string, len(t))
	for i, l := range t {
		anchors[i] = l.Anchor()
	}
	return strings.Join(anchors, sep)
}

// Segments returns the path segments of the link target with the suffix removed.
func (l Link) Segments(suffix string) []string {
	return strings.Split(strings.TrimSuffix(l.Target, suffix), "/")
}

// Render builds the trail markup for currentPath on a site rooted at siteRoot
// using the default separator, suffix and skip pages. ok is false when the
// path is a skip page and nothing should be written.
func Render(currentPath, siteRoot string) (markup string, ok bool) {
	return New(Options{SiteRoot: siteRoot}).Render(currentPath)
}
