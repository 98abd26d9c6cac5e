package breadcrumb

import "strings"

// Options configures a Renderer. Zero values fall back to the defaults.
type Options struct {
	SiteRoot  string
	Separator string
	Suffix    string
	SkipPages []string
}

// Renderer derives trails for a single site. It holds no mutable state and is
// safe for concurrent use.
type Renderer struct {
	root      string
	separator string
	suffix    string
	skip      map[string]struct{}
}

// New creates a Renderer from opts.
func New(opts Options) *Renderer {
	r := &Renderer{
		root:      strings.Trim(opts.SiteRoot, "/"),
		separator: opts.Separator,
		suffix:    opts.Suffix,
	}
	if r.separator == "" {
		r.separator = DefaultSeparator
	}
	if r.suffix == "" {
		r.suffix = DefaultSuffix
	}
	skipPages := opts.SkipPages
	if skipPages == nil {
		skipPages = DefaultSkipPages()
	}
	r.skip = make(map[string]struct{}, len(skipPages))
	for _, p := range skipPages {
		r.skip["/"+r.root+"/"+strings.TrimPrefix(p, "/")] = struct{}{}
	}
	return r
}

// SiteRoot returns the root segment the renderer was configured with.
func (r *Renderer) SiteRoot() string { return r.root }

// Separator returns the separator placed between links.
func (r *Renderer) Separator() string { return r.separator }

// Suffix returns the page extension stripped from names and appended to targets.
func (r *Renderer) Suffix() string { return r.suffix }

// IsPage reports whether name ends with the page suffix. The match is
// case-sensitive, like the suffix stripping in Trail, so every page it
// accepts renders links that resolve.
func (r *Renderer) IsPage(name string) bool {
	return strings.HasSuffix(name, r.suffix)
}

// Skip reports whether currentPath is a landing or listing page that gets no trail.
func (r *Renderer) Skip(currentPath string) bool {
	_, ok := r.skip[currentPath]
	return ok
}

// Trail derives the links for currentPath. ok is false for skip pages.
// Paths with fewer than three segments yield an empty trail.
func (r *Renderer) Trail(currentPath string) (Trail, bool) {
	if r.Skip(currentPath) {
		return nil, false
	}
	stripped := strings.TrimSuffix(currentPath, r.suffix)
	segments := strings.Split(stripped, "/")
	if len(segments) <= rootSegments {
		return Trail{}, true
	}

	trail := make(Trail, 0, len(segments)-rootSegments)
	for i := rootSegments; i < len(segments); i++ {
		trail = append(trail, Link{
			Name:   strings.TrimSuffix(segments[i], r.suffix),
			Target: strings.Join(segments[:i+1], "/") + r.suffix,
		})
	}
	return trail, true
}

// Render returns the trail markup for currentPath. ok is false for skip pages.
func (r *Renderer) Render(currentPath string) (string, bool) {
	trail, ok := r.Trail(currentPath)
	if !ok {
		return "", false
	}
	return trail.Markup(r.separator), true
}

// RenderTo writes the trail for currentPath into sink exactly once. Skip pages
// leave the sink untouched and report written == false.
func (r *Renderer) RenderTo(currentPath string, sink Sink) (written bool, err error) {
	markup, ok := r.Render(currentPath)
	if !ok {
		return false, nil
	}
	if err := sink.WriteBreadcrumb(markup); err != nil {
		return false, err
	}
	return true, nil
}
