package breadcrumb

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		want     string
		wantSkip bool
	}{
		{name: "landing page", path: "/root/index.html", wantSkip: true},
		{name: "pages listing", path: "/root/pages.html", wantSkip: true},
		{name: "single page", path: "/root/a.html", want: `<a href="/root/a.html">a</a>`},
		{
			name: "nested page",
			path: "/root/a/b.html",
			want: `<a href="/root/a.html">a</a> >> <a href="/root/a/b.html">b</a>`,
		},
		{
			name: "path without suffix",
			path: "/root/a/b",
			want: `<a href="/root/a.html">a</a> >> <a href="/root/a/b.html">b</a>`,
		},
		{
			name: "segment name repeated",
			path: "/root/guide/guide.html",
			want: `<a href="/root/guide.html">guide</a> >> <a href="/root/guide/guide.html">guide</a>`,
		},
		{
			name: "segment shares text with root",
			path: "/root/ro/root.html",
			want: `<a href="/root/ro.html">ro</a> >> <a href="/root/ro/root.html">root</a>`,
		},
		{name: "root only", path: "/root", want: ""},
		{name: "empty path", path: "", want: ""},
		{name: "nested index is not skipped", path: "/root/a/index.html", want: `<a href="/root/a.html">a</a> >> <a href="/root/a/index.html">index</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Render(tt.path, "root")
			if tt.wantSkip {
				require.False(t, ok)
				require.Empty(t, got)
				return
			}
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRenderThreeLevels(t *testing.T) {
	path := "/root/a/b/c.html"
	r := New(Options{SiteRoot: "root"})

	trail, ok := r.Trail(path)
	require.True(t, ok)
	require.Len(t, trail, 3)

	last := trail[len(trail)-1]
	require.Equal(t, path, last.Target)
	require.Equal(t, "c", last.Name)

	markup, _ := r.Render(path)
	require.Equal(t, 2, strings.Count(markup, DefaultSeparator))
	require.False(t, strings.HasSuffix(markup, DefaultSeparator))
}

func TestRenderIsIdempotent(t *testing.T) {
	r := New(Options{SiteRoot: "SeniorDesignDoc"})
	first, ok1 := r.Render("/SeniorDesignDoc/design/architecture.html")
	second, ok2 := r.Render("/SeniorDesignDoc/design/architecture.html")
	require.Equal(t, ok1, ok2)
	require.Equal(t, first, second)
}

func TestTrailRoundTrip(t *testing.T) {
	paths := []string{
		"/root/a.html",
		"/root/a/b.html",
		"/root/a/b/c/d.html",
		"/root/x/x/x.html",
	}
	r := New(Options{SiteRoot: "root"})
	for _, p := range paths {
		segments := strings.Split(strings.TrimSuffix(p, DefaultSuffix), "/")
		trail, ok := r.Trail(p)
		require.True(t, ok, p)
		require.Len(t, trail, len(segments)-rootSegments, p)
		for i, link := range trail {
			require.Equal(t, segments[:i+rootSegments+1], link.Segments(DefaultSuffix), p)
		}
	}
}

func TestRendererOptions(t *testing.T) {
	r := New(Options{
		SiteRoot:  "/docs/",
		Separator: " / ",
		SkipPages: []string{"home.html"},
	})
	require.Equal(t, "docs", r.SiteRoot())
	require.True(t, r.Skip("/docs/home.html"))
	require.False(t, r.Skip("/docs/index.html"))

	got, ok := r.Render("/docs/a/b.html")
	require.True(t, ok)
	require.Equal(t, `<a href="/docs/a.html">a</a> / <a href="/docs/a/b.html">b</a>`, got)
}

func TestRendererIsPage(t *testing.T) {
	r := New(Options{SiteRoot: "root"})
	require.Equal(t, DefaultSuffix, r.Suffix())
	require.True(t, r.IsPage("b.html"))
	require.False(t, r.IsPage("b.htm"))
	require.False(t, r.IsPage("UPPER.HTML"))
	require.False(t, r.IsPage("style.css"))

	htm := New(Options{SiteRoot: "root", Suffix: ".htm"})
	require.Equal(t, ".htm", htm.Suffix())
	require.True(t, htm.IsPage("b.htm"))
	require.False(t, htm.IsPage("b.html"))

	got, ok := htm.Render("/root/a/b.htm")
	require.True(t, ok)
	require.Equal(t, `<a href="/root/a.htm">a</a> >> <a href="/root/a/b.htm">b</a>`, got)
}

func TestAnchorEscapes(t *testing.T) {
	l := Link{Name: `<b>"x"</b>`, Target: `/root/"x".html`}
	require.Equal(t, `<a href="/root/&#34;x&#34;.html">&lt;b&gt;&#34;x&#34;&lt;/b&gt;</a>`, l.Anchor())
}

func TestRenderTo(t *testing.T) {
	r := New(Options{SiteRoot: "root"})

	t.Run("writes once", func(t *testing.T) {
		sink := &CaptureSink{}
		written, err := r.RenderTo("/root/a/b.html", sink)
		require.NoError(t, err)
		require.True(t, written)
		require.Equal(t, 1, sink.Writes)
		require.Equal(t, `<a href="/root/a.html">a</a> >> <a href="/root/a/b.html">b</a>`, sink.Markup)
	})

	t.Run("skip leaves sink untouched", func(t *testing.T) {
		sink := &CaptureSink{Markup: "original"}
		written, err := r.RenderTo("/root/index.html", sink)
		require.NoError(t, err)
		require.False(t, written)
		require.Zero(t, sink.Writes)
		require.Equal(t, "original", sink.Markup)
	})

	t.Run("empty trail still written", func(t *testing.T) {
		sink := &CaptureSink{Markup: "stale"}
		written, err := r.RenderTo("/root", sink)
		require.NoError(t, err)
		require.True(t, written)
		require.Empty(t, sink.Markup)
	})

	t.Run("sink error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		written, err := r.RenderTo("/root/a.html", SinkFunc(func(string) error { return boom }))
		require.ErrorIs(t, err, boom)
		require.False(t, written)
	})

	t.Run("writer sink", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := r.RenderTo("/root/a.html", WriterSink{W: &buf})
		require.NoError(t, err)
		require.Equal(t, "<a href=\"/root/a.html\">a</a>\n", buf.String())
	})
}
