package site

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/crumbtrail/internal/breadcrumb"
	"git.home.luguber.info/inful/crumbtrail/internal/config"
	"git.home.luguber.info/inful/crumbtrail/internal/errors"
	"git.home.luguber.info/inful/crumbtrail/internal/htmldoc"
	"git.home.luguber.info/inful/crumbtrail/internal/logfields"
	"git.home.luguber.info/inful/crumbtrail/internal/markdown"
	"git.home.luguber.info/inful/crumbtrail/internal/metrics"
)

const (
	indexPage = "index.html"
	pagesPage = "pages.html"
)

// PageEntry is a page listed on the pages listing.
type PageEntry struct {
	Title   string
	URL     string
	RelPath string
	Weight  int
}

// Result describes a finished build.
type Result struct {
	BuildID  string
	Pages    []PageEntry
	Assets   int
	Stats    Stats
	Duration time.Duration
}

// Builder turns a directory of Markdown into a static site with breadcrumb trails.
type Builder struct {
	cfg       *config.Config
	renderer  *breadcrumb.Renderer
	converter *markdown.Converter
	recorder  metrics.Recorder
	logger    *slog.Logger
}

// NewBuilder creates a Builder from cfg's site and build sections.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		cfg:       cfg,
		renderer:  breadcrumb.New(cfg.Site.RendererOptions()),
		converter: markdown.NewConverter(),
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
	}
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Renderer returns the renderer used for injection.
func (b *Builder) Renderer() *breadcrumb.Renderer { return b.renderer }

// Build generates the site into the configured output directory.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	res := &Result{BuildID: uuid.NewString()}
	logger := b.logger.With(logfields.BuildID(res.BuildID))
	start := time.Now()

	err := b.build(ctx, logger, res)
	res.Duration = time.Since(start)
	b.recorder.ObserveBuildDuration(res.Duration)

	switch {
	case ctx.Err() != nil:
		b.recorder.IncBuildOutcome(metrics.BuildCanceled)
		logger.Warn("Build canceled", logfields.Error(ctx.Err()))
		return res, ctx.Err()
	case err != nil:
		b.recorder.IncBuildOutcome(metrics.BuildFailed)
		logger.Error("Build failed", logfields.Error(err))
		return res, err
	}
	b.recorder.IncBuildOutcome(metrics.BuildSuccess)
	logger.Info("Build complete",
		logfields.Count(len(res.Pages)),
		slog.Int("assets", res.Assets),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))
	return res, nil
}

func (b *Builder) build(ctx context.Context, logger *slog.Logger, res *Result) error {
	docsDir, outDir, err := b.resolveDirs()
	if err != nil {
		return err
	}
	logger.Info("Starting site build", logfields.Path(docsDir), slog.String("output", outDir), logfields.SiteRoot(b.renderer.SiteRoot()))

	if b.cfg.Build.Clean {
		if err := os.RemoveAll(outDir); err != nil {
			return errors.BuildFailed("clean", err)
		}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.BuildFailed("prepare", err)
	}

	if err := b.stage("render", func() error { return b.renderSources(ctx, docsDir, outDir, res) }); err != nil {
		return err
	}
	if err := b.stage("listing", func() error { return b.writeListings(outDir, res) }); err != nil {
		return err
	}

	injector := NewInjector(b.renderer, b.cfg.Site.ContainerID,
		WithConcurrency(b.cfg.Build.Concurrency),
		WithRecorder(b.recorder),
		WithLogger(logger))
	stats, err := injector.Run(ctx, outDir)
	res.Stats = stats
	return err
}

func (b *Builder) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	b.recorder.ObserveStageDuration(name, time.Since(start))
	if err != nil {
		if _, ok := errors.As(err); ok {
			return err
		}
		return errors.BuildFailed(name, err)
	}
	return nil
}

func (b *Builder) resolveDirs() (string, string, error) {
	docsDir, err := filepath.Abs(b.cfg.Build.DocsDir)
	if err != nil {
		return "", "", errors.BuildFailed("prepare", err)
	}
	outDir, err := filepath.Abs(b.cfg.Build.OutputDir)
	if err != nil {
		return "", "", errors.BuildFailed("prepare", err)
	}
	if st, err := os.Stat(docsDir); err != nil || !st.IsDir() {
		return "", "", errors.DirectoryNotFound(docsDir)
	}
	if within(outDir, docsDir) {
		return "", "", errors.ValidationFailed("build.output_dir", "must not be inside docs_dir")
	}
	if within(docsDir, outDir) {
		return "", "", errors.ValidationFailed("build.output_dir", "must not contain docs_dir")
	}
	return docsDir, outDir, nil
}

// within reports whether path equals dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (b *Builder) renderSources(ctx context.Context, docsDir, outDir string, res *Result) error {
	return filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != docsDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(docsDir, path)
		if err != nil {
			return err
		}

		// Only files the injector will visit are listed as pages; other
		// markup is copied as an asset.
		switch ext := strings.ToLower(filepath.Ext(path)); {
		case ext == ".md" || ext == ".markdown":
			return b.renderMarkdown(path, rel, outDir, res)
		case b.renderer.IsPage(d.Name()):
			return b.copyHTML(path, rel, outDir, res)
		default:
			res.Assets++
			return copyFile(path, filepath.Join(outDir, rel))
		}
	})
}

func (b *Builder) renderMarkdown(path, rel, outDir string, res *Result) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.PageReadError(path, err)
	}
	page, err := b.converter.Convert(rel, source)
	if err != nil {
		return errors.PageParseError(path, err)
	}
	if page.Draft {
		b.logger.Debug("Skipping draft", logfields.File(rel))
		return nil
	}

	outRel := strings.TrimSuffix(rel, filepath.Ext(rel)) + b.cfg.Site.Suffix
	var buf bytes.Buffer
	if err := renderLayout(&buf, b.layout(page.Title, template.HTML(page.HTML))); err != nil { //nolint:gosec // goldmark omits raw HTML
		return errors.BuildFailed("render", err)
	}
	if err := writeFile(filepath.Join(outDir, outRel), buf.Bytes()); err != nil {
		return err
	}
	res.Pages = append(res.Pages, PageEntry{
		Title:   page.Title,
		URL:     PageURL(b.renderer.SiteRoot(), outRel),
		RelPath: filepath.ToSlash(outRel),
		Weight:  page.Weight,
	})
	return nil
}

// copyHTML copies a hand-written page and lists it under its <title>.
func (b *Builder) copyHTML(path, rel, outDir string, res *Result) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.PageReadError(path, err)
	}
	title := markdown.TitleFromName(rel)
	if doc, err := htmldoc.Parse(bytes.NewReader(data)); err == nil {
		if t := doc.Title(); t != "" {
			title = t
		}
	}
	if err := writeFile(filepath.Join(outDir, rel), data); err != nil {
		return err
	}
	res.Pages = append(res.Pages, PageEntry{
		Title:   title,
		URL:     PageURL(b.renderer.SiteRoot(), rel),
		RelPath: filepath.ToSlash(rel),
	})
	return nil
}

// writeListings writes the pages listing and, unless the docs provide one, the landing page.
func (b *Builder) writeListings(outDir string, res *Result) error {
	sort.SliceStable(res.Pages, func(i, j int) bool {
		if res.Pages[i].Weight != res.Pages[j].Weight {
			return res.Pages[i].Weight < res.Pages[j].Weight
		}
		return res.Pages[i].URL < res.Pages[j].URL
	})

	var listed []PageEntry
	hasIndex := false
	for _, p := range res.Pages {
		switch p.RelPath {
		case indexPage:
			hasIndex = true
			continue
		case pagesPage:
			b.logger.Warn("Docs page replaced by generated listing", logfields.File(p.RelPath))
			continue
		}
		listed = append(listed, p)
	}

	var list bytes.Buffer
	if err := listingTemplate.Execute(&list, listed); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := renderLayout(&buf, b.layout("All pages", template.HTML(list.String()))); err != nil { //nolint:gosec // template output
		return err
	}
	if err := writeFile(filepath.Join(outDir, pagesPage), buf.Bytes()); err != nil {
		return err
	}

	if hasIndex {
		return nil
	}
	buf.Reset()
	landing := template.HTML(`<h1>` + template.HTMLEscapeString(b.cfg.Build.Title) + `</h1>` + "\n" + list.String()) //nolint:gosec // escaped above
	if err := renderLayout(&buf, b.layout(b.cfg.Build.Title, landing)); err != nil {
		return err
	}
	return writeFile(filepath.Join(outDir, indexPage), buf.Bytes())
}

func (b *Builder) layout(title string, content template.HTML) layoutData {
	root := b.renderer.SiteRoot()
	return layoutData{
		Title:       title,
		SiteTitle:   b.cfg.Build.Title,
		HomeURL:     PageURL(root, indexPage),
		PagesURL:    PageURL(root, pagesPage),
		ContainerID: b.cfg.Site.ContainerID,
		Content:     content,
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.PageWriteError(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.PageWriteError(path, err)
	}
	return nil
}

// copyFile copies a single file from src to dst
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.PageWriteError(dst, err)
	}
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.PageReadError(src, err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return errors.PageWriteError(dst, err)
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return errors.PageWriteError(dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return errors.PageWriteError(dst, err)
	}
	return nil
}
