// Package site injects breadcrumb trails into built HTML sites and builds
// small static sites from Markdown.
package site

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/crumbtrail/internal/breadcrumb"
	"git.home.luguber.info/inful/crumbtrail/internal/errors"
	"git.home.luguber.info/inful/crumbtrail/internal/htmldoc"
	"git.home.luguber.info/inful/crumbtrail/internal/logfields"
	"git.home.luguber.info/inful/crumbtrail/internal/metrics"
)

// Stats summarizes an injection run.
type Stats struct {
	Pages            int
	Injected         int
	Skipped          int
	MissingContainer int
	Failed           int
}

func (s *Stats) add(outcome metrics.PageOutcome) {
	s.Pages++
	switch outcome {
	case metrics.PageInjected:
		s.Injected++
	case metrics.PageSkipped:
		s.Skipped++
	case metrics.PageMissingContainer:
		s.MissingContainer++
	case metrics.PageFailed:
		s.Failed++
	}
}

// PageURL maps a file path relative to the site output directory onto the
// path a browser sees: /<siteRoot>/<rel>.
func PageURL(siteRoot, rel string) string {
	return "/" + siteRoot + "/" + strings.TrimPrefix(filepath.ToSlash(rel), "/")
}

// Injector writes trails into every HTML page below a directory.
type Injector struct {
	renderer    *breadcrumb.Renderer
	containerID string
	concurrency int
	recorder    metrics.Recorder
	logger      *slog.Logger
}

// InjectorOption configures an Injector.
type InjectorOption func(*Injector)

// WithConcurrency bounds the number of pages processed in parallel.
func WithConcurrency(n int) InjectorOption {
	return func(in *Injector) { in.concurrency = n }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) InjectorOption {
	return func(in *Injector) {
		if r != nil {
			in.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) InjectorOption {
	return func(in *Injector) {
		if l != nil {
			in.logger = l
		}
	}
}

// NewInjector creates an Injector writing into the element with containerID.
func NewInjector(r *breadcrumb.Renderer, containerID string, opts ...InjectorOption) *Injector {
	in := &Injector{
		renderer:    r,
		containerID: containerID,
		concurrency: 1,
		recorder:    metrics.NoopRecorder{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.concurrency < 1 {
		in.concurrency = 1
	}
	return in
}

// InjectFile rewrites a single page in place. urlPath is the page's browser path.
// Pages without a container are left untouched and reported as missing_container.
func (in *Injector) InjectFile(path, urlPath string) (metrics.PageOutcome, error) {
	if in.renderer.Skip(urlPath) {
		return metrics.PageSkipped, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return metrics.PageFailed, errors.PageReadError(path, err)
	}
	page, err := os.ReadFile(path)
	if err != nil {
		return metrics.PageFailed, errors.PageReadError(path, err)
	}
	out, written, err := htmldoc.InjectTrail(page, in.containerID, in.renderer, urlPath)
	if err != nil {
		if stdErrors.Is(err, errors.ErrContainerNotFound) {
			return metrics.PageMissingContainer, nil
		}
		return metrics.PageFailed, errors.PageParseError(path, err)
	}
	if !written {
		return metrics.PageSkipped, nil
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return metrics.PageFailed, errors.PageWriteError(path, err)
	}
	return metrics.PageInjected, nil
}

// Run injects trails into every page below dir. Individual page failures are
// counted and returned joined after all pages were attempted.
func (in *Injector) Run(ctx context.Context, dir string) (Stats, error) {
	var stats Stats
	start := time.Now()
	defer func() { in.recorder.ObserveStageDuration("inject", time.Since(start)) }()

	pages, err := collectPages(ctx, dir, in.renderer)
	if err != nil {
		return stats, err
	}

	concurrency := min(in.concurrency, max(len(pages), 1))
	tasks := make(chan pageTask)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	worker := func() {
		defer wg.Done()
		for t := range tasks {
			outcome, err := in.InjectFile(t.path, t.url)
			in.recorder.IncPage(outcome)
			mu.Lock()
			stats.add(outcome)
			if err != nil {
				errs = append(errs, err)
			}
			mu.Unlock()
			switch {
			case err != nil:
				in.logger.Warn("Failed to inject breadcrumb", logfields.Page(t.url), logfields.Error(err))
			case outcome == metrics.PageMissingContainer:
				in.logger.Warn("Page has no breadcrumb container", logfields.Page(t.url), logfields.Container(in.containerID))
			default:
				in.logger.Debug("Page processed", logfields.Page(t.url), slog.String("outcome", string(outcome)))
			}
		}
	}
	wg.Add(concurrency)
	for range concurrency {
		go worker()
	}
	for _, p := range pages {
		select {
		case <-ctx.Done():
			close(tasks)
			wg.Wait()
			return stats, ctx.Err()
		case tasks <- p:
		}
	}
	close(tasks)
	wg.Wait()

	in.logger.Info("Breadcrumb injection complete",
		logfields.Path(dir),
		logfields.Count(stats.Pages),
		slog.Int("injected", stats.Injected),
		slog.Int("skipped", stats.Skipped),
		slog.Int("missing_container", stats.MissingContainer),
		slog.Int("failed", stats.Failed))

	if len(errs) > 0 {
		return stats, errors.BuildFailed("inject", fmt.Errorf("%d pages failed: %w", len(errs), stdErrors.Join(errs...)))
	}
	return stats, nil
}

type pageTask struct{ path, url string }

func collectPages(ctx context.Context, dir string, r *breadcrumb.Renderer) ([]pageTask, error) {
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		return nil, errors.DirectoryNotFound(dir)
	}
	var pages []pageTask
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !r.IsPage(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		pages = append(pages, pageTask{path: path, url: PageURL(r.SiteRoot(), rel)})
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "failed to walk site").
			WithContext("path", dir)
	}
	return pages, nil
}
