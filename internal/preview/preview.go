package preview

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/crumbtrail/internal/config"
	"git.home.luguber.info/inful/crumbtrail/internal/errors"
	"git.home.luguber.info/inful/crumbtrail/internal/logfields"
	"git.home.luguber.info/inful/crumbtrail/internal/site"
)

// Options controls a preview run.
type Options struct {
	// NoBuild serves OutputDir as-is instead of building from DocsDir first.
	NoBuild bool
	Logger  *slog.Logger
}

// Run builds the site (unless NoBuild), serves it on the configured port and,
// when live rebuild is enabled, rebuilds on docs changes until ctx is done.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := NewServer(cfg, cfg.Build.OutputDir, logger)

	var (
		builder *site.Builder
		docsDir string
	)
	if !opts.NoBuild {
		var err error
		if docsDir, err = validateAndResolveDocsDir(cfg); err != nil {
			return err
		}
		builder = site.NewBuilder(cfg).WithRecorder(srv.Recorder()).WithLogger(logger)
		srv.rebuild(ctx, builder)
	}

	addr := fmt.Sprintf(":%d", cfg.Preview.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.ServerError(addr, err)
	}
	return srv.serve(ctx, ln, func(ctx context.Context) error {
		if builder == nil || !cfg.Preview.LiveRebuildEnabled() {
			<-ctx.Done()
			return nil
		}
		return watchDocs(ctx, docsDir, logger, func(ctx context.Context) {
			logger.Info("Change detected; rebuilding site")
			srv.rebuild(ctx, builder)
		})
	})
}

// validateAndResolveDocsDir returns the absolute docs directory, which must exist.
func validateAndResolveDocsDir(cfg *config.Config) (string, error) {
	if cfg.Build.DocsDir == "" {
		return "", errors.ValidationFailed("build.docs_dir", "docs directory is required for preview")
	}
	abs, err := filepath.Abs(cfg.Build.DocsDir)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "failed to resolve docs directory")
	}
	if st, err := os.Stat(abs); err != nil || !st.IsDir() {
		return "", errors.DirectoryNotFound(abs)
	}
	return abs, nil
}

func (s *Server) rebuild(ctx context.Context, builder *site.Builder) {
	res, err := builder.Build(ctx)
	id := ""
	if res != nil {
		id = res.BuildID
	}
	s.status.set(id, err)
}

// serve runs the HTTP server on ln alongside background until ctx is done,
// then shuts the server down gracefully.
func (s *Server) serve(ctx context.Context, ln net.Listener, background func(context.Context) error) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Preview server listening",
		logfields.Addr(ln.Addr().String()),
		slog.String("docs_url", fmt.Sprintf("http://%s%sindex.html", ln.Addr().String(), s.prefix())))

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			errCh <- errors.ServerError(ln.Addr().String(), err)
		}
		close(errCh)
	}()

	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	bgErr := make(chan error, 1)
	go func(ch chan<- error) { ch <- background(bgCtx) }(bgErr)

	var runErr error
wait:
	for {
		select {
		case <-ctx.Done():
			break wait
		case err := <-errCh:
			runErr = err
			break wait
		case err := <-bgErr:
			if err != nil {
				runErr = errors.Wrap(err, errors.CategoryRuntime, errors.SeverityFatal, "file watcher failed")
				break wait
			}
			bgErr = nil
		}
	}
	cancel()

	s.logger.Info("Shutting down preview server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return runErr
}
