// Package preview serves a built site locally, rendering each page's trail
// from the request path at serve time, and rebuilds on docs changes.
package preview

import (
	stdErrors "errors"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/crumbtrail/internal/breadcrumb"
	"git.home.luguber.info/inful/crumbtrail/internal/config"
	"git.home.luguber.info/inful/crumbtrail/internal/errors"
	"git.home.luguber.info/inful/crumbtrail/internal/htmldoc"
	"git.home.luguber.info/inful/crumbtrail/internal/logfields"
	"git.home.luguber.info/inful/crumbtrail/internal/metrics"
	"git.home.luguber.info/inful/crumbtrail/internal/server/middleware"
	"git.home.luguber.info/inful/crumbtrail/internal/server/responses"
	"git.home.luguber.info/inful/crumbtrail/internal/version"
)

// buildStatus tracks the latest build for the health endpoint.
type buildStatus struct {
	mu          sync.RWMutex
	lastBuildID string
	lastError   error
}

func (bs *buildStatus) set(buildID string, err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastBuildID = buildID
	bs.lastError = err
}

func (bs *buildStatus) get() (string, error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastBuildID, bs.lastError
}

// Server serves a site directory under /<root>/.
type Server struct {
	cfg      *config.Config
	siteDir  string
	renderer *breadcrumb.Renderer
	recorder metrics.Recorder
	registry *prom.Registry
	logger   *slog.Logger
	status   buildStatus
	started  time.Time
}

// NewServer creates a Server for siteDir. When metrics are enabled in cfg a
// Prometheus registry and recorder are created.
func NewServer(cfg *config.Config, siteDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		siteDir:  siteDir,
		renderer: breadcrumb.New(cfg.Site.RendererOptions()),
		recorder: metrics.NoopRecorder{},
		logger:   logger,
		started:  time.Now(),
	}
	if cfg.Preview.Metrics.Enabled {
		s.registry = prom.NewRegistry()
		s.recorder = metrics.NewPrometheusRecorder(s.registry)
	}
	return s
}

// Recorder returns the recorder shared with rebuilds.
func (s *Server) Recorder() metrics.Recorder { return s.recorder }

// Handler returns the root handler wrapped in logging and recovery middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Preview.HealthPath, s.handleHealth)
	if s.registry != nil {
		mux.Handle(s.cfg.Preview.Metrics.Path, metrics.HTTPHandler(s.registry))
	}
	prefix := s.prefix()
	mux.HandleFunc(prefix, s.handlePage)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, prefix+"index.html", http.StatusFound)
			return
		}
		http.NotFound(w, r)
	})
	return middleware.Chain(s.logger)(mux)
}

func (s *Server) prefix() string {
	return "/" + s.renderer.SiteRoot() + "/"
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rel := path.Clean("/" + strings.TrimPrefix(r.URL.Path, s.prefix()))
	if strings.HasSuffix(r.URL.Path, "/") {
		rel = path.Join(rel, "index.html")
	}
	file := filepath.Join(s.siteDir, filepath.FromSlash(rel))

	info, err := os.Stat(file)
	if err == nil && info.IsDir() {
		http.Redirect(w, r, s.prefix()+strings.TrimPrefix(rel, "/")+"/", http.StatusMovedPermanently)
		return
	}
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if !s.renderer.IsPage(path.Base(rel)) {
		http.ServeFile(w, r, file)
		return
	}

	page, err := os.ReadFile(file)
	if err != nil {
		http.Error(w, "failed to read page", http.StatusInternalServerError)
		return
	}
	// The request path is the page's location, exactly as a browser sees it.
	location := s.prefix() + strings.TrimPrefix(rel, "/")
	out, written, err := htmldoc.InjectTrail(page, s.cfg.Site.ContainerID, s.renderer, location)
	outcome := metrics.PageSkipped
	switch {
	case stdErrors.Is(err, errors.ErrContainerNotFound):
		outcome = metrics.PageMissingContainer
	case err != nil:
		outcome = metrics.PageFailed
		s.logger.Warn("Failed to render breadcrumb", logfields.Page(location), logfields.Error(err))
	case written:
		outcome = metrics.PageInjected
	}
	s.recorder.IncPreviewRequest(outcome)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	buildID, err := s.status.get()
	resp := responses.HealthResponse{
		Status:      responses.StatusOK,
		Timestamp:   time.Now().UTC(),
		Version:     version.Version,
		Uptime:      time.Since(s.started).Seconds(),
		SiteRoot:    s.renderer.SiteRoot(),
		LastBuildID: buildID,
	}
	if err != nil {
		resp.Status = responses.StatusDegraded
		resp.LastError = err.Error()
	}
	responses.WriteJSON(w, http.StatusOK, resp)
}
