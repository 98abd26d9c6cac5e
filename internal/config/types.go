package config

import "git.home.luguber.info/inful/crumbtrail/internal/breadcrumb"

// CurrentVersion is the only configuration schema version accepted by Load.
const CurrentVersion = "1.0"

// Config is the crumbtrail configuration file.
type Config struct {
	Version string        `yaml:"version"`
	Site    SiteConfig    `yaml:"site"`
	Build   BuildConfig   `yaml:"build"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// SiteConfig describes the deployed site the trails are rendered for.
type SiteConfig struct {
	Root        string   `yaml:"root"`         // First path segment of every page URL, e.g. "handbook"
	ContainerID string   `yaml:"container_id"` // id of the element receiving the trail
	Separator   string   `yaml:"separator"`    // Placed between links
	Suffix      string   `yaml:"suffix"`       // Page extension
	SkipPages   []string `yaml:"skip_pages"`   // Pages (relative to root) that never get a trail
}

// BuildConfig configures site generation and injection.
type BuildConfig struct {
	DocsDir     string `yaml:"docs_dir"`
	OutputDir   string `yaml:"output_dir"`
	Title       string `yaml:"title"`
	Concurrency int    `yaml:"concurrency"`
	Clean       bool   `yaml:"clean"`
}

// PreviewConfig configures the local preview server.
type PreviewConfig struct {
	Port        int           `yaml:"port"`
	LiveRebuild *bool         `yaml:"live_rebuild,omitempty"`
	HealthPath  string        `yaml:"health_path"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

// LiveRebuildEnabled reports whether docs changes trigger rebuilds. Defaults to true.
func (p PreviewConfig) LiveRebuildEnabled() bool {
	return p.LiveRebuild == nil || *p.LiveRebuild
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// RendererOptions maps the site section onto breadcrumb renderer options.
func (s SiteConfig) RendererOptions() breadcrumb.Options {
	return breadcrumb.Options{
		SiteRoot:  s.Root,
		Separator: s.Separator,
		Suffix:    s.Suffix,
		SkipPages: s.SkipPages,
	}
}
