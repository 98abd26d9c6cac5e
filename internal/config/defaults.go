package config

import "git.home.luguber.info/inful/crumbtrail/internal/breadcrumb"

const (
	DefaultContainerID = "this"
	DefaultConcurrency = 4
	DefaultPort        = 1316
)

// ApplyDefaults fills unset fields. Explicitly empty skip_pages lists are kept.
func ApplyDefaults(c *Config) {
	s := &c.Site
	if s.ContainerID == "" {
		s.ContainerID = DefaultContainerID
	}
	if s.Separator == "" {
		s.Separator = breadcrumb.DefaultSeparator
	}
	if s.Suffix == "" {
		s.Suffix = breadcrumb.DefaultSuffix
	}
	if s.SkipPages == nil {
		s.SkipPages = breadcrumb.DefaultSkipPages()
	}

	b := &c.Build
	if b.DocsDir == "" {
		b.DocsDir = "./docs"
	}
	if b.OutputDir == "" {
		b.OutputDir = "./site"
	}
	if b.Title == "" {
		b.Title = "Documentation"
	}
	if b.Concurrency == 0 {
		b.Concurrency = DefaultConcurrency
	}

	p := &c.Preview
	if p.Port == 0 {
		p.Port = DefaultPort
	}
	if p.HealthPath == "" {
		p.HealthPath = "/health"
	}
	if p.Metrics.Path == "" {
		p.Metrics.Path = "/metrics"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}
