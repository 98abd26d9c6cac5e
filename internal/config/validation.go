package config

import (
	"strings"

	"git.home.luguber.info/inful/crumbtrail/internal/errors"
)

// Validate checks a normalized, defaulted configuration.
func Validate(c *Config) error {
	if c.Site.Root == "" {
		return errors.ValidationFailed("site.root", "required")
	}
	if strings.Contains(c.Site.Root, "/") {
		return errors.ValidationFailed("site.root", "must be a single path segment")
	}
	if strings.ContainsAny(c.Site.ContainerID, " \t\n") {
		return errors.ValidationFailed("site.container_id", "must not contain whitespace")
	}
	if !strings.HasPrefix(c.Site.Suffix, ".") {
		return errors.ValidationFailed("site.suffix", "must start with '.'")
	}
	if c.Build.Concurrency < 1 {
		return errors.ValidationFailed("build.concurrency", "must be at least 1")
	}
	if c.Preview.Port < 1 || c.Preview.Port > 65535 {
		return errors.ValidationFailed("preview.port", "must be between 1 and 65535")
	}
	for field, p := range map[string]string{
		"preview.health_path":  c.Preview.HealthPath,
		"preview.metrics.path": c.Preview.Metrics.Path,
	} {
		if !strings.HasPrefix(p, "/") {
			return errors.ValidationFailed(field, "must start with '/'")
		}
	}
	if c.Preview.Metrics.Enabled && c.Preview.Metrics.Path == c.Preview.HealthPath {
		return errors.ValidationFailed("preview.metrics.path", "must differ from health_path")
	}
	return nil
}
