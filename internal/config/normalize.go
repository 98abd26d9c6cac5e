package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// Normalize canonicalizes enumerated and path-like fields in place.
func Normalize(c *Config) *NormalizationResult {
	res := &NormalizationResult{}

	root := strings.Trim(strings.TrimSpace(c.Site.Root), "/")
	if root != c.Site.Root {
		res.Warnings = append(res.Warnings, warnChanged("site.root", c.Site.Root, root))
		c.Site.Root = root
	}
	c.Site.ContainerID = strings.TrimSpace(c.Site.ContainerID)
	for i, p := range c.Site.SkipPages {
		c.Site.SkipPages[i] = strings.TrimPrefix(strings.TrimSpace(p), "/")
	}

	if c.Build.Concurrency < 0 {
		res.Warnings = append(res.Warnings, warnChanged("build.concurrency", c.Build.Concurrency, 0))
		c.Build.Concurrency = 0
	}

	if lvl := NormalizeLogLevel(string(c.Logging.Level)); lvl != "" {
		c.Logging.Level = lvl
	} else if c.Logging.Level != "" {
		res.Warnings = append(res.Warnings, warnUnknown("logging.level", string(c.Logging.Level), string(LogLevelInfo)))
		c.Logging.Level = LogLevelInfo
	}
	if f := NormalizeLogFormat(string(c.Logging.Format)); f != "" {
		c.Logging.Format = f
	} else if c.Logging.Format != "" {
		res.Warnings = append(res.Warnings, warnUnknown("logging.format", string(c.Logging.Format), string(LogFormatText)))
		c.Logging.Format = LogFormatText
	}
	return res
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
