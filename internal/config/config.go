package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/crumbtrail/internal/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "crumbtrail.yaml"

// Load reads, normalizes, defaults and validates a configuration file.
func Load(configPath string) (*Config, error) {
	if name, err := loadEnvFile(); err != nil {
		slog.Warn("Failed to load environment file", "error", err)
	} else if name != "" {
		slog.Debug("Loaded environment variables", "file", name)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}
	return Parse(data)
}

// Parse builds a Config from raw YAML. ${VAR} references are expanded first.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.ConfigInvalid(fmt.Errorf("unmarshal: %w", err))
	}
	if cfg.Version != CurrentVersion {
		return nil, errors.ValidationFailed("version",
			fmt.Sprintf("unsupported configuration version %q (expected %s)", cfg.Version, CurrentVersion))
	}
	if err := finalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a validated configuration for the given site root, used when
// no configuration file exists.
func Default(siteRoot string) (*Config, error) {
	cfg := &Config{Version: CurrentVersion, Site: SiteConfig{Root: siteRoot}}
	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finalize runs normalization, defaults and validation in that order.
func finalize(cfg *Config) error {
	res := Normalize(cfg)
	for _, w := range res.Warnings {
		slog.Warn("config normalization", "detail", w)
	}
	ApplyDefaults(cfg)
	return Validate(cfg)
}

// Init writes an example configuration file for siteRoot ("docs" when empty).
func Init(configPath, siteRoot string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigExists(configPath)
	}

	if siteRoot == "" {
		siteRoot = "docs"
	}
	liveRebuild := true
	example := Config{
		Version: CurrentVersion,
		Site: SiteConfig{
			Root:        siteRoot,
			ContainerID: DefaultContainerID,
			Separator:   " >> ",
			Suffix:      ".html",
			SkipPages:   []string{"index.html", "pages.html"},
		},
		Build: BuildConfig{
			DocsDir:     "./docs",
			OutputDir:   "./site",
			Title:       "Documentation",
			Concurrency: DefaultConcurrency,
			Clean:       true,
		},
		Preview: PreviewConfig{
			Port:        DefaultPort,
			LiveRebuild: &liveRebuild,
			HealthPath:  "/health",
			Metrics:     MetricsConfig{Enabled: false, Path: "/metrics"},
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.InternalError("failed to marshal example config", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "failed to write config file").
			WithContext("path", configPath)
	}
	return nil
}
