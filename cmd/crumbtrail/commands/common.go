package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/crumbtrail/internal/config"
	"git.home.luguber.info/inful/crumbtrail/internal/errors"
)

// Global carries process-wide dependencies into commands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (default: crumbtrail.yaml when present)"`
	Root      string           `short:"r" help:"Site root path segment; overrides site.root from the configuration"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format (text or json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render  RenderCmd  `cmd:"" help:"Print the breadcrumb trail for one or more page paths"`
	Inject  InjectCmd  `cmd:"" help:"Write breadcrumb trails into every page of a built site"`
	Build   BuildCmd   `cmd:"" help:"Build a static site from a Markdown docs directory"`
	Preview PreviewCmd `cmd:"" help:"Build, serve and watch the site locally"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; sets up a provisional logger until the
// configuration is loaded.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// LoadConfig resolves the configuration: the --config file, else
// crumbtrail.yaml when it exists, else defaults built from --root. The
// --root and --log-format flags override file values. The default logger is
// reconfigured from the result.
func (c *CLI) LoadConfig(g *Global) (*config.Config, error) {
	path := c.Config
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath
	}

	var (
		cfg *config.Config
		err error
	)
	if _, statErr := os.Stat(path); statErr != nil && !explicit {
		if c.Root == "" {
			return nil, errors.ValidationFailed("site.root",
				"no configuration file found; pass --root or run 'crumbtrail init'")
		}
		cfg, err = config.Default(c.Root)
	} else {
		cfg, err = config.Load(path)
		if err == nil && c.Root != "" {
			cfg.Site.Root = strings.Trim(c.Root, "/")
			err = config.Validate(cfg)
		}
	}
	if err != nil {
		return nil, err
	}

	if c.LogFormat != "" {
		cfg.Logging.Format = config.NormalizeLogFormat(c.LogFormat)
	}
	logger := cfg.Logging.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return cfg, nil
}
