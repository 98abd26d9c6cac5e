package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/crumbtrail/internal/preview"
)

// PreviewCmd builds the site, serves it and rebuilds on docs changes.
type PreviewCmd struct {
	BuildCmd `embed:""`

	Port          int  `short:"p" name:"port" help:"Port to listen on (default: preview.port)"`
	NoBuild       bool `name:"no-build" help:"Serve the output directory as-is; trails are rendered per request"`
	NoLiveRebuild bool `name:"no-live-rebuild" help:"Do not watch the docs directory"`
	Metrics       bool `name:"metrics" help:"Expose Prometheus metrics"`
}

func (p *PreviewCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	p.apply(cfg)
	if p.Port > 0 {
		cfg.Preview.Port = p.Port
	}
	if p.NoLiveRebuild {
		disabled := false
		cfg.Preview.LiveRebuild = &disabled
	}
	if p.Metrics {
		cfg.Preview.Metrics.Enabled = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return preview.Run(ctx, cfg, preview.Options{NoBuild: p.NoBuild, Logger: g.Logger})
}
