package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/crumbtrail/internal/breadcrumb"
	"git.home.luguber.info/inful/crumbtrail/internal/site"
)

// InjectCmd rewrites the pages of an already built site in place.
type InjectCmd struct {
	Site        string `short:"s" name:"site" help:"Site directory to process (default: build.output_dir)"`
	Concurrency int    `name:"concurrency" help:"Pages processed in parallel (default: build.concurrency)"`
}

func (i *InjectCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	dir := cfg.Build.OutputDir
	if i.Site != "" {
		dir = i.Site
	}
	concurrency := cfg.Build.Concurrency
	if i.Concurrency > 0 {
		concurrency = i.Concurrency
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	injector := site.NewInjector(breadcrumb.New(cfg.Site.RendererOptions()), cfg.Site.ContainerID,
		site.WithConcurrency(concurrency),
		site.WithLogger(g.Logger))
	stats, err := injector.Run(ctx, dir)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "pages=%d injected=%d skipped=%d missing_container=%d\n",
		stats.Pages, stats.Injected, stats.Skipped, stats.MissingContainer)
	return nil
}
