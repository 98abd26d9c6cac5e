package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/crumbtrail/internal/config"
	"git.home.luguber.info/inful/crumbtrail/internal/site"
)

// BuildCmd builds the Markdown site.
type BuildCmd struct {
	DocsDir string `short:"d" name:"docs-dir" help:"Markdown docs directory (default: build.docs_dir)"`
	Output  string `short:"o" name:"output" help:"Output directory (default: build.output_dir)"`
	Title   string `name:"title" help:"Site title (default: build.title)"`
	Clean   bool   `name:"clean" help:"Remove the output directory before building"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	b.apply(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, err := site.NewBuilder(cfg).WithLogger(g.Logger).Build(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "built %d pages into %s (build %s)\n", len(res.Pages), cfg.Build.OutputDir, res.BuildID)
	return nil
}

func (b *BuildCmd) apply(cfg *config.Config) {
	if b.DocsDir != "" {
		cfg.Build.DocsDir = b.DocsDir
	}
	if b.Output != "" {
		cfg.Build.OutputDir = b.Output
	}
	if b.Title != "" {
		cfg.Build.Title = b.Title
	}
	if b.Clean {
		cfg.Build.Clean = true
	}
}
