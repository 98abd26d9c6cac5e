package commands

import (
	"os"

	"git.home.luguber.info/inful/crumbtrail/internal/breadcrumb"
	"git.home.luguber.info/inful/crumbtrail/internal/logfields"
)

// RenderCmd prints trail markup, one line per path. Skip pages print nothing.
type RenderCmd struct {
	Paths []string `arg:"" name:"path" help:"Page paths as a browser sees them, e.g. /handbook/guides/setup.html"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	out := g.Out
	if out == nil {
		out = os.Stdout
	}
	renderer := breadcrumb.New(cfg.Site.RendererOptions())
	sink := breadcrumb.WriterSink{W: out}
	for _, p := range r.Paths {
		written, err := renderer.RenderTo(p, sink)
		if err != nil {
			return err
		}
		if !written {
			g.Logger.Debug("No trail for landing page", logfields.Page(p))
		}
	}
	return nil
}
