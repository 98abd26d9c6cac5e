package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/crumbtrail/cmd/crumbtrail/commands"
	"git.home.luguber.info/inful/crumbtrail/internal/errors"
	"git.home.luguber.info/inful/crumbtrail/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("crumbtrail"),
		kong.Description("Breadcrumb navigation trails for static documentation sites."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)
	global := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	err := ctx.Run(global, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
