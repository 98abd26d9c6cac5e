package commands

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/crumbtrail/internal/errors"
	helpers "git.home.luguber.info/inful/crumbtrail/internal/testutil/testutils"
)

// runCLI parses args into a fresh CLI and runs the selected command,
// returning what the command wrote to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("crumbtrail"), kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	global := &Global{Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), Out: &out}
	err = ctx.Run(global, &cli)
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := runCLI(t, "--root", "handbook", "render", "/handbook/guides/setup.html", "/handbook/index.html", "/handbook/faq.html")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Equal(t, []string{
		`<a href="/handbook/guides.html">guides</a> >> <a href="/handbook/guides/setup.html">setup</a>`,
		`<a href="/handbook/faq.html">faq</a>`,
	}, lines)
}

func TestRenderCommandRequiresRoot(t *testing.T) {
	_, err := runCLI(t, "render", "/handbook/a.html")
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestInitThenRender(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "crumbtrail.yaml")

	out, err := runCLI(t, "--config", cfgPath, "--root", "guide", "init")
	require.NoError(t, err)
	require.Contains(t, out, cfgPath)

	_, err = runCLI(t, "--config", cfgPath, "init")
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryConfig))

	_, err = runCLI(t, "--config", cfgPath, "init", "--force")
	require.NoError(t, err)

	out, err = runCLI(t, "--config", cfgPath, "--root", "guide", "render", "/guide/a/b.html")
	require.NoError(t, err)
	require.Equal(t, `<a href="/guide/a.html">a</a> >> <a href="/guide/a/b.html">b</a>`+"\n", out)
}

func TestBuildCommand(t *testing.T) {
	docs := helpers.WriteTree(t, map[string]string{
		"intro.md":        "# Intro\n",
		"guides/setup.md": "---\ntitle: Setup\n---\nSteps.\n",
	})
	output := filepath.Join(t.TempDir(), "site")

	out, err := runCLI(t, "--root", "handbook", "build", "--docs-dir", docs, "--output", output, "--title", "Handbook")
	require.NoError(t, err)
	require.Contains(t, out, "built 2 pages")

	helpers.NewFileAssertions(t, output).
		AssertFileContains("guides/setup.html", `<a href="/handbook/guides/setup.html">setup</a>`).
		AssertFileExists("pages.html")
}

func TestInjectCommand(t *testing.T) {
	const page = `<html><head><title>t</title></head><body><div id="this">old</div></body></html>`
	site := helpers.WriteTree(t, map[string]string{
		"index.html": page,
		"a/b.html":   page,
	})

	out, err := runCLI(t, "--root", "root", "inject", "--site", site, "--concurrency", "2")
	require.NoError(t, err)
	require.Equal(t, "pages=2 injected=1 skipped=1 missing_container=0\n", out)

	helpers.NewFileAssertions(t, site).
		AssertFileContains("a/b.html", `<div id="this"><a href="/root/a.html">a</a> &gt;&gt; <a href="/root/a/b.html">b</a></div>`).
		AssertFileEquals("index.html", page)
}
