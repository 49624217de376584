// Package commands implements the sitebuilder CLI subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	SiteDir  string           `short:"d" name:"site-dir" help:"Site root containing sitebuilder.config.yaml" default:"." type:"existingdir"`
	ThemeDir string           `name:"theme-dir" help:"Fallback theme directory, lowest alias priority" type:"path"`
	Verbose  bool             `short:"v" help:"Enable verbose logging"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Load the site once and write generated artifacts"`
	Watch   WatchCmd   `cmd:"" help:"Load the site and reload whenever its inputs change"`
	Plugins PluginsCmd `cmd:"" help:"List registered plugins, themes and presets"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadOptions fills the build options shared by build and watch.
func (c *CLI) loadOptions(g *Global, outDir string) build.Options {
	opts := build.Options{CustomOutDir: outDir, FallbackThemeDir: c.ThemeDir}
	if g != nil {
		opts.Logger = g.Logger
	}
	return opts
}

// printSummary writes the user-facing result of one load.
func printSummary(w io.Writer, props *build.Props) {
	fmt.Fprintf(w, "Loaded %s: %d plugins, %d routes, %d chunks\n",
		props.SiteConfig.Title, len(props.Plugins), len(props.RoutesPaths), len(props.Routes.Registry))
	if len(props.Written) == 0 {
		fmt.Fprintf(w, "Generated files in %s are up to date\n", props.GeneratedFilesDir)
		return
	}
	for _, name := range props.Written {
		fmt.Fprintf(w, "  wrote %s\n", name)
	}
}
