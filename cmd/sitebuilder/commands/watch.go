package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
	"git.home.luguber.info/inful/sitebuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	OutDir   string        `short:"o" name:"out-dir" help:"Output directory (defaults to <site-dir>/build)" type:"path"`
	Debounce time.Duration `name:"debounce" help:"Quiet period before reloading" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := root.loadOptions(g, w.OutDir)
	props, err := build.Load(ctx, root.SiteDir, opts)
	if err != nil {
		return err
	}
	printSummary(os.Stdout, props)

	files, dirs := watchTargets(props, root.ThemeDir)
	watcher, err := watch.New(files, dirs, watch.WithDebounce(w.Debounce))
	if err != nil {
		return err
	}
	return watcher.Run(ctx, func(ctx context.Context) error {
		props, err := build.Load(ctx, root.SiteDir, opts)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, props)
		return nil
	})
}

// watchTargets lists the inputs of a load: the config and env files plus
// every theme and content directory. The generated files directory is
// never watched.
func watchTargets(props *build.Props, fallbackThemeDir string) (files, dirs []string) {
	files = []string{
		filepath.Join(props.SiteDir, config.ConfigFileName),
		filepath.Join(props.SiteDir, config.EnvFileName),
	}
	dirs = []string{
		filepath.Join(props.SiteDir, config.ThemePath),
		filepath.Join(props.SiteDir, "src", "pages"),
	}
	if fallbackThemeDir != "" {
		dirs = append(dirs, fallbackThemeDir)
	}
	dirs = append(dirs, plugin.ThemePaths(props.Plugins)...)
	return files, dirs
}
