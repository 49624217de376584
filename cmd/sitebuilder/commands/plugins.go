package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
)

// PluginsCmd implements the 'plugins' command.
type PluginsCmd struct {
	Kind string `name:"kind" help:"Only list modules of this kind (plugin, theme, preset)"`
}

func (p *PluginsCmd) Run(_ *Global, root *CLI) error {
	kind := plugin.Kind(p.Kind)
	if kind != "" && !kind.IsValid() {
		return fmt.Errorf("unknown kind %q", p.Kind)
	}
	siteDir, err := filepath.Abs(root.SiteDir)
	if err != nil {
		return err
	}
	return listModules(os.Stdout, plugin.DefaultRegistry(), kind, plugin.LoadContext{SiteDir: siteDir})
}

// listModules prints one row per registered module. Plugins and themes are
// instantiated with empty options to report their capabilities.
func listModules(out io.Writer, reg *plugin.Registry, kind plugin.Kind, lctx plugin.LoadContext) error {
	metas := reg.List()
	if kind != "" {
		metas = reg.ListByKind(kind)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tCAPABILITIES\tDESCRIPTION")
	for _, m := range metas {
		caps := "-"
		if m.Kind != plugin.KindPreset {
			if p, err := plugin.Instantiate(lctx, config.PluginConfig{Module: m.Ref}, reg); err == nil {
				if c := plugin.Capabilities(p); len(c) > 0 {
					names := make([]string, len(c))
					for i, name := range c {
						names[i] = string(name)
					}
					caps = strings.Join(names, ",")
				}
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Ref, m.Kind, caps, m.Description)
	}
	return tw.Flush()
}
