// Package classic is the built-in default theme plugin.
package classic

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
)

// Name is the module reference and instance name.
const Name = "sitebuilder-theme-classic"

// Options are read from the theme entry in the site config.
type Options struct {
	// Path overrides the theme component directory. Relative paths resolve
	// against the site directory.
	Path string `yaml:"path"`

	// CustomCSS lists stylesheets imported by the client runtime.
	CustomCSS customCSS `yaml:"customCss"`
}

// customCSS accepts a single path or a list of paths.
type customCSS []string

func (c *customCSS) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*c = customCSS{n.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := n.Decode(&many); err != nil {
			return err
		}
		*c = many
		return nil
	default:
		return fmt.Errorf("line %d: customCss must be a path or a list of paths", n.Line)
	}
}

// Theme implements plugin.ThemePathProvider and plugin.ClientModuleProvider.
type Theme struct {
	themePath     string
	clientModules []string
}

// New is the theme factory.
func New(ctx plugin.LoadContext, options map[string]any) (plugin.Plugin, error) {
	var opts Options
	if err := plugin.DecodeOptions(options, &opts); err != nil {
		return nil, err
	}

	t := &Theme{themePath: DefaultPath(ctx.SiteDir)}
	if opts.Path != "" {
		t.themePath = resolve(ctx.SiteDir, opts.Path)
	}
	for _, css := range opts.CustomCSS {
		if css == "" {
			continue
		}
		t.clientModules = append(t.clientModules, resolve(ctx.SiteDir, css))
	}
	return t, nil
}

// DefaultPath is where the theme's components are installed for a site.
func DefaultPath(siteDir string) string {
	return filepath.Join(siteDir, "node_modules", Name, "theme")
}

func resolve(siteDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(siteDir, p)
}

func (t *Theme) Name() string { return Name }

func (t *Theme) ThemePath() string { return t.themePath }

func (t *Theme) ClientModules() []string {
	return append([]string(nil), t.clientModules...)
}

func init() {
	if err := plugin.Register(plugin.Metadata{
		Ref:         Name,
		Kind:        plugin.KindTheme,
		Description: "Default theme components and custom CSS",
	}, New); err != nil {
		_ = err
	}
}
