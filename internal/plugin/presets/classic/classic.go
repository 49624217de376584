// Package classic is the built-in preset bundling the pages plugin with
// the classic theme.
package classic

import (
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
	"git.home.luguber.info/inful/sitebuilder/internal/plugin/content/pages"
	classictheme "git.home.luguber.info/inful/sitebuilder/internal/plugin/themes/classic"
)

// Name is the preset's module reference.
const Name = "sitebuilder-preset-classic"

// Options forward per-plugin options. Setting pages to false disables the
// pages plugin.
type Options struct {
	Pages any            `yaml:"pages"`
	Theme map[string]any `yaml:"theme"`
}

// New is the preset factory.
func New(_ plugin.LoadContext, options map[string]any) (plugin.Preset, error) {
	var opts Options
	if err := plugin.DecodeOptions(options, &opts); err != nil {
		return plugin.Preset{}, err
	}

	preset := plugin.Preset{
		Themes: []config.PluginConfig{config.NewPluginConfig(classictheme.Name, opts.Theme)},
	}
	switch v := opts.Pages.(type) {
	case bool:
		if v {
			preset.Plugins = append(preset.Plugins, config.NewPluginConfig(pages.Name, nil))
		}
	case map[string]any:
		preset.Plugins = append(preset.Plugins, config.NewPluginConfig(pages.Name, v))
	default:
		preset.Plugins = append(preset.Plugins, config.NewPluginConfig(pages.Name, nil))
	}
	return preset, nil
}

func init() {
	if err := plugin.RegisterPreset(plugin.Metadata{
		Ref:         Name,
		Kind:        plugin.KindPreset,
		Description: "Pages plugin plus the classic theme",
	}, New); err != nil {
		_ = err
	}
}
