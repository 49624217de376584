// Package preset expands the presets declared in the site config into
// plugin and theme references.
package preset

import (
	"context"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	derrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
)

// Normalize turns one raw presets entry into a reference and options. An
// entry is either a string or a one or two element list [ref, options].
func Normalize(index int, entry any) (config.PluginConfig, error) {
	switch v := entry.(type) {
	case string:
		return config.NewPluginConfig(v, map[string]any{}), nil
	case []any:
		if len(v) < 1 || len(v) > 2 {
			return config.PluginConfig{}, derrors.InvalidPresetFormat(index)
		}
		ref, ok := v[0].(string)
		if !ok {
			return config.PluginConfig{}, derrors.InvalidPresetFormat(index)
		}
		opts := map[string]any{}
		if len(v) == 2 && v[1] != nil {
			m, ok := v[1].(map[string]any)
			if !ok {
				return config.PluginConfig{}, derrors.InvalidPresetFormat(index)
			}
			opts = m
		}
		return config.NewPluginConfig(ref, opts), nil
	default:
		return config.PluginConfig{}, derrors.InvalidPresetFormat(index)
	}
}

// Expand resolves every preset in declaration order. The result lists all
// presets' plugins, in order, and separately all presets' themes. Entries
// with an empty module reference are dropped.
func Expand(ctx context.Context, lctx plugin.LoadContext, loader plugin.ModuleLoader) (plugins, themes []config.PluginConfig, err error) {
	plugins = []config.PluginConfig{}
	themes = []config.PluginConfig{}
	if lctx.SiteConfig == nil {
		return plugins, themes, nil
	}

	for i, entry := range lctx.SiteConfig.Presets {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		pc, err := Normalize(i, entry)
		if err != nil {
			return nil, nil, err
		}

		factory, err := loader.ResolvePreset(pc.Module)
		if err != nil {
			return nil, nil, derrors.PluginInstantiation(pc.Module, plugin.NewPluginError(pc.Module, "resolvePreset", err))
		}
		plctx := lctx
		plctx.SiteConfig = lctx.SiteConfig.Clone()
		p, err := factory(plctx, pc.OptionsOrEmpty())
		if err != nil {
			return nil, nil, derrors.PluginInstantiation(pc.Module, plugin.NewPluginError(pc.Module, "preset", err))
		}

		plugins = appendNonEmpty(plugins, p.Plugins)
		themes = appendNonEmpty(themes, p.Themes)

		lctx.Log().Debug("Preset expanded",
			logfields.Preset(pc.Module),
			logfields.Count(len(p.Plugins)+len(p.Themes)))
	}
	return plugins, themes, nil
}

func appendNonEmpty(dst, src []config.PluginConfig) []config.PluginConfig {
	for _, pc := range src {
		if pc.IsZero() {
			continue
		}
		dst = append(dst, pc)
	}
	return dst
}
