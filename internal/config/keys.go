package config

import (
	"fmt"
	"slices"
)

// normalizeKeys rewrites every free-form value in cfg so nested mappings are
// map[string]any. YAML allows non-string keys (`2020: old`), which decode to
// map[any]any and cannot be serialized as JSON.
func normalizeKeys(cfg *SiteConfig) {
	cfg.CustomFields = stringKeyMap(cfg.CustomFields)
	cfg.ThemeConfig = stringKeyMap(cfg.ThemeConfig)
	for i := range cfg.Plugins {
		cfg.Plugins[i].Options = stringKeyMap(cfg.Plugins[i].Options)
	}
	for i := range cfg.Themes {
		cfg.Themes[i].Options = stringKeyMap(cfg.Themes[i].Options)
	}
	for i, p := range cfg.Presets {
		cfg.Presets[i] = stringKeys(p)
	}
	for i := range cfg.Scripts {
		cfg.Scripts[i].Attributes = stringKeyMap(cfg.Scripts[i].Attributes)
	}
	for i := range cfg.Stylesheets {
		cfg.Stylesheets[i].Attributes = stringKeyMap(cfg.Stylesheets[i].Attributes)
	}
}

// Clone returns a deep copy of c, free-form option values included.
func (c *SiteConfig) Clone() *SiteConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.Plugins = slices.Clone(c.Plugins)
	out.Themes = slices.Clone(c.Themes)
	out.Presets = slices.Clone(c.Presets)
	out.Scripts = slices.Clone(c.Scripts)
	out.Stylesheets = slices.Clone(c.Stylesheets)
	normalizeKeys(&out)
	return &out
}

func stringKeyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = stringKeys(v)
	}
	return out
}

// stringKeys converts map[any]any to map[string]any recursively, formatting
// keys with fmt.Sprint.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return stringKeyMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[fmt.Sprint(k)] = stringKeys(v)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = stringKeys(v)
		}
		return out
	default:
		return v
	}
}
