package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
	"git.home.luguber.info/inful/sitebuilder/internal/preset"
)

// LoadContext reads the site configuration and derives the directories of
// one load. An empty customOutDir selects <siteDir>/build.
func LoadContext(siteDir, customOutDir string) (plugin.LoadContext, error) {
	abs, err := filepath.Abs(siteDir)
	if err != nil {
		return plugin.LoadContext{}, fmt.Errorf("resolve site dir: %w", err)
	}
	cfg, err := config.Load(abs)
	if err != nil {
		return plugin.LoadContext{}, err
	}

	outDir := filepath.Join(abs, config.BuildDirName)
	if customOutDir != "" {
		if outDir, err = filepath.Abs(customOutDir); err != nil {
			return plugin.LoadContext{}, fmt.Errorf("resolve out dir: %w", err)
		}
	}

	return plugin.LoadContext{
		SiteDir:           abs,
		GeneratedFilesDir: filepath.Join(abs, config.GeneratedFilesDirName),
		SiteConfig:        cfg,
		OutDir:            outDir,
		BaseURL:           cfg.BaseURL,
	}, nil
}

// LoadPluginConfigs returns the configurations in precedence order: preset
// plugins, preset themes, site plugins, site themes. Later entries win.
func LoadPluginConfigs(ctx context.Context, lctx plugin.LoadContext, loader plugin.ModuleLoader) ([]config.PluginConfig, error) {
	presetPlugins, presetThemes, err := preset.Expand(ctx, lctx, loader)
	if err != nil {
		return nil, err
	}

	out := make([]config.PluginConfig, 0, len(presetPlugins)+len(presetThemes))
	out = append(out, presetPlugins...)
	out = append(out, presetThemes...)
	if lctx.SiteConfig != nil {
		out = append(out, lctx.SiteConfig.Plugins...)
		out = append(out, lctx.SiteConfig.Themes...)
	}

	lctx.Log().Debug("Plugin configs resolved", slog.Int("count", len(out)))
	return out, nil
}
