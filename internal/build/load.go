package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/generate"
	"git.home.luguber.info/inful/sitebuilder/internal/htmltags"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/observability"
	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
	"git.home.luguber.info/inful/sitebuilder/internal/routes"
	"git.home.luguber.info/inful/sitebuilder/internal/theme"
)

// Stage names reported to logs and metrics.
const (
	StageConfig  = "config"
	StagePresets = "presets"
	StagePlugins = "plugins"
	StageThemes  = "themes"
	StageRoutes  = "routes"
	StageEmit    = "emit"
)

// Options configure a load. The zero value loads with the default registry.
type Options struct {
	// CustomOutDir overrides <siteDir>/build.
	CustomOutDir string

	// FallbackThemeDir is the lowest-priority theme directory.
	FallbackThemeDir string

	// Loader resolves plugin and preset references. Defaults to plugin.DefaultRegistry().
	Loader plugin.ModuleLoader

	// Recorder receives stage timings and counts.
	Recorder metrics.Recorder

	// Logger is used for plugin logs. Defaults to slog.Default().
	Logger *slog.Logger

	// FS is used for theme scanning and module validation. Paths passed to
	// it are absolute. Defaults to the local disk.
	FS billy.Filesystem
}

// Props is everything a load produces for the rendering and bundling steps.
type Props struct {
	BuildID string

	SiteConfig        *config.SiteConfig
	SiteDir           string
	OutDir            string
	BaseURL           string
	GeneratedFilesDir string

	// RoutesPaths lists every leaf route path plus the 404 page.
	RoutesPaths []string

	// Plugins are the instances in precedence order, bootstrap plugin last.
	Plugins []plugin.Plugin

	HeadTags     []htmltags.Tag
	PreBodyTags  []htmltags.Tag
	PostBodyTags []htmltags.Tag

	Alias         theme.Alias
	ClientModules []string

	// Routes holds the route registry outputs.
	Routes *routes.Result

	// Written lists the artifacts whose content changed in this load.
	Written []string
}

// Load runs one complete load of the site at siteDir.
func Load(ctx context.Context, siteDir string, opts Options) (*Props, error) {
	l := newLoader(opts)
	start := time.Now()

	buildID := uuid.NewString()
	ctx = observability.WithBuildID(ctx, buildID)
	ctx = observability.WithSiteDir(ctx, siteDir)

	props, err := l.run(ctx, buildID, siteDir)
	l.recorder.ObserveLoadDuration(time.Since(start))
	if err != nil {
		l.recorder.IncLoadOutcome(metrics.ResultFailed)
		observability.ErrorContext(ctx, "Load failed", logfields.Error(err))
		return nil, err
	}
	l.recorder.IncLoadOutcome(metrics.ResultSuccess)
	observability.InfoContext(ctx, "Load complete",
		logfields.Count(len(props.RoutesPaths)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return props, nil
}

type loader struct {
	opts     Options
	recorder metrics.Recorder
	modules  plugin.ModuleLoader
	fs       billy.Filesystem
}

func newLoader(opts Options) *loader {
	l := &loader{opts: opts, recorder: metrics.OrNoop(opts.Recorder), modules: opts.Loader, fs: opts.FS}
	if l.modules == nil {
		l.modules = plugin.DefaultRegistry()
	}
	if l.fs == nil {
		l.fs = osfs.New("/")
	}
	return l
}

func (l *loader) run(ctx context.Context, buildID, siteDir string) (*Props, error) {
	var (
		lctx    plugin.LoadContext
		configs []config.PluginConfig
		loaded  *plugin.Loaded
		alias   theme.Alias
		result  *routes.Result
		emitter *generate.Emitter
	)

	err := l.stage(ctx, StageConfig, func(context.Context) error {
		var err error
		lctx, err = LoadContext(siteDir, l.opts.CustomOutDir)
		lctx.BuildID = buildID
		lctx.Logger = l.opts.Logger
		return err
	})
	if err != nil {
		return nil, err
	}
	emitter = generate.NewOS(lctx.GeneratedFilesDir, generate.WithRecorder(l.recorder))

	if err := l.stage(ctx, StagePresets, func(ctx context.Context) error {
		var err error
		configs, err = LoadPluginConfigs(ctx, lctx, l.modules)
		return err
	}); err != nil {
		return nil, err
	}

	if err := l.stage(ctx, StagePlugins, func(ctx context.Context) error {
		var err error
		loaded, err = plugin.Load(ctx, lctx, configs, l.modules, emitter)
		if err != nil {
			return err
		}
		for _, p := range loaded.Plugins {
			l.recorder.IncPluginLoaded(p.Name())
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := l.stage(ctx, StageThemes, func(context.Context) error {
		defaults := make([]string, 0, len(loaded.Plugins)+1)
		if l.opts.FallbackThemeDir != "" {
			defaults = append(defaults, l.opts.FallbackThemeDir)
		}
		defaults = append(defaults, plugin.ThemePaths(loaded.Plugins)...)
		user := []string{filepath.Join(lctx.SiteDir, config.ThemePath)}

		var err error
		alias, err = theme.LoadAlias(l.fs, defaults, user)
		return err
	}); err != nil {
		return nil, err
	}

	plugins := append(loaded.Plugins, newBootstrapPlugin(alias, lctx.SiteConfig))
	tags := htmltags.Aggregate(plugins)
	clientModules := plugin.ClientModules(plugins)

	if err := l.stage(ctx, StageRoutes, func(context.Context) error {
		var err error
		result, err = routes.Build(loaded.Routes, lctx.BaseURL, routes.WithModuleValidator(moduleValidator(l.fs, alias)))
		if err != nil {
			return err
		}
		l.recorder.SetRouteCount(len(result.RoutesPaths))
		l.recorder.SetChunkCount(len(result.Registry))
		return nil
	}); err != nil {
		return nil, err
	}

	var written []string
	if err := l.stage(ctx, StageEmit, func(ctx context.Context) error {
		files, err := renderArtifacts(lctx.SiteConfig, clientModules, result)
		if err != nil {
			return err
		}
		written, err = emitter.WriteAll(ctx, files)
		return err
	}); err != nil {
		return nil, err
	}

	return &Props{
		BuildID:           buildID,
		SiteConfig:        lctx.SiteConfig,
		SiteDir:           lctx.SiteDir,
		OutDir:            lctx.OutDir,
		BaseURL:           lctx.BaseURL,
		GeneratedFilesDir: lctx.GeneratedFilesDir,
		RoutesPaths:       result.RoutesPaths,
		Plugins:           plugins,
		HeadTags:          tags.Head,
		PreBodyTags:       tags.PreBody,
		PostBodyTags:      tags.PostBody,
		Alias:             alias,
		ClientModules:     clientModules,
		Routes:            result,
		Written:           written,
	}, nil
}

// stage runs fn with the stage name attached to ctx and reports its timing.
func (l *loader) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx = observability.WithStage(ctx, name)
	start := time.Now()
	err := fn(ctx)
	d := time.Since(start)
	l.recorder.ObserveStageDuration(name, d)
	if err != nil {
		l.recorder.IncStageResult(name, metrics.ResultFailed)
		return err
	}
	l.recorder.IncStageResult(name, metrics.ResultSuccess)
	observability.DebugContext(ctx, "Stage complete", logfields.DurationMS(float64(d.Microseconds())/1000))
	return nil
}
