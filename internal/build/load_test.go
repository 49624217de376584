package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	derrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/htmltags"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
	"git.home.luguber.info/inful/sitebuilder/internal/routes"
)

const minimalConfig = `baseUrl: /
favicon: f.ico
title: T
url: https://x.test
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newSite(t *testing.T, cfg string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.ConfigFileName), cfg)
	return dir
}

func readArtifact(t *testing.T, props *Props, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(props.GeneratedFilesDir, name))
	require.NoError(t, err)
	return string(data)
}

type recorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	outcomes []metrics.ResultLabel
	stages   map[string]metrics.ResultLabel
	plugins  []string
}

func (r *recorder) IncLoadOutcome(res metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, res)
}

func (r *recorder) IncStageResult(stage string, res metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stages == nil {
		r.stages = map[string]metrics.ResultLabel{}
	}
	r.stages[stage] = res
}

func (r *recorder) IncPluginLoaded(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = append(r.plugins, name)
}

// testPlugin is a configurable plugin for orchestration tests.
type testPlugin struct {
	name      string
	themePath string
	routes    []routes.RouteConfig
	tags      htmltags.Tags
	modules   []string
}

func (p *testPlugin) Name() string                  { return p.name }
func (p *testPlugin) ThemePath() string             { return p.themePath }
func (p *testPlugin) InjectHTMLTags() htmltags.Tags { return p.tags }
func (p *testPlugin) ClientModules() []string       { return p.modules }

func (p *testPlugin) LoadContent(context.Context) (any, error) { return nil, nil }

func (p *testPlugin) ContentLoaded(_ context.Context, _ any, a plugin.Actions) error {
	for _, r := range p.routes {
		a.AddRoute(r)
	}
	return nil
}

func registryWith(t *testing.T, plugins ...*testPlugin) *plugin.Registry {
	t.Helper()
	r := plugin.NewRegistry()
	for _, p := range plugins {
		p := p
		require.NoError(t, r.Register(plugin.Metadata{Ref: p.name, Kind: plugin.KindPlugin}, func(plugin.LoadContext, map[string]any) (plugin.Plugin, error) {
			cp := *p
			return &cp, nil
		}))
	}
	return r
}

func TestLoadMinimalConfig(t *testing.T) {
	site := newSite(t, minimalConfig)
	rec := &recorder{}

	props, err := Load(context.Background(), site, Options{Loader: plugin.NewRegistry(), Recorder: rec})
	require.NoError(t, err)

	want := config.Defaults()
	want.BaseURL, want.Favicon, want.Title, want.URL = "/", "f.ico", "T", "https://x.test"
	assert.Equal(t, &want, props.SiteConfig)

	require.Len(t, props.Plugins, 1)
	assert.Equal(t, BootstrapPluginName, props.Plugins[0].Name())

	assert.Equal(t, filepath.Join(site, config.GeneratedFilesDirName), props.GeneratedFilesDir)
	assert.Equal(t, filepath.Join(site, config.BuildDirName), props.OutDir)
	assert.Equal(t, []string{"/404.html"}, props.RoutesPaths)
	assert.Empty(t, props.HeadTags)
	assert.Empty(t, props.ClientModules)
	assert.NotEmpty(t, props.BuildID)

	assert.Equal(t, "export default {\n};\n", readArtifact(t, props, RegistryArtifact))
	assert.Equal(t, "export default [\n];\n", readArtifact(t, props, ClientModulesArtifact))
	assert.Equal(t, "{}", readArtifact(t, props, ChunkNamesArtifact))
	assert.Contains(t, readArtifact(t, props, RoutesArtifact), `path: "*"`)
	assert.True(t, strings.HasPrefix(readArtifact(t, props, SiteConfigArtifact), "export default {\n  \"baseUrl\": \"/\""))

	assert.Equal(t, []metrics.ResultLabel{metrics.ResultSuccess}, rec.outcomes)
	for _, stage := range []string{StageConfig, StagePresets, StagePlugins, StageThemes, StageRoutes, StageEmit} {
		assert.Equal(t, metrics.ResultSuccess, rec.stages[stage], stage)
	}
}

func TestLoadEmitsNonStringConfigKeys(t *testing.T) {
	site := newSite(t, minimalConfig+`customFields:
  releases:
    2020: old
themeConfig:
  navbar:
    true: shown
`)

	props, err := Load(context.Background(), site, Options{Loader: plugin.NewRegistry()})
	require.NoError(t, err)

	emitted := readArtifact(t, props, SiteConfigArtifact)
	assert.Contains(t, emitted, `"2020": "old"`)
	assert.Contains(t, emitted, `"true": "shown"`)
}

func TestLoadPrecedenceOrder(t *testing.T) {
	site := newSite(t, minimalConfig+`presets:
  - A
  - [B, {}]
plugins:
  - site-plugin
themes:
  - site-theme
`)
	reg := registryWith(t,
		&testPlugin{name: "pA"}, &testPlugin{name: "pB"},
		&testPlugin{name: "tA"}, &testPlugin{name: "tB"},
		&testPlugin{name: "site-plugin"}, &testPlugin{name: "site-theme"},
	)
	for _, name := range []string{"A", "B"} {
		suffix := name
		require.NoError(t, reg.RegisterPreset(plugin.Metadata{Ref: name}, func(plugin.LoadContext, map[string]any) (plugin.Preset, error) {
			return plugin.Preset{
				Plugins: []config.PluginConfig{{Module: "p" + suffix}},
				Themes:  []config.PluginConfig{{Module: "t" + suffix}},
			}, nil
		}))
	}

	rec := &recorder{}
	props, err := Load(context.Background(), site, Options{Loader: reg, Recorder: rec})
	require.NoError(t, err)

	var names []string
	for _, p := range props.Plugins {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"pA", "pB", "tA", "tB", "site-plugin", "site-theme", BootstrapPluginName}, names)
	assert.Equal(t, names[:6], rec.plugins)
}

func TestLoadThemeAliasPrecedence(t *testing.T) {
	site := newSite(t, minimalConfig+"plugins:\n  - themed\n")
	fallback := t.TempDir()
	pluginTheme := t.TempDir()
	writeFile(t, filepath.Join(fallback, "X.js"), "")
	writeFile(t, filepath.Join(fallback, "Only.js"), "")
	writeFile(t, filepath.Join(pluginTheme, "X.js"), "")
	writeFile(t, filepath.Join(pluginTheme, "Layout", "index.js"), "")
	writeFile(t, filepath.Join(site, config.ThemePath, "X.js"), "")

	reg := registryWith(t, &testPlugin{name: "themed", themePath: pluginTheme})
	props, err := Load(context.Background(), site, Options{Loader: reg, FallbackThemeDir: fallback})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(site, config.ThemePath, "X.js"), props.Alias["@theme/X"])
	assert.Equal(t, filepath.Join(fallback, "Only.js"), props.Alias["@theme/Only"])
	assert.Equal(t, filepath.Join(pluginTheme, "Layout", "index.js"), props.Alias["@theme/Layout"])

	boot := props.Plugins[len(props.Plugins)-1].(plugin.WebpackConfigurer)
	resolve := boot.ConfigureWebpack(false)["resolve"].(map[string]any)
	assert.Equal(t, props.Alias["@theme/X"], resolve["alias"].(map[string]string)["@theme/X"])
}

func TestLoadTagsAndClientModules(t *testing.T) {
	site := newSite(t, minimalConfig+`plugins:
  - tagger
stylesheets:
  - /main.css
  - {href: /print.css, media: print}
scripts:
  - /app.js
  - {src: /defer.js, defer: true}
`)
	reg := registryWith(t, &testPlugin{
		name:    "tagger",
		tags:    htmltags.Tags{Head: []htmltags.Tag{htmltags.RawTag("<meta name=\"plugin\">")}, PostBody: []htmltags.Tag{htmltags.RawTag("<div></div>")}},
		modules: []string{`C:\theme\custom.css`, "/prism.js"},
	})

	props, err := Load(context.Background(), site, Options{Loader: reg})
	require.NoError(t, err)

	var head []string
	for _, tag := range props.HeadTags {
		s, err := htmltags.Render(tag)
		require.NoError(t, err)
		head = append(head, s)
	}
	assert.Equal(t, []string{
		`<meta name="plugin">`,
		`<link rel="stylesheet" href="/main.css">`,
		`<link href="/print.css" media="print" rel="stylesheet">`,
		`<script type="text/javascript" src="/app.js"></script>`,
		`<script defer src="/defer.js" type="text/javascript"></script>`,
	}, head)
	assert.Len(t, props.PostBodyTags, 1)

	assert.Equal(t, "export default [\n  require(\"C:\\\\theme\\\\custom.css\"),\n  require(\"/prism.js\"),\n];\n",
		readArtifact(t, props, ClientModulesArtifact))
}

func TestLoadRoutesAndReproducibility(t *testing.T) {
	site := newSite(t, minimalConfig+"plugins:\n  - router\n")
	home := filepath.Join(site, "src", "Home.js")
	about := filepath.Join(site, "src", "About.js")
	writeFile(t, home, "")
	writeFile(t, about, "")

	reg := registryWith(t, &testPlugin{name: "router", routes: []routes.RouteConfig{
		{Path: "/", Component: home, Exact: true},
		{Path: "about", Component: about, Exact: true},
	}})

	first, err := Load(context.Background(), site, Options{Loader: reg})
	require.NoError(t, err)
	assert.Equal(t, []string{"/404.html", "/", "/about"}, first.RoutesPaths)
	assert.Len(t, first.Routes.Registry, 2)
	assert.Len(t, first.Written, 5)
	registry := readArtifact(t, first, RegistryArtifact)

	registryPath := filepath.Join(first.GeneratedFilesDir, RegistryArtifact)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(registryPath, past, past))

	second, err := Load(context.Background(), site, Options{Loader: reg})
	require.NoError(t, err)
	assert.NotEqual(t, first.BuildID, second.BuildID)
	assert.Empty(t, second.Written)
	assert.Equal(t, registry, readArtifact(t, second, RegistryArtifact))

	info, err := os.Stat(registryPath)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past))
}

func TestLoadRejectsUnresolvableModules(t *testing.T) {
	tests := []struct {
		name  string
		route routes.RouteConfig
	}{
		{"unknown theme component", routes.RouteConfig{Path: "/", Component: "@theme/Missing"}},
		{"missing file", routes.RouteConfig{Path: "/", Component: "/definitely/not/here.js"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newSite(t, minimalConfig+"plugins:\n  - bad\n")
			reg := registryWith(t, &testPlugin{name: "bad", routes: []routes.RouteConfig{tt.route}})

			rec := &recorder{}
			_, err := Load(context.Background(), site, Options{Loader: reg, Recorder: rec})
			require.Error(t, err)
			assert.True(t, derrors.IsKind(err, derrors.KindInvalidRoute))
			assert.Equal(t, metrics.ResultFailed, rec.stages[StageRoutes])
			assert.Equal(t, []metrics.ResultLabel{metrics.ResultFailed}, rec.outcomes)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("config not found", func(t *testing.T) {
		_, err := Load(context.Background(), t.TempDir(), Options{Loader: plugin.NewRegistry()})
		assert.True(t, derrors.IsKind(err, derrors.KindConfigNotFound))
	})

	t.Run("unknown plugin", func(t *testing.T) {
		site := newSite(t, minimalConfig+"plugins:\n  - nope\n")
		_, err := Load(context.Background(), site, Options{Loader: plugin.NewRegistry()})
		assert.True(t, derrors.IsKind(err, derrors.KindPluginInstantiation))
	})

	t.Run("invalid preset", func(t *testing.T) {
		site := newSite(t, minimalConfig+"presets:\n  - 42\n")
		_, err := Load(context.Background(), site, Options{Loader: plugin.NewRegistry()})
		assert.True(t, derrors.IsKind(err, derrors.KindInvalidPresetFormat))
	})
}

func TestLoadContextCustomOutDir(t *testing.T) {
	site := newSite(t, minimalConfig)
	out := filepath.Join(t.TempDir(), "out")

	lctx, err := LoadContext(site, out)
	require.NoError(t, err)
	assert.Equal(t, out, lctx.OutDir)
	assert.Equal(t, "/", lctx.BaseURL)
	assert.Equal(t, site, lctx.SiteDir)
}
