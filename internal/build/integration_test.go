package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
	"git.home.luguber.info/inful/sitebuilder/internal/plugin/content/pages"
	presetclassic "git.home.luguber.info/inful/sitebuilder/internal/plugin/presets/classic"
	themeclassic "git.home.luguber.info/inful/sitebuilder/internal/plugin/themes/classic"
)

func TestLoadClassicPreset(t *testing.T) {
	site := newSite(t, minimalConfig+"presets:\n  - "+presetclassic.Name+"\n")
	writeFile(t, filepath.Join(site, "src", "pages", "index.js"), "export default () => null;\n")
	writeFile(t, filepath.Join(site, "src", "pages", "_partial.js"), "")
	writeFile(t, filepath.Join(site, "src", "pages", "docs", "intro.md"), "---\ntitle: Intro\n---\n\n# Hello\n\n## Setup\n")

	fallback := t.TempDir()
	writeFile(t, filepath.Join(fallback, "MarkdownPage.js"), "")

	props, err := Load(context.Background(), site, Options{Loader: plugin.DefaultRegistry(), FallbackThemeDir: fallback})
	require.NoError(t, err)

	var names []string
	for _, p := range props.Plugins {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{pages.Name, themeclassic.Name, BootstrapPluginName}, names)

	assert.ElementsMatch(t, []string{"/404.html", "/", "/docs/intro"}, props.RoutesPaths)
	assert.Equal(t, filepath.Join(fallback, "MarkdownPage.js"), props.Alias[pages.MarkdownComponent])

	metadata := filepath.Join(props.GeneratedFilesDir, pages.Name, "metadata-docs-intro-md.json")
	data, err := os.ReadFile(metadata)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"permalink": "/docs/intro"`)

	registry := readArtifact(t, props, RegistryArtifact)
	assert.Contains(t, registry, filepath.Join(site, "src", "pages", "index.js"))
	assert.Contains(t, registry, metadata)
	assert.NotContains(t, registry, "_partial")
}

func TestLoadClassicPresetPagesDisabled(t *testing.T) {
	site := newSite(t, minimalConfig+"presets:\n  - ["+presetclassic.Name+", {pages: false}]\n")

	props, err := Load(context.Background(), site, Options{Loader: plugin.DefaultRegistry()})
	require.NoError(t, err)

	require.Len(t, props.Plugins, 2)
	assert.Equal(t, themeclassic.Name, props.Plugins[0].Name())
	assert.Equal(t, []string{"/404.html"}, props.RoutesPaths)
}
