package pages

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
	"git.home.luguber.info/inful/sitebuilder/internal/routes"
)

type recordingActions struct {
	routes []routes.RouteConfig
	data   map[string][]byte
}

func (a *recordingActions) AddRoute(r routes.RouteConfig) { a.routes = append(a.routes, r) }

func (a *recordingActions) CreateData(name string, content []byte) (string, error) {
	if a.data == nil {
		a.data = map[string][]byte{}
	}
	a.data[name] = content
	return "/gen/" + Name + "/" + name, nil
}

func siteFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func load(t *testing.T, fs billy.Filesystem, baseURL string, opts map[string]any) (*Plugin, []Page) {
	t.Helper()
	p, err := newWithFS(plugin.LoadContext{SiteDir: "/site", BaseURL: baseURL}, opts, fs)
	require.NoError(t, err)
	content, err := p.LoadContent(context.Background())
	require.NoError(t, err)
	return p, content.([]Page)
}

func TestLoadContentDiscoversPages(t *testing.T) {
	fs := siteFS(t, map[string]string{
		"src/pages/index.js":       "export default () => null;",
		"src/pages/about.tsx":      "export default () => null;",
		"src/pages/docs/index.md":  "# Docs home\n\n## Section\n",
		"src/pages/docs/guide.md":  "---\ntitle: The Guide\nslug: handbook\ndescription: How to\n---\n# Ignored\n",
		"src/pages/_partials/x.js": "",
		"src/pages/_draft.md":      "# Draft",
		"src/pages/styles.css":     "body{}",
	})

	_, pages := load(t, fs, "/", nil)

	var links []string
	for _, p := range pages {
		links = append(links, p.Permalink)
	}
	assert.Equal(t, []string{"/about", "/handbook", "/docs", "/"}, links)

	guide := pages[1]
	assert.Equal(t, KindMarkdown, guide.Kind)
	assert.Equal(t, "The Guide", guide.Title)
	assert.Equal(t, "How to", guide.Description)
	assert.Equal(t, filepath.Join("/site", "src/pages/docs/guide.md"), guide.Source)

	docs := pages[2]
	assert.Equal(t, "Docs home", docs.Title)
	require.Len(t, docs.TOC, 1)
	assert.Equal(t, "Section", docs.TOC[0].Text)

	assert.Equal(t, KindComponent, pages[0].Kind)
}

func TestLoadContentMissingDir(t *testing.T) {
	_, pages := load(t, memfs.New(), "/", nil)
	assert.Empty(t, pages)
}

func TestPermalinkOptions(t *testing.T) {
	fs := siteFS(t, map[string]string{"content/a/b.md": "# B"})
	_, pages := load(t, fs, "/base/", map[string]any{"path": "content", "routeBasePath": "pages"})
	require.Len(t, pages, 1)
	assert.Equal(t, "/base/pages/a/b", pages[0].Permalink)
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := newWithFS(plugin.LoadContext{}, map[string]any{"nope": 1}, memfs.New())
	require.Error(t, err)

	_, err = newWithFS(plugin.LoadContext{}, map[string]any{"path": "/abs"}, memfs.New())
	require.Error(t, err)
}

func TestContentLoadedAddsRoutes(t *testing.T) {
	fs := siteFS(t, map[string]string{
		"src/pages/index.js": "",
		"src/pages/intro.md": "# Intro\n",
	})
	p, pages := load(t, fs, "/", nil)

	acts := &recordingActions{}
	require.NoError(t, p.ContentLoaded(context.Background(), pages, acts))
	require.Len(t, acts.routes, 2)

	assert.Equal(t, routes.RouteConfig{Path: "/", Component: filepath.Join("/site", "src/pages/index.js"), Exact: true}, acts.routes[0])

	md := acts.routes[1]
	assert.Equal(t, "/intro", md.Path)
	assert.Equal(t, MarkdownComponent, md.Component)
	assert.True(t, md.Exact)
	assert.Equal(t, filepath.Join("/site", "src/pages/intro.md"), md.Modules["content"])
	assert.Equal(t, "/gen/"+Name+"/metadata-intro-md.json", md.Modules["metadata"])

	var meta map[string]any
	require.NoError(t, json.Unmarshal(acts.data["metadata-intro-md.json"], &meta))
	assert.Equal(t, "Intro", meta["title"])
	assert.Equal(t, "/intro", meta["permalink"])
}

func TestContentLoadedRejectsForeignContent(t *testing.T) {
	p, _ := load(t, memfs.New(), "/", nil)
	require.Error(t, p.ContentLoaded(context.Background(), "nope", &recordingActions{}))
}

func TestRegistered(t *testing.T) {
	f, err := plugin.DefaultRegistry().ResolvePlugin(Name)
	require.NoError(t, err)
	assert.NotNil(t, f)
}
