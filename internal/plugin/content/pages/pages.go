// Package pages is the built-in plugin that turns files under src/pages
// into routes. JS/TS files become routes rendering the file itself;
// Markdown files render through @theme/MarkdownPage with generated metadata.
package pages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/plugin"
	"git.home.luguber.info/inful/sitebuilder/internal/routes"
)

// Name is the module reference and instance name.
const Name = "sitebuilder-plugin-pages"

// MarkdownComponent renders Markdown pages.
const MarkdownComponent = "@theme/MarkdownPage"

// Kind distinguishes how a page is rendered.
type Kind string

const (
	KindComponent Kind = "component"
	KindMarkdown  Kind = "markdown"
)

var pageExts = map[string]Kind{
	".js": KindComponent, ".jsx": KindComponent, ".ts": KindComponent, ".tsx": KindComponent,
	".md": KindMarkdown, ".mdx": KindMarkdown,
}

// Options are read from the plugin entry in the site config.
type Options struct {
	// Path is the pages directory relative to the site root.
	Path string `yaml:"path"`

	// RouteBasePath is prepended to every page permalink.
	RouteBasePath string `yaml:"routeBasePath"`
}

// Page is one discovered page.
type Page struct {
	Kind      Kind   `json:"-"`
	Source    string `json:"source"`
	Permalink string `json:"permalink"`

	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	TOC         []markdown.Heading `json:"toc,omitempty"`

	rel string
}

// Plugin implements plugin.ContentLoader.
type Plugin struct {
	ctx  plugin.LoadContext
	opts Options
	fs   billy.Filesystem
}

// New is the plugin factory.
func New(ctx plugin.LoadContext, options map[string]any) (plugin.Plugin, error) {
	p, err := newWithFS(ctx, options, osfs.New(ctx.SiteDir))
	if err != nil {
		return nil, err
	}
	return p, nil
}

func newWithFS(ctx plugin.LoadContext, options map[string]any, fs billy.Filesystem) (*Plugin, error) {
	opts := Options{Path: "src/pages", RouteBasePath: "/"}
	if err := plugin.DecodeOptions(options, &opts); err != nil {
		return nil, err
	}
	if filepath.IsAbs(opts.Path) {
		return nil, fmt.Errorf("path must be relative to the site directory, got %s", opts.Path)
	}
	return &Plugin{ctx: ctx, opts: opts, fs: fs}, nil
}

func (p *Plugin) Name() string { return Name }

// LoadContent walks the pages directory. A missing directory yields no pages.
func (p *Plugin) LoadContent(ctx context.Context) (any, error) {
	root := filepath.ToSlash(filepath.Clean(p.opts.Path))
	pages := []Page{}

	if _, err := p.fs.Stat(root); errors.Is(err, os.ErrNotExist) {
		return pages, nil
	}

	err := util.Walk(p.fs, root, func(fp string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.HasPrefix(info.Name(), "_") && fp != root {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		kind, ok := pageExts[path.Ext(filepath.ToSlash(fp))]
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(root, fp)
		if err != nil {
			return err
		}
		page, err := p.readPage(fp, filepath.ToSlash(rel), kind)
		if err != nil {
			return fmt.Errorf("%s: %w", fp, err)
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].rel < pages[j].rel })
	p.ctx.ForPlugin(Name).Debug("Pages discovered", logfields.Count(len(pages)))
	return pages, nil
}

func (p *Plugin) readPage(fp, rel string, kind Kind) (Page, error) {
	page := Page{
		Kind:      kind,
		Source:    filepath.Join(p.ctx.SiteDir, filepath.FromSlash(fp)),
		Permalink: p.permalink(rel, ""),
		rel:       rel,
	}
	if kind != KindMarkdown {
		return page, nil
	}

	raw, err := util.ReadFile(p.fs, fp)
	if err != nil {
		return Page{}, err
	}
	fields, body, err := frontmatter.Parse(raw)
	if err != nil {
		return Page{}, err
	}
	summary := markdown.Summarize(body)

	page.Title = fields.String("title")
	if page.Title == "" {
		page.Title = summary.Title
	}
	page.Description = fields.String("description")
	page.TOC = summary.Headings
	if slug := fields.String("slug"); slug != "" {
		page.Permalink = p.permalink(rel, slug)
	}
	return page, nil
}

// permalink maps "docs/index.md" to "<base>/<routeBasePath>/docs".
func (p *Plugin) permalink(rel, slug string) string {
	if slug == "" {
		slug = strings.TrimSuffix(rel, path.Ext(rel))
		switch {
		case slug == "index":
			slug = ""
		case strings.HasSuffix(slug, "/index"):
			slug = strings.TrimSuffix(slug, "/index")
		}
	}
	base := p.ctx.BaseURL
	if base == "" {
		base = "/"
	}
	return routes.JoinURL(base, p.opts.RouteBasePath, slug)
}

// ContentLoaded adds one exact route per page.
func (p *Plugin) ContentLoaded(_ context.Context, content any, actions plugin.Actions) error {
	pages, ok := content.([]Page)
	if !ok {
		return fmt.Errorf("unexpected content type %T", content)
	}

	for _, page := range pages {
		if page.Kind == KindComponent {
			actions.AddRoute(routes.RouteConfig{Path: page.Permalink, Component: page.Source, Exact: true})
			continue
		}

		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return err
		}
		name := "metadata-" + strings.NewReplacer("/", "-", ".", "-").Replace(page.rel) + ".json"
		metadataPath, err := actions.CreateData(name, data)
		if err != nil {
			return err
		}
		actions.AddRoute(routes.RouteConfig{
			Path:      page.Permalink,
			Component: MarkdownComponent,
			Exact:     true,
			Modules: map[string]any{
				"content":  page.Source,
				"metadata": metadataPath,
			},
		})
	}
	return nil
}

func init() {
	// Register the plugin in the global plugin registry
	if err := plugin.Register(plugin.Metadata{
		Ref:         Name,
		Kind:        plugin.KindPlugin,
		Description: "Routes for JS/TS and Markdown pages under src/pages",
	}, New); err != nil {
		_ = err
	}
}
