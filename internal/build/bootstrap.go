package build

import (
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/htmltags"
	"git.home.luguber.info/inful/sitebuilder/internal/theme"
)

// BootstrapPluginName names the synthetic plugin appended to every load.
const BootstrapPluginName = "sitebuilder-bootstrap-plugin"

// bootstrapPlugin wires the theme alias table into the bundler config and
// injects the site's stylesheets and scripts. It is appended after every
// configured plugin so site-level assets load last.
type bootstrapPlugin struct {
	alias       theme.Alias
	stylesheets []config.TagSource
	scripts     []config.TagSource
}

func newBootstrapPlugin(alias theme.Alias, cfg *config.SiteConfig) *bootstrapPlugin {
	return &bootstrapPlugin{alias: alias, stylesheets: cfg.Stylesheets, scripts: cfg.Scripts}
}

func (b *bootstrapPlugin) Name() string { return BootstrapPluginName }

func (b *bootstrapPlugin) ConfigureWebpack(bool) map[string]any {
	alias := make(map[string]string, len(b.alias))
	for k, v := range b.alias {
		alias[k] = v
	}
	return map[string]any{
		"resolve": map[string]any{"alias": alias},
	}
}

func (b *bootstrapPlugin) InjectHTMLTags() htmltags.Tags {
	head := make([]htmltags.Tag, 0, len(b.stylesheets)+len(b.scripts))
	for _, s := range b.stylesheets {
		if s.IsURL() {
			head = append(head, htmltags.RawTag(`<link rel="stylesheet" href="`+html.EscapeString(s.URL)+`">`))
			continue
		}
		head = append(head, htmltags.Element("link", withDefaults(s.Attributes, "rel", "stylesheet")))
	}
	for _, s := range b.scripts {
		if s.IsURL() {
			head = append(head, htmltags.RawTag(`<script type="text/javascript" src="`+html.EscapeString(s.URL)+`"></script>`))
			continue
		}
		head = append(head, htmltags.Element("script", withDefaults(s.Attributes, "type", "text/javascript")))
	}
	return htmltags.Tags{Head: head}
}

// withDefaults copies attrs over a single default attribute.
func withDefaults(attrs map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(attrs)+1)
	out[key] = value
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
