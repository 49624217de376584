package plugin

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	derrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/routes"
)

// DataWriter persists files under the generated files directory. Names are
// slash-separated and relative to that directory.
type DataWriter interface {
	Write(name string, content []byte) (bool, error)
}

// Loaded is the outcome of instantiating and running every configured plugin.
type Loaded struct {
	// Plugins are the instances in precedence order.
	Plugins []Plugin

	// Routes are the route trees contributed, in registration order.
	Routes []routes.OwnedRoute
}

// Load instantiates every configuration in order and then runs the content
// hooks of each instance in the same order. The first failure aborts.
func Load(ctx context.Context, lctx LoadContext, configs []config.PluginConfig, loader ModuleLoader, writer DataWriter) (*Loaded, error) {
	out := &Loaded{Plugins: make([]Plugin, 0, len(configs)), Routes: []routes.OwnedRoute{}}

	for _, pc := range configs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := Instantiate(lctx, pc, loader)
		if err != nil {
			return nil, err
		}
		out.Plugins = append(out.Plugins, p)
	}

	for _, p := range out.Plugins {
		cl, ok := p.(ContentLoader)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log := lctx.ForPlugin(p.Name())

		content, err := cl.LoadContent(ctx)
		if err != nil {
			return nil, derrors.PluginInstantiation(p.Name(), NewPluginError(p.Name(), "loadContent", err))
		}
		acts := &actions{plugin: p.Name(), lctx: lctx, writer: writer}
		if err := cl.ContentLoaded(ctx, content, acts); err != nil {
			return nil, derrors.PluginInstantiation(p.Name(), NewPluginError(p.Name(), "contentLoaded", err))
		}
		out.Routes = append(out.Routes, acts.routes...)
		log.Debug("Plugin content loaded", logfields.Count(len(acts.routes)))
	}
	return out, nil
}

// Instantiate resolves one configuration and runs its factory.
func Instantiate(lctx LoadContext, pc config.PluginConfig, loader ModuleLoader) (Plugin, error) {
	factory, err := loader.ResolvePlugin(pc.Module)
	if err != nil {
		return nil, derrors.PluginInstantiation(pc.Module, NewPluginError(pc.Module, "resolve", err))
	}
	lctx.SiteConfig = lctx.SiteConfig.Clone()
	p, err := factory(lctx, pc.OptionsOrEmpty())
	if err != nil {
		return nil, derrors.PluginInstantiation(pc.Module, NewPluginError(pc.Module, "instantiate", err))
	}
	if p == nil {
		return nil, derrors.PluginInstantiation(pc.Module, NewPluginError(pc.Module, "instantiate", derrors.InternalError("factory returned no plugin", nil)))
	}
	lctx.Log().Debug("Plugin instantiated",
		logfields.Plugin(p.Name()),
		logfields.Path(pc.Module))
	return p, nil
}

type actions struct {
	plugin string
	lctx   LoadContext
	writer DataWriter
	routes []routes.OwnedRoute
}

func (a *actions) AddRoute(route routes.RouteConfig) {
	a.routes = append(a.routes, routes.OwnedRoute{Plugin: a.plugin, Route: route})
}

func (a *actions) CreateData(name string, content []byte) (string, error) {
	if a.writer == nil {
		return "", fmt.Errorf("no data writer configured")
	}
	clean := path.Clean("/" + filepath.ToSlash(name))[1:]
	if clean == "" {
		return "", fmt.Errorf("invalid data file name %q", name)
	}
	rel := path.Join(a.plugin, clean)
	if _, err := a.writer.Write(rel, content); err != nil {
		return "", err
	}
	return filepath.Join(a.lctx.GeneratedFilesDir, filepath.FromSlash(rel)), nil
}

// ClientModules concatenates client modules in plugin order.
func ClientModules(plugins []Plugin) []string {
	out := []string{}
	for _, p := range plugins {
		if cm, ok := p.(ClientModuleProvider); ok {
			out = append(out, cm.ClientModules()...)
		}
	}
	return out
}

// ThemePaths returns the theme directories in plugin order, skipping empty ones.
func ThemePaths(plugins []Plugin) []string {
	out := []string{}
	for _, p := range plugins {
		if tp, ok := p.(ThemePathProvider); ok {
			if dir := tp.ThemePath(); dir != "" {
				out = append(out, dir)
			}
		}
	}
	return out
}
