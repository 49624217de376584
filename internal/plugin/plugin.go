// Package plugin provides the plugin model used during a site load.
// A plugin is anything with a name; what it contributes is discovered from
// the optional capability interfaces it implements.
package plugin

import (
	"context"

	"git.home.luguber.info/inful/sitebuilder/internal/htmltags"
	"git.home.luguber.info/inful/sitebuilder/internal/routes"
)

// Plugin is the base interface every plugin instance implements.
type Plugin interface {
	// Name identifies the instance in logs, errors and generated data paths.
	Name() string
}

// ThemePathProvider contributes a directory of theme components.
type ThemePathProvider interface {
	Plugin

	// ThemePath returns an absolute directory scanned for @theme components.
	ThemePath() string
}

// HTMLTagInjector contributes tags to the page shell.
type HTMLTagInjector interface {
	Plugin
	htmltags.Injector
}

// WebpackConfigurer contributes a partial bundler configuration.
type WebpackConfigurer interface {
	Plugin

	// ConfigureWebpack returns the configuration fragment to merge.
	ConfigureWebpack(isServer bool) map[string]any
}

// ContentLoader loads plugin content and turns it into routes and data.
type ContentLoader interface {
	Plugin

	// LoadContent gathers whatever the plugin needs. The result is passed
	// unchanged to ContentLoaded.
	LoadContent(ctx context.Context) (any, error)

	// ContentLoaded registers routes and data files through actions.
	ContentLoaded(ctx context.Context, content any, actions Actions) error
}

// ClientModuleProvider contributes modules imported by the client runtime.
type ClientModuleProvider interface {
	Plugin

	// ClientModules returns module paths in import order.
	ClientModules() []string
}

// Actions is what ContentLoaded may do to affect the build.
type Actions interface {
	// AddRoute registers a route tree owned by the calling plugin.
	AddRoute(route routes.RouteConfig)

	// CreateData writes a file under the plugin's generated data directory
	// and returns its absolute path, suitable as a route module reference.
	CreateData(name string, content []byte) (string, error)
}

// Capabilities lists what p provides, in a fixed order.
func Capabilities(p Plugin) []Capability {
	var caps []Capability
	if _, ok := p.(ThemePathProvider); ok {
		caps = append(caps, CapabilityThemePath)
	}
	if _, ok := p.(HTMLTagInjector); ok {
		caps = append(caps, CapabilityHTMLTags)
	}
	if _, ok := p.(WebpackConfigurer); ok {
		caps = append(caps, CapabilityWebpack)
	}
	if _, ok := p.(ContentLoader); ok {
		caps = append(caps, CapabilityContent)
	}
	if _, ok := p.(ClientModuleProvider); ok {
		caps = append(caps, CapabilityClientModules)
	}
	return caps
}

// HasCapability reports whether p provides c.
func HasCapability(p Plugin, c Capability) bool {
	for _, have := range Capabilities(p) {
		if have == c {
			return true
		}
	}
	return false
}
