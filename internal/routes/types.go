// Package routes flattens plugin route trees into the route module, the
// chunk registry and the chunk-name mapping consumed by the client runtime.
package routes

// RouteConfig is one node of a plugin-contributed route tree.
type RouteConfig struct {
	// Path is the URL path. Relative paths are resolved against the site baseUrl.
	Path string `json:"path"`

	// Component is the module rendered for this route.
	Component string `json:"component"`

	// Modules maps prop names to module references. Values may be a module
	// path (string), a Module, a nested map[string]any, or a []any of those.
	Modules map[string]any `json:"modules,omitempty"`

	// Routes are nested child routes; leaves have none.
	Routes []RouteConfig `json:"routes,omitempty"`

	// Exact asks the router for exact path matching.
	Exact bool `json:"exact,omitempty"`
}

// Module is a module reference with an optional loader query string.
type Module struct {
	Path  string            `json:"path"`
	Query map[string]string `json:"query,omitempty"`
}

// OwnedRoute tags a top-level route tree with the plugin that contributed it.
type OwnedRoute struct {
	Plugin string
	Route  RouteConfig
}

// ChunkEntry is a chunk registry value: how to load the chunk and which
// module it resolves to.
type ChunkEntry struct {
	Loader     string `json:"loader"`
	ModulePath string `json:"modulePath"`
}

// Registry maps chunk keys to their entries.
type Registry map[string]ChunkEntry

// ChunkNames maps a route path to its prop-name → chunk-key structure. Values
// mirror the shape of the route's component/modules declaration.
type ChunkNames map[string]map[string]any

// Result is everything the builder produces for one load.
type Result struct {
	// Registry has one entry per distinct module path.
	Registry Registry

	// ChunkNames is keyed by normalized route path.
	ChunkNames ChunkNames

	// RoutesConfig is the serialized route tree module.
	RoutesConfig string

	// RoutesPaths lists every leaf route path plus the 404 page.
	RoutesPaths []string

	// Routes is the normalized route tree, tree shape and child order preserved.
	Routes []RouteConfig
}
