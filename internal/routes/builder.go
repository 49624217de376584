package routes

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	derrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// NotFoundPath is the catch-all route appended after every plugin route.
const NotFoundPath = "*"

// ModuleValidator checks that a module path resolves within the build's module space.
type ModuleValidator func(modulePath string) error

// Option configures Build.
type Option func(*builder)

// WithModuleValidator rejects routes whose component or modules do not resolve.
func WithModuleValidator(v ModuleValidator) Option {
	return func(b *builder) { b.validate = v }
}

type builder struct {
	baseURL  string
	namer    *chunkNamer
	validate ModuleValidator
	result   *Result
}

// Build flattens the plugin route trees. Input order is preserved; duplicate
// paths from different plugins are passed through untouched.
func Build(owned []OwnedRoute, baseURL string, opts ...Option) (*Result, error) {
	b := &builder{
		baseURL: baseURL,
		namer:   newChunkNamer(),
		result: &Result{
			Registry:    Registry{},
			ChunkNames:  ChunkNames{},
			RoutesPaths: []string{JoinURL(orRoot(baseURL), "404.html")},
			Routes:      []RouteConfig{},
		},
	}
	for _, o := range opts {
		o(b)
	}

	for _, o := range owned {
		route, err := b.walk(o.Plugin, o.Route)
		if err != nil {
			return nil, err
		}
		b.result.Routes = append(b.result.Routes, route)
	}

	b.result.RoutesConfig = RenderRoutesModule(b.result.Routes)
	return b.result, nil
}

// walk normalizes one node, registers its chunks, and recurses into children.
func (b *builder) walk(plugin string, rc RouteConfig) (RouteConfig, error) {
	if rc.Component == "" || strings.TrimSpace(rc.Path) == "" {
		return RouteConfig{}, derrors.InvalidRoute(plugin, rc.Path, fmt.Errorf("route %s", describe(rc)))
	}

	out := RouteConfig{
		Path:      normalizePath(rc.Path, b.baseURL),
		Component: rc.Component,
		Modules:   rc.Modules,
		Exact:     rc.Exact,
	}
	if len(rc.Routes) == 0 {
		b.result.RoutesPaths = append(b.result.RoutesPaths, out.Path)
	}

	if err := b.check(plugin, out.Path, rc.Component); err != nil {
		return RouteConfig{}, err
	}
	names := map[string]any{
		"component": b.register(rc.Component, "component", rc.Component),
	}

	keys := make([]string, 0, len(rc.Modules))
	for k := range rc.Modules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := b.chunkNames(plugin, out.Path, rc.Modules[k], k)
		if err != nil {
			return RouteConfig{}, err
		}
		names[k] = v
	}
	b.result.ChunkNames[out.Path] = names

	if len(rc.Routes) > 0 {
		out.Routes = make([]RouteConfig, 0, len(rc.Routes))
		for _, child := range rc.Routes {
			c, err := b.walk(plugin, child)
			if err != nil {
				return RouteConfig{}, err
			}
			out.Routes = append(out.Routes, c)
		}
	}
	return out, nil
}

// chunkNames mirrors the shape of a modules value, replacing each module
// reference with its chunk key.
func (b *builder) chunkNames(plugin, routePath string, value any, prefix string) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		if err := b.check(plugin, routePath, v); err != nil {
			return nil, err
		}
		return b.register(v, prefix, routePath), nil
	case Module:
		p := modulePath(v)
		if err := b.check(plugin, routePath, v.Path); err != nil {
			return nil, err
		}
		return b.register(p, prefix, routePath), nil
	case *Module:
		if v == nil {
			return nil, nil
		}
		return b.chunkNames(plugin, routePath, *v, prefix)
	case []string:
		list := make([]any, len(v))
		for i, s := range v {
			list[i] = s
		}
		return b.chunkNames(plugin, routePath, list, prefix)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			n, err := b.chunkNames(plugin, routePath, item, strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return b.chunkNames(plugin, routePath, m, prefix)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(v))
		for _, k := range keys {
			n, err := b.chunkNames(plugin, routePath, v[k], k)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, derrors.InvalidRoute(plugin, routePath, fmt.Errorf("unsupported module value of type %T for %q", value, prefix))
	}
}

func (b *builder) register(modPath, prefix, preferredName string) string {
	key := b.namer.name(modPath, prefix, preferredName)
	if _, ok := b.result.Registry[key]; !ok {
		b.result.Registry[key] = ChunkEntry{
			Loader:     loaderFor(key, modPath),
			ModulePath: modPath,
		}
	}
	return key
}

func (b *builder) check(plugin, routePath, modPath string) error {
	if modPath == "" {
		return derrors.InvalidRoute(plugin, routePath, fmt.Errorf("empty module reference"))
	}
	if b.validate == nil {
		return nil
	}
	if err := b.validate(modPath); err != nil {
		return derrors.InvalidRoute(plugin, routePath, err)
	}
	return nil
}

func loaderFor(key, modPath string) string {
	return fmt.Sprintf("() => import(/* webpackChunkName: '%s' */ %s)", key, jsString(modPath))
}

func describe(rc RouteConfig) string {
	data, err := json.Marshal(rc)
	if err != nil {
		return fmt.Sprintf("%+v", rc)
	}
	return string(data)
}

func orRoot(baseURL string) string {
	if baseURL == "" {
		return "/"
	}
	return baseURL
}
