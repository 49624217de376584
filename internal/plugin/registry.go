package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// ModuleLoader resolves module references from the site config into
// factories. The orchestrator only depends on this interface.
type ModuleLoader interface {
	ResolvePlugin(ref string) (Factory, error)
	ResolvePreset(ref string) (PresetFactory, error)
}

type pluginEntry struct {
	meta    Metadata
	factory Factory
}

type presetEntry struct {
	meta    Metadata
	factory PresetFactory
}

// Registry manages factory registration and lookup by module reference.
// Factories are invoked anew on every load; the registry never holds
// plugin instances.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]pluginEntry
	presets map[string]presetEntry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]pluginEntry),
		presets: make(map[string]presetEntry),
	}
}

// Register adds a plugin or theme factory.
// Returns an error if the reference is already registered.
func (r *Registry) Register(meta Metadata, f Factory) error {
	if f == nil {
		return fmt.Errorf("cannot register nil factory for %q", meta.Ref)
	}
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}
	if meta.Kind == KindPreset {
		return fmt.Errorf("%s: presets must be registered with RegisterPreset", meta.Ref)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(meta.Ref) {
		return fmt.Errorf("module %s already registered", meta.Ref)
	}
	r.plugins[meta.Ref] = pluginEntry{meta: meta, factory: f}
	return nil
}

// RegisterPreset adds a preset factory.
func (r *Registry) RegisterPreset(meta Metadata, f PresetFactory) error {
	if f == nil {
		return fmt.Errorf("cannot register nil preset factory for %q", meta.Ref)
	}
	if meta.Kind == "" {
		meta.Kind = KindPreset
	}
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("invalid preset metadata: %w", err)
	}
	if meta.Kind != KindPreset {
		return fmt.Errorf("%s: expected kind %s, got %s", meta.Ref, KindPreset, meta.Kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(meta.Ref) {
		return fmt.Errorf("module %s already registered", meta.Ref)
	}
	r.presets[meta.Ref] = presetEntry{meta: meta, factory: f}
	return nil
}

// taken must be called with the lock held.
func (r *Registry) taken(ref string) bool {
	_, p := r.plugins[ref]
	_, s := r.presets[ref]
	return p || s
}

// ResolvePlugin implements ModuleLoader.
func (r *Registry) ResolvePlugin(ref string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.plugins[ref]
	if !ok {
		return nil, fmt.Errorf("module %s not found", ref)
	}
	return e.factory, nil
}

// ResolvePreset implements ModuleLoader.
func (r *Registry) ResolvePreset(ref string) (PresetFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.presets[ref]
	if !ok {
		return nil, fmt.Errorf("preset %s not found", ref)
	}
	return e.factory, nil
}

// Has checks if a module reference is registered as a plugin, theme or preset.
func (r *Registry) Has(ref string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.taken(ref)
}

// List returns metadata for every registered reference, sorted by Ref.
func (r *Registry) List() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Metadata, 0, len(r.plugins)+len(r.presets))
	for _, e := range r.plugins {
		out = append(out, e.meta)
	}
	for _, e := range r.presets {
		out = append(out, e.meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref < out[j].Ref })
	return out
}

// ListByKind returns registered references of one kind, sorted by Ref.
func (r *Registry) ListByKind(kind Kind) []Metadata {
	var out []Metadata
	for _, m := range r.List() {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// Unregister removes a reference.
func (r *Registry) Unregister(ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.taken(ref) {
		return fmt.Errorf("module %s not found", ref)
	}
	delete(r.plugins, ref)
	delete(r.presets, ref)
	return nil
}

// Count returns the number of registered references.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins) + len(r.presets)
}

// globalRegistry is the default registry built-in plugins register into.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the global registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a factory to the global registry.
func Register(meta Metadata, f Factory) error {
	return globalRegistry.Register(meta, f)
}

// RegisterPreset adds a preset factory to the global registry.
func RegisterPreset(meta Metadata, f PresetFactory) error {
	return globalRegistry.RegisterPreset(meta, f)
}
