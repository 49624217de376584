package plugin

import (
	"fmt"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
)

// Kind identifies what a registered module reference produces.
type Kind string

const (
	// KindPlugin produces a plugin listed under `plugins`.
	KindPlugin Kind = "plugin"

	// KindTheme produces a plugin listed under `themes`.
	KindTheme Kind = "theme"

	// KindPreset produces a bundle of plugin and theme references.
	KindPreset Kind = "preset"
)

// IsValid returns true if the kind is recognized.
func (k Kind) IsValid() bool {
	switch k {
	case KindPlugin, KindTheme, KindPreset:
		return true
	default:
		return false
	}
}

func (k Kind) String() string { return string(k) }

// Capability names an optional plugin interface.
type Capability string

const (
	CapabilityThemePath     Capability = "themePath"
	CapabilityHTMLTags      Capability = "injectHtmlTags"
	CapabilityWebpack       Capability = "configureWebpack"
	CapabilityContent       Capability = "loadContent"
	CapabilityClientModules Capability = "clientModules"
)

func (c Capability) String() string { return string(c) }

// Metadata describes a registered module reference.
type Metadata struct {
	// Ref is the module reference used in the site config (e.g. "sitebuilder-plugin-pages").
	Ref string

	Kind Kind

	// Description is a human-readable summary shown by `sitebuilder plugins`.
	Description string
}

// String returns a human-readable representation of the metadata.
func (m Metadata) String() string {
	return fmt.Sprintf("%s (%s)", m.Ref, m.Kind)
}

// Validate checks if the metadata is valid.
func (m Metadata) Validate() error {
	if m.Ref == "" {
		return fmt.Errorf("module reference is required")
	}
	if !m.Kind.IsValid() {
		return fmt.Errorf("invalid module kind: %s", m.Kind)
	}
	return nil
}

// Factory instantiates a plugin for one load.
type Factory func(ctx LoadContext, options map[string]any) (Plugin, error)

// Preset is the expansion of one preset entry.
type Preset struct {
	Plugins []config.PluginConfig
	Themes  []config.PluginConfig
}

// PresetFactory expands a preset for one load.
type PresetFactory func(ctx LoadContext, options map[string]any) (Preset, error)

// PluginError represents an error that occurred within a plugin.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Operation describes what the plugin was doing when it failed.
	Operation string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
