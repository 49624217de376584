package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SiteConfig is the validated site configuration. It is treated as immutable
// once Load returns it.
type SiteConfig struct {
	BaseURL          string         `yaml:"baseUrl" json:"baseUrl"`
	Favicon          string         `yaml:"favicon" json:"favicon"`
	Title            string         `yaml:"title" json:"title"`
	URL              string         `yaml:"url" json:"url"`
	OrganizationName string         `yaml:"organizationName,omitempty" json:"organizationName,omitempty"`
	ProjectName      string         `yaml:"projectName,omitempty" json:"projectName,omitempty"`
	GithubHost       string         `yaml:"githubHost,omitempty" json:"githubHost,omitempty"`
	Tagline          string         `yaml:"tagline,omitempty" json:"tagline,omitempty"`
	CustomFields     map[string]any `yaml:"customFields" json:"customFields"`
	Plugins          []PluginConfig `yaml:"plugins" json:"plugins"`
	Themes           []PluginConfig `yaml:"themes" json:"themes"`
	// Presets stays loosely typed; entry shape is validated by the preset expander.
	Presets     []any          `yaml:"presets,omitempty" json:"presets,omitempty"`
	ThemeConfig map[string]any `yaml:"themeConfig" json:"themeConfig"`
	Scripts     []TagSource    `yaml:"scripts,omitempty" json:"scripts,omitempty"`
	Stylesheets []TagSource    `yaml:"stylesheets,omitempty" json:"stylesheets,omitempty"`
}

// Defaults returns the record every loaded configuration is merged over.
func Defaults() SiteConfig {
	return SiteConfig{
		Plugins:      []PluginConfig{},
		Themes:       []PluginConfig{},
		CustomFields: map[string]any{},
		ThemeConfig:  map[string]any{},
	}
}

// applyDefaults fills the collections the candidate left unset.
func applyDefaults(cfg *SiteConfig) {
	d := Defaults()
	if cfg.Plugins == nil {
		cfg.Plugins = d.Plugins
	}
	if cfg.Themes == nil {
		cfg.Themes = d.Themes
	}
	if cfg.CustomFields == nil {
		cfg.CustomFields = d.CustomFields
	}
	if cfg.ThemeConfig == nil {
		cfg.ThemeConfig = d.ThemeConfig
	}
}

// TagSource is a stylesheet or script entry: either a bare URL or a set of
// tag attributes.
type TagSource struct {
	URL        string
	Attributes map[string]any
}

// IsURL reports whether the source was declared as a plain URL string.
func (s TagSource) IsURL() bool { return s.Attributes == nil }

// UnmarshalYAML accepts a scalar URL or a mapping of attributes.
func (s *TagSource) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		s.URL = n.Value
		s.Attributes = nil
		return nil
	case yaml.MappingNode:
		attrs := map[string]any{}
		if err := n.Decode(&attrs); err != nil {
			return err
		}
		s.URL = ""
		s.Attributes = attrs
		return nil
	default:
		return fmt.Errorf("line %d: script/stylesheet entry must be a string or a mapping", n.Line)
	}
}

// MarshalJSON mirrors the declared shape.
func (s TagSource) MarshalJSON() ([]byte, error) {
	if s.IsURL() {
		return json.Marshal(s.URL)
	}
	return json.Marshal(s.Attributes)
}
