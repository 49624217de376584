package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PluginConfig references a plugin (or theme) module plus its options.
// In YAML it is either a bare module reference or a [module, options] pair.
type PluginConfig struct {
	Module  string
	Options map[string]any
}

// NewPluginConfig is shorthand for presets building their plugin lists.
func NewPluginConfig(module string, options map[string]any) PluginConfig {
	return PluginConfig{Module: module, Options: options}
}

// IsZero reports an empty reference; such entries are dropped during expansion.
func (p PluginConfig) IsZero() bool { return p.Module == "" }

// OptionsOrEmpty returns a private deep copy of the options, never nil, so
// factories can read and modify them freely.
func (p PluginConfig) OptionsOrEmpty() map[string]any {
	if p.Options == nil {
		return map[string]any{}
	}
	return stringKeyMap(p.Options)
}

// String is the module reference, used for logs and error attribution.
func (p PluginConfig) String() string { return p.Module }

// UnmarshalYAML accepts `ref` or `[ref]` or `[ref, {options}]`.
func (p *PluginConfig) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() != "!!str" {
			return fmt.Errorf("line %d: module reference must be a string", n.Line)
		}
		p.Module = n.Value
		p.Options = nil
		return nil
	case yaml.SequenceNode:
		if len(n.Content) < 1 || len(n.Content) > 2 {
			return fmt.Errorf("line %d: expected [module, options], got %d elements", n.Line, len(n.Content))
		}
		ref := n.Content[0]
		if ref.Kind != yaml.ScalarNode || ref.ShortTag() != "!!str" {
			return fmt.Errorf("line %d: module reference must be a string", ref.Line)
		}
		p.Module = ref.Value
		p.Options = nil
		if len(n.Content) == 2 {
			opts := n.Content[1]
			switch {
			case opts.Kind == yaml.ScalarNode && opts.ShortTag() == "!!null":
			case opts.Kind == yaml.MappingNode:
				m := map[string]any{}
				if err := opts.Decode(&m); err != nil {
					return err
				}
				p.Options = m
			default:
				return fmt.Errorf("line %d: plugin options must be a mapping", opts.Line)
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: plugin entry must be a string or a [module, options] pair", n.Line)
	}
}

// MarshalJSON writes the bare reference when there are no options.
func (p PluginConfig) MarshalJSON() ([]byte, error) {
	if p.Options == nil {
		return json.Marshal(p.Module)
	}
	return json.Marshal([]any{p.Module, p.Options})
}
