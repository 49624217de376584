package plugin

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeOptions copies plugin options into out, a pointer to a struct with
// yaml tags. Unknown option keys are rejected.
func DecodeOptions(options map[string]any, out any) error {
	if len(options) == 0 {
		return nil
	}
	data, err := yaml.Marshal(options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}
