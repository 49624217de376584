package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// Load reads, validates and normalizes the site configuration in siteDir.
//
// Nothing is cached: every call re-reads the file, so repeated loads within
// one process always observe the current contents.
func Load(siteDir string) (*SiteConfig, error) {
	configPath := filepath.Join(siteDir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return nil, derrors.ConfigNotFound(ConfigFileName, configPath)
	}

	envVars, err := readEnvFile(siteDir)
	if err != nil {
		return nil, derrors.ConfigParse(filepath.Join(siteDir, EnvFileName), err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	// Expand environment variables in the YAML content
	expanded := expandEnv(string(data), envVars)

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(expanded), &doc); err != nil {
		return nil, derrors.ConfigParse(configPath, err)
	}
	root := documentRoot(&doc)
	if root != nil && root.Kind != yaml.MappingNode {
		return nil, derrors.ConfigParse(configPath, fmt.Errorf("line %d: top level must be a mapping", root.Line))
	}

	cfg, err := decode(root)
	if err != nil {
		if _, ok := derrors.As(err); ok {
			return nil, err
		}
		return nil, derrors.ConfigParse(configPath, err)
	}

	slog.Debug("Loaded site configuration",
		logfields.Path(configPath),
		slog.Int("plugins", len(cfg.Plugins)),
		slog.Int("themes", len(cfg.Themes)),
		slog.Int("presets", len(cfg.Presets)))
	return cfg, nil
}

// decode validates the top-level mapping and turns it into a SiteConfig.
// A nil root (empty document) is treated as an empty mapping.
func decode(root *yaml.Node) (*SiteConfig, error) {
	keys := topLevelKeys(root)

	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	var missing []string
	for _, f := range RequiredFields {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, derrors.MissingRequiredFields(ConfigFileName, missing)
	}

	// Don't allow unrecognized fields.
	var unrecognized []string
	for _, k := range keys {
		if !IsAllowedField(k) {
			unrecognized = append(unrecognized, k)
		}
	}
	if len(unrecognized) > 0 {
		return nil, derrors.UnrecognizedFields(ConfigFileName, unrecognized)
	}

	if err := validatePluginEntries(root); err != nil {
		return nil, err
	}

	cfg := &SiteConfig{}
	if root != nil {
		if err := root.Decode(cfg); err != nil {
			return nil, err
		}
	}
	normalizeKeys(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// validatePluginEntries decodes plugins/themes entries one by one so a bad
// entry is reported with its list and index.
func validatePluginEntries(root *yaml.Node) error {
	if root == nil {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, root.Content[i+1]
		if key != "plugins" && key != "themes" {
			continue
		}
		if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!null" {
			continue
		}
		if val.Kind != yaml.SequenceNode {
			return derrors.InvalidPluginFormat(key, -1, fmt.Errorf("line %d: %s must be a list", val.Line, key))
		}
		for idx, item := range val.Content {
			var pc PluginConfig
			if err := item.Decode(&pc); err != nil {
				return derrors.InvalidPluginFormat(key, idx, err)
			}
		}
	}
	return nil
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	if doc.Kind == 0 {
		return nil
	}
	return doc
}

// topLevelKeys returns mapping keys in document order.
func topLevelKeys(root *yaml.Node) []string {
	if root == nil {
		return nil
	}
	keys := make([]string, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	return keys
}
