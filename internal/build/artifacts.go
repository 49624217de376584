package build

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/routes"
)

// Artifact names written into the generated files directory.
const (
	SiteConfigArtifact    = "sitebuilder.config.js"
	ClientModulesArtifact = "client-modules.js"
	RegistryArtifact      = "registry.js"
	ChunkNamesArtifact    = "routesChunkNames.json"
	RoutesArtifact        = "routes.js"
)

func renderSiteConfig(cfg *config.SiteConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode site config: %w", err)
	}
	return []byte("export default " + strings.TrimSuffix(buf.String(), "\n") + ";"), nil
}

// renderClientModules uses require() so modules, CSS in particular, load in
// declaration order.
func renderClientModules(modules []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString("export default [\n")
	for _, m := range modules {
		q, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		b.WriteString("  require(" + string(q) + "),\n")
	}
	b.WriteString("];\n")
	return []byte(b.String()), nil
}

func renderArtifacts(cfg *config.SiteConfig, clientModules []string, res *routes.Result) (map[string][]byte, error) {
	siteConfig, err := renderSiteConfig(cfg)
	if err != nil {
		return nil, err
	}
	mods, err := renderClientModules(clientModules)
	if err != nil {
		return nil, err
	}
	chunkNames, err := routes.RenderChunkNamesJSON(res.ChunkNames)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{
		SiteConfigArtifact:    siteConfig,
		ClientModulesArtifact: mods,
		RegistryArtifact:      []byte(routes.RenderRegistryModule(res.Registry)),
		ChunkNamesArtifact:    []byte(chunkNames),
		RoutesArtifact:        []byte(res.RoutesConfig),
	}, nil
}
