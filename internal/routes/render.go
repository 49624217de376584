package routes

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// jsString quotes s as a JS string literal. JSON quoting also escapes
// Windows backslashes.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// RenderRoutesModule serializes the route tree as a JS module, followed by
// the catch-all not-found route.
func RenderRoutesModule(routes []RouteConfig) string {
	var b strings.Builder
	b.WriteString("import React from 'react';\n")
	b.WriteString("import ComponentCreator from '@sitebuilder/ComponentCreator';\n\n")
	b.WriteString("export default [\n")
	for _, r := range routes {
		writeRoute(&b, r, 1)
		b.WriteString(",\n")
	}
	writeRoute(&b, RouteConfig{Path: NotFoundPath}, 1)
	b.WriteString("\n];\n")
	return b.String()
}

func writeRoute(b *strings.Builder, r RouteConfig, depth int) {
	pad := strings.Repeat("  ", depth)
	b.WriteString(pad + "{\n")
	b.WriteString(pad + "  path: " + jsString(r.Path) + ",\n")
	b.WriteString(pad + "  component: ComponentCreator(" + jsString(r.Path) + ")")
	if r.Exact {
		b.WriteString(",\n" + pad + "  exact: true")
	}
	if len(r.Routes) > 0 {
		b.WriteString(",\n" + pad + "  routes: [\n")
		for i, child := range r.Routes {
			writeRoute(b, child, depth+2)
			if i < len(r.Routes)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(pad + "  ]")
	}
	b.WriteString("\n" + pad + "}")
}

// SortedKeys returns registry keys in lexicographic order.
func (r Registry) SortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderRegistryModule serializes the chunk registry with keys sorted so
// unchanged input always yields identical bytes.
func RenderRegistryModule(r Registry) string {
	var b strings.Builder
	b.WriteString("export default {\n")
	for _, key := range r.SortedKeys() {
		e := r[key]
		mp := jsString(e.ModulePath)
		b.WriteString("  " + jsString(key) + ": [" + e.Loader + ", " + mp + ", require.resolveWeak(" + mp + ")],\n")
	}
	b.WriteString("};\n")
	return b.String()
}

// RenderChunkNamesJSON serializes the route → chunk-name mapping. encoding/json
// sorts map keys, which keeps the output stable.
func RenderChunkNamesJSON(names ChunkNames) (string, error) {
	if names == nil {
		names = ChunkNames{}
	}
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
