package routes

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum      = regexp.MustCompile(`[^A-Za-z0-9]+`)
	camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}

func shortHash(s string) string { return md5Hex(s)[:3] }

// deburr strips combining marks so "Über" kebab-cases to "uber".
func deburr(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func kebabCase(s string) string {
	s = camelBoundary.ReplaceAllString(deburr(s), "$1 $2")
	words := nonAlnum.Split(s, -1)
	kept := words[:0]
	for _, w := range words {
		if w != "" {
			kept = append(kept, strings.ToLower(w))
		}
	}
	return strings.Join(kept, "-")
}

// docuHash turns an arbitrary string into a readable, filename-safe id.
func docuHash(s string) string {
	if s == "/" {
		return "index"
	}
	return kebabCase(s) + "-" + shortHash(s)
}

// modulePath renders a module reference as the path the bundler imports.
func modulePath(m Module) string {
	if len(m.Query) == 0 {
		return m.Path
	}
	q := url.Values{}
	for k, v := range m.Query {
		q.Set(k, v)
	}
	return m.Path + "?" + q.Encode()
}

// chunkNamer assigns chunk keys for one build. A module path keeps the key
// it was first given, so every reference to it shares one registry entry.
type chunkNamer struct {
	byModule map[string]string // module path -> key
	byKey    map[string]string // key -> module path
}

func newChunkNamer() *chunkNamer {
	return &chunkNamer{byModule: map[string]string{}, byKey: map[string]string{}}
}

// name derives the key from the role within the route (prefix) and the
// preferred readable name, disambiguating with a longer hash on collision.
func (c *chunkNamer) name(modPath, prefix, preferredName string) string {
	if key, ok := c.byModule[modPath]; ok {
		return key
	}

	hashLen := 3
	var key string
	for {
		str := modPath
		if preferredName != "" {
			str = preferredName + md5Hex(modPath)[:hashLen]
		}
		key = docuHash(str)
		if prefix != "" {
			key = prefix + "---" + key
		}
		owner, taken := c.byKey[key]
		if !taken || owner == modPath {
			break
		}
		if hashLen >= 32 {
			key = key + "-" + md5Hex(modPath)
			break
		}
		hashLen += 3
		if hashLen > 32 {
			hashLen = 32
		}
	}

	c.byModule[modPath] = key
	c.byKey[key] = modPath
	return key
}
