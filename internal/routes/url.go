package routes

import (
	"regexp"
	"strings"
)

var multiSlash = regexp.MustCompile(`/{2,}`)

// JoinURL joins URL path segments with single slashes, leaving a scheme's
// "//" intact. Empty segments are skipped.
func JoinURL(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "/") && !strings.HasPrefix(p, "/") {
			b.WriteByte('/')
		}
		b.WriteString(p)
	}
	s := b.String()

	scheme := ""
	if i := strings.Index(s, "://"); i >= 0 {
		scheme, s = s[:i+3], s[i+3:]
	}
	return scheme + multiSlash.ReplaceAllString(s, "/")
}

// normalizePath makes p absolute by prefixing baseURL when it is relative.
func normalizePath(p, baseURL string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	if baseURL == "" {
		baseURL = "/"
	}
	return JoinURL(baseURL, p)
}
