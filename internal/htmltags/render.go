package htmltags

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true, atom.Embed: true,
	atom.Hr: true, atom.Img: true, atom.Input: true, atom.Link: true, atom.Meta: true,
	atom.Source: true, atom.Track: true, atom.Wbr: true,
}

// Render serializes one tag. Structured tags must name a known HTML element.
func Render(t Tag) (string, error) {
	if t.Raw != "" {
		return t.Raw, nil
	}
	name := strings.ToLower(strings.TrimSpace(t.TagName))
	a := atom.Lookup([]byte(name))
	if a == 0 {
		return "", fmt.Errorf("invalid html tag name %q", t.TagName)
	}

	var b strings.Builder
	b.WriteString("<" + name)

	keys := make([]string, 0, len(t.Attributes))
	for k := range t.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := t.Attributes[k].(type) {
		case nil:
			continue
		case bool:
			if v {
				b.WriteString(" " + k)
			}
		case string:
			b.WriteString(" " + k + `="` + html.EscapeString(v) + `"`)
		case int:
			b.WriteString(" " + k + `="` + strconv.Itoa(v) + `"`)
		default:
			b.WriteString(" " + k + `="` + html.EscapeString(fmt.Sprint(v)) + `"`)
		}
	}
	b.WriteString(">")

	if voidElements[a] {
		if t.InnerHTML != "" {
			return "", fmt.Errorf("void element <%s> cannot have content", name)
		}
		return b.String(), nil
	}
	b.WriteString(t.InnerHTML + "</" + name + ">")
	return b.String(), nil
}

// RenderAll serializes tags one per line.
func RenderAll(tags []Tag) (string, error) {
	lines := make([]string, 0, len(tags))
	for i, t := range tags {
		s, err := Render(t)
		if err != nil {
			return "", fmt.Errorf("tag %d: %w", i, err)
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n"), nil
}
