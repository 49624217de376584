// Package markdown extracts page summaries (title and headings) from
// Markdown bodies.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a page's table of contents.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"value"`
	ID    string `json:"id"`
}

// Summary is what the pages plugin needs from a Markdown body.
type Summary struct {
	// Title is the text of the first level-1 heading, if any.
	Title string `json:"title,omitempty"`

	// Headings are level 2 and 3 headings in document order.
	Headings []Heading `json:"toc"`
}

// Summarize parses a Markdown body (frontmatter already removed).
func Summarize(body []byte) Summary {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	root := md.Parser().Parse(text.NewReader(body))

	s := Summary{Headings: []Heading{}}
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}

		txt := strings.TrimSpace(plainText(h, body))
		switch {
		case h.Level == 1 && s.Title == "":
			s.Title = txt
		case h.Level == 2 || h.Level == 3:
			s.Headings = append(s.Headings, Heading{Level: h.Level, Text: txt, ID: headingID(h)})
		}
		return gmast.WalkSkipChildren, nil
	})
	return s
}

// plainText concatenates the text segments below n, dropping markup.
func plainText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return buf.String()
}

func headingID(h *gmast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return ""
}
