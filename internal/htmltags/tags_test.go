package htmltags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type injecting struct{ tags Tags }

func (i injecting) InjectHTMLTags() Tags { return i.tags }

type silent struct{}

func TestAggregatePreservesOrderAndDuplicates(t *testing.T) {
	meta := RawTag(`<meta name="a">`)
	plugins := []any{
		injecting{Tags{Head: []Tag{meta}}},
		silent{},
		injecting{Tags{Head: []Tag{meta}, PostBody: []Tag{RawTag("<b>2</b>")}}},
		injecting{Tags{PreBody: []Tag{RawTag("<i>3</i>")}}},
	}

	got := Aggregate(plugins)
	assert.Equal(t, []Tag{meta, meta}, got.Head)
	assert.Equal(t, []Tag{RawTag("<i>3</i>")}, got.PreBody)
	assert.Equal(t, []Tag{RawTag("<b>2</b>")}, got.PostBody)
}

func TestAggregateNoInjectors(t *testing.T) {
	got := Aggregate([]silent{{}, {}})
	assert.True(t, got.Empty())
	assert.NotNil(t, got.Head)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want string
	}{
		{"raw", RawTag("<!-- hi -->"), "<!-- hi -->"},
		{
			"stylesheet",
			Element("link", map[string]any{"rel": "stylesheet", "href": "/a.css"}),
			`<link href="/a.css" rel="stylesheet">`,
		},
		{
			"script with bool attributes",
			Element("script", map[string]any{"src": "/x.js?a=1&b=2", "async": true, "defer": false}),
			`<script async src="/x.js?a=1&amp;b=2"></script>`,
		},
		{
			"inner html",
			Tag{TagName: "STYLE", InnerHTML: "body{}"},
			`<style>body{}</style>`,
		},
		{
			"numeric attribute",
			Element("img", map[string]any{"width": 10, "alt": `"quoted"`}),
			`<img alt="&#34;quoted&#34;" width="10">`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Render(tc.tag)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderRejectsInvalidTags(t *testing.T) {
	_, err := Render(Tag{TagName: "not-a-tag"})
	require.Error(t, err)

	_, err = Render(Tag{TagName: "link", InnerHTML: "x"})
	require.Error(t, err)

	_, err = RenderAll([]Tag{RawTag("<p>"), {TagName: ""}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag 1")
}
