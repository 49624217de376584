package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_EmptyFrontmatter(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\nbody"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("body"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.False(t, had)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\n"), fm)
	require.Empty(t, body)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestParse(t *testing.T) {
	fields, body, err := Parse([]byte("---\ntitle: Hello\nslug: /hi\norder: 3\n---\n# Body\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello", fields.String("title"))
	require.Equal(t, "/hi", fields.String("slug"))
	require.Equal(t, "", fields.String("order"))
	require.Equal(t, "", fields.String("missing"))
	require.Equal(t, []byte("# Body\n"), body)
}

func TestParse_NoFrontmatter(t *testing.T) {
	fields, body, err := Parse([]byte("plain"))
	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, []byte("plain"), body)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, _, err := Parse([]byte("---\n: : :\n  - [\n---\n"))
	require.Error(t, err)
}

func TestParse_AlternateFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"toml", "+++\ntitle = \"Hello\"\nslug = \"/hi\"\n+++\n# Body\n"},
		{"json", ";;;\n{\"title\": \"Hello\", \"slug\": \"/hi\"}\n;;;\n# Body\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, body, err := Parse([]byte(tt.content))
			require.NoError(t, err)
			require.Equal(t, "Hello", fields.String("title"))
			require.Equal(t, "/hi", fields.String("slug"))
			require.Equal(t, []byte("# Body\n"), body)
		})
	}
}

func TestParse_InvalidTOML(t *testing.T) {
	_, _, err := Parse([]byte("+++\ntitle = \n+++\n"))
	require.Error(t, err)
}
