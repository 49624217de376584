// Package frontmatter reads the header of Markdown pages. YAML (`---`) is
// the default; TOML (`+++`) and JSON (`;;;`) headers are also accepted.
package frontmatter

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/BurntSushi/toml"
	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

var altFormats = []*adrg.Format{
	adrg.NewFormat("+++", "+++", toml.Unmarshal),
	adrg.NewFormat(";;;", ";;;", json.Unmarshal),
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Fields are the decoded frontmatter keys.
type Fields map[string]any

// String returns the value of key when it is a non-empty string.
func (f Fields) String(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
// If the document does not start with a delimiter, had is false and body is
// the full input.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := newline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len(nl+"---")
			return content[start : end+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes the frontmatter. Documents without
// frontmatter yield empty Fields.
func Parse(content []byte) (Fields, []byte, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return nil, nil, err
	}
	if !had {
		return parseAlt(content)
	}
	if len(bytes.TrimSpace(fm)) == 0 {
		return Fields{}, body, nil
	}

	var fields Fields
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, nil, err
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, body, nil
}

// parseAlt handles the TOML and JSON delimiters. Input without either is
// returned unchanged.
func parseAlt(content []byte) (Fields, []byte, error) {
	fields := Fields{}
	body, err := adrg.Parse(bytes.NewReader(content), &fields, altFormats...)
	if err != nil {
		return nil, nil, err
	}
	return fields, body, nil
}

func newline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
