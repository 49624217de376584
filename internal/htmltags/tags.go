// Package htmltags collects the HTML tags plugins inject into the page
// shell and renders them as markup.
package htmltags

// Tag is either a raw HTML snippet or a structured element description.
type Tag struct {
	// Raw, when set, is emitted verbatim and the other fields are ignored.
	Raw string `json:"raw,omitempty"`

	TagName    string         `json:"tagName,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
	InnerHTML  string         `json:"innerHTML,omitempty"`
}

// RawTag wraps an HTML snippet.
func RawTag(s string) Tag { return Tag{Raw: s} }

// Element builds a structured tag.
func Element(name string, attrs map[string]any) Tag {
	return Tag{TagName: name, Attributes: attrs}
}

// Tags is the set of tags one plugin (or the whole site) injects.
type Tags struct {
	Head     []Tag `json:"headTags,omitempty"`
	PreBody  []Tag `json:"preBodyTags,omitempty"`
	PostBody []Tag `json:"postBodyTags,omitempty"`
}

// Append adds other's tags after t's, per position.
func (t *Tags) Append(other Tags) {
	t.Head = append(t.Head, other.Head...)
	t.PreBody = append(t.PreBody, other.PreBody...)
	t.PostBody = append(t.PostBody, other.PostBody...)
}

// Empty reports whether no tags are set in any position.
func (t Tags) Empty() bool {
	return len(t.Head) == 0 && len(t.PreBody) == 0 && len(t.PostBody) == 0
}

// Injector is implemented by plugins that contribute HTML tags.
type Injector interface {
	InjectHTMLTags() Tags
}

// Aggregate concatenates the tags of every plugin implementing Injector, in
// plugin order. Duplicates are kept.
func Aggregate[P any](plugins []P) Tags {
	out := Tags{Head: []Tag{}, PreBody: []Tag{}, PostBody: []Tag{}}
	for _, p := range plugins {
		inj, ok := any(p).(Injector)
		if !ok {
			continue
		}
		out.Append(inj.InjectHTMLTags())
	}
	return out
}
