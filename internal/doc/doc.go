// Package doc turns raw doc comments into structured documentation.
package doc

import (
	"strings"

	"github.com/toyz/dogen/internal/mirror"
)

// Tag is a recognized paragraph such as "Deprecated: use X"
type Tag struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Doc is the structured documentation of an element
type Doc struct {
	Text          string `yaml:"text" json:"text"`
	FirstSentence string `yaml:"firstSentence" json:"firstSentence"`
	Body          string `yaml:"body,omitempty" json:"body,omitempty"`
	Tags          []Tag  `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Tag returns the value of the named tag
func (d *Doc) Tag(name string) (string, bool) {
	for _, t := range d.Tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// Resolver produces documentation for an element, or nil when it has none
type Resolver interface {
	Resolve(elem mirror.Element) *Doc
}

// CommentResolver resolves documentation from the element's doc comment
type CommentResolver struct {
	// AnnotationPrefix marks comment lines that are annotations rather than prose
	AnnotationPrefix string
}

// NewCommentResolver creates a resolver that drops lines starting with prefix
func NewCommentResolver(prefix string) *CommentResolver {
	return &CommentResolver{AnnotationPrefix: prefix}
}

// Resolve implements Resolver
func (r *CommentResolver) Resolve(elem mirror.Element) *Doc {
	if elem == nil {
		return nil
	}
	return Parse(elem.DocComment(), r.AnnotationPrefix)
}

var tagNames = []string{"Deprecated"}

// Parse builds a Doc from raw comment text. Lines starting with
// annotationPrefix are dropped. It returns nil when nothing remains.
func Parse(raw, annotationPrefix string) *Doc {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(strings.TrimPrefix(strings.TrimPrefix(line, "//"), " "), " \t\r")
		if annotationPrefix != "" && strings.HasPrefix(strings.TrimSpace(line), annotationPrefix) {
			continue
		}
		lines = append(lines, line)
	}

	paragraphs := splitParagraphs(lines)
	if len(paragraphs) == 0 {
		return nil
	}

	d := &Doc{}
	var prose []string
	for _, p := range paragraphs {
		if tag, ok := parseTag(p); ok {
			d.Tags = append(d.Tags, tag)
			continue
		}
		prose = append(prose, p)
	}

	d.Text = strings.Join(paragraphs, "\n\n")
	if len(prose) > 0 {
		d.FirstSentence, d.Body = firstSentence(strings.Join(prose, "\n\n"))
	}
	return d
}

func splitParagraphs(lines []string) []string {
	var out []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return out
}

func parseTag(paragraph string) (Tag, bool) {
	for _, name := range tagNames {
		if rest, ok := strings.CutPrefix(paragraph, name+":"); ok {
			return Tag{Name: name, Value: strings.TrimSpace(rest)}, true
		}
	}
	return Tag{}, false
}

// firstSentence splits text after the first period followed by white space,
// or after the first paragraph when no such period exists.
func firstSentence(text string) (string, string) {
	for i := 0; i < len(text)-1; i++ {
		if text[i] == '.' && (text[i+1] == ' ' || text[i+1] == '\n') {
			return strings.TrimSpace(text[:i+1]), strings.TrimSpace(text[i+1:])
		}
	}
	if head, tail, ok := strings.Cut(text, "\n\n"); ok {
		return strings.TrimSpace(head), strings.TrimSpace(tail)
	}
	return strings.TrimSpace(text), ""
}
