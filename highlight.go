package docfmt

import (
	"fmt"
	"regexp"
	"strings"
)

// Token classifies a piece of highlighted text.
type Token int

const (
	KeyToken Token = iota
	StringToken
	NumberToken
	BooleanToken
	NullToken
	TagToken
	AttrToken
	AttrValueToken
	CommentToken
	DeclarationToken
)

// Markup decorates highlighted text. Escape is applied to every piece of
// source text, wrapped or not; Wrap receives text that is already escaped.
type Markup interface {
	Escape(text string) string
	Wrap(t Token, text string) string
}

// PlainMarkup leaves text untouched.
type PlainMarkup struct{}

func (PlainMarkup) Escape(text string) string        { return text }
func (PlainMarkup) Wrap(_ Token, text string) string { return text }

var (
	jsonToken = regexp.MustCompile(`("(?:[^"\\]|\\.)*")(\s*:)?|\b(true|false)\b|\b(null)\b|-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
	xmlToken  = regexp.MustCompile(`(?s)(<!--.*?-->)|(<[?!][^>]*>)|(</?)([\w:.-]+)([^>]*?)(/?>)`)
	xmlAttr   = regexp.MustCompile(`([\w:.-]+)(\s*=\s*)("[^"]*"|'[^']*')`)
)

// Highlight wraps the tokens of already serialized JSON or XML text with
// markup. It is a textual pass: the text is not parsed and need not be
// valid.
func Highlight(text string, f Format, m Markup) (string, error) {
	switch f {
	case JSON:
		return highlightJSON(text, m), nil
	case XML:
		return highlightXML(text, m), nil
	default:
		return "", fmt.Errorf("%w: cannot highlight %q", ErrUnsupportedFormat, f)
	}
}

func highlightJSON(text string, m Markup) string {
	var b strings.Builder
	last := 0
	for _, loc := range jsonToken.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(m.Escape(text[last:loc[0]]))
		switch {
		case loc[2] >= 0 && loc[4] >= 0:
			b.WriteString(m.Wrap(KeyToken, m.Escape(text[loc[2]:loc[3]])))
			b.WriteString(m.Escape(text[loc[4]:loc[5]]))
		case loc[2] >= 0:
			b.WriteString(m.Wrap(StringToken, m.Escape(text[loc[2]:loc[3]])))
		case loc[6] >= 0:
			b.WriteString(m.Wrap(BooleanToken, m.Escape(text[loc[6]:loc[7]])))
		case loc[8] >= 0:
			b.WriteString(m.Wrap(NullToken, m.Escape(text[loc[8]:loc[9]])))
		default:
			b.WriteString(m.Wrap(NumberToken, m.Escape(text[loc[0]:loc[1]])))
		}
		last = loc[1]
	}
	b.WriteString(m.Escape(text[last:]))
	return b.String()
}

func highlightXML(text string, m Markup) string {
	var b strings.Builder
	last := 0
	for _, loc := range xmlToken.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(m.Escape(text[last:loc[0]]))
		switch {
		case loc[2] >= 0:
			b.WriteString(m.Wrap(CommentToken, m.Escape(text[loc[2]:loc[3]])))
		case loc[4] >= 0:
			b.WriteString(m.Wrap(DeclarationToken, m.Escape(text[loc[4]:loc[5]])))
		default:
			b.WriteString(m.Escape(text[loc[6]:loc[7]]))
			b.WriteString(m.Wrap(TagToken, m.Escape(text[loc[8]:loc[9]])))
			b.WriteString(highlightAttrs(text[loc[10]:loc[11]], m))
			b.WriteString(m.Escape(text[loc[12]:loc[13]]))
		}
		last = loc[1]
	}
	b.WriteString(m.Escape(text[last:]))
	return b.String()
}

func highlightAttrs(s string, m Markup) string {
	var b strings.Builder
	last := 0
	for _, loc := range xmlAttr.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(m.Escape(s[last:loc[0]]))
		b.WriteString(m.Wrap(AttrToken, m.Escape(s[loc[2]:loc[3]])))
		b.WriteString(m.Escape(s[loc[4]:loc[5]]))
		b.WriteString(m.Wrap(AttrValueToken, m.Escape(s[loc[6]:loc[7]])))
		last = loc[1]
	}
	b.WriteString(m.Escape(s[last:]))
	return b.String()
}

// Render writes v as two-space indented JSON with every token wrapped by
// m. Unlike [Highlight] it works from the tree, so it cannot misclassify.
func Render(v Value, m Markup) string {
	var b strings.Builder
	renderValue(&b, v, m, 0)
	return b.String()
}

func renderValue(b *strings.Builder, v Value, m Markup, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v.kind {
	case NullKind:
		b.WriteString(m.Wrap(NullToken, m.Escape("null")))
	case BoolKind:
		b.WriteString(m.Wrap(BooleanToken, m.Escape(scalarText(v))))
	case NumberKind:
		b.WriteString(m.Wrap(NumberToken, m.Escape(v.s)))
	case StringKind:
		b.WriteString(m.Wrap(StringToken, m.Escape(quoteJSON(v.s))))
	case ListKind:
		if len(v.items) == 0 {
			b.WriteString(m.Escape("[]"))
			return
		}
		b.WriteString(m.Escape("[") + "\n")
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(m.Escape(",") + "\n")
			}
			b.WriteString(indent + "  ")
			renderValue(b, item, m, depth+1)
		}
		b.WriteString("\n" + indent + m.Escape("]"))
	case MappingKind:
		if v.m.Len() == 0 {
			b.WriteString(m.Escape("{}"))
			return
		}
		b.WriteString(m.Escape("{") + "\n")
		for i, key := range v.m.keys {
			if i > 0 {
				b.WriteString(m.Escape(",") + "\n")
			}
			b.WriteString(indent + "  " + m.Wrap(KeyToken, m.Escape(quoteJSON(key))) + m.Escape(": "))
			renderValue(b, v.m.vals[key], m, depth+1)
		}
		b.WriteString("\n" + indent + m.Escape("}"))
	}
}
