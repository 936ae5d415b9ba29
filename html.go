package docfmt

import (
	"html"
	"strings"
)

var htmlClasses = map[Token]string{
	KeyToken:         "json-key",
	StringToken:      "json-string",
	NumberToken:      "json-number",
	BooleanToken:     "json-boolean",
	NullToken:        "json-null",
	TagToken:         "xml-tag",
	AttrToken:        "xml-attr",
	AttrValueToken:   "xml-value",
	CommentToken:     "xml-comment",
	DeclarationToken: "xml-declaration",
}

// HTMLMarkup wraps tokens in <span class="..."> elements and HTML-escapes
// all text. Classes are json-key, json-string, json-number, json-boolean,
// json-null, xml-tag, xml-attr, xml-value, xml-comment and xml-declaration.
type HTMLMarkup struct{}

func (HTMLMarkup) Escape(text string) string { return html.EscapeString(text) }

func (HTMLMarkup) Wrap(t Token, text string) string {
	class, ok := htmlClasses[t]
	if !ok {
		return text
	}
	return `<span class="` + class + `">` + text + `</span>`
}

// Stylesheet returns CSS for the HTMLMarkup classes in the given theme.
func Stylesheet(theme Theme) string {
	p := palettes[theme.orDefault()]
	var b strings.Builder
	for _, t := range tokenOrder {
		b.WriteString("." + htmlClasses[t] + " { color: " + p[t].css + "; }\n")
	}
	return b.String()
}
