package docfmt

import (
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/beevik/etree"
)

// attributesKey holds element attributes in the mapping built from XML.
const attributesKey = "@attributes"

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

func readXMLDocument(text string) (*etree.Element, error) {
	if err := checkXML(text); err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, newParseError(XML, text, err.Error(), -1)
	}
	root := doc.Root()
	if root == nil {
		return nil, newParseError(XML, text, "no root element", -1)
	}
	return root, nil
}

// checkXML runs the strict decoder over text, which reports unbalanced
// tags with the line they were found on.
func checkXML(text string) error {
	dec := xml.NewDecoder(strings.NewReader(text))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var se *xml.SyntaxError
			if errors.As(err, &se) {
				return newLineError(XML, text, se.Msg, se.Line, 0)
			}
			return newParseError(XML, text, err.Error(), -1)
		}
	}
}

func parseXML(text string) (Value, error) {
	root, err := readXMLDocument(text)
	if err != nil {
		return Value{}, err
	}
	m := NewMap()
	m.Set(root.FullTag(), xmlElementValue(root))
	return Mapping(m), nil
}

// xmlElementValue maps an element to a Value. The first non-blank text
// child wins outright: the element becomes that string and everything else
// it holds, attributes included, is dropped. Mixed content is not kept.
func xmlElementValue(e *etree.Element) Value {
	m := NewMap()
	if len(e.Attr) > 0 {
		attrs := NewMap()
		for _, a := range e.Attr {
			attrs.Set(a.FullKey(), String(a.Value))
		}
		m.Set(attributesKey, Mapping(attrs))
	}
	for _, tok := range e.Child {
		switch c := tok.(type) {
		case *etree.CharData:
			if text := strings.TrimSpace(c.Data); text != "" {
				return String(text)
			}
		case *etree.Element:
			name := c.FullTag()
			child := xmlElementValue(c)
			prev, ok := m.Get(name)
			switch {
			case !ok:
				m.Set(name, child)
			case prev.Kind() == ListKind:
				m.Set(name, List(append(prev.Items(), child)...))
			default:
				m.Set(name, List(prev, child))
			}
		}
	}
	return Mapping(m)
}

func writeXML(w io.Writer, v Value) error {
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	b.WriteByte('\n')
	name, root := "root", v
	if m, ok := v.AsMap(); ok && m.Len() == 1 {
		key := m.keys[0]
		if val := m.vals[key]; val.Kind() != ListKind {
			name, root = key, val
		}
	}
	writeXMLElement(&b, name, root, 0)
	_, err := io.WriteString(w, strings.TrimSuffix(b.String(), "\n"))
	return err
}

func writeXMLElement(b *strings.Builder, name string, v Value, depth int) {
	indent := strings.Repeat("  ", depth)
	tag := xmlName(name)
	switch v.Kind() {
	case NullKind:
		b.WriteString(indent + "<" + tag + "/>\n")
	case MappingKind:
		var attrs string
		children := v.m.keys
		if a, ok := v.m.Get(attributesKey); ok {
			if am, ok := a.AsMap(); ok {
				attrs = xmlAttrs(am)
				children = without(children, attributesKey)
			}
		}
		if len(children) == 0 {
			b.WriteString(indent + "<" + tag + attrs + "/>\n")
			return
		}
		b.WriteString(indent + "<" + tag + attrs + ">\n")
		for _, key := range children {
			writeXMLMember(b, key, v.m.vals[key], depth+1)
		}
		b.WriteString(indent + "</" + tag + ">\n")
	case ListKind:
		if len(v.items) == 0 {
			b.WriteString(indent + "<" + tag + "/>\n")
			return
		}
		b.WriteString(indent + "<" + tag + ">\n")
		for _, item := range v.items {
			writeXMLElement(b, "item", item, depth+1)
		}
		b.WriteString(indent + "</" + tag + ">\n")
	default:
		b.WriteString(indent + "<" + tag + ">" + xmlEscaper.Replace(scalarText(v)) + "</" + tag + ">\n")
	}
}

// writeXMLMember repeats the element once per item for list values.
func writeXMLMember(b *strings.Builder, key string, v Value, depth int) {
	if v.Kind() != ListKind || len(v.items) == 0 {
		writeXMLElement(b, key, v, depth)
		return
	}
	for _, item := range v.items {
		writeXMLElement(b, key, item, depth)
	}
}

func xmlAttrs(m *Map) string {
	var b strings.Builder
	for _, key := range m.keys {
		val := m.vals[key]
		if val.Kind() == MappingKind || val.Kind() == ListKind {
			continue
		}
		b.WriteString(" " + xmlName(key) + `="` + xmlEscaper.Replace(scalarText(val)) + `"`)
	}
	return b.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// xmlName turns an arbitrary mapping key into a usable element name.
func xmlName(key string) string {
	if key == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range key {
		switch {
		case unicode.IsLetter(r), r == '_', r == ':':
			b.WriteRune(r)
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
			b.WriteRune(r)
		case i == 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
			b.WriteRune('_')
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// scalarText renders a scalar as plain text. Containers fall back to
// compact JSON.
func scalarText(v Value) string {
	switch v.kind {
	case NullKind:
		return ""
	case BoolKind:
		if v.b {
			return "true"
		}
		return "false"
	case NumberKind, StringKind:
		return v.s
	default:
		out, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(out)
	}
}

func without(keys []string, drop string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != drop {
			out = append(out, k)
		}
	}
	return out
}

var (
	xmlGap        = regexp.MustCompile(`>\s+<`)
	inlineElement = regexp.MustCompile(`(?s).+</\w[^>]*>$`)
	closingTag    = regexp.MustCompile(`^</\w`)
	openingTag    = regexp.MustCompile(`(?s)^<\w([^>]*[^/])?>.*$`)
)

// FormatXML re-indents XML text by two spaces per level. It does not parse
// the document: tags are classified one by one, so malformed input is
// re-indented as best it can be.
func FormatXML(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", newParseError(XML, text, "empty document", -1)
	}
	parts := strings.Split(xmlGap.ReplaceAllString(text, "><"), "><")
	lines := make([]string, 0, len(parts))
	depth := 0
	for i, node := range parts {
		if i > 0 {
			node = "<" + node
		}
		if i < len(parts)-1 {
			node += ">"
		}
		pad := 0
		switch {
		case inlineElement.MatchString(node):
		case closingTag.MatchString(node):
			depth = max(depth-1, 0)
		case openingTag.MatchString(node):
			pad = 1
		}
		lines = append(lines, strings.Repeat("  ", depth)+node)
		depth += pad
	}
	return strings.Join(lines, "\n"), nil
}

// MinifyXML removes the whitespace between tags.
func MinifyXML(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", newParseError(XML, text, "empty document", -1)
	}
	return xmlGap.ReplaceAllString(text, "><"), nil
}
