package docfmt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// The YAML reader covers a documented subset: block mappings nested by
// indentation, "- " list items (including mapping items), and plain or
// quoted scalars. Flow collections other than {} and [], block scalars,
// explicit "? " keys and multi-document streams are not supported. The
// writer encodes through yaml.v3 and stays inside that subset, except for
// lists nested directly in lists and keys longer than 128 bytes.

type yamlFrame struct {
	indent   int
	m        *Map
	lastKey  string
	hasKey   bool // lastKey is set; "" is a valid key
	pending  bool // opened by "key:" and waiting for its first child line
	openedAt int  // indentation of the line that opened a pending frame
}

func parseYAML(text string) (Value, error) {
	root := &yamlFrame{indent: -1, m: NewMap()}
	stack := []*yamlFrame{root}
	var rootItems []Value
	isList, started := false, false

	for n, raw := range strings.Split(text, "\n") {
		lineNo := n + 1
		line := strings.TrimRight(raw, " \r")
		content := strings.TrimLeft(line, " ")
		if content == "" || strings.HasPrefix(content, "#") {
			continue
		}
		indent := len(line) - len(content)
		if strings.HasPrefix(content, "\t") {
			return Value{}, newLineError(YAML, text, "tabs are not allowed in indentation", lineNo, indent+1)
		}
		if content == "---" || strings.HasPrefix(content, "--- ") {
			if started {
				return Value{}, newLineError(YAML, text, "multiple documents are not supported", lineNo, indent+1)
			}
			continue
		}
		if content == "..." {
			break
		}
		started = true
		if root.indent < 0 {
			root.indent = indent
		}
		dash := content == "-" || strings.HasPrefix(content, "- ")

		if top := stack[len(stack)-1]; top.pending {
			if !dash && indent > top.openedAt {
				top.indent = indent
				top.pending = false
			} else {
				// Nothing nested: the key keeps its empty mapping, or turns
				// into a list when items follow.
				stack = stack[:len(stack)-1]
			}
		}
		for len(stack) > 1 && indent < stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]

		if dash {
			body := strings.TrimLeft(content[1:], " ")
			item, frame, err := yamlListItem(text, body, lineNo, indent+len(content)-len(body))
			if err != nil {
				return Value{}, err
			}
			switch {
			case top == root && !top.hasKey:
				isList = true
				rootItems = append(rootItems, item)
			case !top.hasKey:
				return Value{}, newLineError(YAML, text, "list item without a key", lineNo, indent+1)
			case !appendYAMLItem(top.m, top.lastKey, item):
				return Value{}, newLineError(YAML, text, fmt.Sprintf("list item under %q, which already has a value", top.lastKey), lineNo, indent+1)
			}
			if frame != nil {
				stack = append(stack, frame)
				if frame.pending {
					// "- key:" opened a nested mapping inside the item.
					stack = append(stack, frame.child())
					frame.pending = false
				}
			}
			continue
		}

		if top == root && isList {
			return Value{}, newLineError(YAML, text, "mapping key inside a list document", lineNo, indent+1)
		}
		key, val, ok, err := splitYAMLKey(content)
		if err != nil {
			return Value{}, newLineError(YAML, text, err.Error(), lineNo, indent+1)
		}
		if !ok {
			return Value{}, newLineError(YAML, text, `expected "key: value" or "- item"`, lineNo, indent+1)
		}
		top.lastKey, top.hasKey = key, true
		if val == "" {
			child := NewMap()
			top.m.Set(key, Mapping(child))
			stack = append(stack, &yamlFrame{m: child, pending: true, openedAt: indent})
			continue
		}
		sv, err := yamlScalar(val)
		if err != nil {
			return Value{}, newLineError(YAML, text, err.Error(), lineNo, indent+len(content)-len(val)+1)
		}
		top.m.Set(key, sv)
	}

	if isList {
		return List(rootItems...), nil
	}
	return Mapping(root.m), nil
}

// child returns the pending frame for the mapping the frame's last key opened.
func (f *yamlFrame) child() *yamlFrame {
	v, _ := f.m.Get(f.lastKey)
	m, _ := v.AsMap()
	return &yamlFrame{m: m, pending: true, openedAt: f.indent}
}

// yamlListItem parses the text after "- ". A "key: value" body starts a
// mapping item whose frame is returned so later lines can extend it.
func yamlListItem(text, body string, lineNo, col int) (Value, *yamlFrame, error) {
	if body == "" {
		return Null(), nil, nil
	}
	key, val, ok, err := splitYAMLKey(body)
	if err != nil {
		return Value{}, nil, newLineError(YAML, text, err.Error(), lineNo, col+1)
	}
	if !ok {
		sv, err := yamlScalar(body)
		if err != nil {
			return Value{}, nil, newLineError(YAML, text, err.Error(), lineNo, col+1)
		}
		return sv, nil, nil
	}
	m := NewMap()
	frame := &yamlFrame{indent: col, m: m, lastKey: key, hasKey: true}
	if val == "" {
		m.Set(key, Mapping(nil))
		frame.pending = true
	} else {
		sv, err := yamlScalar(val)
		if err != nil {
			return Value{}, nil, newLineError(YAML, text, err.Error(), lineNo, col+1)
		}
		m.Set(key, sv)
	}
	return Mapping(m), frame, nil
}

// appendYAMLItem adds item to the list under key. A key opened with
// "key:" holds an empty mapping until its first item; any other value
// cannot take items.
func appendYAMLItem(m *Map, key string, item Value) bool {
	prev, _ := m.Get(key)
	switch {
	case prev.Kind() == ListKind:
		m.Set(key, List(append(prev.items, item)...))
	case prev.Kind() == MappingKind && prev.m.Len() == 0:
		m.Set(key, List(item))
	default:
		return false
	}
	return true
}

// splitYAMLKey splits "key: value" or "key:". ok is false when s is not a
// mapping entry at all.
func splitYAMLKey(s string) (key, val string, ok bool, err error) {
	if s[0] == '"' || s[0] == '\'' {
		end := closingQuote(s)
		if end < 0 {
			return "", "", false, nil
		}
		rest := s[end+1:]
		if rest != ":" && !strings.HasPrefix(rest, ": ") {
			return "", "", false, nil
		}
		kv, err := yamlScalar(s[:end+1])
		if err != nil {
			return "", "", false, err
		}
		key, _ = kv.AsString()
		return key, yamlValueText(rest[1:]), true, nil
	}
	if i := strings.Index(s, ": "); i > 0 {
		return s[:i], yamlValueText(s[i+2:]), true, nil
	}
	if strings.HasSuffix(s, ":") && len(s) > 1 {
		return s[:len(s)-1], "", true, nil
	}
	return "", "", false, nil
}

func yamlValueText(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return ""
	}
	return s
}

// closingQuote returns the index of the quote closing the quoted scalar at
// the start of s, or -1.
func closingQuote(s string) int {
	q := s[0]
	for i := 1; i < len(s); i++ {
		switch {
		case q == '"' && s[i] == '\\':
			i++
		case s[i] == q && q == '\'' && i+1 < len(s) && s[i+1] == '\'':
			i++
		case s[i] == q:
			return i
		}
	}
	return -1
}

func yamlScalar(s string) (Value, error) {
	switch {
	case s == "null" || s == "~":
		return Null(), nil
	case s == "{}":
		return Mapping(nil), nil
	case s == "[]":
		return List(), nil
	case s[0] == '"' || s[0] == '\'':
		end := closingQuote(s)
		if end < 0 {
			return Value{}, fmt.Errorf("unterminated quoted scalar")
		}
		if rest := strings.TrimSpace(s[end+1:]); rest != "" && !strings.HasPrefix(rest, "#") {
			return Value{}, fmt.Errorf("unexpected %q after quoted scalar", rest)
		}
		if s[0] == '\'' {
			return String(strings.ReplaceAll(s[1:end], "''", "'")), nil
		}
		out, err := unescapeYAML(s[1:end])
		if err != nil {
			return Value{}, fmt.Errorf("invalid double-quoted scalar: %w", err)
		}
		return String(out), nil
	}
	if i := strings.Index(s, " #"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return String(s), nil
}

var yamlEscapes = map[byte]string{
	'0': "\x00", 'a': "\a", 'b': "\b", 't': "\t", '\t': "\t", 'n': "\n",
	'v': "\v", 'f': "\f", 'r': "\r", 'e': "\x1b", ' ': " ", '"': `"`,
	'/': "/", '\\': `\`, 'N': "\u0085", '_': "\u00a0", 'L': "\u2028", 'P': "\u2029",
}

// yamlHexEscapes maps the hex escape letters to their digit count.
var yamlHexEscapes = map[byte]int{'x': 2, 'u': 4, 'U': 8}

// unescapeYAML decodes the body of a double-quoted scalar.
func unescapeYAML(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i == len(s) {
			return "", errors.New("trailing backslash")
		}
		if r, ok := yamlEscapes[s[i]]; ok {
			b.WriteString(r)
			continue
		}
		n, ok := yamlHexEscapes[s[i]]
		if !ok || i+n >= len(s) {
			return "", fmt.Errorf("invalid escape \\%c", s[i])
		}
		code, err := strconv.ParseUint(s[i+1:i+1+n], 16, 32)
		if err != nil {
			return "", fmt.Errorf("invalid escape \\%s", s[i:i+1+n])
		}
		b.WriteRune(rune(code))
		i += n
	}
	return b.String(), nil
}

func writeYAML(w io.Writer, v Value) error {
	node, err := yamlNode(v, false)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err = w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

// yamlNode builds the node tree for v with mapping keys in order. A list
// directly inside another list is written in flow style.
func yamlNode(v Value, inList bool) (*yaml.Node, error) {
	switch v.kind {
	case NullKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case BoolKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: scalarText(v)}, nil
	case NumberKind:
		if !numberPattern.MatchString(v.s) {
			return nil, fmt.Errorf("%w: invalid number literal %q", ErrUnsupportedShape, v.s)
		}
		// Untagged, so big integers that resolve as floats stay plain.
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.s}, nil
	case StringKind:
		return yamlString(v.s), nil
	case MappingKind:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range v.m.keys {
			val, err := yamlNode(v.m.vals[key], false)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, yamlString(key), val)
		}
		return n, nil
	case ListKind:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if inList {
			n.Style = yaml.FlowStyle
		}
		for _, item := range v.items {
			val, err := yamlNode(item, true)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %s", ErrUnsupportedShape, v.kind)
}

// yamlString tags s as a string, so the encoder quotes anything that would
// read back as another type. Line breaks are kept on one line as escapes.
func yamlString(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if strings.ContainsAny(s, "\r\n\u0085\u2028\u2029") {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}
