package docfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
)

// numberPattern matches a JSON number literal.
var numberPattern = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?(?:[eE][+-]?\d+)?$`)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	MappingKind
	ListKind
)

var kindNames = [...]string{"null", "bool", "number", "string", "mapping", "list"}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a document value: the intermediate tree every conversion goes
// through. The zero Value is Null.
type Value struct {
	kind  Kind
	b     bool
	s     string // string text or number literal
	m     *Map
	items []Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// Number returns a number value holding the decimal literal lit.
// The literal is kept as written so serializers emit it unchanged.
func Number(lit string) Value { return Value{kind: NumberKind, s: lit} }

// String returns a string value.
func String(s string) Value { return Value{kind: StringKind, s: s} }

// Mapping returns a mapping value backed by m. A nil m is an empty mapping.
func Mapping(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: MappingKind, m: m}
}

// List returns a list value.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ListKind, items: items}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == NullKind }

// AsBool returns the boolean and whether v is a Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == BoolKind }

// AsNumber returns the number literal and whether v is a Number.
func (v Value) AsNumber() (string, bool) {
	if v.kind != NumberKind {
		return "", false
	}
	return v.s, true
}

// AsString returns the string and whether v is a String.
func (v Value) AsString() (string, bool) {
	if v.kind != StringKind {
		return "", false
	}
	return v.s, true
}

// AsMap returns the mapping and whether v is a Mapping.
func (v Value) AsMap() (*Map, bool) {
	if v.kind != MappingKind {
		return nil, false
	}
	return v.m, true
}

// Items returns the list items, or nil when v is not a List.
func (v Value) Items() []Value {
	if v.kind != ListKind {
		return nil
	}
	return v.items
}

// Equal reports deep equality. Numbers compare by literal, mappings by
// key order as well as content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == o.b
	case NumberKind, StringKind:
		return v.s == o.s
	case MappingKind:
		return v.m.equal(o.m)
	case ListKind:
		return slices.EqualFunc(v.items, o.items, Value.Equal)
	}
	return false
}

// MarshalJSON writes v as compact JSON with mapping keys in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.appendJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces v with the value decoded from data.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := parseJSON(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) appendJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberKind:
		if !numberPattern.MatchString(v.s) {
			return fmt.Errorf("%w: invalid number literal %q", ErrUnsupportedShape, v.s)
		}
		buf.WriteString(v.s)
	case StringKind:
		buf.WriteString(quoteJSON(v.s))
	case MappingKind:
		buf.WriteByte('{')
		for i, key := range v.m.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quoteJSON(key))
			buf.WriteByte(':')
			if err := v.m.vals[key].appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case ListKind:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}

// quoteJSON quotes s as a JSON string without HTML escaping. Line and
// paragraph separators stay escaped and invalid UTF-8 becomes U+FFFD, as
// encoding/json does.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // encoding a string cannot fail
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// SortKeys returns a deep copy of v with every mapping's keys in
// lexicographic (byte) order.
func SortKeys(v Value) Value {
	switch v.kind {
	case MappingKind:
		keys := slices.Clone(v.m.keys)
		slices.Sort(keys)
		out := NewMap()
		for _, k := range keys {
			out.Set(k, SortKeys(v.m.vals[k]))
		}
		return Mapping(out)
	case ListKind:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = SortKeys(item)
		}
		return List(items...)
	default:
		return v
	}
}

// Map is an ordered mapping of string keys to values.
type Map struct {
	keys []string
	vals map[string]Value
}

// NewMap returns an empty mapping.
func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// Set stores val under key. An existing key keeps its position.
func (m *Map) Set(key string, val Value) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = val
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string { return slices.Clone(m.keys) }

// Len returns the number of keys.
func (m *Map) Len() int { return len(m.keys) }

func (m *Map) equal(o *Map) bool {
	if !slices.Equal(m.keys, o.keys) {
		return false
	}
	for _, k := range m.keys {
		if !m.vals[k].Equal(o.vals[k]) {
			return false
		}
	}
	return true
}
