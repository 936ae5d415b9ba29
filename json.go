package docfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

const maxIndent = 10

var (
	errUnexpectedToken = errors.New("unexpected token")
	errTrailingData    = errors.New("invalid character after top-level value")
)

func writeJSON(w io.Writer, v Value, opts Options) error {
	if opts.SortKeys {
		v = SortKeys(v)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent := min(opts.Indent, maxIndent); indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

// FormatJSON pretty-prints JSON text with opts.Indent spaces per level,
// sorting keys when opts.SortKeys is set.
func FormatJSON(text string, opts Options) (string, error) {
	v, err := parseJSON(strings.TrimSpace(text))
	if err != nil {
		return "", err
	}
	opts.Indent = max(opts.Indent, 0)
	out, err := Marshal(JSON, v, opts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// MinifyJSON rewrites JSON text without insignificant whitespace.
func MinifyJSON(text string) (string, error) {
	return FormatJSON(text, Options{})
}

// parseJSON decodes text into a Value, keeping object keys in document
// order and numbers as written.
func parseJSON(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return Value{}, jsonError(text, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, jsonError(text, errTrailingData)
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Value{}, unexpectedEOF(err)
				}
				key, _ := kt.(string)
				val, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, unexpectedEOF(err)
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, unexpectedEOF(err)
			}
			return Mapping(m), nil
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return Value{}, unexpectedEOF(err)
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, unexpectedEOF(err)
			}
			return List(items...), nil
		}
		return Value{}, errUnexpectedToken
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	}
	return Value{}, errUnexpectedToken
}

// unexpectedEOF turns a clean EOF inside a container into a truncation error.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// jsonError locates a decoding failure. The token decoder only counts the
// bytes inside values, so the position comes from a rescan of the whole
// text, which reports the byte after the offending one. Truncated input is
// placed at the end of the text.
func jsonError(text string, err error) *ParseError {
	var raw json.RawMessage
	var se *json.SyntaxError
	switch scanErr := json.Unmarshal([]byte(text), &raw); {
	case errors.As(scanErr, &se) && strings.HasPrefix(se.Error(), "unexpected end"):
		return newParseError(JSON, text, se.Error(), len(text))
	case errors.As(scanErr, &se):
		return newParseError(JSON, text, se.Error(), max(int(se.Offset)-1, 0))
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return newParseError(JSON, text, "unexpected end of JSON input", len(text))
	default:
		return newParseError(JSON, text, err.Error(), -1)
	}
}
