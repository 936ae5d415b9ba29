package docfmt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat     = errors.New("unsupported format")
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrUnsupportedShape      = errors.New("unsupported document shape")
	ErrParse                 = errors.New("parse error")
	ErrFileTooLarge          = errors.New("file too large")
)

// Format represents a document format.
type Format string

const (
	JSON Format = "json"
	XML  Format = "xml"
	CSV  Format = "csv"
	YAML Format = "yaml"
)

var formats = []Format{JSON, XML, CSV, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Title returns the display name used in status messages.
func (f Format) Title() string { return strings.ToUpper(string(f)) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Pair is a conversion from one format to another.
type Pair struct {
	From Format
	To   Format
}

// String returns the pair as "from-to".
func (p Pair) String() string { return string(p.From) + "-" + string(p.To) }

// Every conversion goes through JSON on one side.
var pairs = []Pair{
	{JSON, XML}, {JSON, CSV}, {JSON, YAML},
	{XML, JSON}, {CSV, JSON}, {YAML, JSON},
}

// Pairs returns the supported conversions.
func Pairs() []Pair {
	out := make([]Pair, len(pairs))
	copy(out, pairs)
	return out
}

// Supported reports whether p is one of [Pairs].
func (p Pair) Supported() bool {
	for _, s := range pairs {
		if s == p {
			return true
		}
	}
	return false
}

// ParsePair parses a "from-to" conversion name such as "json-xml".
// Malformed names and unknown formats fail with
// [*UnsupportedConversionError]; whether a well-formed pair is supported is
// checked by [Convert].
func ParsePair(s string) (Pair, error) {
	from, to, ok := strings.Cut(s, "-")
	raw := Pair{From: Format(from), To: Format(to)}
	if !ok {
		return Pair{}, &UnsupportedConversionError{Pair: raw, Err: errors.New(`expected "from-to"`)}
	}
	f, err := ParseFormat(from)
	if err != nil {
		return Pair{}, &UnsupportedConversionError{Pair: raw, Err: err}
	}
	t, err := ParseFormat(to)
	if err != nil {
		return Pair{}, &UnsupportedConversionError{Pair: raw, Err: err}
	}
	return Pair{From: f, To: t}, nil
}

// Options controls serialization. Only JSON honours them.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero writes
	// minified JSON; values above 10 are clamped to 10.
	Indent int
	// SortKeys orders mapping keys lexicographically before writing.
	SortKeys bool
}

// DefaultOptions returns two-space indentation without key sorting.
func DefaultOptions() Options { return Options{Indent: 2} }

// Parse reads text in format f into a [Value]. Surrounding whitespace is
// ignored. Failures are returned as [*ParseError].
func Parse(f Format, text string) (Value, error) {
	text = strings.TrimSpace(text)
	switch f {
	case JSON:
		return parseJSON(text)
	case XML:
		return parseXML(text)
	case CSV:
		return parseCSV(text)
	case YAML:
		return parseYAML(text)
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Write serializes v in format f and writes it to w.
func Write(w io.Writer, f Format, v Value, opts Options) error {
	switch f {
	case JSON:
		return writeJSON(w, v, opts)
	case XML:
		return writeXML(w, v)
	case CSV:
		return writeCSV(w, v)
	case YAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal serializes v in format f and returns the bytes.
func Marshal(f Format, v Value, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, v, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Convert parses text as p.From and serializes it as p.To.
//
// Unsupported pairs fail with [*UnsupportedConversionError] before any
// parsing. Any other failure is returned as [*ConversionError] wrapping the
// cause. On error the result is always empty.
func Convert(text string, p Pair) (string, error) {
	if !p.Supported() {
		return "", &UnsupportedConversionError{Pair: p}
	}
	v, err := Parse(p.From, text)
	if err != nil {
		return "", &ConversionError{Pair: p, Err: err}
	}
	out, err := Marshal(p.To, v, DefaultOptions())
	if err != nil {
		return "", &ConversionError{Pair: p, Err: err}
	}
	return string(out), nil
}
