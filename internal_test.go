package docfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippetCaret(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc\n ^", snippet("abc", 2))
	// Past the end points just after the last rune.
	assert.Equal(t, "abc\n   ^", snippet("abc", 9))
	// Tabs are shown as one space so the caret lines up.
	assert.Equal(t, "a b\n  ^", snippet("a\tb", 3))
}

func TestSnippetWideRunes(t *testing.T) {
	t.Parallel()
	// "你" and "好" are two columns wide each.
	assert.Equal(t, "你好x\n    ^", snippet("你好x", 3))
}

func TestSnippetLongLine(t *testing.T) {
	t.Parallel()
	line := strings.Repeat("a", 200) + "X" + strings.Repeat("b", 200)
	got := snippet(line, 201)
	text, caret, ok := strings.Cut(got, "\n")
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(text, "..."))
	assert.LessOrEqual(t, len(text), snippetWidth)
	assert.Equal(t, byte('X'), text[len(caret)-1])
}

func TestNewParseErrorPosition(t *testing.T) {
	t.Parallel()
	text := "{\n  \"é\": x\n}"
	e := newParseError(JSON, text, "bad", strings.Index(text, "x"))
	assert.Equal(t, 2, e.Line)
	assert.Equal(t, 8, e.Column)
	assert.Equal(t, "  \"é\": x\n       ^", e.Snippet)

	unknown := newParseError(JSON, text, "bad", -1)
	assert.Equal(t, -1, unknown.Offset)
	assert.Zero(t, unknown.Line)
	assert.Equal(t, "invalid JSON: bad", unknown.Error())
}

func TestNewLineError(t *testing.T) {
	t.Parallel()
	text := "a: 1\nb c\nd: 2"
	e := newLineError(YAML, text, "bad", 2, 2)
	assert.Equal(t, 6, e.Offset)
	assert.Equal(t, "b c\n ^", e.Snippet)
	assert.Equal(t, "invalid YAML at line 2, column 2: bad", e.Error())

	noCol := newLineError(XML, text, "bad", 3, 0)
	assert.Equal(t, -1, noCol.Offset)
	assert.Equal(t, "d: 2", noCol.Snippet)
	assert.Equal(t, "invalid XML at line 3: bad", noCol.Error())
}

func TestJSONErrorOffsets(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input  string
		line   int
		column int
	}{
		"bad key":          {input: `{"a":1, x}`, line: 1, column: 9},
		"nested value":     {input: "[\n  [1,\n   tru]\n]", line: 3, column: 7},
		"missing close":    {input: "[1,\n2", line: 2, column: 2},
		"unterminated":     {input: `{"a":"b`, line: 1, column: 8},
		"trailing":         {input: "{}\n\n  ]", line: 3, column: 3},
		"last byte":        {input: `{"a":1}x`, line: 1, column: 8},
		"extra close":      {input: "[1,2]]", line: 1, column: 6},
		"trailing then ws": {input: `{"a":1}x `, line: 1, column: 8},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := parseJSON(tt.input)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, tt.column, pe.Column)
		})
	}
}

func TestXMLName(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"":           "_",
		"name":       "name",
		"first name": "first_name",
		"1st":        "_1st",
		"a.b-c":      "a.b-c",
		"ns:tag":     "ns:tag",
		"@id":        "_id",
	}
	for in, want := range tests {
		assert.Equal(t, want, xmlName(in), "key %q", in)
	}
}

func TestUnescapeYAML(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		`plain`:                "plain",
		`a\tb\nc`:              "a\tb\nc",
		`\"q\" \\ \/`:          `"q" \ /`,
		`\0\a\e`:               "\x00\a\x1b",
		`\N\_\L\P`:             "\u0085\u00a0\u2028\u2029",
		`\x41\u00e9\U0001F600`: "A\u00e9\U0001F600",
	}
	for in, want := range tests {
		got, err := unescapeYAML(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{`\`, `\q`, `\x4`, `\uZZZZ`} {
		_, err := unescapeYAML(in)
		assert.Error(t, err, in)
	}
}

func TestScalarText(t *testing.T) {
	t.Parallel()
	m := NewMap()
	m.Set("k", Number("1"))
	assert.Equal(t, "", scalarText(Null()))
	assert.Equal(t, "true", scalarText(Bool(true)))
	assert.Equal(t, "1.5", scalarText(Number("1.5")))
	assert.Equal(t, `{"k":1}`, scalarText(Mapping(m)))
	assert.Equal(t, `[]`, scalarText(List()))
}
