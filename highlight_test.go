package docfmt_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/docfmt"
)

var ansiSequence = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestHighlightHTML(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format docfmt.Format
		input  string
		want   string
	}{
		"json key and number": {
			format: docfmt.JSON,
			input:  `{"a": 1}`,
			want:   `{<span class="json-key">&#34;a&#34;</span>: <span class="json-number">1</span>}`,
		},
		"json scalars": {
			format: docfmt.JSON,
			input:  `[true, null, -1.5e3, "x<y"]`,
			want: `[<span class="json-boolean">true</span>, <span class="json-null">null</span>, ` +
				`<span class="json-number">-1.5e3</span>, <span class="json-string">&#34;x&lt;y&#34;</span>]`,
		},
		"json keywords inside strings": {
			format: docfmt.JSON,
			input:  `["null true 1"]`,
			want:   `[<span class="json-string">&#34;null true 1&#34;</span>]`,
		},
		"xml element": {
			format: docfmt.XML,
			input:  `<a x="1">t</a>`,
			want: `&lt;<span class="xml-tag">a</span> <span class="xml-attr">x</span>=<span class="xml-value">&#34;1&#34;</span>&gt;` +
				`t&lt;/<span class="xml-tag">a</span>&gt;`,
		},
		"xml comment and declaration": {
			format: docfmt.XML,
			input:  `<?xml version="1.0"?><!-- c --><b/>`,
			want: `<span class="xml-declaration">&lt;?xml version=&#34;1.0&#34;?&gt;</span>` +
				`<span class="xml-comment">&lt;!-- c --&gt;</span>&lt;<span class="xml-tag">b</span>/&gt;`,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := docfmt.Highlight(tt.input, tt.format, docfmt.HTMLMarkup{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHighlightPlainIsIdentity(t *testing.T) {
	t.Parallel()
	inputs := map[docfmt.Format]string{
		docfmt.JSON: "{\n  \"a\": [1, true, null, \"s\\\"q\"],\n  \"b\": {}\n}",
		docfmt.XML:  "<?xml version=\"1.0\"?>\n<r a='1'>\n  <!-- x -->\n  <s/>\n</r>",
	}
	for f, in := range inputs {
		got, err := docfmt.Highlight(in, f, docfmt.PlainMarkup{})
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestHighlightANSI(t *testing.T) {
	t.Parallel()
	in := `{"a": [1, "b", false]}`
	for _, theme := range []docfmt.Theme{docfmt.LightTheme, docfmt.DarkTheme} {
		got, err := docfmt.Highlight(in, docfmt.JSON, docfmt.NewColorMarkup(theme))
		require.NoError(t, err)
		assert.Contains(t, got, "\x1b[")
		assert.Equal(t, in, ansiSequence.ReplaceAllString(got, ""))
	}
}

func TestHighlightUnsupportedFormat(t *testing.T) {
	t.Parallel()
	_, err := docfmt.Highlight("a,b", docfmt.CSV, docfmt.PlainMarkup{})
	require.ErrorIs(t, err, docfmt.ErrUnsupportedFormat)
}

func TestRenderMatchesFormattedJSON(t *testing.T) {
	t.Parallel()
	v, err := docfmt.Parse(docfmt.JSON, `{"a":[1,{},[]],"b":"x","c":{"d":null,"e":true}}`)
	require.NoError(t, err)
	want, err := docfmt.Marshal(docfmt.JSON, v, docfmt.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, string(want), docfmt.Render(v, docfmt.PlainMarkup{}))
}

func TestRenderEscapes(t *testing.T) {
	t.Parallel()
	m := docfmt.NewMap()
	m.Set("<k>", docfmt.String("<script>"))
	got := docfmt.Render(docfmt.Mapping(m), docfmt.HTMLMarkup{})
	assert.Equal(t, "{\n  <span class=\"json-key\">&#34;&lt;k&gt;&#34;</span>: "+
		"<span class=\"json-string\">&#34;&lt;script&gt;&#34;</span>\n}", got)
}

func TestStylesheet(t *testing.T) {
	t.Parallel()
	css := docfmt.Stylesheet(docfmt.DarkTheme)
	assert.Contains(t, css, ".json-key { color: #9cdcfe; }")
	assert.Contains(t, css, ".xml-comment {")
	assert.Equal(t, docfmt.Stylesheet(docfmt.LightTheme), docfmt.Stylesheet("sepia"))
}

func TestParseTheme(t *testing.T) {
	t.Parallel()
	got, err := docfmt.ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, docfmt.DarkTheme, got)
	_, err = docfmt.ParseTheme("sepia")
	require.Error(t, err)
}
