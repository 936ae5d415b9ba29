package docfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/docfmt"
)

func TestDetect(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		page   docfmt.Page
		format docfmt.Format
		text   string
	}{
		"json content type": {
			page:   docfmt.Page{ContentType: "application/json; charset=utf-8", Body: `{"a":1}`},
			format: docfmt.JSON,
			text:   `{"a":1}`,
		},
		"json in html pre": {
			page: docfmt.Page{
				ContentType: "text/html",
				Body:        "<html><head></head><body><pre>\n[1, 2]\n</pre></body></html>",
			},
			format: docfmt.JSON,
			text:   "[1, 2]",
		},
		"doctype without content type": {
			page:   docfmt.Page{Body: `<!DOCTYPE html><html><body><pre>{"ok":true}</pre></body></html>`},
			format: docfmt.JSON,
			text:   `{"ok":true}`,
		},
		"json url": {
			page:   docfmt.Page{URL: "https://example.com/data.json?x=1", Body: `"just a string"`},
			format: docfmt.JSON,
			text:   `"just a string"`,
		},
		"body shape alone": {
			page:   docfmt.Page{ContentType: "text/plain", Body: "  [1]  "},
			format: docfmt.JSON,
			text:   "[1]",
		},
		"xml content type": {
			page:   docfmt.Page{ContentType: "application/xml", Body: `<a><b/></a>`},
			format: docfmt.XML,
			text:   `<a><b/></a>`,
		},
		"xml body": {
			page:   docfmt.Page{Body: "<?xml version=\"1.0\"?>\n<feed/>"},
			format: docfmt.XML,
			text:   "<?xml version=\"1.0\"?>\n<feed/>",
		},
		"plain html": {
			page: docfmt.Page{ContentType: "text/html", Body: "<html><body><p>hello</p></body></html>"},
			text: "hello",
		},
		"json hint with broken body": {
			page: docfmt.Page{ContentType: "application/json", Body: `{"a":`},
			text: `{"a":`,
		},
		"json shape but invalid": {
			page: docfmt.Page{Body: "{not json}"},
			text: "{not json}",
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := docfmt.Detect(tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.format, got.Format)
			assert.Equal(t, tt.format != "", got.Found())
			assert.Equal(t, tt.text, got.Text)
		})
	}
}

func TestLikelyJSONURL(t *testing.T) {
	t.Parallel()
	tests := map[string]bool{
		"https://example.com/data.json":              true,
		"https://example.com/api/users":              true,
		"https://example.com/?type=application/json": true,
		"https://example.com/index.html":             false,
		"":                                           false,
	}
	for url, want := range tests {
		assert.Equal(t, want, docfmt.LikelyJSONURL(url), url)
	}
}
