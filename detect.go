package docfmt

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a fetched document: the response content type, the address it
// came from and the raw body.
type Page struct {
	ContentType string
	URL         string
	Body        string
}

// Detection is the result of [Detect]. Format is empty when the page holds
// neither JSON nor XML; Text is the trimmed document text either way.
type Detection struct {
	Format Format
	Text   string
}

// Found reports whether a format was detected.
func (d Detection) Found() bool { return d.Format != "" }

// Detect decides whether a page is a JSON or XML document. Content type
// and URL are hints only; the text must also parse. HTML pages are reduced
// to the text of their body first, since browsers show raw documents
// wrapped in a <pre> element.
func Detect(p Page) (Detection, error) {
	ct := strings.ToLower(p.ContentType)
	text := p.Body
	if isHTMLPage(ct, p.Body) {
		t, err := bodyText(p.Body)
		if err != nil {
			return Detection{}, err
		}
		text = t
	}
	text = strings.TrimSpace(text)
	path := urlPath(p.URL)

	jsonHint := strings.Contains(ct, "json") || strings.Contains(path, ".json") || looksLikeJSON(text)
	if jsonHint && ValidateJSON(text).Valid {
		return Detection{Format: JSON, Text: text}, nil
	}
	xmlHint := (strings.Contains(ct, "xml") && !strings.Contains(ct, "html")) ||
		strings.HasSuffix(path, ".xml") || strings.HasPrefix(text, "<")
	if xmlHint && ValidateXML(text).Valid {
		return Detection{Format: XML, Text: text}, nil
	}
	return Detection{Text: text}, nil
}

// LikelyJSONURL guesses from the address alone whether it serves JSON.
func LikelyJSONURL(u string) bool {
	return strings.Contains(u, ".json") ||
		strings.Contains(u, "api/") ||
		strings.Contains(u, "application/json")
}

func looksLikeJSON(text string) bool {
	return strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") ||
		strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")
}

func isHTMLPage(ct, body string) bool {
	if strings.Contains(ct, "html") {
		return true
	}
	if ct != "" {
		return false
	}
	head := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

func bodyText(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", err
	}
	return doc.Find("body").Text(), nil
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	return strings.ToLower(u.Path)
}
