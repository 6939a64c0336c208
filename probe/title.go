package probe

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NoTitle is returned for HTML documents without a <title> element.
const NoTitle = "no title"

// ExtractTitle pulls the first <title> element's text out of an HTML
// payload. The parser is lenient: unclosed tags, missing doctypes and
// mixed encodings degrade gracefully instead of failing. Any internal
// parse error is folded into the returned string, never propagated.
func ExtractTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Sprintf("title extraction failed: %s", err)
	}

	title := doc.Find("title").First()
	if title.Length() == 0 {
		return NoTitle
	}
	return strings.TrimSpace(title.Text())
}
