package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// descriptionLimit caps stored descriptions; the list API ships full
// posting bodies and only the lead matters for a notification.
const descriptionLimit = 500

// StripHTML flattens an HTML fragment to plain text, collapsing whitespace
// and truncating to limit runes. Unparseable input falls back to the raw
// string rather than failing the record.
func StripHTML(html string, limit int) string {
	if html == "" {
		return ""
	}

	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		text = doc.Text()
	}

	text = strings.Join(strings.Fields(text), " ")

	if limit > 0 {
		runes := []rune(text)
		if len(runes) > limit {
			text = string(runes[:limit])
		}
	}
	return text
}
