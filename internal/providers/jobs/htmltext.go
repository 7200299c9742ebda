package jobs

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// plainText flattens an HTML job description to whitespace-normalized text.
// Input without markup is only trimmed.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find("script, style").Remove()
	doc.Find("br, p, li, h1, h2, h3, h4, div").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}
