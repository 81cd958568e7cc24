package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// CollectHeadings gathers h1-h6 headings with non-empty trimmed text, in
// document order. Callers must invoke this on the tree as parsed, before
// boilerplate removal, so headings inside later-removed furniture still
// appear in the output.
func CollectHeadings(doc *goquery.Document) []webextract.Heading {
	var headings []webextract.Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := collapseWhitespace(s.Text())
		if text == "" {
			return
		}
		name := strings.ToLower(s.Nodes[0].Data)
		level := int(name[1] - '0')
		headings = append(headings, webextract.Heading{Level: level, Text: text})
	})
	return headings
}
