// Package goquery implements the core extraction engines on top of a
// goquery/x-net-html node tree: main-content selection, boilerplate
// removal, markdown rendering, table structuring, and metadata
// fallback-chain resolution.
//
// The main-content and boilerplate pattern lists are modeled as ordered,
// data-driven rule sequences so they stay testable and extensible
// independent of the traversal code.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// parse builds a goquery document from raw HTML. The underlying parser is
// lenient, so failures here are rare and map to EPARSE.
func parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, webextract.Errorf(webextract.EPARSE, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// attrVal returns the value of the named attribute, or "".
func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// idClassTokens returns the element's id plus each whitespace-separated
// class token, all lowercased.
func idClassTokens(n *html.Node) []string {
	var tokens []string
	if id := attrVal(n, "id"); id != "" {
		tokens = append(tokens, strings.ToLower(id))
	}
	for _, c := range strings.Fields(attrVal(n, "class")) {
		tokens = append(tokens, strings.ToLower(c))
	}
	return tokens
}

// collapseWhitespace trims the string and collapses internal whitespace
// runs to a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// textContent returns the concatenated text of all descendant text nodes,
// skipping script and style subtrees.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (strings.EqualFold(n.Data, "script") || strings.EqualFold(n.Data, "style")) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// eachElement walks the subtree rooted at n depth-first in document order,
// calling fn for every element node. Returning false stops the walk.
func eachElement(n *html.Node, fn func(*html.Node) bool) bool {
	if n.Type == html.ElementNode {
		if !fn(n) {
			return false
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !eachElement(c, fn) {
			return false
		}
	}
	return true
}
