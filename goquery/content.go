package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// contentMatcher is one rule in the main-content selection sequence.
type contentMatcher struct {
	Name  string
	Match func(n *html.Node) bool
}

// contentMatchers is the fixed, ordered main-content rule sequence. The
// first matcher with any match wins; among matches of the same matcher,
// document order decides. There is no cross-matcher scoring.
var contentMatchers = []contentMatcher{
	{Name: "main-tag", Match: tagMatcher("main")},
	{Name: "role-main", Match: roleMatcher("main")},
	{Name: "pattern-content", Match: idClassMatcher("content")},
	{Name: "pattern-main", Match: idClassMatcher("main")},
	{Name: "pattern-post", Match: idClassMatcher("post")},
	{Name: "pattern-entry", Match: idClassMatcher("entry")},
	{Name: "pattern-article", Match: idClassMatcher("article")},
}

func tagMatcher(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return strings.EqualFold(n.Data, tag)
	}
}

func roleMatcher(role string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return strings.EqualFold(attrVal(n, "role"), role)
	}
}

// idClassMatcher matches when the element's id or any class token contains
// the pattern as a substring, case-insensitively.
func idClassMatcher(pattern string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, token := range idClassTokens(n) {
			if strings.Contains(token, pattern) {
				return true
			}
		}
		return false
	}
}

// selectContent locates the subtree holding primary content. When no rule
// matches it falls back to the document body; an empty body is a legal (if
// low-value) result. The final fallback is the document root itself, for
// fragments the parser did not wrap in a body.
func selectContent(doc *goquery.Document) *html.Node {
	root := doc.Get(0)

	for _, matcher := range contentMatchers {
		var found *html.Node
		eachElement(root, func(n *html.Node) bool {
			if matcher.Match(n) {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}

	var body *html.Node
	eachElement(root, func(n *html.Node) bool {
		if strings.EqualFold(n.Data, "body") {
			body = n
			return false
		}
		return true
	})
	if body != nil {
		return body
	}
	return root
}
