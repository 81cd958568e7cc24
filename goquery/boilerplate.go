package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// Structural tags removed outright: navigation, page furniture, scripts,
// styles, form elements, and interactive controls.
var boilerplateTags = []string{
	"nav", "header", "footer", "aside",
	"script", "style", "noscript",
	"form", "button", "input", "select", "textarea",
}

// ARIA landmark roles that mark page furniture.
var boilerplateRoles = []string{
	"navigation", "banner", "contentinfo", "complementary",
}

// id/class substring patterns for furniture that carries no semantic tag.
// The footer and header tags reappear here because many sites duplicate
// them as class names on plain divs.
var boilerplatePatterns = []string{
	"nav", "menu", "sidebar",
	"ad", "ads", "advert",
	"social", "comment", "related",
	"footer", "header",
	"cookie", "popup", "modal", "newsletter", "subscribe",
}

// denyRule is one rule in the boilerplate deny-list.
type denyRule struct {
	Name  string
	Match func(n *html.Node) bool
}

// denyRules is the assembled deny-list. The rules are independent OR
// conditions; order only affects which rule gets credit for a removal.
var denyRules = buildDenyRules()

func buildDenyRules() []denyRule {
	var rules []denyRule
	for _, tag := range boilerplateTags {
		rules = append(rules, denyRule{Name: "tag-" + tag, Match: tagMatcher(tag)})
	}
	for _, role := range boilerplateRoles {
		rules = append(rules, denyRule{Name: "role-" + role, Match: roleMatcher(role)})
	}
	rules = append(rules, denyRule{
		Name: "aria-hidden",
		Match: func(n *html.Node) bool {
			return strings.EqualFold(attrVal(n, "aria-hidden"), "true")
		},
	})
	for _, pattern := range boilerplatePatterns {
		rules = append(rules, denyRule{Name: "pattern-" + pattern, Match: idClassMatcher(pattern)})
	}
	return rules
}

func matchesDenyList(n *html.Node) bool {
	for _, rule := range denyRules {
		if rule.Match(n) {
			return true
		}
	}
	return false
}

// stripBoilerplate removes every element matching the deny-list, in place.
// Heading collection must run before this; content selection and markdown
// rendering run after.
func stripBoilerplate(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && matchesDenyList(c) {
			n.RemoveChild(c)
			continue
		}
		stripBoilerplate(c)
	}
}
