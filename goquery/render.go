package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	spaceRun     = regexp.MustCompile(`\s+`)
)

// FinalizeMarkdown applies the shared post-processing contract: collapse
// any run of 3+ consecutive newlines to exactly 2, then trim leading and
// trailing whitespace.
func FinalizeMarkdown(s string) string {
	return strings.TrimSpace(multiNewline.ReplaceAllString(s, "\n\n"))
}

// renderMarkdown depth-first converts a node subtree to markdown text.
func renderMarkdown(root *html.Node) string {
	var b strings.Builder
	if root.Type == html.ElementNode {
		renderBlock(&b, root)
	} else {
		renderChildren(&b, root)
	}
	return FinalizeMarkdown(b.String())
}

// blockTags are elements rendered as blocks of their own; everything else
// participates in inline runs.
var blockTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"ul": true, "ol": true, "li": true, "pre": true, "blockquote": true,
	"hr": true, "table": true, "thead": true, "tbody": true, "tfoot": true,
	"tr": true, "td": true, "th": true, "figure": true, "figcaption": true,
	"dl": true, "dt": true, "dd": true, "details": true, "summary": true,
	"header": true, "footer": true, "nav": true, "aside": true, "address": true,
	"html": true, "body": true, "head": true,
}

func isBlockTag(tag string) bool {
	return blockTags[strings.ToLower(tag)]
}

func renderBlock(b *strings.Builder, n *html.Node) {
	switch tag := strings.ToLower(n.Data); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := collapseWhitespace(renderInline(n))
		if text != "" {
			b.WriteString(strings.Repeat("#", int(tag[1]-'0')))
			b.WriteString(" ")
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	case "p":
		text := strings.TrimSpace(renderInline(n))
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	case "ul", "ol":
		renderList(b, n, 0)
		b.WriteString("\n")
	case "pre":
		renderCodeBlock(b, n)
	case "blockquote":
		var inner strings.Builder
		renderChildren(&inner, n)
		quoted := FinalizeMarkdown(inner.String())
		if quoted != "" {
			for _, line := range strings.Split(quoted, "\n") {
				b.WriteString("> ")
				b.WriteString(line)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	case "hr":
		b.WriteString("---\n\n")
	case "table":
		renderTable(b, n)
	case "head":
		// nothing renderable
	default:
		renderChildren(b, n)
	}
}

// renderChildren walks a container, rendering block children recursively
// and grouping runs of consecutive inline nodes into paragraphs.
func renderChildren(b *strings.Builder, n *html.Node) {
	var run []*html.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		var ib strings.Builder
		for _, c := range run {
			ib.WriteString(renderInlineNode(c))
		}
		if text := strings.TrimSpace(ib.String()); text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
		run = nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlockTag(c.Data) {
			flush()
			renderBlock(b, c)
			continue
		}
		if c.Type == html.TextNode || c.Type == html.ElementNode {
			run = append(run, c)
		}
	}
	flush()
}

// renderInline renders the inline markdown of n's children.
func renderInline(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(renderInlineNode(c))
	}
	return b.String()
}

func renderInlineNode(n *html.Node) string {
	if n.Type == html.TextNode {
		return spaceRun.ReplaceAllString(n.Data, " ")
	}
	if n.Type != html.ElementNode {
		return ""
	}

	switch strings.ToLower(n.Data) {
	case "strong", "b":
		if text := strings.TrimSpace(renderInline(n)); text != "" {
			return "**" + text + "**"
		}
		return ""
	case "em", "i":
		if text := strings.TrimSpace(renderInline(n)); text != "" {
			return "*" + text + "*"
		}
		return ""
	case "a":
		text := strings.TrimSpace(renderInline(n))
		if text == "" {
			return ""
		}
		href := attrVal(n, "href")
		if href == "" {
			return text
		}
		return "[" + text + "](" + href + ")"
	case "code":
		if text := strings.TrimSpace(textContent(n)); text != "" {
			return "`" + text + "`"
		}
		return ""
	case "br":
		return "\n"
	case "script", "style":
		return ""
	default:
		return renderInline(n)
	}
}

func renderList(b *strings.Builder, list *html.Node, depth int) {
	ordered := strings.EqualFold(list.Data, "ol")
	indent := strings.Repeat("  ", depth)
	i := 0
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || !strings.EqualFold(c.Data, "li") {
			continue
		}
		i++
		marker := "-"
		if ordered {
			marker = fmt.Sprintf("%d.", i)
		}

		// Render the item's own inline content; nested lists are pulled
		// out and rendered one level deeper.
		var ib strings.Builder
		var nested []*html.Node
		for lc := c.FirstChild; lc != nil; lc = lc.NextSibling {
			if lc.Type == html.ElementNode && (strings.EqualFold(lc.Data, "ul") || strings.EqualFold(lc.Data, "ol")) {
				nested = append(nested, lc)
				continue
			}
			ib.WriteString(renderInlineNode(lc))
		}
		if text := collapseWhitespace(ib.String()); text != "" {
			b.WriteString(indent)
			b.WriteString(marker)
			b.WriteString(" ")
			b.WriteString(text)
			b.WriteString("\n")
		}
		for _, sub := range nested {
			renderList(b, sub, depth+1)
		}
	}
}

func renderCodeBlock(b *strings.Builder, pre *html.Node) {
	text := strings.Trim(textContent(pre), "\n")
	b.WriteString("```")
	b.WriteString(codeLanguage(pre))
	b.WriteString("\n")
	b.WriteString(text)
	b.WriteString("\n```\n\n")
}

// codeLanguage returns the language tag from a language-xxx class on a
// nested code element, or "" for an untagged fence.
func codeLanguage(pre *html.Node) string {
	var lang string
	eachElement(pre, func(n *html.Node) bool {
		if !strings.EqualFold(n.Data, "code") {
			return true
		}
		for _, token := range strings.Fields(attrVal(n, "class")) {
			if rest, ok := strings.CutPrefix(strings.ToLower(token), "language-"); ok && rest != "" {
				lang = rest
				return false
			}
		}
		return true
	})
	return lang
}

// renderTable emits a pipe table from the rows of a table element. The
// first row doubles as the header line; normalization is left to the
// tables view, so rows keep their natural widths here.
func renderTable(b *strings.Builder, table *html.Node) {
	var cellRows [][]string
	for _, row := range scanTableRows(table) {
		if len(row.cells) > 0 {
			cellRows = append(cellRows, row.cells)
		}
	}
	if len(cellRows) == 0 {
		return
	}
	writeRow := func(cells []string) {
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	writeRow(cellRows[0])
	sep := make([]string, len(cellRows[0]))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)
	for _, cells := range cellRows[1:] {
		writeRow(cells)
	}
	b.WriteString("\n")
}
