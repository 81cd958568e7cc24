// Package trafilatura provides an alternative markdown extraction engine
// backed by go-trafilatura's readability heuristics. It trades the
// deterministic selector rules of the default engine for statistical
// content detection, which copes better with unusual page structures.
package trafilatura

import (
	"bytes"
	"strings"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
	"github.com/BUZDOLAPCI/webpage-extract/goquery"
)

// Ensure Extractor implements webextract.MarkdownExtractor at compile time.
var _ webextract.MarkdownExtractor = (*Extractor)(nil)

// Extractor selects main content with trafilatura and renders it to
// markdown through a Converter.
type Extractor struct {
	converter webextract.Converter
}

// NewExtractor creates a new Extractor rendering through the given converter.
func NewExtractor(converter webextract.Converter) *Extractor {
	return &Extractor{converter: converter}
}

// ExtractMarkdown processes raw HTML and returns the markdown view.
// Headings are collected from the full tree as parsed, so headings in
// parts trafilatura discards still appear in the outline.
func (e *Extractor) ExtractMarkdown(rawHTML string) (*webextract.MarkdownResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webextract.Errorf(webextract.EINVALID, "empty HTML input")
	}

	doc, err := gq.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, webextract.Errorf(webextract.EPARSE, "failed to parse HTML: %v", err)
	}
	headings := goquery.CollectHeadings(doc)

	markdown, err := e.contentMarkdown(rawHTML)
	if err != nil {
		return nil, err
	}

	result := &webextract.MarkdownResult{
		Markdown:  markdown,
		Headings:  headings,
		WordCount: len(strings.Fields(markdown)),
	}
	if result.WordCount < 50 {
		result.Warnings = append(result.Warnings, webextract.WarnLowWordCount)
	}
	return result, nil
}

// contentMarkdown runs trafilatura content selection and converts the
// selected subtree to markdown. A page trafilatura cannot make sense of
// yields empty markdown rather than an error.
func (e *Extractor) contentMarkdown(rawHTML string) (string, error) {
	opts := trafilatura.Options{
		EnableFallback: true,
	}

	extracted, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || extracted.ContentNode == nil {
		return "", nil
	}

	contentHTML, err := renderNode(extracted.ContentNode)
	if err != nil {
		return "", err
	}

	markdown, err := e.converter.Convert(contentHTML)
	if err != nil {
		return "", err
	}
	return goquery.FinalizeMarkdown(markdown), nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
