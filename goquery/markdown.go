package goquery

import (
	"strings"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// Ensure Engine implements the extraction interfaces at compile time.
var (
	_ webextract.MarkdownExtractor = (*Engine)(nil)
	_ webextract.TableExtractor    = (*Engine)(nil)
	_ webextract.MetadataExtractor = (*Engine)(nil)
)

// Engine implements the three extraction views over a goquery node tree.
// It holds no state; every call parses a fresh tree, so concurrent calls
// need no coordination.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// ExtractMarkdown produces the readable-article view. Headings are
// collected from the tree as parsed; boilerplate removal, content
// selection, and rendering happen afterwards, in that order. A heading
// inside a stripped navigation block therefore appears in Headings but not
// in Markdown. This asymmetry is intentional.
func (e *Engine) ExtractMarkdown(rawHTML string) (*webextract.MarkdownResult, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}

	headings := CollectHeadings(doc)

	root := doc.Get(0)
	stripBoilerplate(root)

	content := selectContent(doc)
	markdown := renderMarkdown(content)
	wordCount := len(strings.Fields(markdown))

	result := &webextract.MarkdownResult{
		Markdown:  markdown,
		Headings:  headings,
		WordCount: wordCount,
	}
	if wordCount < 50 {
		result.Warnings = append(result.Warnings, webextract.WarnLowWordCount)
	}
	return result, nil
}
