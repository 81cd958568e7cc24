package webextract

// Heading is a document heading gathered from the unfiltered node tree.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// MarkdownResult holds the readable-article view of a page.
type MarkdownResult struct {
	Markdown  string    `json:"markdown"`
	Headings  []Heading `json:"headings"`
	WordCount int       `json:"word_count"`

	// Warnings carries non-fatal advisories. They are surfaced in the
	// response envelope's meta block, not in the data payload.
	Warnings []string `json:"-"`
}

// WarnLowWordCount is attached when the rendered markdown contains fewer
// than 50 words. It never changes the success status of an extraction.
const WarnLowWordCount = "content may be JS-rendered or unusually structured"

// MarkdownExtractor converts raw HTML into the markdown view: main content
// selected, boilerplate removed, markdown rendered, headings collected from
// the tree as parsed (before boilerplate removal).
type MarkdownExtractor interface {
	ExtractMarkdown(html string) (*MarkdownResult, error)
}

// Converter converts a clean HTML fragment to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
