package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
	"github.com/BUZDOLAPCI/webpage-extract/htmltomarkdown"
	"github.com/BUZDOLAPCI/webpage-extract/trafilatura"
)

func newExtractor() *trafilatura.Extractor {
	return trafilatura.NewExtractor(htmltomarkdown.NewConverter())
}

func TestExtractor_ExtractMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("extracts article content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Page</title></head><body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<article>
<h1>The Main Story</h1>
<p>This is the first paragraph of the article body, with enough text
to look like real content rather than navigation chrome. It keeps going
for a while so the readability heuristics have something to latch onto.</p>
<p>A second paragraph continues the story with more sentences and more
words, because statistical extraction favors text-dense regions.</p>
</article>
<footer>Copyright 2026</footer>
</body></html>`

		result, err := newExtractor().ExtractMarkdown(html)
		require.NoError(t, err)

		assert.Contains(t, result.Markdown, "first paragraph of the article")
		assert.NotContains(t, result.Markdown, "Copyright 2026")
		assert.Greater(t, result.WordCount, 0)
	})

	t.Run("collects headings from the full tree", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<header><h1>Site Name</h1></header>
<article><h2>Story</h2><p>Body text for the story goes here.</p></article>
</body></html>`

		result, err := newExtractor().ExtractMarkdown(html)
		require.NoError(t, err)

		require.Len(t, result.Headings, 2)
		assert.Equal(t, webextract.Heading{Level: 1, Text: "Site Name"}, result.Headings[0])
		assert.Equal(t, webextract.Heading{Level: 2, Text: "Story"}, result.Headings[1])
	})

	t.Run("warns on low word count", func(t *testing.T) {
		t.Parallel()

		result, err := newExtractor().ExtractMarkdown(`<html><body><p>Tiny.</p></body></html>`)
		require.NoError(t, err)

		assert.Contains(t, result.Warnings, webextract.WarnLowWordCount)
	})

	t.Run("no warning at fifty words or more", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("word ", 80)
		html := `<html><body><article><h1>Title</h1><p>` + body + `</p></article></body></html>`

		result, err := newExtractor().ExtractMarkdown(html)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.WordCount, 50)
		assert.NotContains(t, result.Warnings, webextract.WarnLowWordCount)
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := newExtractor().ExtractMarkdown("   ")
		require.Error(t, err)
		assert.Equal(t, webextract.EINVALID, webextract.ErrorCode(err))
	})

	t.Run("unextractable page yields empty markdown, not an error", func(t *testing.T) {
		t.Parallel()

		result, err := newExtractor().ExtractMarkdown(`<html><body></body></html>`)
		require.NoError(t, err)

		assert.Equal(t, "", result.Markdown)
		assert.Equal(t, 0, result.WordCount)
		assert.Contains(t, result.Warnings, webextract.WarnLowWordCount)
	})
}
