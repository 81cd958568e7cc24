package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BUZDOLAPCI/webpage-extract/goquery"
)

func TestEngine_BoilerplateRemoval(t *testing.T) {
	t.Parallel()

	extract := func(t *testing.T, html string) string {
		t.Helper()
		e := goquery.NewEngine()
		result, err := e.ExtractMarkdown(html)
		require.NoError(t, err)
		return result.Markdown
	}

	t.Run("removes structural furniture tags", func(t *testing.T) {
		t.Parallel()

		html := `<body><nav>navigation</nav><aside>aside text</aside><footer>footer text</footer><p>kept</p></body>`

		md := extract(t, html)
		assert.Contains(t, md, "kept")
		assert.NotContains(t, md, "navigation")
		assert.NotContains(t, md, "aside text")
		assert.NotContains(t, md, "footer text")
	})

	t.Run("removes form elements and interactive controls", func(t *testing.T) {
		t.Parallel()

		html := `<body><form><input name="q"><button>Go</button></form><p>kept</p></body>`

		md := extract(t, html)
		assert.Contains(t, md, "kept")
		assert.NotContains(t, md, "Go")
	})

	t.Run("removes elements by ARIA role", func(t *testing.T) {
		t.Parallel()

		html := `<body><div role="banner">site banner</div><div role="contentinfo">legal</div><p>kept</p></body>`

		md := extract(t, html)
		assert.Contains(t, md, "kept")
		assert.NotContains(t, md, "site banner")
		assert.NotContains(t, md, "legal")
	})

	t.Run("removes aria-hidden elements", func(t *testing.T) {
		t.Parallel()

		html := `<body><div aria-hidden="true">invisible</div><p>kept</p></body>`

		md := extract(t, html)
		assert.Contains(t, md, "kept")
		assert.NotContains(t, md, "invisible")
	})

	t.Run("removes elements by id and class patterns", func(t *testing.T) {
		t.Parallel()

		html := `<body><div class="sidebar">side</div><div id="cookie-banner">cookies</div><div class="newsletter-signup">signup</div><p>kept</p></body>`

		md := extract(t, html)
		assert.Contains(t, md, "kept")
		assert.NotContains(t, md, "side")
		assert.NotContains(t, md, "cookies")
		assert.NotContains(t, md, "signup")
	})

	t.Run("keeps content with unrelated class names", func(t *testing.T) {
		t.Parallel()

		html := `<body><div class="prose"><p>kept text</p></div></body>`

		md := extract(t, html)
		assert.Contains(t, md, "kept text")
	})
}
