package recipeimport_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/marijep/recipeimport"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	t.Run("removes script blocks with their content", func(t *testing.T) {
		t.Parallel()

		html := `<p>Before</p><script type="text/javascript">var secret = "Visible Looking Text";</script><p>After</p>`

		text := recipeimport.SanitizeHTML(html)

		assert.Equal(t, "Before After", text)
		assert.NotContains(t, text, "Visible Looking Text")
	})

	t.Run("removes style nav header and footer blocks", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>.a { color: red; }</style></head><body>` +
			`<header>Site Header</header><nav><a href="/">Home</a></nav>` +
			`<main>Pancakes</main><footer>Copyright</footer></body></html>`

		text := recipeimport.SanitizeHTML(html)

		assert.Equal(t, "Pancakes", text)
	})

	t.Run("treats the byte order mark as white space", func(t *testing.T) {
		t.Parallel()

		text := recipeimport.SanitizeHTML("\ufeff<p>Soup</p>\u0085x")

		assert.Equal(t, "Soup \u0085x", text)
	})

	t.Run("collapses non-breaking and ideographic spaces", func(t *testing.T) {
		t.Parallel()

		text := recipeimport.SanitizeHTML("<p>Miso\u00a0\u3000 soup\u2009bowl</p>")

		assert.Equal(t, "Miso soup bowl", text)
	})

	t.Run("matches tags case-insensitively", func(t *testing.T) {
		t.Parallel()

		html := `<SCRIPT>alert(1)</SCRIPT><Style>p{}</STYLE><p>Soup</p>`

		assert.Equal(t, "Soup", recipeimport.SanitizeHTML(html))
	})

	t.Run("removes blocks minimally", func(t *testing.T) {
		t.Parallel()

		html := `<script>a</script>Keep<script>b</script>`

		assert.Equal(t, "Keep", recipeimport.SanitizeHTML(html))
	})

	t.Run("removes blocks spanning lines", func(t *testing.T) {
		t.Parallel()

		html := "<nav>\n<ul>\n<li>Menu</li>\n</ul>\n</nav>\n<p>Stew</p>"

		assert.Equal(t, "Stew", recipeimport.SanitizeHTML(html))
	})

	t.Run("replaces tags with spaces and collapses whitespace", func(t *testing.T) {
		t.Parallel()

		html := "<ul><li>2 cups flour</li><li>1 egg</li></ul>\n\n\t<p>Mix   well.</p>"

		assert.Equal(t, "2 cups flour 1 egg Mix well.", recipeimport.SanitizeHTML(html))
	})

	t.Run("does not decode entities", func(t *testing.T) {
		t.Parallel()

		html := "<p>Salt &amp; pepper</p>"

		assert.Equal(t, "Salt &amp; pepper", recipeimport.SanitizeHTML(html))
	})

	t.Run("returns empty text for empty document", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, recipeimport.SanitizeHTML("<html><body></body></html>"))
	})

	t.Run("truncates to max length", func(t *testing.T) {
		t.Parallel()

		html := "<p>" + strings.Repeat("a", recipeimport.MaxPageTextLen+500) + "</p>"

		text := recipeimport.SanitizeHTML(html)

		assert.Len(t, text, recipeimport.MaxPageTextLen)
	})

	t.Run("truncates by characters not bytes", func(t *testing.T) {
		t.Parallel()

		html := strings.Repeat("é", recipeimport.MaxPageTextLen+1)

		text := recipeimport.SanitizeHTML(html)

		assert.Equal(t, recipeimport.MaxPageTextLen, utf8.RuneCountInString(text))
		assert.True(t, utf8.ValidString(text))
	})

	t.Run("is idempotent on sanitized text", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Tomato Soup</h1><script>x()</script><p>Roast the tomatoes.</p>  <p>Blend.</p>`

		once := recipeimport.SanitizeHTML(html)
		twice := recipeimport.SanitizeHTML(once)

		assert.Equal(t, once, twice)
	})
}
