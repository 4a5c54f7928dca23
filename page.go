package recipeimport

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Page text bounds, in characters.
const (
	MaxPageTextLen = 8000
	MinPageTextLen = 100
)

// Fetcher retrieves the raw HTML of a recipe page.
type Fetcher interface {
	// Fetch issues a GET for url and returns the response body.
	// Non-success statuses are reported as EUNPROCESSABLE errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// Block elements whose whole content is dropped, in removal order.
var blockPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script.*?</script>`),
	regexp.MustCompile(`(?is)<style.*?</style>`),
	regexp.MustCompile(`(?is)<nav.*?</nav>`),
	regexp.MustCompile(`(?is)<footer.*?</footer>`),
	regexp.MustCompile(`(?is)<header.*?</header>`),
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// SanitizeHTML reduces an HTML document to bounded plain text.
//
// Script, style, nav, footer and header blocks are removed with their
// content, remaining tags become spaces, whitespace runs collapse to a single
// space, and the result is trimmed and cut to MaxPageTextLen characters.
// Entities are left encoded.
func SanitizeHTML(html string) string {
	s := html
	for _, re := range blockPatterns {
		s = re.ReplaceAllString(s, "")
	}
	s = tagPattern.ReplaceAllString(s, " ")
	s = strings.Join(strings.FieldsFunc(s, isSpace), " ")
	return truncate(s, MaxPageTextLen)
}

// isSpace reports whether r is white space as browsers' regular expressions
// define it. Unlike unicode.IsSpace this includes the byte order mark and
// excludes U+0085.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
