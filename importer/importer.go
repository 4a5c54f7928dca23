// Package importer implements the recipe import pipeline: fetch the page,
// sanitize it, then hand the text to an extraction service.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"unicode/utf8"

	"github.com/marijep/recipeimport"
)

// Ensure Importer implements recipeimport.Importer at compile time.
var _ recipeimport.Importer = (*Importer)(nil)

// Importer runs the fetch and extract stages in sequence, stopping at the
// first failure.
type Importer struct {
	Fetcher   recipeimport.Fetcher
	Extractor recipeimport.Extractor

	// Strict rejects replies that do not decode into a valid Recipe.
	// By default replies pass through unchanged.
	Strict bool
}

// Import fetches url and extracts its recipe.
func (i *Importer) Import(ctx context.Context, url string) (json.RawMessage, error) {
	if url == "" {
		return nil, recipeimport.Errorf(recipeimport.EINVALID, "Invalid request body")
	}

	text, err := i.fetchText(ctx, url)
	if err != nil {
		return nil, recipeimport.Errorf(recipeimport.EUNPROCESSABLE, "Could not fetch the recipe page: %s", detail(err))
	}

	reply, err := i.Extractor.Extract(ctx, url, text)
	if err != nil {
		return nil, recipeimport.Errorf(recipeimport.EINTERNAL, "Recipe extraction failed: %s", detail(err))
	}

	if e := recipeimport.ExtractionError(reply); e != nil {
		return nil, e
	}

	if i.Strict {
		if err := validate(reply); err != nil {
			return nil, recipeimport.Errorf(recipeimport.EINTERNAL, "Recipe extraction failed: invalid recipe: %s", detail(err))
		}
	}

	return reply, nil
}

// fetchText fetches the page and reduces it to sanitized text.
func (i *Importer) fetchText(ctx context.Context, url string) (string, error) {
	html, err := i.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	text := recipeimport.SanitizeHTML(html)
	if utf8.RuneCountInString(text) < recipeimport.MinPageTextLen {
		return "", recipeimport.Errorf(recipeimport.EUNPROCESSABLE, "Could not extract text from page")
	}
	return text, nil
}

func validate(reply json.RawMessage) error {
	var r recipeimport.Recipe
	if err := json.Unmarshal(reply, &r); err != nil {
		return err
	}
	return r.Validate()
}

// detail returns the message of an application error, or the error text of
// any other error.
func detail(err error) string {
	var e *recipeimport.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
