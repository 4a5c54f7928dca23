package recipeimport

import (
	"context"
	"encoding/json"
)

// Importer turns a recipe page URL into a recipe.
type Importer interface {
	// Import fetches url, extracts its recipe and returns the recipe JSON.
	//
	// Errors carry the code the caller reports to the client:
	// EINVALID for a missing url, EUNPROCESSABLE when the page cannot be
	// fetched or holds too little text, ENOTFOUND when the service finds no
	// recipe, and EINTERNAL when the extraction service fails.
	Import(ctx context.Context, url string) (json.RawMessage, error)
}
