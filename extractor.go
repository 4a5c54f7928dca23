package recipeimport

import (
	"context"
	"encoding/json"
	"fmt"
)

// Extractor turns sanitized page text into a recipe using an external
// language-model service.
type Extractor interface {
	// Extract sends the page to the service and returns the parsed JSON
	// reply. The reply is either a recipe or an extraction error sentinel;
	// callers tell them apart with ExtractionError.
	// Service failures are returned as EINTERNAL errors.
	Extract(ctx context.Context, pageURL, pageText string) (json.RawMessage, error)
}

// DefaultMaxTokens bounds the length of the service's reply.
const DefaultMaxTokens = 1500

// SystemPrompt instructs the service to reply with a bare recipe object.
const SystemPrompt = `You are a recipe extraction assistant. Extract recipe details from webpage text and return ONLY valid JSON with no markdown, no backticks, no explanation.

Return exactly this structure:
{"name":"","category":"","ingredients":[{"qty":"","name":""}],"method":"","notes":""}

Rules:
- category must be one of: Breakfast, Lunch, Dinner, Baking, Soups, Salads, Desserts, Snacks, Condiments, Drinks. If unsure use Dinner.
- ingredients: split quantity and unit into qty (e.g. "2 cups"), name is just the ingredient (e.g. "flour")
- method: plain text, use newlines between steps, no numbering needed
- notes: any tips, serving suggestions, or variations. Leave empty string if none.
- If no recipe is found on the page, return {"error":"No recipe found on this page"}`

// BuildUserPrompt builds the user message carrying the page to extract from.
func BuildUserPrompt(pageURL, pageText string) string {
	return fmt.Sprintf("Extract the recipe from this webpage.\nURL: %s\n\n%s", pageURL, pageText)
}

// ExtractorConfig holds the fixed request parameters shared by all
// extraction backends.
type ExtractorConfig struct {
	Model        string
	SystemPrompt string
	MaxTokens    int64
}
