package mock

import (
	"context"
	"encoding/json"

	"github.com/marijep/recipeimport"
)

var _ recipeimport.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of recipeimport.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, pageURL, pageText string) (json.RawMessage, error)
}

func (e *Extractor) Extract(ctx context.Context, pageURL, pageText string) (json.RawMessage, error) {
	return e.ExtractFn(ctx, pageURL, pageText)
}
