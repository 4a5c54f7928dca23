package mock

import (
	"context"
	"encoding/json"

	"github.com/marijep/recipeimport"
)

var _ recipeimport.Importer = (*Importer)(nil)

// Importer is a mock implementation of recipeimport.Importer.
type Importer struct {
	ImportFn func(ctx context.Context, url string) (json.RawMessage, error)
}

func (i *Importer) Import(ctx context.Context, url string) (json.RawMessage, error) {
	return i.ImportFn(ctx, url)
}
