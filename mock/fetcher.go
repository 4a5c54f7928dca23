package mock

import (
	"context"

	"github.com/marijep/recipeimport"
)

var _ recipeimport.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of recipeimport.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
