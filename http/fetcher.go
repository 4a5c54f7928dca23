// Package http provides the HTTP surface of recipeimport: the import
// endpoint server and the Fetcher that retrieves recipe pages.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/marijep/recipeimport"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxPageBytes caps how much of a page body is read.
const DefaultMaxPageBytes = 5 << 20

// UserAgent identifies the importer to recipe sites.
const UserAgent = "Mozilla/5.0 (compatible; recipe-importer/1.0)"

// Ensure Fetcher implements recipeimport.Fetcher at compile time.
var _ recipeimport.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves recipe page HTML using plain HTTP requests.
// Redirects are followed; JavaScript is not executed.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for page requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets how many body bytes are read per page.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxPageBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", recipeimport.Errorf(recipeimport.EUNPROCESSABLE, "Page returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}
