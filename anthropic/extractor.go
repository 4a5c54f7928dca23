// Package anthropic provides a recipeimport.Extractor backed by the
// Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/marijep/recipeimport"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "claude-haiku-4-5-20251001"

// DefaultTimeout bounds a single extraction call.
const DefaultTimeout = 60 * time.Second

// Ensure Extractor implements recipeimport.Extractor at compile time.
var _ recipeimport.Extractor = (*Extractor)(nil)

// Extractor implements recipeimport.Extractor using Claude.
type Extractor struct {
	client  anthropic.Client
	config  recipeimport.ExtractorConfig
	timeout time.Duration
}

// NewClient creates an API client. Retries are disabled: a failed call
// fails the import.
func NewClient(apiKey string, opts ...option.RequestOption) anthropic.Client {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	return anthropic.NewClient(opts...)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTimeout sets the per-call timeout.
// Defaults to DefaultTimeout (60s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		e.timeout = d
	}
}

// NewExtractor creates a new Extractor. Zero config fields take the
// package defaults.
func NewExtractor(client anthropic.Client, config recipeimport.ExtractorConfig, opts ...Option) *Extractor {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.SystemPrompt == "" {
		config.SystemPrompt = recipeimport.SystemPrompt
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = recipeimport.DefaultMaxTokens
	}
	e := &Extractor{client: client, config: config, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract asks Claude for the recipe on the page.
func (e *Extractor) Extract(ctx context.Context, pageURL, pageText string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.Messages.New(ctx, BuildParams(e.config, pageURL, pageText))
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, recipeimport.Errorf(recipeimport.EINTERNAL, "Claude API error: %d", apiErr.StatusCode)
		}
		return nil, err
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(b.Text)
		}
	}

	reply, err := recipeimport.ParseReply(text.String())
	if err != nil {
		return nil, recipeimport.Errorf(recipeimport.EINTERNAL, "Could not parse Claude response")
	}
	return reply, nil
}

// BuildParams returns the Messages API request for a page.
func BuildParams(config recipeimport.ExtractorConfig, pageURL, pageText string) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:     anthropic.Model(config.Model),
		MaxTokens: config.MaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: config.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(recipeimport.BuildUserPrompt(pageURL, pageText))),
		},
	}
}
