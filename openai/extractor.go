// Package openai provides a recipeimport.Extractor backed by OpenAI chat
// completions, or any endpoint compatible with them.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/marijep/recipeimport"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// DefaultTimeout bounds a single extraction call.
const DefaultTimeout = 60 * time.Second

// Ensure Extractor implements recipeimport.Extractor at compile time.
var _ recipeimport.Extractor = (*Extractor)(nil)

// Extractor implements recipeimport.Extractor using OpenAI.
type Extractor struct {
	client  openai.Client
	config  recipeimport.ExtractorConfig
	timeout time.Duration
}

// NewClient creates an API client with retries disabled.
// A non-empty baseURL points it at a compatible endpoint.
func NewClient(apiKey, baseURL string, opts ...option.RequestOption) openai.Client {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		base = append(base, option.WithBaseURL(baseURL))
	}
	return openai.NewClient(append(base, opts...)...)
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
func NewExtractor(client openai.Client, config recipeimport.ExtractorConfig, opts ...Option) *Extractor {
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

// Extract asks the chat completions endpoint for the recipe on the page.
func (e *Extractor) Extract(ctx context.Context, pageURL, pageText string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.Chat.Completions.New(ctx, BuildParams(e.config, pageURL, pageText))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, recipeimport.Errorf(recipeimport.EINTERNAL, "OpenAI API error: %d", apiErr.StatusCode)
		}
		return nil, err
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	reply, err := recipeimport.ParseReply(content)
	if err != nil {
		return nil, recipeimport.Errorf(recipeimport.EINTERNAL, "Could not parse OpenAI response")
	}
	return reply, nil
}

// BuildParams returns the chat completion request for a page.
func BuildParams(config recipeimport.ExtractorConfig, pageURL, pageText string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: config.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.SystemPrompt),
			openai.UserMessage(recipeimport.BuildUserPrompt(pageURL, pageText)),
		},
		MaxCompletionTokens: openai.Int(config.MaxTokens),
	}
}
