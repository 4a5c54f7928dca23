// Package gemini provides a recipeimport.Extractor backed by Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/marijep/recipeimport"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds a single extraction call.
const DefaultTimeout = 60 * time.Second

// Ensure Extractor implements recipeimport.Extractor at compile time.
var _ recipeimport.Extractor = (*Extractor)(nil)

// Extractor implements recipeimport.Extractor using Google Gemini.
type Extractor struct {
	client  *genai.Client
	config  recipeimport.ExtractorConfig
	timeout time.Duration
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
func NewExtractor(client *genai.Client, config recipeimport.ExtractorConfig, opts ...Option) *Extractor {
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

// Extract asks Gemini for the recipe on the page.
func (e *Extractor) Extract(ctx context.Context, pageURL, pageText string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result, err := e.client.Models.GenerateContent(ctx, e.config.Model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: recipeimport.BuildUserPrompt(pageURL, pageText)}},
		}},
		BuildConfig(e.config),
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, recipeimport.Errorf(recipeimport.EINTERNAL, "Gemini API error: %d", apiErr.Code)
		}
		return nil, err
	}
	if result == nil {
		return nil, recipeimport.Errorf(recipeimport.EINTERNAL, "gemini returned nil result")
	}

	reply, err := recipeimport.ParseReply(result.Text())
	if err != nil {
		return nil, recipeimport.Errorf(recipeimport.EINTERNAL, "Could not parse Gemini response")
	}
	return reply, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(config recipeimport.ExtractorConfig) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: config.SystemPrompt}},
		},
		MaxOutputTokens:  int32(config.MaxTokens),
		ResponseMIMEType: "application/json",
	}
}
