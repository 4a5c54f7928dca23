package anthropic_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/marijep/recipeimport"
	"github.com/marijep/recipeimport/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// messagesServer fakes the Messages API, replying with the given text blocks.
func messagesServer(t *testing.T, requests chan<- []byte, blocks ...string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if requests != nil {
			requests <- body
		}
		content := make([]map[string]string, 0, len(blocks))
		for _, b := range blocks {
			content = append(content, map[string]string{"type": "text", "text": b})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "msg_01",
			"type":          "message",
			"role":          "assistant",
			"model":         anthropic.DefaultModel,
			"content":       content,
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"usage":         map[string]int{"input_tokens": 10, "output_tokens": 20},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func newExtractor(server *httptest.Server) *anthropic.Extractor {
	client := anthropic.NewClient("test-key", option.WithBaseURL(server.URL+"/"))
	return anthropic.NewExtractor(client, recipeimport.ExtractorConfig{})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns recipe JSON", func(t *testing.T) {
		t.Parallel()

		server := messagesServer(t, nil, `{"name":"Pie","category":"Desserts"}`)

		raw, err := newExtractor(server).Extract(context.Background(), "https://example.com/pie", "Pie text")

		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Pie","category":"Desserts"}`, string(raw))
	})

	t.Run("sends configured request", func(t *testing.T) {
		t.Parallel()

		requests := make(chan []byte, 1)
		server := messagesServer(t, requests, `{"name":"Pie"}`)

		_, err := newExtractor(server).Extract(context.Background(), "https://example.com/pie", "Pie text")
		require.NoError(t, err)

		body := <-requests
		assert.Equal(t, anthropic.DefaultModel, gjson.GetBytes(body, "model").String())
		assert.Equal(t, int64(recipeimport.DefaultMaxTokens), gjson.GetBytes(body, "max_tokens").Int())
		assert.Equal(t, recipeimport.SystemPrompt, gjson.GetBytes(body, "system.0.text").String())
		assert.Equal(t, "user", gjson.GetBytes(body, "messages.0.role").String())
		assert.Equal(t,
			recipeimport.BuildUserPrompt("https://example.com/pie", "Pie text"),
			gjson.GetBytes(body, "messages.0.content.0.text").String(),
		)
	})

	t.Run("concatenates text blocks", func(t *testing.T) {
		t.Parallel()

		server := messagesServer(t, nil, `{"name":`, `"Pie"}`)

		raw, err := newExtractor(server).Extract(context.Background(), "https://example.com/pie", "Pie text")

		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Pie"}`, string(raw))
	})

	t.Run("recovers JSON wrapped in code fences", func(t *testing.T) {
		t.Parallel()

		server := messagesServer(t, nil, "Here you go:\n```json\n{\"name\":\"Pie\"}\n```")

		raw, err := newExtractor(server).Extract(context.Background(), "https://example.com/pie", "Pie text")

		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Pie"}`, string(raw))
	})

	t.Run("returns sentinel unchanged", func(t *testing.T) {
		t.Parallel()

		server := messagesServer(t, nil, `{"error":"No recipe found on this page"}`)

		raw, err := newExtractor(server).Extract(context.Background(), "https://example.com/blog", "Blog text")

		require.NoError(t, err)
		e := recipeimport.ExtractionError(raw)
		require.NotNil(t, e)
		assert.Equal(t, "No recipe found on this page", e.Message)
	})

	t.Run("reports unparsable replies", func(t *testing.T) {
		t.Parallel()

		server := messagesServer(t, nil, "Sorry, I cannot help with that.")

		_, err := newExtractor(server).Extract(context.Background(), "https://example.com/pie", "Pie text")

		assert.Equal(t, recipeimport.EINTERNAL, recipeimport.ErrorCode(err))
		assert.Equal(t, "Could not parse Claude response", recipeimport.ErrorMessage(err))
	})

	t.Run("reports API status errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"type":"error","error":{"type":"api_error","message":"boom"}}`)
		}))
		defer server.Close()

		_, err := newExtractor(server).Extract(context.Background(), "https://example.com/pie", "Pie text")

		assert.Equal(t, recipeimport.EINTERNAL, recipeimport.ErrorCode(err))
		assert.Equal(t, "Claude API error: 500", recipeimport.ErrorMessage(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := messagesServer(t, nil, `{"name":"Pie"}`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newExtractor(server).Extract(ctx, "https://example.com/pie", "Pie text")

		require.Error(t, err)
	})
}

func TestBuildParams_UsesConfig(t *testing.T) {
	t.Parallel()

	params := anthropic.BuildParams(recipeimport.ExtractorConfig{
		Model:        "claude-test",
		SystemPrompt: "Be brief.",
		MaxTokens:    42,
	}, "https://example.com/", "text")

	assert.Equal(t, "claude-test", string(params.Model))
	assert.Equal(t, int64(42), params.MaxTokens)
	require.Len(t, params.System, 1)
	assert.Equal(t, "Be brief.", params.System[0].Text)
	require.Len(t, params.Messages, 1)
}
