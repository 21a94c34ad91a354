package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardboost/boardboost/internal/config"
	"github.com/boardboost/boardboost/internal/providers"
)

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewProvider("anthropic", config.ProviderConfig{})
	assert.Error(t, err)
}

func TestEmbed_NotSupported(t *testing.T) {
	p, err := NewProvider("anthropic", config.ProviderConfig{APIKey: "key"})
	require.NoError(t, err)

	_, err = p.Embed(context.Background(), "hello")
	assert.ErrorIs(t, err, providers.ErrEmbeddingsNotSupported)
}

func TestComplete_MapsMessagesAndUsage(t *testing.T) {
	var got anthropicRequest
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "msg_1",
			"role":  "assistant",
			"model": got.Model,
			"content": []map[string]string{
				{"type": "text", "text": "Use pin 13."},
			},
			"usage": map[string]int{"input_tokens": 30, "output_tokens": 12},
		})
	}))
	defer server.Close()

	p, err := NewProvider("anthropic", config.ProviderConfig{
		APIKey:  "key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), providers.CompletionRequest{
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: "Be helpful.\nmodel: claude-3-haiku-20240307"},
			{Role: providers.RoleSystem, Content: "Extra context."},
			{Role: providers.RoleUser, Content: "How do I blink an LED?"},
			{Role: providers.RoleAssistant, Content: "With digitalWrite."},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	require.NoError(t, err)

	// The marker picks the model and is stripped; system messages merge
	// into the top-level field.
	assert.Equal(t, "claude-3-haiku-20240307", got.Model)
	assert.Equal(t, "Be helpful.\n\nExtra context.", got.System)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, 1000, got.MaxTokens)

	assert.Equal(t, "key", gotHeaders.Get("x-api-key"))
	assert.Equal(t, anthropicVersion, gotHeaders.Get("anthropic-version"))

	assert.Equal(t, "Use pin 13.", resp.Content)
	assert.Equal(t, 42, resp.TotalTokens)
}

func TestComplete_APIErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p, err := NewProvider("anthropic", config.ProviderConfig{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), providers.CompletionRequest{
		Messages: []providers.Message{{Role: providers.RoleUser, Content: "hi"}},
	})
	assert.Error(t, err)
}
