package providers

import (
	"context"
	"errors"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmbeddingsNotSupported is returned by providers that have no
// embeddings API.
var ErrEmbeddingsNotSupported = errors.New("provider does not support embeddings")

// Provider defines the interface for all LLM vendors.
type Provider interface {
	// Name returns the provider's display name.
	Name() string

	// Complete performs a chat completion. The model is taken from the
	// "model: <name>" marker in the first system message, which the
	// provider strips before dispatch.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Embed returns an embedding vector for the text. Providers without
	// an embeddings API return ErrEmbeddingsNotSupported.
	Embed(ctx context.Context, text string) ([]float64, error)

	// GetModels returns the models this provider offers.
	GetModels(ctx context.Context) ([]Model, error)
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest represents a chat completion request.
type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// CompletionResponse represents a completion result. TotalTokens is the
// vendor-reported total (prompt plus completion) and is what gets debited
// from the user's budget.
type CompletionResponse struct {
	Content     string `json:"content"`
	Model       string `json:"model"`
	TotalTokens int    `json:"total_tokens"`
}

// Model represents an available model.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
