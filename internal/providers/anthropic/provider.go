package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/boardboost/boardboost/internal/config"
	"github.com/boardboost/boardboost/internal/providers"
)

const (
	anthropicAPIURL  = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"

	defaultModel = "claude-3-sonnet-20240229"
)

var modelChoices = []providers.Model{
	{ID: "claude-3-opus-20240229", Name: "Claude 3 Opus"},
	{ID: "claude-3-sonnet-20240229", Name: "Claude 3 Sonnet"},
	{ID: "claude-3-haiku-20240307", Name: "Claude 3 Haiku"},
	{ID: "claude-3-5-sonnet-20240620", Name: "Claude 3.5 Sonnet"},
	{ID: "claude-3-7-sonnet-20250219", Name: "Claude 3.7 Sonnet"},
}

// Provider implements the Anthropic provider. Anthropic has no embeddings
// API, so Embed reports ErrEmbeddingsNotSupported and embedding calls fall
// back to the default provider.
type Provider struct {
	id     string
	config config.ProviderConfig
	client *http.Client
}

// anthropicRequest represents a request to Anthropic's messages API.
type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float32            `json:"temperature,omitempty"`
	System      string             `json:"system,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse represents a response from Anthropic's messages API.
type anthropicResponse struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewProvider creates a new Anthropic provider.
func NewProvider(id string, cfg config.ProviderConfig) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}

	return &Provider{
		id:     id,
		config: cfg,
		client: &http.Client{},
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return p.config.Name
}

// Complete performs a chat completion. System messages are concatenated
// into Anthropic's top-level system field; user and assistant messages
// pass through in order.
func (p *Provider) Complete(ctx context.Context, req providers.CompletionRequest) (*providers.CompletionResponse, error) {
	model, messages := providers.ExtractModel(req.Messages, p.defaultModel())

	var system string
	anthropicMessages := make([]anthropicMessage, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case providers.RoleSystem:
			if system != "" {
				system += "\n\n"
			}
			system += msg.Content
		case providers.RoleUser, providers.RoleAssistant:
			anthropicMessages = append(anthropicMessages, anthropicMessage{
				Role:    msg.Role,
				Content: msg.Content,
			})
		}
	}

	body, err := json.Marshal(anthropicRequest{
		Model:       model,
		Messages:    anthropicMessages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      system,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.config.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("anthropic API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var anthropicResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&anthropicResp); err != nil {
		return nil, fmt.Errorf("anthropic response decode: %w", err)
	}

	if len(anthropicResp.Content) == 0 {
		return nil, errors.New("anthropic completion returned no content")
	}

	return &providers.CompletionResponse{
		Content:     anthropicResp.Content[0].Text,
		Model:       anthropicResp.Model,
		TotalTokens: anthropicResp.Usage.InputTokens + anthropicResp.Usage.OutputTokens,
	}, nil
}

// Embed is not supported by Anthropic.
func (p *Provider) Embed(ctx context.Context, text string) ([]float64, error) {
	return nil, providers.ErrEmbeddingsNotSupported
}

// GetModels returns available models.
func (p *Provider) GetModels(ctx context.Context) ([]providers.Model, error) {
	return modelChoices, nil
}

func (p *Provider) endpoint() string {
	if p.config.BaseURL != "" {
		return p.config.BaseURL + "/v1/messages"
	}
	return anthropicAPIURL
}

func (p *Provider) defaultModel() string {
	if p.config.DefaultModel != "" {
		return p.config.DefaultModel
	}
	return defaultModel
}
