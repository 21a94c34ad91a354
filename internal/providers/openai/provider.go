package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/boardboost/boardboost/internal/config"
	"github.com/boardboost/boardboost/internal/providers"
)

const (
	defaultModel   = "gpt-3.5-turbo"
	embeddingModel = openai.AdaEmbeddingV2
)

// modelChoices are the chat models offered through this provider.
var modelChoices = []providers.Model{
	{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo"},
	{ID: "gpt-4", Name: "GPT-4"},
	{ID: "gpt-4o", Name: "GPT-4o"},
	{ID: "gpt-4o-mini", Name: "GPT-4o Mini"},
}

// Provider implements the OpenAI provider. With a base URL configured it
// also serves any OpenAI-compatible endpoint (Ollama, LM Studio).
type Provider struct {
	id     string
	config config.ProviderConfig
	client *openai.Client
}

// NewProvider creates a new OpenAI provider.
func NewProvider(id string, cfg config.ProviderConfig) (*Provider, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "dummy-key" // local endpoints don't check it
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/") + "/v1"
	}

	return &Provider{
		id:     id,
		config: cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return p.config.Name
}

// Complete performs a chat completion.
func (p *Provider) Complete(ctx context.Context, req providers.CompletionRequest) (*providers.CompletionResponse, error) {
	model, messages := providers.ExtractModel(req.Messages, p.defaultModel())

	openAIMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		openAIMessages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    openAIMessages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("openai completion returned no choices")
	}

	return &providers.CompletionResponse{
		Content:     resp.Choices[0].Message.Content,
		Model:       resp.Model,
		TotalTokens: resp.Usage.PromptTokens + resp.Usage.CompletionTokens,
	}, nil
}

// Embed returns an embedding vector for the text.
func (p *Provider) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: embeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("openai embedding returned no data")
	}

	vector := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float64(v)
	}
	return vector, nil
}

// GetModels returns available models.
func (p *Provider) GetModels(ctx context.Context) ([]providers.Model, error) {
	return modelChoices, nil
}

func (p *Provider) defaultModel() string {
	if p.config.DefaultModel != "" {
		return p.config.DefaultModel
	}
	return defaultModel
}
