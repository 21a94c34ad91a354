package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractModel(t *testing.T) {
	tests := []struct {
		name        string
		messages    []Message
		wantModel   string
		wantContent string
	}{
		{
			name: "marker on its own line",
			messages: []Message{
				{Role: RoleSystem, Content: "You are a helpful assistant.\nmodel: gpt-4o"},
			},
			wantModel:   "gpt-4o",
			wantContent: "You are a helpful assistant.",
		},
		{
			name: "marker case insensitive",
			messages: []Message{
				{Role: RoleSystem, Content: "Model: claude-3-opus-20240229\nBe concise."},
			},
			wantModel:   "claude-3-opus-20240229",
			wantContent: "Be concise.",
		},
		{
			name: "no marker falls back",
			messages: []Message{
				{Role: RoleSystem, Content: "You are a helpful assistant."},
			},
			wantModel:   "default-model",
			wantContent: "You are a helpful assistant.",
		},
		{
			name: "empty marker value falls back but is stripped",
			messages: []Message{
				{Role: RoleSystem, Content: "Be brief.\nmodel:"},
			},
			wantModel:   "default-model",
			wantContent: "Be brief.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, out := ExtractModel(tt.messages, "default-model")
			assert.Equal(t, tt.wantModel, model)
			assert.Equal(t, tt.wantContent, out[0].Content)
		})
	}
}

func TestExtractModel_SkipsNonSystemMessages(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "model: not-a-marker"},
	}

	model, out := ExtractModel(messages, "default-model")

	assert.Equal(t, "default-model", model)
	assert.Equal(t, "model: not-a-marker", out[0].Content)
}

func TestExtractModel_OnlyFirstSystemMessageConsidered(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleSystem, Content: "Primary prompt\nmodel: gpt-4"},
		{Role: RoleSystem, Content: "model: gpt-3.5-turbo"},
	}

	model, out := ExtractModel(messages, "default-model")

	assert.Equal(t, "gpt-4", model)
	assert.Equal(t, "Primary prompt", out[1].Content)
	assert.Equal(t, "model: gpt-3.5-turbo", out[2].Content)
}

func TestExtractModel_DoesNotMutateInput(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "Prompt\nmodel: gpt-4"},
	}

	_, out := ExtractModel(messages, "default-model")

	assert.Equal(t, "Prompt\nmodel: gpt-4", messages[0].Content)
	assert.Equal(t, "Prompt", out[0].Content)
}
