package services

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/providers"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"dimension mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-6)
		})
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float64{0.3, -0.5, 0.8}
	b := []float64{0.1, 0.9, -0.2}
	assert.InDelta(t, CosineSimilarity(a, b), CosineSimilarity(b, a), 1e-9)
}

func TestCosineSimilarity_ScaleInvariant(t *testing.T) {
	a := []float64{1, 2, 3}
	scaled := []float64{10, 20, 30}
	assert.InDelta(t, 1, CosineSimilarity(a, scaled), 1e-6)
}

// retrievalFixture wires a retrieval service over in-memory fakes with a
// scripted embedding provider.
func retrievalFixture(embedFn func(ctx context.Context, text string) ([]float64, error)) (*RetrievalService, *fakeMessageRepo, *fakeEmbeddingRepo, *fakeProvider) {
	provider := &fakeProvider{name: "openai", embedFn: embedFn}
	registry := providers.NewRegistry("openai")
	registry.Register("openai", provider)

	messages := newFakeMessageRepo()
	embeddings := newFakeEmbeddingRepo()
	log, _ := test.NewNullLogger()

	svc := NewRetrievalService(messages, embeddings, registry, "openai", 3, log)
	return svc, messages, embeddings, provider
}

func addMessage(t *testing.T, repo *fakeMessageRepo, conversationID uuid.UUID, sender, content string) uuid.UUID {
	t.Helper()
	msg := &models.Message{ID: uuid.New(), ConversationID: conversationID, Sender: sender, Content: content}
	require.NoError(t, repo.Create(context.Background(), msg))
	return msg.ID
}

func TestFindRelevant_ReturnsTopKMostSimilar(t *testing.T) {
	// Embeddings keyed by text: the query points along x, candidates at
	// increasing angles.
	vectors := map[string][]float64{
		"query":  {1, 0},
		"best":   {0.99, 0.1},
		"good":   {0.8, 0.6},
		"okay":   {0.5, 0.8},
		"poor":   {0.1, 0.99},
		"worst":  {-1, 0.1},
		"ignore": {1, 0},
	}
	svc, messages, _, _ := retrievalFixture(func(ctx context.Context, text string) ([]float64, error) {
		return vectors[text], nil
	})

	conversationID := uuid.New()
	addMessage(t, messages, conversationID, models.SenderUser, "ignore")
	for _, content := range []string{"poor", "best", "worst", "okay", "good"} {
		addMessage(t, messages, conversationID, models.SenderAssistant, content)
	}

	relevant := svc.FindRelevant(context.Background(), conversationID, "query")

	require.Len(t, relevant, 3)
	assert.Equal(t, "best", relevant[0].Content)
	assert.Equal(t, "good", relevant[1].Content)
	assert.Equal(t, "okay", relevant[2].Content)
}

func TestFindRelevant_OnlyAssistantMessagesConsidered(t *testing.T) {
	svc, messages, _, _ := retrievalFixture(nil)
	conversationID := uuid.New()
	addMessage(t, messages, conversationID, models.SenderUser, "user question")
	addMessage(t, messages, conversationID, models.SenderAssistant, "assistant answer")

	relevant := svc.FindRelevant(context.Background(), conversationID, "query")

	require.Len(t, relevant, 1)
	assert.Equal(t, models.SenderAssistant, relevant[0].Sender)
}

func TestFindRelevant_EmptyWhenQueryEmbeddingFails(t *testing.T) {
	svc, messages, _, provider := retrievalFixture(func(ctx context.Context, text string) ([]float64, error) {
		return nil, fmt.Errorf("embeddings down")
	})
	conversationID := uuid.New()
	addMessage(t, messages, conversationID, models.SenderAssistant, "answer")

	relevant := svc.FindRelevant(context.Background(), conversationID, "query")

	assert.Empty(t, relevant)
	// The failing provider is already the default, so there is no second
	// attempt against it.
	assert.Len(t, provider.embedCalls, 1)
}

func TestFindRelevant_CachesCandidateEmbeddings(t *testing.T) {
	svc, messages, embeddings, provider := retrievalFixture(nil)
	conversationID := uuid.New()
	msgID := addMessage(t, messages, conversationID, models.SenderAssistant, "answer")

	svc.FindRelevant(context.Background(), conversationID, "query")
	firstCalls := len(provider.embedCalls)
	svc.FindRelevant(context.Background(), conversationID, "query")

	// Second pass embeds only the query; the candidate comes from cache.
	assert.Equal(t, firstCalls+1, len(provider.embedCalls))
	cached, err := embeddings.Get(context.Background(), msgID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, models.Vector{1, 0, 0}, cached.Embedding)
}

func TestFindRelevant_OmitsDimensionMismatchedCandidates(t *testing.T) {
	svc, messages, embeddings, _ := retrievalFixture(nil)
	conversationID := uuid.New()
	goodID := addMessage(t, messages, conversationID, models.SenderAssistant, "good")
	staleID := addMessage(t, messages, conversationID, models.SenderAssistant, "stale")

	require.NoError(t, embeddings.Create(context.Background(), &models.MessageEmbedding{
		MessageID: goodID, Embedding: models.Vector{1, 0, 0},
	}))
	require.NoError(t, embeddings.Create(context.Background(), &models.MessageEmbedding{
		MessageID: staleID, Embedding: models.Vector{1, 0}, // wrong dimension
	}))

	relevant := svc.FindRelevant(context.Background(), conversationID, "query")

	require.Len(t, relevant, 1)
	assert.Equal(t, "good", relevant[0].Content)
}

func TestEmbed_FallsBackToDefaultProvider(t *testing.T) {
	failing := &fakeProvider{name: "local", embedFn: func(ctx context.Context, text string) ([]float64, error) {
		return nil, providers.ErrEmbeddingsNotSupported
	}}
	working := &fakeProvider{name: "openai"}
	registry := providers.NewRegistry("openai")
	registry.Register("local", failing)
	registry.Register("openai", working)
	log, _ := test.NewNullLogger()

	svc := NewRetrievalService(newFakeMessageRepo(), newFakeEmbeddingRepo(), registry, "local", 3, log)

	vector, err := svc.embed(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, vector)
	assert.Len(t, failing.embedCalls, 1)
	assert.Len(t, working.embedCalls, 1)
}

func TestCosineSimilarity_SelfSimilarityIsOne(t *testing.T) {
	v := []float64{0.12, -0.7, 0.44, 0.9}
	assert.InDelta(t, 1, CosineSimilarity(v, v), 1e-6)
	assert.True(t, math.Abs(CosineSimilarity(v, v)-1) < 1e-6)
}
