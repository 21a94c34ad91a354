package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/providers"
	"github.com/boardboost/boardboost/internal/repository"
)

// CosineSimilarity returns the cosine of the angle between two vectors.
// It returns 0 when either vector has zero magnitude or the dimensions
// do not match.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RetrievalService finds prior assistant replies relevant to the current
// user message by cosine similarity over cached embeddings.
type RetrievalService struct {
	messages   repository.MessageRepository
	embeddings repository.EmbeddingRepository
	registry   *providers.Registry
	embedderID string
	limit      int
	log        *logrus.Logger
}

// NewRetrievalService creates a retrieval service. embedderID names the
// provider used for embedding calls; limit caps how many messages are
// returned per request.
func NewRetrievalService(
	messages repository.MessageRepository,
	embeddings repository.EmbeddingRepository,
	registry *providers.Registry,
	embedderID string,
	limit int,
	log *logrus.Logger,
) *RetrievalService {
	return &RetrievalService{
		messages:   messages,
		embeddings: embeddings,
		registry:   registry,
		embedderID: embedderID,
		limit:      limit,
		log:        log,
	}
}

// embed computes an embedding via the configured provider, falling back
// once to the default provider when a non-default configured provider is
// missing or fails.
func (s *RetrievalService) embed(ctx context.Context, text string) ([]float64, error) {
	embedder := s.registry.Get(s.embedderID)
	if embedder != nil {
		vector, err := embedder.Embed(ctx, text)
		if err == nil {
			return vector, nil
		}
		// The default provider is the fallback; when it is also the
		// configured one there is nothing left to retry.
		if s.embedderID == s.registry.DefaultID() {
			return nil, fmt.Errorf("failed to embed text: %w", err)
		}
		s.log.WithError(err).WithField("provider", s.embedderID).Warn("embedding call failed, retrying with default provider")
	} else {
		s.log.WithField("provider", s.embedderID).Warn("embeddings provider not registered, using default provider")
	}

	fallback := s.registry.Default()
	if fallback == nil {
		return nil, fmt.Errorf("no embedding provider available")
	}
	vector, err := fallback.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}
	return vector, nil
}

// messageVector returns the cached embedding for a message, computing and
// caching it on a miss. A message's content never changes, so a cached
// vector is trusted without recomputation.
func (s *RetrievalService) messageVector(ctx context.Context, msg *models.Message) ([]float64, error) {
	cached, err := s.embeddings.Get(ctx, msg.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached embedding: %w", err)
	}
	if cached != nil {
		return cached.Embedding, nil
	}

	vector, err := s.embed(ctx, msg.Content)
	if err != nil {
		return nil, err
	}

	// First write wins; a concurrent insert for the same message is fine.
	if err := s.embeddings.Create(ctx, &models.MessageEmbedding{
		MessageID: msg.ID,
		Embedding: vector,
	}); err != nil {
		s.log.WithError(err).WithField("message_id", msg.ID).Warn("failed to cache embedding")
	}
	return vector, nil
}

// FindRelevant returns up to the configured limit of prior assistant
// replies in this conversation, most similar to the query first. Failures
// degrade: if the query cannot be embedded, retrieval is skipped entirely;
// a candidate whose embedding cannot be obtained is left out.
func (s *RetrievalService) FindRelevant(ctx context.Context, conversationID uuid.UUID, query string) []models.Message {
	queryVector, err := s.embed(ctx, query)
	if err != nil {
		s.log.WithError(err).Warn("failed to embed query, skipping retrieval")
		return nil
	}

	candidates, err := s.messages.ListBySender(ctx, conversationID, models.SenderAssistant)
	if err != nil {
		s.log.WithError(err).Warn("failed to list candidate messages, skipping retrieval")
		return nil
	}

	type scored struct {
		message models.Message
		score   float64
	}
	results := make([]scored, 0, len(candidates))
	for i := range candidates {
		vector, err := s.messageVector(ctx, &candidates[i])
		if err != nil {
			s.log.WithError(err).WithField("message_id", candidates[i].ID).Warn("failed to embed candidate, omitting")
			continue
		}
		if len(vector) != len(queryVector) {
			s.log.WithField("message_id", candidates[i].ID).Warn("embedding dimension mismatch, omitting candidate")
			continue
		}
		results = append(results, scored{message: candidates[i], score: CosineSimilarity(queryVector, vector)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	limit := s.limit
	if limit > len(results) {
		limit = len(results)
	}
	relevant := make([]models.Message, 0, limit)
	for _, r := range results[:limit] {
		relevant = append(relevant, r.message)
	}
	return relevant
}
