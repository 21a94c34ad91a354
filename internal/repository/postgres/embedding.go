package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/google/uuid"

	"github.com/boardboost/boardboost/internal/models"
)

// EmbeddingRepository handles the per-message embedding cache.
type EmbeddingRepository struct {
	db *sqlx.DB
}

// NewEmbeddingRepository creates a new embedding repository.
func NewEmbeddingRepository(db *sqlx.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db: db}
}

// Get returns the cached vector for a message, or nil when none exists.
func (r *EmbeddingRepository) Get(ctx context.Context, messageID uuid.UUID) (*models.MessageEmbedding, error) {
	var embedding models.MessageEmbedding
	query := `SELECT * FROM message_embeddings WHERE message_id = $1`

	if err := r.db.GetContext(ctx, &embedding, query, messageID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get embedding: %w", err)
	}

	return &embedding, nil
}

// Create stores a vector for a message. Message content is immutable, so
// a concurrent insert for the same message necessarily carries the same
// vector; first write wins and the conflict is ignored.
func (r *EmbeddingRepository) Create(ctx context.Context, embedding *models.MessageEmbedding) error {
	if embedding.CreatedAt.IsZero() {
		embedding.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO message_embeddings (message_id, embedding, created_at)
		VALUES (:message_id, :embedding, :created_at)
		ON CONFLICT (message_id) DO NOTHING`

	if _, err := r.db.NamedExecContext(ctx, query, embedding); err != nil {
		return fmt.Errorf("failed to create embedding: %w", err)
	}

	return nil
}
