package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/boardboost/boardboost/internal/models"
)

// SummaryRepository handles conversation summary database operations.
// Summaries are append-only; old ones are retained for audit.
type SummaryRepository struct {
	db *sqlx.DB
}

// NewSummaryRepository creates a new summary repository.
func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Create appends a new summary.
func (r *SummaryRepository) Create(ctx context.Context, summary *models.ConversationSummary) error {
	if summary.ID == uuid.Nil {
		summary.ID = uuid.New()
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO conversation_summaries (id, conversation_id, content, message_count, created_at)
		VALUES (:id, :conversation_id, :content, :message_count, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, summary); err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}

	return nil
}

// Latest returns the most recent summary for a conversation, or nil when
// none exists.
func (r *SummaryRepository) Latest(ctx context.Context, conversationID uuid.UUID) (*models.ConversationSummary, error) {
	var summary models.ConversationSummary
	query := `
		SELECT * FROM conversation_summaries
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	if err := r.db.GetContext(ctx, &summary, query, conversationID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest summary: %w", err)
	}

	return &summary, nil
}
