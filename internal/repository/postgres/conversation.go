package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/boardboost/boardboost/internal/models"
)

// ConversationRepository handles conversation database operations.
type ConversationRepository struct {
	db *sqlx.DB
}

// NewConversationRepository creates a new conversation repository.
func NewConversationRepository(db *sqlx.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// GetOrCreate returns the single conversation for a session, creating it
// on first use. The unique constraint on session_id makes the insert a
// no-op when another request created the row first, so concurrent calls
// always converge on one conversation.
func (r *ConversationRepository) GetOrCreate(ctx context.Context, sessionID uuid.UUID) (*models.Conversation, error) {
	insert := `
		INSERT INTO conversations (id, session_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, insert, uuid.New(), sessionID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	var conversation models.Conversation
	query := `SELECT * FROM conversations WHERE session_id = $1`
	if err := r.db.GetContext(ctx, &conversation, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return &conversation, nil
}
