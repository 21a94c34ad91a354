package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/boardboost/boardboost/internal/models"
)

// MessageRepository handles message database operations.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message.
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO messages (id, conversation_id, sender, content, created_at)
		VALUES (:id, :conversation_id, :sender, :content, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, message); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// ListByConversation retrieves all messages for a conversation, oldest
// first.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	query := `SELECT * FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &messages, query, conversationID); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// ListSince retrieves messages created after the given time, oldest first.
func (r *MessageRepository) ListSince(ctx context.Context, conversationID uuid.UUID, after time.Time) ([]models.Message, error) {
	var messages []models.Message
	query := `SELECT * FROM messages WHERE conversation_id = $1 AND created_at > $2 ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &messages, query, conversationID, after); err != nil {
		return nil, fmt.Errorf("failed to list messages since: %w", err)
	}

	return messages, nil
}

// ListRecent retrieves the most recent messages, newest first.
func (r *MessageRepository) ListRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := `SELECT * FROM messages WHERE conversation_id = $1 ORDER BY created_at DESC LIMIT $2`

	if err := r.db.SelectContext(ctx, &messages, query, conversationID, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}

	return messages, nil
}

// ListBySender retrieves all messages from one sender, newest first.
func (r *MessageRepository) ListBySender(ctx context.Context, conversationID uuid.UUID, sender string) ([]models.Message, error) {
	var messages []models.Message
	query := `SELECT * FROM messages WHERE conversation_id = $1 AND sender = $2 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &messages, query, conversationID, sender); err != nil {
		return nil, fmt.Errorf("failed to list messages by sender: %w", err)
	}

	return messages, nil
}

// CountByConversation returns the number of messages in a conversation.
func (r *MessageRepository) CountByConversation(ctx context.Context, conversationID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE conversation_id = $1`

	if err := r.db.GetContext(ctx, &count, query, conversationID); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}

	return count, nil
}

// CountBySender returns the number of messages from one sender.
func (r *MessageRepository) CountBySender(ctx context.Context, conversationID uuid.UUID, sender string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE conversation_id = $1 AND sender = $2`

	if err := r.db.GetContext(ctx, &count, query, conversationID, sender); err != nil {
		return 0, fmt.Errorf("failed to count messages by sender: %w", err)
	}

	return count, nil
}
