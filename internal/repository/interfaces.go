// Package repository defines the storage collaborator contract consumed
// by the conversation engine. Implementations must make the get-or-create
// operations atomic (unique-constraint-backed upserts) so that concurrent
// requests into the same conversation cannot duplicate rows.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/boardboost/boardboost/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository defines user storage operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateDefaults(ctx context.Context, id uuid.UUID, provider, queryModel, summaryModel string) error
}

// SessionRepository defines session storage operations.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConversationRepository defines conversation storage operations.
type ConversationRepository interface {
	// GetOrCreate returns the single conversation for a session, creating
	// it atomically on first use.
	GetOrCreate(ctx context.Context, sessionID uuid.UUID) (*models.Conversation, error)
}

// MessageRepository defines message storage operations. All listings are
// ordered by creation time; ListRecent and ListBySender return newest
// first, the rest oldest first.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error)
	ListSince(ctx context.Context, conversationID uuid.UUID, after time.Time) ([]models.Message, error)
	ListRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.Message, error)
	ListBySender(ctx context.Context, conversationID uuid.UUID, sender string) ([]models.Message, error)
	CountByConversation(ctx context.Context, conversationID uuid.UUID) (int, error)
	CountBySender(ctx context.Context, conversationID uuid.UUID, sender string) (int, error)
}

// SummaryRepository defines conversation summary storage. Summaries are
// append-only; Latest returns nil when the conversation has none yet.
type SummaryRepository interface {
	Create(ctx context.Context, summary *models.ConversationSummary) error
	Latest(ctx context.Context, conversationID uuid.UUID) (*models.ConversationSummary, error)
}

// EmbeddingRepository defines the per-message embedding cache. Get
// returns nil when no vector is cached. Create must tolerate a concurrent
// insert for the same message (first write wins).
type EmbeddingRepository interface {
	Get(ctx context.Context, messageID uuid.UUID) (*models.MessageEmbedding, error)
	Create(ctx context.Context, embedding *models.MessageEmbedding) error
}

// BudgetRepository defines the per-user token ledger.
type BudgetRepository interface {
	// GetOrCreate returns the user's ledger entry, creating it with the
	// given allowance on first use.
	GetOrCreate(ctx context.Context, userID uuid.UUID, maxTokens int) (*models.UserBudget, error)
	// Reset restores tokens_remaining to max_tokens if the last reset
	// happened before today; it is a no-op otherwise. Returns the entry.
	Reset(ctx context.Context, userID uuid.UUID) (*models.UserBudget, error)
	// Debit subtracts tokens from the allowance, flooring at zero, and
	// returns the updated entry.
	Debit(ctx context.Context, userID uuid.UUID, tokens int) (*models.UserBudget, error)
}
