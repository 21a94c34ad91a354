package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Conversation is the durable container of ordered messages. There is
// exactly one per session, backed by a unique constraint on session_id.
type Conversation struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SessionID uuid.UUID `db:"session_id" json:"session_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Message is a single chat message. Messages are immutable once created
// and strictly ordered by creation time; that ordering is the sole
// sequencing authority for summary thresholds and the recency window.
type Message struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ConversationID uuid.UUID `db:"conversation_id" json:"conversation_id"`
	Sender         string    `db:"sender" json:"sender"`
	Content        string    `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ConversationSummary is a rolling summary of a conversation. Summaries
// are append-only; the most recent one by creation time is authoritative.
// MessageCount records how many messages the conversation had when the
// summary was generated.
type ConversationSummary struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ConversationID uuid.UUID `db:"conversation_id" json:"conversation_id"`
	Content        string    `db:"content" json:"content"`
	MessageCount   int       `db:"message_count" json:"message_count"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Vector is an embedding vector stored as JSON in the database.
type Vector []float64

// Value implements driver.Valuer.
func (v Vector) Value() (driver.Value, error) {
	return json.Marshal(v)
}

// Scan implements sql.Scanner.
func (v *Vector) Scan(src interface{}) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	default:
		return fmt.Errorf("cannot scan %T into Vector", src)
	}
}

// MessageEmbedding caches the embedding vector for one message. A message's
// content never changes, so a stored vector is never recomputed.
type MessageEmbedding struct {
	MessageID uuid.UUID `db:"message_id" json:"message_id"`
	Embedding Vector    `db:"embedding" json:"embedding"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
