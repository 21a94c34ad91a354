package models

import (
	"time"

	"github.com/google/uuid"
)

// Session types. Each type selects a different conversation mode.
const (
	SessionTypeChat    = "chat"
	SessionTypeWidget  = "widget"
	SessionTypeLibrary = "library"
	SessionTypeTopic   = "topic"
)

// Session is the per-project configuration for a conversation. It carries
// the hardware context used to build prompts plus per-session provider and
// model overrides. A session owns exactly one conversation, created lazily
// on the first message.
type Session struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	SessionType string    `db:"session_type" json:"session_type"`

	// AI provider settings. Empty means "use the user's defaults".
	Provider     string `db:"provider" json:"provider,omitempty"`
	QueryModel   string `db:"query_model" json:"query_model,omitempty"`
	SummaryModel string `db:"summary_model" json:"summary_model,omitempty"`

	// Hardware details used to build the system prompt.
	BoardFQBN      string `db:"board_fqbn" json:"board_fqbn,omitempty"`
	BoardType      string `db:"board_type" json:"board_type,omitempty"`
	LibrariesText  string `db:"libraries_text" json:"libraries_text,omitempty"`
	ComponentsText string `db:"components_text" json:"components_text,omitempty"`
	Description    string `db:"description" json:"description,omitempty"`

	// Number of recent messages included verbatim in the prompt.
	HistoryWindowSize int `db:"history_window_size" json:"history_window_size"`

	// Widget mode fields.
	TargetPlatform  string `db:"target_platform" json:"target_platform,omitempty"`
	ComplexityLevel string `db:"complexity_level" json:"complexity_level,omitempty"`

	// Library mode fields.
	LibraryName string `db:"library_name" json:"library_name,omitempty"`

	// Topic mode fields.
	TopicName string `db:"topic_name" json:"topic_name,omitempty"`

	// Shared by library and topic modes.
	ExperienceLevel string `db:"experience_level" json:"experience_level,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
