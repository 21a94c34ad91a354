package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account. Default provider and model preferences sit here and
// are overridden per session.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`

	DefaultProvider     string `db:"default_provider" json:"default_provider,omitempty"`
	DefaultQueryModel   string `db:"default_query_model" json:"default_query_model,omitempty"`
	DefaultSummaryModel string `db:"default_summary_model" json:"default_summary_model,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserBudget tracks a user's daily token allowance. TokensRemaining is
// reset to MaxTokens on the first request after local midnight following
// LastReset; it never exceeds MaxTokens and never goes below zero.
type UserBudget struct {
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	TokensRemaining int       `db:"tokens_remaining" json:"tokens_remaining"`
	MaxTokens       int       `db:"max_tokens" json:"max_tokens"`
	LastReset       time.Time `db:"last_reset" json:"last_reset"`
}
