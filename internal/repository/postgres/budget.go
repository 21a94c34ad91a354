package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/boardboost/boardboost/internal/models"
)

// BudgetRepository handles the per-user token ledger.
type BudgetRepository struct {
	db *sqlx.DB
}

// NewBudgetRepository creates a new budget repository.
func NewBudgetRepository(db *sqlx.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// GetOrCreate returns the user's ledger entry, creating it with a full
// allowance on first use.
func (r *BudgetRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, maxTokens int) (*models.UserBudget, error) {
	insert := `
		INSERT INTO user_budgets (user_id, tokens_remaining, max_tokens, last_reset)
		VALUES ($1, $2, $2, $3)
		ON CONFLICT (user_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, insert, userID, maxTokens, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	var budget models.UserBudget
	query := `SELECT * FROM user_budgets WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &budget, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return &budget, nil
}

// Reset restores the full allowance when the last reset happened before
// today. The WHERE guard makes concurrent resets apply exactly once per
// calendar day.
func (r *BudgetRepository) Reset(ctx context.Context, userID uuid.UUID) (*models.UserBudget, error) {
	update := `
		UPDATE user_budgets
		SET tokens_remaining = max_tokens, last_reset = NOW()
		WHERE user_id = $1 AND last_reset < date_trunc('day', NOW())`

	if _, err := r.db.ExecContext(ctx, update, userID); err != nil {
		return nil, fmt.Errorf("failed to reset budget: %w", err)
	}

	var budget models.UserBudget
	query := `SELECT * FROM user_budgets WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &budget, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return &budget, nil
}

// Debit subtracts tokens from the allowance, flooring at zero.
func (r *BudgetRepository) Debit(ctx context.Context, userID uuid.UUID, tokens int) (*models.UserBudget, error) {
	var budget models.UserBudget
	query := `
		UPDATE user_budgets
		SET tokens_remaining = GREATEST(tokens_remaining - $2, 0)
		WHERE user_id = $1
		RETURNING *`

	if err := r.db.GetContext(ctx, &budget, query, userID, tokens); err != nil {
		return nil, fmt.Errorf("failed to debit budget: %w", err)
	}

	return &budget, nil
}
