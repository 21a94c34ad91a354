package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/repository"
)

// EstimateTokens approximates the token cost of a text before any
// provider call, at roughly four characters per token. It deliberately
// counts only the user's text, not the assembled prompt, so it is a
// cheap lower bound rather than a precise figure; the real debit uses
// the vendor-reported count after the call.
func EstimateTokens(text string) int {
	return len(text)/4 + 1
}

// BudgetService enforces the per-user daily token allowance.
type BudgetService struct {
	budgets     repository.BudgetRepository
	dailyTokens int
}

// NewBudgetService creates a budget service granting each user the given
// daily allowance.
func NewBudgetService(budgets repository.BudgetRepository, dailyTokens int) *BudgetService {
	return &BudgetService{budgets: budgets, dailyTokens: dailyTokens}
}

// Status returns the user's current ledger entry, applying the daily
// reset first so callers never see a stale balance.
func (s *BudgetService) Status(ctx context.Context, userID uuid.UUID) (*models.UserBudget, error) {
	if _, err := s.budgets.GetOrCreate(ctx, userID, s.dailyTokens); err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	budget, err := s.budgets.Reset(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset budget: %w", err)
	}
	return budget, nil
}

// Gate checks whether the estimated cost of a request fits the user's
// remaining allowance. It returns a budget-exceeded ChatError when it
// does not; nothing is debited either way.
func (s *BudgetService) Gate(ctx context.Context, userID uuid.UUID, estimate int) (*models.UserBudget, error) {
	budget, err := s.Status(ctx, userID)
	if err != nil {
		return nil, err
	}
	if estimate > budget.TokensRemaining {
		return nil, newBudgetExceeded(budget.TokensRemaining, nextMidnight(time.Now()))
	}
	return budget, nil
}

// Debit charges the user's allowance with the actual token usage,
// flooring at zero, and returns the updated ledger entry.
func (s *BudgetService) Debit(ctx context.Context, userID uuid.UUID, tokens int) (*models.UserBudget, error) {
	if tokens <= 0 {
		return s.Status(ctx, userID)
	}
	budget, err := s.budgets.Debit(ctx, userID, tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to debit budget: %w", err)
	}
	return budget, nil
}

func nextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}
