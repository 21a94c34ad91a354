package services

import (
	"fmt"
	"time"
)

// ErrorKind classifies the failures the conversation engine surfaces to
// its caller. Everything else is recovered internally and degrades to a
// complete, if reduced, response.
type ErrorKind string

const (
	// KindBudgetExceeded rejects a request before any provider call when
	// the user's remaining allowance cannot cover the estimated cost.
	KindBudgetExceeded ErrorKind = "budget_exceeded"
	// KindSessionNotFound reports an unknown session ID.
	KindSessionNotFound ErrorKind = "session_not_found"
	// KindProviderUnavailable reports that no provider could be resolved
	// for the request.
	KindProviderUnavailable ErrorKind = "provider_unavailable"
)

// ChatError is a classified failure returned by HandleUserMessage.
type ChatError struct {
	Kind    ErrorKind
	Message string
	Err     error

	// Budget details, set when Kind is KindBudgetExceeded.
	TokensRemaining int
	ResetAt         time.Time
}

func (e *ChatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}

func newBudgetExceeded(remaining int, resetAt time.Time) *ChatError {
	return &ChatError{
		Kind:            KindBudgetExceeded,
		Message:         "insufficient tokens remaining, tokens reset at midnight",
		TokensRemaining: remaining,
		ResetAt:         resetAt,
	}
}

func newSessionNotFound(err error) *ChatError {
	return &ChatError{Kind: KindSessionNotFound, Message: "session not found", Err: err}
}

func newProviderUnavailable(name string) *ChatError {
	return &ChatError{
		Kind:    KindProviderUnavailable,
		Message: fmt.Sprintf("no provider available for %q", name),
	}
}
