package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/modes"
	"github.com/boardboost/boardboost/internal/repository"
)

// SessionService manages sessions and their conversation history.
type SessionService struct {
	sessions      repository.SessionRepository
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
}

// NewSessionService creates a session service.
func NewSessionService(
	sessions repository.SessionRepository,
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
) *SessionService {
	return &SessionService{
		sessions:      sessions,
		conversations: conversations,
		messages:      messages,
	}
}

// Create stores a new session for the user. An empty session type
// defaults to chat; an empty name gets a generic one.
func (s *SessionService) Create(ctx context.Context, session *models.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.SessionType == "" {
		session.SessionType = models.SessionTypeChat
	}
	if session.Name == "" {
		session.Name = "New Project"
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Get returns the user's session, or a session-not-found ChatError.
func (s *SessionService) Get(ctx context.Context, sessionID, userID uuid.UUID) (*models.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newSessionNotFound(err)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return nil, newSessionNotFound(repository.ErrNotFound)
	}
	return session, nil
}

// List returns all sessions owned by the user, newest first.
func (s *SessionService) List(ctx context.Context, userID uuid.UUID) ([]*models.Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// Update persists changed session settings after an ownership check.
func (s *SessionService) Update(ctx context.Context, session *models.Session, userID uuid.UUID) error {
	if _, err := s.Get(ctx, session.ID, userID); err != nil {
		return err
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// Delete removes the user's session and, via cascade, its conversation.
func (s *SessionService) Delete(ctx context.Context, sessionID, userID uuid.UUID) error {
	if _, err := s.Get(ctx, sessionID, userID); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Messages returns the session's full conversation history, oldest
// first. A session whose conversation has not started yet returns an
// empty slice.
func (s *SessionService) Messages(ctx context.Context, sessionID, userID uuid.UUID) ([]models.Message, error) {
	if _, err := s.Get(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	conversation, err := s.conversations.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	msgs, err := s.messages.ListByConversation(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// Welcome returns the mode-specific greeting for the user's session.
func (s *SessionService) Welcome(ctx context.Context, sessionID, userID uuid.UUID) (string, error) {
	session, err := s.Get(ctx, sessionID, userID)
	if err != nil {
		return "", err
	}
	return modes.WelcomeMessage(session.SessionType), nil
}
