// Package auth provides account registration, login, and JWT-based
// request authentication.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when the username or password is
	// wrong. Callers should not reveal which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
)

// Service handles registration and login.
type Service struct {
	users  repository.UserRepository
	secret string
}

// NewService creates an auth service signing tokens with secret.
func NewService(users repository.UserRepository, secret string) *Service {
	return &Service{users: users, secret: secret}
}

// Register creates a new account and returns the user with an access
// token.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, "", err
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := IssueToken(s.secret, user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with an access token.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := IssueToken(s.secret, user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Verify validates an access token and returns the user ID it belongs
// to.
func (s *Service) Verify(token string) (uuid.UUID, error) {
	userID, _, err := VerifyToken(s.secret, token)
	return userID, err
}
