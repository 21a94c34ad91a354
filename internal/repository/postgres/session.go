package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/repository"
)

// SessionRepository handles session database operations.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	query := `
		INSERT INTO sessions (
			id, user_id, name, session_type, provider, query_model, summary_model,
			board_fqbn, board_type, libraries_text, components_text, description,
			history_window_size, target_platform, complexity_level, library_name,
			topic_name, experience_level, created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :session_type, :provider, :query_model, :summary_model,
			:board_fqbn, :board_type, :libraries_text, :components_text, :description,
			:history_window_size, :target_platform, :complexity_level, :library_name,
			:topic_name, :experience_level, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID.
func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	query := `SELECT * FROM sessions WHERE id = $1`

	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// ListByUser retrieves all sessions for a user, most recently updated
// first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Session, error) {
	var sessions []*models.Session
	query := `SELECT * FROM sessions WHERE user_id = $1 ORDER BY updated_at DESC`

	if err := r.db.SelectContext(ctx, &sessions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

// Update updates a session's settings.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	query := `
		UPDATE sessions
		SET name = :name, session_type = :session_type, provider = :provider,
		    query_model = :query_model, summary_model = :summary_model,
		    board_fqbn = :board_fqbn, board_type = :board_type,
		    libraries_text = :libraries_text, components_text = :components_text,
		    description = :description, history_window_size = :history_window_size,
		    target_platform = :target_platform, complexity_level = :complexity_level,
		    library_name = :library_name, topic_name = :topic_name,
		    experience_level = :experience_level, updated_at = CURRENT_TIMESTAMP
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete deletes a session.
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
