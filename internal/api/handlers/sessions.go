package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/boardboost/boardboost/internal/api/middleware"
	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/services"
)

// SessionRequest carries the mutable session settings.
type SessionRequest struct {
	Name              string `json:"name"`
	SessionType       string `json:"session_type"`
	Provider          string `json:"provider"`
	QueryModel        string `json:"query_model"`
	SummaryModel      string `json:"summary_model"`
	BoardFQBN         string `json:"board_fqbn"`
	BoardType         string `json:"board_type"`
	LibrariesText     string `json:"libraries_text"`
	ComponentsText    string `json:"components_text"`
	Description       string `json:"description"`
	HistoryWindowSize int    `json:"history_window_size"`
	TargetPlatform    string `json:"target_platform"`
	ComplexityLevel   string `json:"complexity_level"`
	LibraryName       string `json:"library_name"`
	TopicName         string `json:"topic_name"`
	ExperienceLevel   string `json:"experience_level"`
}

func (r *SessionRequest) apply(session *models.Session) {
	session.Name = r.Name
	session.SessionType = r.SessionType
	session.Provider = r.Provider
	session.QueryModel = r.QueryModel
	session.SummaryModel = r.SummaryModel
	session.BoardFQBN = r.BoardFQBN
	session.BoardType = r.BoardType
	session.LibrariesText = r.LibrariesText
	session.ComponentsText = r.ComponentsText
	session.Description = r.Description
	session.HistoryWindowSize = r.HistoryWindowSize
	session.TargetPlatform = r.TargetPlatform
	session.ComplexityLevel = r.ComplexityLevel
	session.LibraryName = r.LibraryName
	session.TopicName = r.TopicName
	session.ExperienceLevel = r.ExperienceLevel
}

// CreateSession creates a session for the authenticated user.
func CreateSession(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			return err
		}

		var req SessionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		session := &models.Session{UserID: userID}
		req.apply(session)
		if err := svc.Sessions.Create(c.Context(), session); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create session",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(session)
	}
}

// ListSessions lists the user's sessions.
func ListSessions(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			return err
		}

		sessions, err := svc.Sessions.List(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to list sessions",
			})
		}
		return c.JSON(fiber.Map{"sessions": sessions})
	}
}

// GetSession returns one of the user's sessions.
func GetSession(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, sessionID, err := sessionParams(c)
		if err != nil {
			return err
		}

		session, err := svc.Sessions.Get(c.Context(), sessionID, userID)
		if err != nil {
			return chatErrorResponse(c, err)
		}
		return c.JSON(session)
	}
}

// UpdateSession updates a session's settings.
func UpdateSession(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, sessionID, err := sessionParams(c)
		if err != nil {
			return err
		}

		session, err := svc.Sessions.Get(c.Context(), sessionID, userID)
		if err != nil {
			return chatErrorResponse(c, err)
		}

		var req SessionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		req.apply(session)
		if err := svc.Sessions.Update(c.Context(), session, userID); err != nil {
			return chatErrorResponse(c, err)
		}
		return c.JSON(session)
	}
}

// DeleteSession removes a session and its conversation.
func DeleteSession(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, sessionID, err := sessionParams(c)
		if err != nil {
			return err
		}

		if err := svc.Sessions.Delete(c.Context(), sessionID, userID); err != nil {
			return chatErrorResponse(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetSessionMessages returns the session's conversation history.
func GetSessionMessages(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, sessionID, err := sessionParams(c)
		if err != nil {
			return err
		}

		messages, err := svc.Sessions.Messages(c.Context(), sessionID, userID)
		if err != nil {
			return chatErrorResponse(c, err)
		}
		return c.JSON(fiber.Map{"messages": messages})
	}
}

// GetSessionWelcome returns the mode-specific greeting for a session.
func GetSessionWelcome(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, sessionID, err := sessionParams(c)
		if err != nil {
			return err
		}

		welcome, err := svc.Sessions.Welcome(c.Context(), sessionID, userID)
		if err != nil {
			return chatErrorResponse(c, err)
		}
		return c.JSON(fiber.Map{"message": welcome})
	}
}

func sessionParams(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID")
	}
	return userID, sessionID, nil
}
