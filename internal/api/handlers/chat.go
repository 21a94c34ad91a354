package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/boardboost/boardboost/internal/api/middleware"
	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/services"
)

// SendMessageRequest is the body of a chat message request. SessionID is
// optional; when absent a fresh chat session is created for the message.
type SendMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// SendMessageResponse wraps the chat result with the session it ran in.
type SendMessageResponse struct {
	SessionID       string `json:"session_id"`
	Reply           string `json:"reply"`
	TokensUsed      int    `json:"tokens_used"`
	TokensRemaining int    `json:"tokens_remaining"`
}

// SendMessage runs one conversational turn.
func SendMessage(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			return err
		}

		var req SendMessageRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if req.Message == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required",
			})
		}

		var sessionID uuid.UUID
		if req.SessionID == "" {
			session := &models.Session{UserID: userID, SessionType: models.SessionTypeChat}
			if err := svc.Sessions.Create(c.Context(), session); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to create session",
				})
			}
			sessionID = session.ID
		} else {
			sessionID, err = uuid.Parse(req.SessionID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid session ID",
				})
			}
		}

		result, err := svc.Chat.HandleUserMessage(c.Context(), sessionID, userID, req.Message)
		if err != nil {
			return chatErrorResponse(c, err)
		}

		return c.JSON(SendMessageResponse{
			SessionID:       sessionID.String(),
			Reply:           result.Reply,
			TokensUsed:      result.TokensUsed,
			TokensRemaining: result.TokensRemaining,
		})
	}
}

// chatErrorResponse maps service error kinds onto HTTP statuses.
func chatErrorResponse(c *fiber.Ctx, err error) error {
	var chatErr *services.ChatError
	if errors.As(err, &chatErr) {
		switch chatErr.Kind {
		case services.KindBudgetExceeded:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":            chatErr.Message,
				"tokens_remaining": chatErr.TokensRemaining,
				"reset_at":         chatErr.ResetAt,
			})
		case services.KindSessionNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": chatErr.Message,
			})
		case services.KindProviderUnavailable:
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": chatErr.Message,
			})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to process message",
	})
}
