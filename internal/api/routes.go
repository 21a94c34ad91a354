// Package api wires the HTTP surface: routes, handlers, and middleware.
package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/boardboost/boardboost/internal/api/handlers"
	"github.com/boardboost/boardboost/internal/api/middleware"
	"github.com/boardboost/boardboost/internal/auth"
	"github.com/boardboost/boardboost/internal/providers"
	"github.com/boardboost/boardboost/internal/repository"
	"github.com/boardboost/boardboost/internal/services"
)

// SetupRoutes configures all API routes.
func SetupRoutes(
	app *fiber.App,
	svc *services.Services,
	authService *auth.Service,
	registry *providers.Registry,
	users repository.UserRepository,
) {
	api := app.Group("/api")

	// Public endpoints
	api.Post("/auth/register", handlers.Register(authService))
	api.Post("/auth/login", handlers.Login(authService))
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "boardboost-backend",
		})
	})

	// Everything below requires a valid token.
	authed := api.Group("", middleware.AuthRequired(authService))

	// Chat
	authed.Post("/chat/messages", handlers.SendMessage(svc))

	// Session management
	authed.Post("/sessions", handlers.CreateSession(svc))
	authed.Get("/sessions", handlers.ListSessions(svc))
	authed.Get("/sessions/:id", handlers.GetSession(svc))
	authed.Put("/sessions/:id", handlers.UpdateSession(svc))
	authed.Delete("/sessions/:id", handlers.DeleteSession(svc))
	authed.Get("/sessions/:id/messages", handlers.GetSessionMessages(svc))
	authed.Get("/sessions/:id/welcome", handlers.GetSessionWelcome(svc))

	// Model choices and preferences
	authed.Get("/models", handlers.GetModelChoices(registry))
	authed.Put("/models/preferences", handlers.UpdateModelPreferences(users))

	// Budget
	authed.Get("/budget", handlers.GetBudgetStatus(svc))
}
