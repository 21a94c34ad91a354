package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/boardboost/boardboost/internal/api/middleware"
	"github.com/boardboost/boardboost/internal/providers"
	"github.com/boardboost/boardboost/internal/repository"
	"github.com/boardboost/boardboost/internal/services"
)

// ProviderModels groups a provider's model choices for the settings UI.
type ProviderModels struct {
	Provider string            `json:"provider"`
	Name     string            `json:"name"`
	Models   []providers.Model `json:"models"`
}

// GetModelChoices lists the models offered by every registered provider.
// A provider whose listing fails is returned with an empty model list
// rather than failing the whole response.
func GetModelChoices(registry *providers.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		choices := make([]ProviderModels, 0)
		for id, provider := range registry.GetAll() {
			models, err := provider.GetModels(c.Context())
			if err != nil {
				models = []providers.Model{}
			}
			choices = append(choices, ProviderModels{
				Provider: id,
				Name:     provider.Name(),
				Models:   models,
			})
		}
		return c.JSON(fiber.Map{
			"default_provider": registry.DefaultID(),
			"providers":        choices,
		})
	}
}

// UpdateModelPreferencesRequest carries the user's default model choices.
type UpdateModelPreferencesRequest struct {
	DefaultProvider     string `json:"default_provider"`
	DefaultQueryModel   string `json:"default_query_model"`
	DefaultSummaryModel string `json:"default_summary_model"`
}

// UpdateModelPreferences stores the user's default provider and models.
func UpdateModelPreferences(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			return err
		}

		var req UpdateModelPreferencesRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if err := users.UpdateDefaults(c.Context(), userID, req.DefaultProvider, req.DefaultQueryModel, req.DefaultSummaryModel); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update preferences",
			})
		}
		return c.JSON(fiber.Map{"message": "Preferences updated"})
	}
}

// GetBudgetStatus returns the user's current token allowance.
func GetBudgetStatus(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			return err
		}

		budget, err := svc.Budget.Status(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load budget",
			})
		}
		return c.JSON(budget)
	}
}
