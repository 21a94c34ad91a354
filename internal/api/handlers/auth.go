package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/boardboost/boardboost/internal/auth"
	"github.com/boardboost/boardboost/internal/models"
)

// CredentialsRequest carries a username and password.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// Register handles account creation.
func Register(authService *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CredentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if req.Username == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Username and password are required",
			})
		}

		user, token, err := authService.Register(c.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrUsernameTaken) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": "Username already taken",
				})
			}
			if err := auth.ValidatePassword(req.Password); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Registration failed",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(AuthResponse{User: user, AccessToken: token})
	}
}

// Login handles user login.
func Login(authService *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CredentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		user, token, err := authService.Login(c.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid username or password",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Login failed",
			})
		}

		return c.JSON(AuthResponse{User: user, AccessToken: token})
	}
}
