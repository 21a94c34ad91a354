package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/boardboost/boardboost/internal/api"
	"github.com/boardboost/boardboost/internal/auth"
	"github.com/boardboost/boardboost/internal/config"
	"github.com/boardboost/boardboost/internal/database"
	"github.com/boardboost/boardboost/internal/providers/factory"
	"github.com/boardboost/boardboost/internal/repository/postgres"
	"github.com/boardboost/boardboost/internal/services"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	// Connect to database
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// Initialize repositories
	repos := services.Repositories{
		Users:         postgres.NewUserRepository(db.DB),
		Sessions:      postgres.NewSessionRepository(db.DB),
		Conversations: postgres.NewConversationRepository(db.DB),
		Messages:      postgres.NewMessageRepository(db.DB),
		Summaries:     postgres.NewSummaryRepository(db.DB),
		Embeddings:    postgres.NewEmbeddingRepository(db.DB),
		Budgets:       postgres.NewBudgetRepository(db.DB),
	}

	// Initialize auth service
	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "change-me-in-production" // Default for development
		log.Warn("using default JWT secret, set BOARDBOOST_JWT_SECRET in production")
	}
	authService := auth.NewService(repos.Users, jwtSecret)

	// Initialize provider registry
	registry := factory.BuildRegistry(cfg, log)
	if registry.Default() == nil {
		log.WithField("provider", cfg.DefaultProvider).Warn("default provider not registered, completions will fail")
	}

	// Initialize services
	svc := services.New(repos, registry, cfg, log)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BoardBoost Backend",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     getOrigins(),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	api.SetupRoutes(app, svc, authService, registry, repos.Users)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.WithField("addr", addr).Info("starting server")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func getOrigins() string {
	origins := os.Getenv("BOARDBOOST_CORS_ORIGINS")
	if origins == "" {
		return "http://localhost:5173,http://localhost:3000"
	}
	return origins
}
