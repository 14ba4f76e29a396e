package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"mailsift/config"
	controller "mailsift/controllers"
	"mailsift/middleware"
	"mailsift/session"
)

func SetupAuthRoutes(app *fiber.App, store session.Store) {
	authLogger := logrus.WithField("component", "auth")
	authController := controller.NewAuthController(store, authLogger)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Google OAuth routes
	auth.Get("/google", authController.GoogleOAuth)
	auth.Get("/google/callback", authController.GoogleOAuthCallback)

	// Session endpoints live under /api to match the frontend
	app.Get("/api/session/:id", authController.GetSession)
	app.Post("/api/logout", authController.Logout)

	authLogger.Info("Authentication routes initialized")
}

func SetupAPIRoutes(app *fiber.App, store session.Store) {
	emailController := controller.NewEmailController(store, logrus.WithField("component", "emails"))
	classifyController := controller.NewClassifyController(logrus.WithField("component", "classify"))

	api := app.Group("/api", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Server is running",
			"port":    config.AppConfig.ServerPort,
		})
	})

	api.Post("/emails", emailController.FetchEmails)
	api.Post("/classify", middleware.ClassifyRateLimiter(), classifyController.ClassifyEmails)

	logrus.Info("API routes initialized")
}

func SetupRoutes(app *fiber.App, store session.Store) {
	// Initialize Google OAuth config
	controller.InitGoogleOAuth()

	SetupAuthRoutes(app, store)
	SetupAPIRoutes(app, store)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Not Found",
		})
	})
}
