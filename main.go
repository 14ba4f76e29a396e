package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"mailsift/config"
	"mailsift/middleware"
	"mailsift/routes"
	"mailsift/session"
	"mailsift/worker"
)

func main() {
	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger()

	// Initialize Sentry when a DSN is configured
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logrus.Fatalf("Failed to initialize Sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Pick the session backend
	var store session.Store
	if config.AppConfig.Redis.Enabled {
		redisStore := session.NewRedisStore(config.AppConfig.Redis, config.AppConfig.SessionTTL)
		defer redisStore.Close()
		store = redisStore
		logrus.Info("Using Redis session store")
	} else {
		store = session.NewMemoryStore(config.AppConfig.SessionTTL)
		logrus.Info("Using in-memory session store")
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Start the session sweeper
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper := worker.NewSweeper(store, config.AppConfig.SweepInterval, logrus.WithField("component", "sweeper"))
	go sweeper.Start(ctx)

	// Setup routes
	routes.SetupRoutes(app, store)

	// Start server
	logrus.Infof("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

func setupLogger() {
	if config.AppConfig.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.DebugLevel)
}
