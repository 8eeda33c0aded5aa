package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/logger"
	"productapi/internal/repositories"
	"productapi/internal/server"
	"productapi/internal/services"
	"productapi/pkg/rabbitmq"
)

// @title Products REST API
// @version 1.0
// @description CRUD API for products with request validation.
// @BasePath /
func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Setup(cfg.App)

	app, cleanup, err := NewApp(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer cleanup()

	// --- Start HTTP Server ---
	log.Info().Str("port", cfg.App.Port).Msg("Starting server")

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.App.Port); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Error during Fiber shutdown")
	}
	log.Info().Msg("Server gracefully stopped")
}

// NewApp wires storage, event publishing, services and handlers into a
// Fiber app. The returned cleanup releases the database pool and the
// broker connection.
func NewApp(ctx context.Context, cfg *config.Config) (*fiber.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// --- Storage ---
	deps := server.Deps{Config: cfg.App}
	var productRepo repositories.ProductRepository
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn().Msg("Using in-memory product store, data is lost on restart")
		productRepo = repositories.NewMemoryProductRepository()
	} else {
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() {
			if err := database.Close(db); err != nil {
				log.Error().Err(err).Msg("Error closing database")
			}
		})
		deps.DB = db
		productRepo = repositories.NewGORMProductRepository(db)
	}

	// --- Events ---
	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, product events disabled")
		} else {
			publisher = mqClient
			closers = append(closers, func() {
				if err := mqClient.Close(); err != nil {
					log.Error().Err(err).Msg("Error closing RabbitMQ client")
				}
			})
		}
	}

	// --- Services & Handlers ---
	deps.ProductService = services.NewProductService(productRepo, publisher)

	return server.New(deps), cleanup, nil
}
