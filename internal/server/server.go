// Package server assembles the Fiber application.
package server

import (
	"context"
	"errors"
	"time"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/handlers"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	_ "productapi/docs" // registers the generated API document
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Config         config.AppConfig
	ProductService *services.ProductService
	// DB is only used by the health check. Nil means no SQL database is
	// in use.
	DB *gorm.DB
}

// New builds the Fiber app with global middleware and every route.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "products-api",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: !deps.Config.IsDevelopment(),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(corsConfig(deps.Config.FrontendURL)))

	// --- Routes ---
	app.Get("/health", healthHandler(deps.DB))
	if deps.Config.DocsEnabled {
		app.Get("/docs", func(c *fiber.Ctx) error {
			return c.Redirect("/docs/index.html", fiber.StatusMovedPermanently)
		})
		app.Get("/docs/*", adaptor.HTTPHandlerFunc(httpSwagger.Handler(
			httpSwagger.URL("/docs/doc.json"),
		)))
	}

	handlers.NewProductHandler(deps.ProductService).RegisterRoutes(app)

	return app
}

// corsConfig only allows the configured frontend. An empty origin allows
// any, which suits local development.
func corsConfig(frontendURL string) cors.Config {
	cfg := cors.ConfigDefault
	if frontendURL != "" {
		cfg.AllowOrigins = frontendURL
	}
	return cfg
}

// ErrorHandler turns errors returned by handlers into JSON responses.
// Fiber errors keep their status and message; anything else is logged and
// answered with a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(handlers.ErrorResponse{Error: fiberErr.Message})
	}

	log.Error().Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(handlers.ErrorResponse{Error: handlers.MsgInternalError})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := "memory"
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			status = "up"
			if err := database.Ping(ctx, db); err != nil {
				status = "down"
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": status,
		})
	}
}
