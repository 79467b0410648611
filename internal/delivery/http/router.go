package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/smartcity/prizedash/internal/service"
)

// NewApp creates the fiber app with middleware and routes. Request lines
// are logged only when requestLog is set.
func NewApp(dashboardSvc *service.DashboardService, allowedOrigins string, requestLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Prize Dashboard API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	if requestLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	SetupRoutes(app, dashboardSvc)
	return app
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, dashboardSvc *service.DashboardService) {
	handler := NewHandler(dashboardSvc)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/scenarios", handler.GetScenarios)
		api.Get("/scenarios/:name/results", handler.GetResults)
		api.Get("/scenarios/:name/results/:table", handler.GetTable)
		api.Get("/scenarios/:name/charts/:table", handler.GetChart)

		// Tab layout and side-by-side comparison
		api.Get("/layout", handler.GetLayout)
		api.Get("/compare", handler.Compare)
	}
}

// ErrorHandler renders errors as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
