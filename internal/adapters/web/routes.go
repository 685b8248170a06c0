package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the Fiber application with the middleware stack and routes.
func NewApp(handlers *Handlers, rateLimiter *RateLimiter, staticDir string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "mockgram",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	app.Use(RequestLoggerMiddleware())

	SetupRoutes(app, handlers, rateLimiter, staticDir)
	return app
}

// SetupRoutes configures the application routes.
func SetupRoutes(app *fiber.App, handlers *Handlers, rateLimiter *RateLimiter, staticDir string) {
	// Static assets
	if staticDir != "" {
		app.Static("/static", staticDir)
	}

	// Each load of the home page mounts a fresh view
	app.Get("/", handlers.Home)
	app.Get("/api/placeholder/:width/:height", handlers.Placeholder)

	view := ViewIDToContextMiddleware()
	limit := rateLimiter.Middleware()

	app.Get("/views/:view", view, handlers.ViewProfile)

	// Interactions answer HTMX with a fragment and plain forms with a redirect
	app.Post("/views/:view/follow", view, limit, handlers.ToggleFollow)
	app.Post("/views/:view/tabs/:tab", view, limit, handlers.SelectTab)
	app.Post("/views/:view/highlights", view, limit, handlers.AddHighlight)
	app.Post("/views/:view/posts/:post/like", view, limit, handlers.ToggleLike)
}
