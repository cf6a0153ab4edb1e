// Package server exposes the provisioning forms over HTTP.
package server

import (
	"github.com/gofiber/fiber/v2"

	"adprov/pkg/logger"
	"adprov/pkg/provision"
	"adprov/pkg/settings"
)

// App bundles what the handlers need.
type App struct {
	Settings settings.Config
	Service  *provision.Service
	Sessions *SessionStore
}

// NewApp wires a provisioning service and an empty session store.
func NewApp(cfg settings.Config) *App {
	return &App{
		Settings: cfg,
		Service:  provision.NewService(cfg),
		Sessions: NewSessionStore(),
	}
}

// New returns a fiber application with every route registered.
func New(app *App) *fiber.App {
	limit := app.Settings.BodyLimitMB
	if limit <= 0 {
		limit = 10
	}
	f := fiber.New(fiber.Config{
		AppName:      "adprov",
		BodyLimit:    limit * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	Router(f, app)
	return f
}

type Handler struct {
	app *App
	log logger.Logger
}

// Router registers the API under /api.
func Router(router fiber.Router, app *App) {
	h := &Handler{app: app, log: logger.New("server").File("handlers")}

	api := router.Group("/api")
	api.Get("/health", h.health)
	api.Get("/variants", h.variants)

	sessions := api.Group("/sessions")
	sessions.Post("/", h.createSession)
	sessions.Get("/:id", h.getSession)
	sessions.Delete("/:id", h.deleteSession)
	sessions.Post("/:id/directory", h.uploadDirectory)

	forms := sessions.Group("/:id/forms/:variant")
	forms.Post("/preview", h.preview)
	forms.Post("/csv", h.csv)
	forms.Post("/bundle", h.bundle)
}
