package routes

import (
	"internhub/internal/delivery/http/handler"
	v1 "internhub/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health        *handler.HealthHandler
	notifications fiber.Handler
	v1            v1.Handlers
	v1Middlewares v1.Middlewares
}

// NewRegistry collects the route owners. notifications is the websocket
// upgrade handler and may be nil.
func NewRegistry(health *handler.HealthHandler, notifications fiber.Handler, h v1.Handlers, mw v1.Middlewares) *Registry {
	return &Registry{health: health, notifications: notifications, v1: h, v1Middlewares: mw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerRealtime(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.notifications == nil {
		return
	}
	app.Get("/ws", r.notifications)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1, r.v1Middlewares)
}
