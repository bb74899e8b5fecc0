package routes

import (
	"cofounder-match/internal/delivery/http/handler"
	"cofounder-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	Health    *handler.HealthHandler
	Discovery *handler.DiscoveryHandler
	Matches   *handler.MatchHandler
	Skills    *handler.SkillHandler
	Auth      *middleware.AuthMiddleware

	// WS serves the match notification socket; it authenticates on its own.
	WS fiber.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	r.registerHealth(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if r.WS != nil {
		app.Get("/ws", r.WS)
	}
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1 := app.Group("/api").Group("/v1")

	if r.Skills != nil {
		r.Skills.RegisterRoutes(v1)
	}

	var protected fiber.Router = v1
	if r.Auth != nil {
		protected = v1.Group("", r.Auth.Middleware())
	}
	if r.Discovery != nil {
		r.Discovery.RegisterRoutes(protected)
	}
	if r.Matches != nil {
		r.Matches.RegisterRoutes(protected)
	}
}
