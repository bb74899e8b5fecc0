package app

import (
	"context"
	"fmt"
	"strings"

	"cofounder-match/internal/config"
	"cofounder-match/internal/delivery/http/handler"
	"cofounder-match/internal/delivery/http/middleware"
	"cofounder-match/internal/delivery/http/routes"
	"cofounder-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP surface on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns a
// cleanup func that stops both.
func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(c.Log, c.Metrics)
	app.Use(accessLog.Middleware())

	errMw := middleware.NewErrorMiddleware(c.Log)
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	r := &routes.Registry{
		Health:    handler.NewHealthHandler(c.DB, c.Cache),
		Discovery: handler.NewDiscoveryHandler(c.Discovery, c.Decisions),
		Matches:   handler.NewMatchHandler(c.Matches),
		Skills:    handler.NewSkillHandler(c.Skills),
		Auth:      middleware.NewAuthMiddleware(c.JWT),
		WS:        ws.NewHandler(c.Hub, c.JWT, c.Log).HandleMatchesWS,
	}
	r.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
