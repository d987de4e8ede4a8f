package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"internhub/internal/config"
	"internhub/internal/delivery/http/handler"
	"internhub/internal/delivery/http/middleware"
	"internhub/internal/delivery/http/routes"
	v1 "internhub/internal/delivery/http/routes/v1"
	"internhub/internal/usecase"
	"internhub/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const (
	authRateLimit  = 20
	authRateWindow = time.Minute
	closeTimeout   = 15 * time.Second
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	cleanup := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		return c.Close(ctx)
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	deps := usecase.Deps{
		Store:    c.Store,
		Locks:    c.Locks,
		Notifier: c.Dispatcher,
		Logger:   c.Logger,
	}

	handlers := v1.Handlers{
		Auth:         handler.NewAuthHandler(usecase.NewAuthUsecase(c.Users, c.Store.Candidates(), c.JWT, c.Logger)),
		Profiles:     handler.NewProfileHandler(usecase.NewProfilesUsecase(deps)),
		Matches:      handler.NewMatchHandler(usecase.NewMatchingUsecase(c.Store, c.Config.Matching.MinScore, c.Config.Matching.Workers, c.Logger)),
		Invitations:  handler.NewInvitationHandler(usecase.NewInvitationsUsecase(deps)),
		Applications: handler.NewApplicationHandler(usecase.NewApplicationsUsecase(deps)),
		Interviews:   handler.NewInterviewHandler(usecase.NewInterviewsUsecase(deps)),
		Onboardings:  handler.NewOnboardingHandler(usecase.NewOnboardingsUsecase(deps)),
	}
	mws := v1.Middlewares{
		Auth:          middleware.NewAuthMiddleware(c.JWT).Middleware(),
		AuthRateLimit: middleware.NewRateLimitMiddleware(c.Limiter, "auth", authRateLimit, authRateWindow).Middleware(),
	}

	health := handler.NewHealthHandler(c.DB, c.Redis)
	notifications := ws.NewHandler(c.Hub, c.JWT, c.Logger).HandleNotifications

	routes.NewRegistry(health, notifications, handlers, mws).Register(app)
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
