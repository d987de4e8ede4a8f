package v1

import (
	"internhub/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Profiles     *handler.ProfileHandler
	Matches      *handler.MatchHandler
	Invitations  *handler.InvitationHandler
	Applications *handler.ApplicationHandler
	Interviews   *handler.InterviewHandler
	Onboardings  *handler.OnboardingHandler
}

type Middlewares struct {
	Auth          fiber.Handler
	AuthRateLimit fiber.Handler
}

// Register mounts the public auth routes first; everything registered after
// the protected group requires a valid access token.
func Register(r fiber.Router, h Handlers, mw Middlewares) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		var authGroup fiber.Router
		if mw.AuthRateLimit != nil {
			authGroup = r.Group("/auth", mw.AuthRateLimit)
		} else {
			authGroup = r.Group("/auth")
		}
		h.Auth.RegisterRoutes(authGroup)
	}

	if mw.Auth == nil {
		return
	}
	protected := r.Group("", mw.Auth)

	if h.Profiles != nil {
		h.Profiles.RegisterRoutes(protected)
	}
	if h.Matches != nil {
		h.Matches.RegisterRoutes(protected)
	}
	if h.Invitations != nil {
		h.Invitations.RegisterRoutes(protected)
	}
	if h.Applications != nil {
		h.Applications.RegisterRoutes(protected)
	}
	if h.Interviews != nil {
		h.Interviews.RegisterRoutes(protected)
	}
	if h.Onboardings != nil {
		h.Onboardings.RegisterRoutes(protected)
	}
}
