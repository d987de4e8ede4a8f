package handler

import (
	"strings"

	"internhub/internal/delivery/http/dto"
	"internhub/internal/delivery/http/middleware"
	"internhub/internal/domain/application"
	"internhub/internal/pkg/response"
	"internhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationsUsecase
}

type applyRequest struct {
	RoleID      uuid.UUID `json:"role_id"`
	CoverLetter string    `json:"cover_letter"`
}

type updateApplicationStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type offerResponseRequest struct {
	Accept bool   `json:"accept"`
	Note   string `json:"note"`
}

func NewApplicationHandler(uc usecase.ApplicationsUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/applications", h.Apply)
	r.Get("/applications", h.List)
	r.Get("/applications/:id", h.Get)
	r.Patch("/applications/:id/status", h.UpdateStatus)
	r.Post("/applications/:id/offer-response", h.RespondToOffer)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req applyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	app, err := h.uc.Apply(c.Context(), actor, usecase.ApplyInput{RoleID: req.RoleID, CoverLetter: req.CoverLetter})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewApplicationResponse(app))
}

// List returns the caller's own applications, or for a company the
// applications to the role given by ?role_id=.
func (h *ApplicationHandler) List(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var items []application.Application
	if actor.IsCompany() {
		raw := strings.TrimSpace(c.Query("role_id"))
		roleID, perr := uuid.Parse(raw)
		if perr != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "role_id query parameter is required", nil, perr)
		}
		items, err = h.uc.ListForRole(c.Context(), actor, roleID)
	} else {
		items, err = h.uc.ListForCandidate(c.Context(), actor)
	}
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	app, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req updateApplicationStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	app, err := h.uc.UpdateStatus(c.Context(), actor, id, application.Status(req.Status), req.Note)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) RespondToOffer(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req offerResponseRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	app, err := h.uc.RespondToOffer(c.Context(), actor, id, req.Accept, req.Note)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}
