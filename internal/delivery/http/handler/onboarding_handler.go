package handler

import (
	"internhub/internal/delivery/http/dto"
	"internhub/internal/domain/onboarding"
	"internhub/internal/pkg/response"
	"internhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type OnboardingHandler struct {
	uc usecase.OnboardingsUsecase
}

type startOnboardingRequest struct {
	ApplicationID uuid.UUID             `json:"application_id"`
	StartDate     string                `json:"start_date"`
	EndDate       string                `json:"end_date"`
	Supervisor    onboarding.Supervisor `json:"supervisor"`
	CompanyNotes  string                `json:"company_notes"`
}

type patchOnboardingRequest struct {
	StartDate    *string                `json:"start_date"`
	EndDate      *string                `json:"end_date"`
	Supervisor   *onboarding.Supervisor `json:"supervisor"`
	CompanyNotes *string                `json:"company_notes"`
	Status       *string                `json:"status"`
}

type addDocumentRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func NewOnboardingHandler(uc usecase.OnboardingsUsecase) *OnboardingHandler {
	return &OnboardingHandler{uc: uc}
}

func (h *OnboardingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/onboardings", h.Start)
	r.Get("/onboardings", h.List)
	r.Get("/onboardings/:id", h.Get)
	r.Patch("/onboardings/:id", h.Update)
	r.Delete("/onboardings/:id", h.Cancel)
	r.Post("/onboardings/:id/documents", h.AddDocument)
}

func (h *OnboardingHandler) Start(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req startOnboardingRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	o, err := h.uc.Start(c.Context(), actor, usecase.StartOnboardingInput{
		ApplicationID: req.ApplicationID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Supervisor:    req.Supervisor,
		CompanyNotes:  req.CompanyNotes,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewOnboardingResponse(o))
}

func (h *OnboardingHandler) Update(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req patchOnboardingRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	patch := usecase.OnboardingPatch{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Supervisor:   req.Supervisor,
		CompanyNotes: req.CompanyNotes,
	}
	if req.Status != nil {
		st := onboarding.Status(*req.Status)
		patch.Status = &st
	}

	o, err := h.uc.Advance(c.Context(), actor, id, patch)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOnboardingResponse(o))
}

func (h *OnboardingHandler) Cancel(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	o, err := h.uc.Cancel(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOnboardingResponse(o))
}

func (h *OnboardingHandler) AddDocument(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req addDocumentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	o, err := h.uc.AddDocument(c.Context(), actor, id, usecase.DocumentInput{Type: req.Type, Name: req.Name, URL: req.URL})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewOnboardingResponse(o))
}

func (h *OnboardingHandler) Get(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	o, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOnboardingResponse(o))
}

func (h *OnboardingHandler) List(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var items []onboarding.Onboarding
	if actor.IsCompany() {
		items, err = h.uc.ListForCompany(c.Context(), actor)
	} else {
		items, err = h.uc.ListForCandidate(c.Context(), actor)
	}
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOnboardingResponses(items))
}
