package handler

import (
	"internhub/internal/delivery/http/dto"
	"internhub/internal/domain/invitation"
	"internhub/internal/pkg/response"
	"internhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type InvitationHandler struct {
	uc usecase.InvitationsUsecase
}

type sendInvitationRequest struct {
	RoleID      uuid.UUID `json:"role_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Message     string    `json:"message"`
}

type respondInvitationRequest struct {
	Status       string `json:"status"`
	ResponseText string `json:"response_text"`
}

type invitationResponseBody struct {
	Invitation  dto.InvitationResponse   `json:"invitation"`
	Application *dto.ApplicationResponse `json:"application,omitempty"`
	Interview   *dto.InterviewResponse   `json:"interview,omitempty"`
}

func NewInvitationHandler(uc usecase.InvitationsUsecase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

func (h *InvitationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/invitations", h.Send)
	r.Get("/invitations", h.List)
	r.Post("/invitations/:id/respond", h.Respond)
}

func (h *InvitationHandler) Send(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req sendInvitationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	inv, err := h.uc.Send(c.Context(), actor, usecase.SendInvitationInput{
		RoleID:      req.RoleID,
		CandidateID: req.CandidateID,
		Message:     req.Message,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewInvitationResponse(inv))
}

func (h *InvitationHandler) Respond(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req respondInvitationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Respond(c.Context(), actor, id, invitation.Status(req.Status), req.ResponseText)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := invitationResponseBody{Invitation: dto.NewInvitationResponse(res.Invitation)}
	if res.Application != nil {
		app := dto.NewApplicationResponse(*res.Application)
		out.Application = &app
	}
	if res.Interview != nil {
		iv := dto.NewInterviewResponse(*res.Interview)
		out.Interview = &iv
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// List returns the caller's invitations: received for candidates, sent for companies.
func (h *InvitationHandler) List(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var items []invitation.Invitation
	if actor.IsCompany() {
		items, err = h.uc.ListForCompany(c.Context(), actor)
	} else {
		items, err = h.uc.ListForCandidate(c.Context(), actor)
	}
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInvitationResponses(items))
}
