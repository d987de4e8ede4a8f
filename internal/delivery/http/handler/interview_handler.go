package handler

import (
	"context"
	"time"

	"internhub/internal/delivery/http/dto"
	"internhub/internal/domain/interview"
	"internhub/internal/pkg/response"
	"internhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type InterviewHandler struct {
	uc usecase.InterviewsUsecase
}

type scheduleRequest struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	Mode            string `json:"mode"`
	DurationMinutes int    `json:"duration_minutes"`
	MeetingDetails  string `json:"meeting_details"`
	Reason          string `json:"reason"`
}

type interviewRespondRequest struct {
	Response   string     `json:"response"`
	Note       string     `json:"note"`
	ProposedAt *time.Time `json:"proposed_at"`
}

type offerRequest struct {
	JoiningDate    string   `json:"joining_date"`
	Message        string   `json:"message"`
	OfferLetterRef string   `json:"offer_letter_ref"`
	Attachments    []string `json:"attachments"`
}

type completeRequest struct {
	Decision string        `json:"decision"`
	Feedback string        `json:"feedback"`
	Offer    *offerRequest `json:"offer"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type interviewResultBody struct {
	Interview   dto.InterviewResponse    `json:"interview"`
	Application *dto.ApplicationResponse `json:"application,omitempty"`
}

func NewInterviewHandler(uc usecase.InterviewsUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/interviews", h.List)
	r.Post("/interviews/:id/schedule", h.Schedule)
	r.Post("/interviews/:id/respond", h.Respond)
	r.Post("/interviews/:id/reschedule", h.Reschedule)
	r.Post("/interviews/:id/complete", h.Complete)
	r.Post("/interviews/:id/cancel", h.Cancel)
}

func (h *InterviewHandler) Schedule(c fiber.Ctx) error {
	return h.withSlot(c, h.uc.Schedule)
}

func (h *InterviewHandler) Reschedule(c fiber.Ctx) error {
	return h.withSlot(c, h.uc.Reschedule)
}

type slotFunc func(ctx context.Context, actor usecase.Actor, id uuid.UUID, in usecase.ScheduleInput) (usecase.InterviewResult, error)

func (h *InterviewHandler) withSlot(c fiber.Ctx, fn slotFunc) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req scheduleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := fn(c.Context(), actor, id, usecase.ScheduleInput{
		Date:            req.Date,
		Time:            req.Time,
		Mode:            interview.Mode(req.Mode),
		DurationMinutes: req.DurationMinutes,
		MeetingDetails:  req.MeetingDetails,
		Reason:          req.Reason,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, newInterviewResultBody(res))
}

func (h *InterviewHandler) Respond(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req interviewRespondRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Respond(c.Context(), actor, id, usecase.RespondInput{
		Response:   interview.CandidateResponse(req.Response),
		Note:       req.Note,
		ProposedAt: req.ProposedAt,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, newInterviewResultBody(res))
}

func (h *InterviewHandler) Complete(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req completeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := usecase.CompleteInput{Decision: interview.Decision(req.Decision), Feedback: req.Feedback}
	if req.Offer != nil {
		in.Offer = &usecase.OfferInput{
			JoiningDate:    req.Offer.JoiningDate,
			Message:        req.Offer.Message,
			OfferLetterRef: req.Offer.OfferLetterRef,
			Attachments:    req.Offer.Attachments,
		}
	}

	res, err := h.uc.Complete(c.Context(), actor, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, newInterviewResultBody(res))
}

func (h *InterviewHandler) Cancel(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req cancelRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}

	res, err := h.uc.Cancel(c.Context(), actor, id, req.Reason)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, newInterviewResultBody(res))
}

func (h *InterviewHandler) List(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var items []interview.Interview
	if actor.IsCompany() {
		items, err = h.uc.ListForCompany(c.Context(), actor)
	} else {
		items, err = h.uc.ListForCandidate(c.Context(), actor)
	}
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewInterviewResponses(items))
}

func newInterviewResultBody(res usecase.InterviewResult) interviewResultBody {
	out := interviewResultBody{Interview: dto.NewInterviewResponse(res.Interview)}
	if res.Application != nil {
		app := dto.NewApplicationResponse(*res.Application)
		out.Application = &app
	}
	return out
}
