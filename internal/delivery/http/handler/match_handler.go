package handler

import (
	"internhub/internal/delivery/http/dto"
	"internhub/internal/pkg/response"
	"internhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/roles/:role_id/matches", h.MatchesForRole)
	r.Get("/roles/:role_id/candidates/:candidate_id/score", h.Score)
	r.Get("/matches/summary", h.Summary)
	r.Get("/me/matches", h.MyMatches)
}

func (h *MatchHandler) MatchesForRole(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	roleID, err := paramID(c, "role_id")
	if err != nil {
		return err
	}
	minScore, err := minScoreQuery(c)
	if err != nil {
		return err
	}

	items, err := h.uc.MatchesForRole(c.Context(), actor, roleID, minScore)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateMatchResponses(items))
}

func (h *MatchHandler) Score(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	roleID, err := paramID(c, "role_id")
	if err != nil {
		return err
	}
	candidateID, err := paramID(c, "candidate_id")
	if err != nil {
		return err
	}

	m, err := h.uc.ScoreCandidate(c.Context(), actor, roleID, candidateID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(m))
}

func (h *MatchHandler) Summary(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	minScore, err := minScoreQuery(c)
	if err != nil {
		return err
	}

	items, err := h.uc.MatchCountsForCompany(c.Context(), actor, minScore)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRoleMatchCountResponses(items))
}

func (h *MatchHandler) MyMatches(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	minScore, err := minScoreQuery(c)
	if err != nil {
		return err
	}

	items, err := h.uc.RolesForCandidate(c.Context(), actor, minScore)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRoleMatchResponses(items))
}
