package handler

import (
	"internhub/internal/delivery/http/dto"
	"internhub/internal/domain/role"
	"internhub/internal/pkg/response"
	"internhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// ProfileHandler serves the scorer inputs: company roles and the caller's
// candidate profile.
type ProfileHandler struct {
	uc usecase.ProfilesUsecase
}

type createRoleRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	MustHaveSkills   []string `json:"must_have_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
	WorkMode         string   `json:"work_mode"`
	City             string   `json:"city"`
	AcademicLevels   []string `json:"academic_levels"`
	WeeklyHours      string   `json:"weekly_hours"`
	Status           string   `json:"status"`
}

type updateProfileRequest struct {
	FullName    string   `json:"full_name"`
	Skills      []string `json:"skills"`
	WorkModes   []string `json:"work_modes"`
	City        string   `json:"city"`
	Degree      string   `json:"degree"`
	WeeklyHours string   `json:"weekly_hours"`
}

func NewProfileHandler(uc usecase.ProfilesUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/roles", h.CreateRole)
	r.Get("/roles", h.ListRoles)
	r.Get("/me/profile", h.GetProfile)
	r.Put("/me/profile", h.UpdateProfile)
}

func (h *ProfileHandler) CreateRole(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createRoleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	r, err := h.uc.CreateRole(c.Context(), actor, usecase.RoleInput{
		Title:            req.Title,
		Description:      req.Description,
		MustHaveSkills:   req.MustHaveSkills,
		NiceToHaveSkills: req.NiceToHaveSkills,
		WorkMode:         role.WorkMode(req.WorkMode),
		City:             req.City,
		AcademicLevels:   req.AcademicLevels,
		WeeklyHours:      req.WeeklyHours,
		Status:           role.Status(req.Status),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewRoleResponse(r))
}

func (h *ProfileHandler) ListRoles(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	roles, err := h.uc.ListRoles(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRoleResponses(roles))
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	p, err := h.uc.GetCandidateProfile(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateResponse(p))
}

func (h *ProfileHandler) UpdateProfile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.UpdateCandidateProfile(c.Context(), actor, usecase.CandidateProfileInput{
		FullName:    req.FullName,
		Skills:      req.Skills,
		WorkModes:   req.WorkModes,
		City:        req.City,
		Degree:      req.Degree,
		WeeklyHours: req.WeeklyHours,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateResponse(p))
}
