package dto

import (
	"time"

	"internhub/internal/domain/candidate"
	"internhub/internal/domain/role"

	"github.com/google/uuid"
)

type RoleResponse struct {
	ID               uuid.UUID `json:"id"`
	CompanyID        uuid.UUID `json:"company_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	MustHaveSkills   []string  `json:"must_have_skills"`
	NiceToHaveSkills []string  `json:"nice_to_have_skills"`
	WorkMode         string    `json:"work_mode"`
	City             string    `json:"city"`
	AcademicLevels   []string  `json:"academic_levels"`
	WeeklyHours      string    `json:"weekly_hours"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewRoleResponse(r role.Role) RoleResponse {
	return RoleResponse{
		ID:               r.ID,
		CompanyID:        r.CompanyID,
		Title:            r.Title,
		Description:      r.Description,
		MustHaveSkills:   nonNil(r.MustHaveSkills),
		NiceToHaveSkills: nonNil(r.NiceToHaveSkills),
		WorkMode:         string(r.WorkMode),
		City:             r.City,
		AcademicLevels:   nonNil(r.AcademicLevels),
		WeeklyHours:      r.WeeklyHours,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
	}
}

func NewRoleResponses(roles []role.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, NewRoleResponse(r))
	}
	return out
}

type CandidateResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Skills      []string  `json:"skills"`
	WorkModes   []string  `json:"work_modes"`
	City        string    `json:"city"`
	Degree      string    `json:"degree"`
	WeeklyHours string    `json:"weekly_hours"`
}

func NewCandidateResponse(c candidate.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
		Skills:      nonNil(c.Skills),
		WorkModes:   nonNil(c.WorkModes),
		City:        c.City,
		Degree:      c.Degree,
		WeeklyHours: c.WeeklyHours,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
