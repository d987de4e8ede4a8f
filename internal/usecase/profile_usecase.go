package usecase

import (
	"context"
	"strings"

	"internhub/internal/domain/candidate"
	"internhub/internal/domain/role"
	"internhub/internal/repository"

	"github.com/google/uuid"
)

type RoleInput struct {
	Title            string
	Description      string
	MustHaveSkills   []string
	NiceToHaveSkills []string
	WorkMode         role.WorkMode
	City             string
	AcademicLevels   []string
	WeeklyHours      string
	Status           role.Status
}

type CandidateProfileInput struct {
	FullName    string
	Skills      []string
	WorkModes   []string
	City        string
	Degree      string
	WeeklyHours string
}

// ProfilesUsecase maintains the inputs of the scorer: company roles and
// candidate profiles.
type ProfilesUsecase interface {
	CreateRole(ctx context.Context, actor Actor, in RoleInput) (role.Role, error)
	ListRoles(ctx context.Context, actor Actor) ([]role.Role, error)
	GetCandidateProfile(ctx context.Context, actor Actor) (candidate.Candidate, error)
	UpdateCandidateProfile(ctx context.Context, actor Actor, in CandidateProfileInput) (candidate.Candidate, error)
}

type Profiles struct {
	Deps
}

func NewProfilesUsecase(deps Deps) *Profiles {
	return &Profiles{Deps: deps.withDefaults()}
}

func (u *Profiles) CreateRole(ctx context.Context, actor Actor, in RoleInput) (role.Role, error) {
	if err := actor.requireCompany(); err != nil {
		return role.Role{}, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return role.Role{}, invalid("title is required")
	}
	mode := role.WorkMode(strings.ToLower(strings.TrimSpace(string(in.WorkMode))))
	switch mode {
	case "", role.WorkModeOnsite, role.WorkModeHybrid, role.WorkModeRemote:
	default:
		return role.Role{}, invalid("unknown work mode %q", in.WorkMode)
	}
	status := in.Status
	if status == "" {
		status = role.StatusActive
	}
	switch status {
	case role.StatusDraft, role.StatusUnderReview, role.StatusActive, role.StatusMatched, role.StatusCompleted, role.StatusClosed:
	default:
		return role.Role{}, invalid("unknown role status %q", in.Status)
	}

	now := u.now()
	r := role.Role{
		ID:               uuid.New(),
		CompanyID:        actor.ID,
		Title:            title,
		Description:      strings.TrimSpace(in.Description),
		MustHaveSkills:   cleanList(in.MustHaveSkills),
		NiceToHaveSkills: cleanList(in.NiceToHaveSkills),
		WorkMode:         mode,
		City:             strings.TrimSpace(in.City),
		AcademicLevels:   cleanList(in.AcademicLevels),
		WeeklyHours:      strings.TrimSpace(in.WeeklyHours),
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := u.Store.Roles().Create(ctx, r); err != nil {
		return role.Role{}, storeErr(err, "role")
	}
	return r, nil
}

func (u *Profiles) ListRoles(ctx context.Context, actor Actor) ([]role.Role, error) {
	if err := actor.requireCompany(); err != nil {
		return nil, err
	}
	out, err := u.Store.Roles().ListByCompany(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "roles")
	}
	return out, nil
}

func (u *Profiles) GetCandidateProfile(ctx context.Context, actor Actor) (candidate.Candidate, error) {
	if err := actor.requireCandidate(); err != nil {
		return candidate.Candidate{}, err
	}
	c, err := u.Store.Candidates().FindByID(ctx, actor.ID)
	if err != nil {
		return candidate.Candidate{}, storeErr(err, "candidate profile")
	}
	return c, nil
}

func (u *Profiles) UpdateCandidateProfile(ctx context.Context, actor Actor, in CandidateProfileInput) (candidate.Candidate, error) {
	if err := actor.requireCandidate(); err != nil {
		return candidate.Candidate{}, err
	}

	var out candidate.Candidate
	err := u.Store.InTx(ctx, func(tx repository.Store) error {
		c, err := tx.Candidates().FindByID(ctx, actor.ID)
		if err != nil {
			return storeErr(err, "candidate profile")
		}
		if name := strings.TrimSpace(in.FullName); name != "" {
			c.FullName = name
		}
		c.Skills = cleanList(in.Skills)
		c.WorkModes = cleanList(in.WorkModes)
		c.City = strings.TrimSpace(in.City)
		c.Degree = strings.TrimSpace(in.Degree)
		c.WeeklyHours = strings.TrimSpace(in.WeeklyHours)
		if err := tx.Candidates().Upsert(ctx, c); err != nil {
			return storeErr(err, "candidate profile")
		}
		c.UpdatedAt = u.now()
		out = c
		return nil
	})
	if err != nil {
		return candidate.Candidate{}, err
	}
	return out, nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
