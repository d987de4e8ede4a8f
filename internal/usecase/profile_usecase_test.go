package usecase

import (
	"context"
	"errors"
	"testing"

	"internhub/internal/domain/role"
)

func TestProfiles_CreateRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := NewProfilesUsecase(Deps{Store: f.store})

	r, err := uc.CreateRole(ctx, f.company, RoleInput{
		Title:          " Frontend Intern ",
		MustHaveSkills: []string{"React", " ", "CSS"},
		WorkMode:       "Hybrid",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.Title != "Frontend Intern" || r.Status != role.StatusActive || r.WorkMode != role.WorkModeHybrid {
		t.Fatalf("unexpected role %+v", r)
	}
	if len(r.MustHaveSkills) != 2 {
		t.Fatalf("expected blank skills dropped, got %v", r.MustHaveSkills)
	}

	if _, err := uc.CreateRole(ctx, f.company, RoleInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.CreateRole(ctx, f.company, RoleInput{Title: "x", WorkMode: "space"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for work mode, got %v", err)
	}
	if _, err := uc.CreateRole(ctx, f.cand, RoleInput{Title: "x"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	roles, err := uc.ListRoles(ctx, f.company)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
}

func TestProfiles_CandidateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := NewProfilesUsecase(Deps{Store: f.store})

	c, err := uc.UpdateCandidateProfile(ctx, f.cand, CandidateProfileInput{
		Skills:    []string{"Go", "Docker"},
		WorkModes: []string{"remote"},
		City:      " Jakarta ",
		Degree:    "Bachelor",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.FullName != "Ana" || c.City != "Jakarta" || len(c.Skills) != 2 {
		t.Fatalf("unexpected profile %+v", c)
	}

	got, err := uc.GetCandidateProfile(ctx, f.cand)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Degree != "Bachelor" {
		t.Fatalf("expected stored degree, got %q", got.Degree)
	}
	if _, err := uc.GetCandidateProfile(ctx, f.company); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
