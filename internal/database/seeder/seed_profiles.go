package seeder

import (
	"context"

	"internhub/internal/database"
	"internhub/internal/domain/candidate"
	"internhub/internal/domain/role"
	"internhub/internal/repository"

	"github.com/google/uuid"
)

type CandidatesSeeder struct{}

func (CandidatesSeeder) Name() string { return "candidates" }

func (CandidatesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "candidates", "id", "skills", "work_modes", "city", "degree", "weekly_hours"); err != nil {
		return err
	}

	profiles := []candidate.Candidate{
		{
			ID:          demoCandidateIDs[0],
			FullName:    "Dewi Lestari",
			Email:       "candidate1@internhub.test",
			Skills:      []string{"Go", "PostgreSQL", "Docker"},
			WorkModes:   []string{"remote", "hybrid"},
			City:        "Bandung",
			Degree:      "Bachelor",
			WeeklyHours: "20-30",
		},
		{
			ID:          demoCandidateIDs[1],
			FullName:    "Marco Rossi",
			Email:       "candidate2@internhub.test",
			Skills:      []string{"React", "TypeScript", "CSS"},
			WorkModes:   []string{"onsite"},
			City:        "Jakarta",
			Degree:      "Master",
			WeeklyHours: "30-40",
		},
		{
			ID:          demoCandidateIDs[2],
			FullName:    "Aisha Karim",
			Email:       "candidate3@internhub.test",
			Skills:      []string{"Python", "SQL", "Excel"},
			WorkModes:   []string{"remote"},
			City:        "Surabaya",
			Degree:      "Undergraduate",
			WeeklyHours: "10-20",
		},
	}

	store := repository.NewPostgresStore(db)
	return store.InTx(ctx, func(tx repository.Store) error {
		for _, p := range profiles {
			if err := tx.Candidates().Upsert(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

type RolesSeeder struct{}

func (RolesSeeder) Name() string { return "roles" }

func (RolesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "roles", "id", "company_id", "must_have_skills", "status"); err != nil {
		return err
	}

	roles := []role.Role{
		{
			ID:               uuid.MustParse("6f1c2a8e-3d4b-4c5a-9e7f-0a1b2c3d4e21"),
			CompanyID:        demoCompanyID,
			Title:            "Backend Engineering Intern",
			Description:      "Build internal APIs in Go.",
			MustHaveSkills:   []string{"Go", "PostgreSQL"},
			NiceToHaveSkills: []string{"Docker", "Redis"},
			WorkMode:         role.WorkModeHybrid,
			City:             "Bandung",
			AcademicLevels:   []string{"Bachelor"},
			WeeklyHours:      "20-30",
			Status:           role.StatusActive,
		},
		{
			ID:               uuid.MustParse("6f1c2a8e-3d4b-4c5a-9e7f-0a1b2c3d4e22"),
			CompanyID:        demoCompanyID,
			Title:            "Frontend Intern",
			MustHaveSkills:   []string{"React"},
			NiceToHaveSkills: []string{"TypeScript"},
			WorkMode:         role.WorkModeOnsite,
			City:             "Jakarta",
			AcademicLevels:   []string{"Bachelor", "Master"},
			WeeklyHours:      "30-40",
			Status:           role.StatusActive,
		},
	}

	store := repository.NewPostgresStore(db)
	return store.InTx(ctx, func(tx repository.Store) error {
		for _, r := range roles {
			if _, err := tx.Roles().FindByID(ctx, r.ID); err == nil {
				continue
			}
			if err := tx.Roles().Create(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
}
