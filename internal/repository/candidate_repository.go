package repository

import (
	"context"
	"time"

	"internhub/internal/database"
	"internhub/internal/domain/candidate"

	"github.com/google/uuid"
)

type CandidateRepository interface {
	// Upsert writes the matching profile of a candidate account.
	Upsert(ctx context.Context, c candidate.Candidate) error
	FindByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
	ListAll(ctx context.Context) ([]candidate.Candidate, error)
}

type PostgresCandidateRepository struct {
	db database.Querier
}

func NewPostgresCandidateRepository(db database.Querier) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `id, full_name, email, skills, work_modes, city, degree, weekly_hours, created_at, updated_at`

func (r *PostgresCandidateRepository) Upsert(ctx context.Context, c candidate.Candidate) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO candidates (id, full_name, email, skills, work_modes, city, degree, weekly_hours, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
		 ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			skills = EXCLUDED.skills,
			work_modes = EXCLUDED.work_modes,
			city = EXCLUDED.city,
			degree = EXCLUDED.degree,
			weekly_hours = EXCLUDED.weekly_hours,
			updated_at = EXCLUDED.updated_at`,
		c.ID,
		c.FullName,
		c.Email,
		nonNil(c.Skills),
		nonNil(c.WorkModes),
		c.City,
		c.Degree,
		c.WeeklyHours,
		now,
	)
	return mapWriteErr(err)
}

func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	row := r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if err != nil {
		return candidate.Candidate{}, mapScanErr(err)
	}
	return c, nil
}

func (r *PostgresCandidateRepository) ListAll(ctx context.Context) ([]candidate.Candidate, error) {
	rows, err := r.db.Query(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCandidate(row rowScanner) (candidate.Candidate, error) {
	var c candidate.Candidate
	err := row.Scan(
		&c.ID,
		&c.FullName,
		&c.Email,
		&c.Skills,
		&c.WorkModes,
		&c.City,
		&c.Degree,
		&c.WeeklyHours,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
