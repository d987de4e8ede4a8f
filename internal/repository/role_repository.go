package repository

import (
	"context"
	"time"

	"internhub/internal/database"
	"internhub/internal/domain/role"

	"github.com/google/uuid"
)

type RoleRepository interface {
	Create(ctx context.Context, r role.Role) error
	FindByID(ctx context.Context, id uuid.UUID) (role.Role, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]role.Role, error)
	ListActive(ctx context.Context) ([]role.Role, error)
}

type PostgresRoleRepository struct {
	db database.Querier
}

func NewPostgresRoleRepository(db database.Querier) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

const roleColumns = `id, company_id, title, description, must_have_skills, nice_to_have_skills,
	work_mode, city, academic_levels, weekly_hours, status, created_at, updated_at`

func (r *PostgresRoleRepository) Create(ctx context.Context, ro role.Role) error {
	now := time.Now().UTC()
	if ro.Status == "" {
		ro.Status = role.StatusDraft
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO roles (id, company_id, title, description, must_have_skills, nice_to_have_skills,
			work_mode, city, academic_levels, weekly_hours, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12)`,
		ro.ID,
		ro.CompanyID,
		ro.Title,
		ro.Description,
		nonNil(ro.MustHaveSkills),
		nonNil(ro.NiceToHaveSkills),
		string(ro.WorkMode),
		ro.City,
		nonNil(ro.AcademicLevels),
		ro.WeeklyHours,
		string(ro.Status),
		now,
	)
	return mapWriteErr(err)
}

func (r *PostgresRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (role.Role, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id)
	ro, err := scanRole(row)
	if err != nil {
		return role.Role{}, mapScanErr(err)
	}
	return ro, nil
}

func (r *PostgresRoleRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]role.Role, error) {
	return r.list(ctx, `SELECT `+roleColumns+` FROM roles WHERE company_id = $1 ORDER BY created_at ASC, id ASC`, companyID)
}

// ListActive returns the roles candidates can currently be matched against.
func (r *PostgresRoleRepository) ListActive(ctx context.Context) ([]role.Role, error) {
	return r.list(ctx, `SELECT `+roleColumns+` FROM roles WHERE status = $1 ORDER BY created_at ASC, id ASC`, string(role.StatusActive))
}

func (r *PostgresRoleRepository) list(ctx context.Context, query string, args ...any) ([]role.Role, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]role.Role, 0)
	for rows.Next() {
		ro, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRole(row rowScanner) (role.Role, error) {
	var (
		ro       role.Role
		workMode string
		status   string
	)
	err := row.Scan(
		&ro.ID,
		&ro.CompanyID,
		&ro.Title,
		&ro.Description,
		&ro.MustHaveSkills,
		&ro.NiceToHaveSkills,
		&workMode,
		&ro.City,
		&ro.AcademicLevels,
		&ro.WeeklyHours,
		&status,
		&ro.CreatedAt,
		&ro.UpdatedAt,
	)
	if err != nil {
		return role.Role{}, err
	}
	ro.WorkMode = role.WorkMode(workMode)
	ro.Status = role.Status(status)
	return ro, nil
}
