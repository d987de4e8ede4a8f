package repository

import (
	"context"
	"time"

	"internhub/internal/database"
	"internhub/internal/domain/onboarding"

	"github.com/google/uuid"
)

type OnboardingRepository interface {
	// Create returns ErrDuplicate when the application already has an onboarding record.
	Create(ctx context.Context, o onboarding.Onboarding) error
	FindByID(ctx context.Context, id uuid.UUID) (onboarding.Onboarding, error)
	// Update writes the mutable fields of o only while the stored status still
	// equals expected and returns ErrStaleStatus otherwise.
	Update(ctx context.Context, o onboarding.Onboarding, expected onboarding.Status) error
	// AppendDocument appends doc to an open record; existing entries are never rewritten.
	AppendDocument(ctx context.Context, id uuid.UUID, doc onboarding.Document) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]onboarding.Onboarding, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]onboarding.Onboarding, error)
}

type PostgresOnboardingRepository struct {
	db database.Querier
}

func NewPostgresOnboardingRepository(db database.Querier) *PostgresOnboardingRepository {
	return &PostgresOnboardingRepository{db: db}
}

const onboardingColumns = `id, application_id, candidate_id, role_id, company_id, status, start_date, end_date,
	supervisor, documents, company_notes, completed_at, cancelled_at, created_at, updated_at`

func (r *PostgresOnboardingRepository) Create(ctx context.Context, o onboarding.Onboarding) error {
	supervisor, err := marshalJSON(o.Supervisor)
	if err != nil {
		return err
	}
	docs, err := marshalJSON(documentsOrEmpty(o.Documents))
	if err != nil {
		return err
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO onboardings (id, application_id, candidate_id, role_id, company_id, status, start_date,
			end_date, supervisor, documents, company_notes, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9::jsonb,$10::jsonb,$11,$12,$12)`,
		o.ID,
		o.ApplicationID,
		o.CandidateID,
		o.RoleID,
		o.CompanyID,
		string(o.Status),
		o.StartDate,
		o.EndDate,
		supervisor,
		docs,
		o.CompanyNotes,
		o.CreatedAt,
	)
	return mapWriteErr(err)
}

func (r *PostgresOnboardingRepository) FindByID(ctx context.Context, id uuid.UUID) (onboarding.Onboarding, error) {
	row := r.db.QueryRow(ctx, `SELECT `+onboardingColumns+` FROM onboardings WHERE id = $1`, id)
	o, err := scanOnboarding(row)
	if err != nil {
		return onboarding.Onboarding{}, mapScanErr(err)
	}
	return o, nil
}

func (r *PostgresOnboardingRepository) Update(ctx context.Context, o onboarding.Onboarding, expected onboarding.Status) error {
	supervisor, err := marshalJSON(o.Supervisor)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE onboardings
		 SET status = $3,
			start_date = $4,
			end_date = $5,
			supervisor = $6::jsonb,
			company_notes = $7,
			completed_at = $8,
			cancelled_at = $9,
			updated_at = $10
		 WHERE id = $1 AND status = $2`,
		o.ID,
		string(expected),
		string(o.Status),
		o.StartDate,
		o.EndDate,
		supervisor,
		o.CompanyNotes,
		o.CompletedAt,
		o.CancelledAt,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *PostgresOnboardingRepository) AppendDocument(ctx context.Context, id uuid.UUID, doc onboarding.Document) error {
	entry, err := marshalJSON([]onboarding.Document{doc})
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE onboardings
		 SET documents = documents || $2::jsonb, updated_at = $3
		 WHERE id = $1 AND status IN ($4, $5)`,
		id,
		entry,
		time.Now().UTC(),
		string(onboarding.StatusPending),
		string(onboarding.StatusInProgress),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *PostgresOnboardingRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]onboarding.Onboarding, error) {
	return r.list(ctx, `SELECT `+onboardingColumns+` FROM onboardings WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
}

func (r *PostgresOnboardingRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]onboarding.Onboarding, error) {
	return r.list(ctx, `SELECT `+onboardingColumns+` FROM onboardings WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
}

func (r *PostgresOnboardingRepository) list(ctx context.Context, query string, args ...any) ([]onboarding.Onboarding, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]onboarding.Onboarding, 0)
	for rows.Next() {
		o, err := scanOnboarding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanOnboarding(row rowScanner) (onboarding.Onboarding, error) {
	var (
		o          onboarding.Onboarding
		status     string
		supervisor []byte
		docs       []byte
	)
	err := row.Scan(
		&o.ID,
		&o.ApplicationID,
		&o.CandidateID,
		&o.RoleID,
		&o.CompanyID,
		&status,
		&o.StartDate,
		&o.EndDate,
		&supervisor,
		&docs,
		&o.CompanyNotes,
		&o.CompletedAt,
		&o.CancelledAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return onboarding.Onboarding{}, err
	}
	o.Status = onboarding.Status(status)
	if err := unmarshalJSON(supervisor, &o.Supervisor); err != nil {
		return onboarding.Onboarding{}, err
	}
	if err := unmarshalJSON(docs, &o.Documents); err != nil {
		return onboarding.Onboarding{}, err
	}
	return o, nil
}

func documentsOrEmpty(d []onboarding.Document) []onboarding.Document {
	if d == nil {
		return []onboarding.Document{}
	}
	return d
}
