package repository

import (
	"context"
	"time"

	"internhub/internal/database"
	"internhub/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	// Create inserts a new application and returns ErrDuplicate when the
	// candidate already applied to the role.
	Create(ctx context.Context, app application.Application) error
	// UpsertForInvitation creates the application for an accepted invitation,
	// or re-confirms the existing one by resetting it to pending and appending
	// entry to its history. The bool reports whether a row was inserted.
	UpsertForInvitation(ctx context.Context, app application.Application, entry application.HistoryEntry) (application.Application, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	FindByCandidateAndRole(ctx context.Context, candidateID, roleID uuid.UUID) (application.Application, error)
	// Transition moves the application from -> to, appending entry to the
	// history. offer replaces the stored offer when non-nil.
	Transition(ctx context.Context, id uuid.UUID, from, to application.Status, entry application.HistoryEntry, offer *application.Offer) error
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]application.Application, error)
	ListByRole(ctx context.Context, roleID uuid.UUID) ([]application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.Querier
}

func NewPostgresApplicationRepository(db database.Querier) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, candidate_id, role_id, company_id, invitation_id, cover_letter, status,
	status_history, offer, created_at, updated_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, app application.Application) error {
	history, err := marshalJSON(historyOrEmpty(app.StatusHistory))
	if err != nil {
		return err
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO applications (id, candidate_id, role_id, company_id, invitation_id, cover_letter, status,
			status_history, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8::jsonb,$9,$9)`,
		app.ID,
		app.CandidateID,
		app.RoleID,
		app.CompanyID,
		app.InvitationID,
		app.CoverLetter,
		string(app.Status),
		history,
		app.CreatedAt,
	)
	return mapWriteErr(err)
}

func (r *PostgresApplicationRepository) UpsertForInvitation(ctx context.Context, app application.Application, entry application.HistoryEntry) (application.Application, bool, error) {
	history, err := marshalJSON([]application.HistoryEntry{entry})
	if err != nil {
		return application.Application{}, false, err
	}
	now := time.Now().UTC()

	var inserted bool
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, candidate_id, role_id, company_id, invitation_id, cover_letter, status,
			status_history, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,'',$6,$7::jsonb,$8,$8)
		 ON CONFLICT ON CONSTRAINT uq_applications_candidate_role DO UPDATE SET
			status = EXCLUDED.status,
			invitation_id = EXCLUDED.invitation_id,
			status_history = applications.status_history || EXCLUDED.status_history,
			updated_at = EXCLUDED.updated_at
		 RETURNING `+applicationColumns+`, (xmax = 0) AS inserted`,
		app.ID,
		app.CandidateID,
		app.RoleID,
		app.CompanyID,
		app.InvitationID,
		string(application.StatusPending),
		history,
		now,
	)
	out, err := scanApplication(row, &inserted)
	if err != nil {
		return application.Application{}, false, err
	}
	return out, inserted, nil
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		return application.Application{}, mapScanErr(err)
	}
	return app, nil
}

func (r *PostgresApplicationRepository) FindByCandidateAndRole(ctx context.Context, candidateID, roleID uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE candidate_id = $1 AND role_id = $2`,
		candidateID, roleID,
	)
	app, err := scanApplication(row)
	if err != nil {
		return application.Application{}, mapScanErr(err)
	}
	return app, nil
}

func (r *PostgresApplicationRepository) Transition(ctx context.Context, id uuid.UUID, from, to application.Status, entry application.HistoryEntry, offer *application.Offer) error {
	history, err := marshalJSON([]application.HistoryEntry{entry})
	if err != nil {
		return err
	}
	var offerJSON *string
	if offer != nil {
		s, err := marshalJSON(offer)
		if err != nil {
			return err
		}
		offerJSON = &s
	}

	n, err := r.db.Exec(ctx,
		`UPDATE applications
		 SET status = $3,
			status_history = status_history || $4::jsonb,
			offer = COALESCE($5::jsonb, offer),
			updated_at = $6
		 WHERE id = $1 AND status = $2`,
		id,
		string(from),
		string(to),
		history,
		offerJSON,
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

func (r *PostgresApplicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
}

func (r *PostgresApplicationRepository) ListByRole(ctx context.Context, roleID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE role_id = $1 ORDER BY created_at DESC`, roleID)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row rowScanner, extra ...any) (application.Application, error) {
	var (
		app     application.Application
		status  string
		history []byte
		offer   []byte
	)
	dest := []any{
		&app.ID,
		&app.CandidateID,
		&app.RoleID,
		&app.CompanyID,
		&app.InvitationID,
		&app.CoverLetter,
		&status,
		&history,
		&offer,
		&app.CreatedAt,
		&app.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return application.Application{}, err
	}
	app.Status = application.Status(status)
	if err := unmarshalJSON(history, &app.StatusHistory); err != nil {
		return application.Application{}, err
	}
	if len(offer) > 0 {
		var o application.Offer
		if err := unmarshalJSON(offer, &o); err != nil {
			return application.Application{}, err
		}
		app.Offer = &o
	}
	return app, nil
}

func historyOrEmpty(h []application.HistoryEntry) []application.HistoryEntry {
	if h == nil {
		return []application.HistoryEntry{}
	}
	return h
}
