package repository

import (
	"context"
	"time"

	"internhub/internal/database"
	"internhub/internal/domain/invitation"

	"github.com/google/uuid"
)

type InvitationRepository interface {
	Create(ctx context.Context, inv invitation.Invitation) error
	FindByID(ctx context.Context, id uuid.UUID) (invitation.Invitation, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]invitation.Invitation, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]invitation.Invitation, error)
	// Respond records the candidate's decision only while the invitation is
	// still pending and returns ErrStaleStatus otherwise.
	Respond(ctx context.Context, id uuid.UUID, status invitation.Status, responseText string, at time.Time) error
}

type PostgresInvitationRepository struct {
	db database.Querier
}

func NewPostgresInvitationRepository(db database.Querier) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{db: db}
}

const invitationColumns = `id, role_id, candidate_id, company_id, status, message, response_text,
	responded_at, created_at, updated_at`

func (r *PostgresInvitationRepository) Create(ctx context.Context, inv invitation.Invitation) error {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO invitations (id, role_id, candidate_id, company_id, status, message, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$7)`,
		inv.ID,
		inv.RoleID,
		inv.CandidateID,
		inv.CompanyID,
		string(invitation.StatusPending),
		inv.Message,
		inv.CreatedAt,
	)
	return mapWriteErr(err)
}

func (r *PostgresInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (invitation.Invitation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE id = $1`, id)
	inv, err := scanInvitation(row)
	if err != nil {
		return invitation.Invitation{}, mapScanErr(err)
	}
	return inv, nil
}

func (r *PostgresInvitationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]invitation.Invitation, error) {
	return r.list(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
}

func (r *PostgresInvitationRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]invitation.Invitation, error) {
	return r.list(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
}

func (r *PostgresInvitationRepository) Respond(ctx context.Context, id uuid.UUID, status invitation.Status, responseText string, at time.Time) error {
	n, err := r.db.Exec(ctx,
		`UPDATE invitations
		 SET status = $2, response_text = $3, responded_at = $4, updated_at = $4
		 WHERE id = $1 AND status = $5`,
		id,
		string(status),
		responseText,
		at,
		string(invitation.StatusPending),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *PostgresInvitationRepository) list(ctx context.Context, query string, args ...any) ([]invitation.Invitation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]invitation.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanInvitation(row rowScanner) (invitation.Invitation, error) {
	var (
		inv    invitation.Invitation
		status string
	)
	err := row.Scan(
		&inv.ID,
		&inv.RoleID,
		&inv.CandidateID,
		&inv.CompanyID,
		&status,
		&inv.Message,
		&inv.ResponseText,
		&inv.RespondedAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return invitation.Invitation{}, err
	}
	inv.Status = invitation.Status(status)
	return inv, nil
}
