package repository

import (
	"context"
	"time"

	"internhub/internal/database"
	"internhub/internal/domain/interview"

	"github.com/google/uuid"
)

type InterviewRepository interface {
	// UpsertForInvitation creates the interview for an accepted invitation or
	// resets the existing one to pending/accepted. The bool reports whether a
	// row was inserted.
	UpsertForInvitation(ctx context.Context, iv interview.Interview) (interview.Interview, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (interview.Interview, error)
	FindByInvitation(ctx context.Context, invitationID uuid.UUID) (interview.Interview, error)
	// Update writes the mutable fields of iv only while the stored status
	// still equals expected and returns ErrStaleStatus otherwise.
	Update(ctx context.Context, iv interview.Interview, expected interview.Status) error
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]interview.Interview, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]interview.Interview, error)
}

type PostgresInterviewRepository struct {
	db database.Querier
}

func NewPostgresInterviewRepository(db database.Querier) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

const interviewColumns = `id, candidate_id, role_id, company_id, invitation_id, application_id, status,
	candidate_response, scheduled_at, duration_minutes, mode, meeting_details, reschedule_history,
	outcome, offer_letter_ref, cancel_reason, created_at, updated_at`

func (r *PostgresInterviewRepository) UpsertForInvitation(ctx context.Context, iv interview.Interview) (interview.Interview, bool, error) {
	outcome, err := marshalJSON(interview.Outcome{Decision: interview.DecisionPending})
	if err != nil {
		return interview.Interview{}, false, err
	}
	now := time.Now().UTC()

	var inserted bool
	row := r.db.QueryRow(ctx,
		`INSERT INTO interviews (id, candidate_id, role_id, company_id, invitation_id, application_id, status,
			candidate_response, duration_minutes, mode, outcome, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11::jsonb,$12,$12)
		 ON CONFLICT ON CONSTRAINT uq_interviews_invitation DO UPDATE SET
			status = EXCLUDED.status,
			candidate_response = EXCLUDED.candidate_response,
			application_id = COALESCE(EXCLUDED.application_id, interviews.application_id),
			updated_at = EXCLUDED.updated_at
		 RETURNING `+interviewColumns+`, (xmax = 0) AS inserted`,
		iv.ID,
		iv.CandidateID,
		iv.RoleID,
		iv.CompanyID,
		iv.InvitationID,
		iv.ApplicationID,
		string(interview.StatusPending),
		string(interview.ResponseAccepted),
		iv.DurationMinutes,
		string(iv.Mode),
		outcome,
		now,
	)
	out, err := scanInterview(row, &inserted)
	if err != nil {
		return interview.Interview{}, false, err
	}
	return out, inserted, nil
}

func (r *PostgresInterviewRepository) FindByID(ctx context.Context, id uuid.UUID) (interview.Interview, error) {
	row := r.db.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)
	iv, err := scanInterview(row)
	if err != nil {
		return interview.Interview{}, mapScanErr(err)
	}
	return iv, nil
}

func (r *PostgresInterviewRepository) FindByInvitation(ctx context.Context, invitationID uuid.UUID) (interview.Interview, error) {
	row := r.db.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE invitation_id = $1`, invitationID)
	iv, err := scanInterview(row)
	if err != nil {
		return interview.Interview{}, mapScanErr(err)
	}
	return iv, nil
}

func (r *PostgresInterviewRepository) Update(ctx context.Context, iv interview.Interview, expected interview.Status) error {
	history, err := marshalJSON(rescheduleOrEmpty(iv.RescheduleHistory))
	if err != nil {
		return err
	}
	outcome, err := marshalJSON(iv.Outcome)
	if err != nil {
		return err
	}

	n, err := r.db.Exec(ctx,
		`UPDATE interviews
		 SET status = $3,
			candidate_response = $4,
			scheduled_at = $5,
			duration_minutes = $6,
			mode = $7,
			meeting_details = $8,
			reschedule_history = $9::jsonb,
			outcome = $10::jsonb,
			offer_letter_ref = $11,
			cancel_reason = $12,
			application_id = COALESCE($13, application_id),
			updated_at = $14
		 WHERE id = $1 AND status = $2`,
		iv.ID,
		string(expected),
		string(iv.Status),
		string(iv.CandidateResponse),
		iv.ScheduledAt,
		iv.DurationMinutes,
		string(iv.Mode),
		iv.MeetingDetails,
		history,
		outcome,
		iv.OfferLetterRef,
		iv.CancelReason,
		iv.ApplicationID,
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

func (r *PostgresInterviewRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]interview.Interview, error) {
	return r.list(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
}

func (r *PostgresInterviewRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]interview.Interview, error) {
	return r.list(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
}

func (r *PostgresInterviewRepository) list(ctx context.Context, query string, args ...any) ([]interview.Interview, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interview.Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanInterview(row rowScanner, extra ...any) (interview.Interview, error) {
	var (
		iv       interview.Interview
		status   string
		response string
		mode     string
		history  []byte
		outcome  []byte
	)
	dest := []any{
		&iv.ID,
		&iv.CandidateID,
		&iv.RoleID,
		&iv.CompanyID,
		&iv.InvitationID,
		&iv.ApplicationID,
		&status,
		&response,
		&iv.ScheduledAt,
		&iv.DurationMinutes,
		&mode,
		&iv.MeetingDetails,
		&history,
		&outcome,
		&iv.OfferLetterRef,
		&iv.CancelReason,
		&iv.CreatedAt,
		&iv.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return interview.Interview{}, err
	}
	iv.Status = interview.Status(status)
	iv.CandidateResponse = interview.CandidateResponse(response)
	iv.Mode = interview.Mode(mode)
	if err := unmarshalJSON(history, &iv.RescheduleHistory); err != nil {
		return interview.Interview{}, err
	}
	if err := unmarshalJSON(outcome, &iv.Outcome); err != nil {
		return interview.Interview{}, err
	}
	return iv, nil
}

func rescheduleOrEmpty(h []interview.RescheduleRequest) []interview.RescheduleRequest {
	if h == nil {
		return []interview.RescheduleRequest{}
	}
	return h
}
