package repository

import (
	"context"

	"internhub/internal/database"
)

// Store groups the lifecycle repositories behind one handle so that a use case
// can run several writes in a single transaction.
type Store interface {
	Roles() RoleRepository
	Candidates() CandidateRepository
	Invitations() InvitationRepository
	Applications() ApplicationRepository
	Interviews() InterviewRepository
	Onboardings() OnboardingRepository

	InTx(ctx context.Context, fn func(tx Store) error) error
}

type PostgresStore struct {
	db database.DB
	q  database.Querier
	tx bool
}

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

func (s *PostgresStore) Roles() RoleRepository { return NewPostgresRoleRepository(s.q) }

func (s *PostgresStore) Candidates() CandidateRepository {
	return NewPostgresCandidateRepository(s.q)
}

func (s *PostgresStore) Invitations() InvitationRepository {
	return NewPostgresInvitationRepository(s.q)
}

func (s *PostgresStore) Applications() ApplicationRepository {
	return NewPostgresApplicationRepository(s.q)
}

func (s *PostgresStore) Interviews() InterviewRepository {
	return NewPostgresInterviewRepository(s.q)
}

func (s *PostgresStore) Onboardings() OnboardingRepository {
	return NewPostgresOnboardingRepository(s.q)
}

// InTx joins the surrounding transaction when called on a transactional store.
func (s *PostgresStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	if s.tx {
		return fn(s)
	}
	return database.WithTx(ctx, s.db, func(tx database.Tx) error {
		return fn(&PostgresStore{db: s.db, q: tx, tx: true})
	})
}
