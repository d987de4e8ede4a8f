package postgres

import (
	"context"
	"database/sql"
	"errors"

	dbpostgres "internhub/internal/database/postgres"
	"internhub/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository keeps account lookups on prepared statements over the
// database/sql view of the pool.
type UserRepository struct {
	db *sql.DB

	stmtCreate     *sql.Stmt
	stmtGetByID    *sql.Stmt
	stmtGetByEmail *sql.Stmt
}

func NewUserRepository(ctx context.Context, db *sql.DB) (*UserRepository, error) {
	if db == nil {
		return nil, errors.New("user repository: nil sql db")
	}
	r := &UserRepository{db: db}

	var err error
	r.stmtCreate, err = db.PrepareContext(ctx,
		`INSERT INTO users (id, email, password_hash, kind) VALUES ($1, $2, $3, $4)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByID, err = db.PrepareContext(ctx,
		`SELECT id, email, password_hash, kind, created_at, updated_at FROM users WHERE id = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByEmail, err = db.PrepareContext(ctx,
		`SELECT id, email, password_hash, kind, created_at, updated_at FROM users WHERE lower(email) = lower($1)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)

	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Email, u.PasswordHash, string(u.Kind))
	if dbpostgres.IsUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.stmtGetByID.QueryRowContext(ctx, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.stmtGetByEmail.QueryRowContext(ctx, email)
	return scanUser(row)
}

// EmailOf resolves the mail address of an account for outbound notifications.
func (r *UserRepository) EmailOf(ctx context.Context, id uuid.UUID) (string, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var (
		u    user.User
		kind string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &kind, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Kind = user.Kind(kind)
	return u, nil
}
