package seeder

import (
	"context"
	"fmt"

	"internhub/internal/database"
	"internhub/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "internhub-demo"

var (
	demoCompanyID    = uuid.MustParse("6f1c2a8e-3d4b-4c5a-9e7f-0a1b2c3d4e01")
	demoCandidateIDs = []uuid.UUID{
		uuid.MustParse("6f1c2a8e-3d4b-4c5a-9e7f-0a1b2c3d4e11"),
		uuid.MustParse("6f1c2a8e-3d4b-4c5a-9e7f-0a1b2c3d4e12"),
		uuid.MustParse("6f1c2a8e-3d4b-4c5a-9e7f-0a1b2c3d4e13"),
	}
)

type demoAccount struct {
	ID    uuid.UUID
	Email string
	Kind  user.Kind
}

func demoAccounts() []demoAccount {
	out := []demoAccount{{ID: demoCompanyID, Email: "hiring@acme.test", Kind: user.KindCompany}}
	for i, id := range demoCandidateIDs {
		out = append(out, demoAccount{ID: id, Email: fmt.Sprintf("candidate%d@internhub.test", i+1), Kind: user.KindCandidate})
	}
	return out
}

type AccountsSeeder struct{}

func (AccountsSeeder) Name() string { return "accounts" }

func (AccountsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "kind"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, a := range demoAccounts() {
			if _, err := tx.Exec(ctx,
				`INSERT INTO users (id, email, password_hash, kind) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
				a.ID, a.Email, string(hash), string(a.Kind),
			); err != nil {
				return err
			}
		}
		return nil
	})
}
