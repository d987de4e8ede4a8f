package user

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCompany   Kind = "company"
	KindCandidate Kind = "candidate"
)

func IsKnownKind(k Kind) bool {
	return k == KindCompany || k == KindCandidate
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Kind         Kind
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
