package invitation

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type Invitation struct {
	ID           uuid.UUID
	RoleID       uuid.UUID
	CandidateID  uuid.UUID
	CompanyID    uuid.UUID
	Status       Status
	Message      string
	ResponseText string
	RespondedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDecision reports whether s is a legal candidate response.
func IsDecision(s Status) bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanRespond is true only while the invitation is still pending; a response is one-shot.
func (i Invitation) CanRespond() bool {
	return i.Status == StatusPending
}
