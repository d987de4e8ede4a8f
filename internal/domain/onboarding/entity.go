package onboarding

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type DocumentStatus string

const (
	DocumentSubmitted DocumentStatus = "submitted"
	DocumentVerified  DocumentStatus = "verified"
	DocumentRejected  DocumentStatus = "rejected"
)

type Supervisor struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (s Supervisor) IsZero() bool {
	return s.Name == "" && s.Email == "" && s.Phone == ""
}

type Document struct {
	ID         uuid.UUID      `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	URL        string         `json:"url,omitempty"`
	Status     DocumentStatus `json:"status"`
	UploadedBy uuid.UUID      `json:"uploaded_by"`
	UploadedAt time.Time      `json:"uploaded_at"`
}

type Onboarding struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	CandidateID   uuid.UUID
	RoleID        uuid.UUID
	CompanyID     uuid.UUID
	Status        Status
	StartDate     *time.Time
	EndDate       *time.Time
	Supervisor    Supervisor
	Documents     []Document
	CompanyNotes  string
	CompletedAt   *time.Time
	CancelledAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func IsOpen(s Status) bool {
	return s == StatusPending || s == StatusInProgress
}

// CanMove enforces pending -> in_progress -> completed, with cancellation
// allowed from any open state. Staying in place is always allowed for open records.
func CanMove(from, to Status) bool {
	if from == to {
		return IsOpen(from)
	}
	switch from {
	case StatusPending:
		return to == StatusInProgress || to == StatusCancelled
	case StatusInProgress:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}
