package interview

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusScheduled   Status = "scheduled"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

type CandidateResponse string

const (
	ResponsePending             CandidateResponse = "pending"
	ResponseAccepted            CandidateResponse = "accepted"
	ResponseDeclined            CandidateResponse = "declined"
	ResponseRescheduleRequested CandidateResponse = "reschedule_requested"
)

type Mode string

const (
	ModeVideo  Mode = "video"
	ModePhone  Mode = "phone"
	ModeOnsite Mode = "onsite"
)

type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

const (
	DefaultMode            = ModeVideo
	DefaultDurationMinutes = 60
)

type Outcome struct {
	Decision  Decision   `json:"decision"`
	Feedback  string     `json:"feedback,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

type RescheduleRequest struct {
	RequestedBy uuid.UUID  `json:"requested_by"`
	Reason      string     `json:"reason,omitempty"`
	ProposedAt  *time.Time `json:"proposed_at,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
}

type Interview struct {
	ID                uuid.UUID
	CandidateID       uuid.UUID
	RoleID            uuid.UUID
	CompanyID         uuid.UUID
	InvitationID      *uuid.UUID
	ApplicationID     *uuid.UUID
	Status            Status
	CandidateResponse CandidateResponse
	ScheduledAt       *time.Time
	DurationMinutes   int
	Mode              Mode
	MeetingDetails    string
	RescheduleHistory []RescheduleRequest
	Outcome           Outcome
	OfferLetterRef    string
	CancelReason      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func IsKnownMode(m Mode) bool {
	return m == ModeVideo || m == ModePhone || m == ModeOnsite
}

func IsFinalDecision(d Decision) bool {
	return d == DecisionAccepted || d == DecisionRejected
}

func (i Interview) CanSchedule() bool {
	return i.Status == StatusPending
}

func (i Interview) CanReschedule() bool {
	return i.Status == StatusScheduled || i.Status == StatusRescheduled
}

// CanComplete treats a rescheduled interview as scheduled.
func (i Interview) CanComplete() bool {
	return i.Status == StatusScheduled || i.Status == StatusRescheduled
}

func (i Interview) CanCancel() bool {
	switch i.Status {
	case StatusPending, StatusScheduled, StatusRescheduled:
		return true
	default:
		return false
	}
}

func (i Interview) CanCandidateRespond() bool {
	return i.Status == StatusPending
}

// NewForInvitation builds the interview stub created when a candidate accepts an invitation.
func NewForInvitation(id, candidateID, roleID, companyID, invitationID uuid.UUID, applicationID *uuid.UUID) Interview {
	inv := invitationID
	return Interview{
		ID:                id,
		CandidateID:       candidateID,
		RoleID:            roleID,
		CompanyID:         companyID,
		InvitationID:      &inv,
		ApplicationID:     applicationID,
		Status:            StatusPending,
		CandidateResponse: ResponseAccepted,
		DurationMinutes:   DefaultDurationMinutes,
		Mode:              DefaultMode,
		Outcome:           Outcome{Decision: DecisionPending},
	}
}
