package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending            Status = "pending"
	StatusReviewing          Status = "reviewing"
	StatusShortlisted        Status = "shortlisted"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusInterviewed        Status = "interviewed"
	StatusOffered            Status = "offered"
	StatusAccepted           Status = "accepted"
	StatusRejected           Status = "rejected"
	StatusOnboarding         Status = "onboarding"
	StatusActive             Status = "active"
	StatusCompleted          Status = "completed"
)

type HistoryEntry struct {
	Status    Status    `json:"status"`
	ChangedBy uuid.UUID `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Note      string    `json:"note,omitempty"`
}

type Offer struct {
	JoiningDate time.Time `json:"joining_date"`
	Message     string    `json:"message,omitempty"`
	Attachments []string  `json:"attachments,omitempty"`
	SentAt      time.Time `json:"sent_at"`
}

type Application struct {
	ID            uuid.UUID
	CandidateID   uuid.UUID
	RoleID        uuid.UUID
	CompanyID     uuid.UUID
	InvitationID  *uuid.UUID
	CoverLetter   string
	Status        Status
	StatusHistory []HistoryEntry
	Offer         *Offer
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func IsKnownStatus(s Status) bool {
	switch s {
	case StatusPending, StatusReviewing, StatusShortlisted, StatusInterviewScheduled, StatusInterviewed,
		StatusOffered, StatusAccepted, StatusRejected, StatusOnboarding, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

func IsFinal(s Status) bool {
	return s == StatusRejected || s == StatusCompleted
}

// reviewTransitions are the moves a company may make by hand. Everything else
// is driven by interview and onboarding transitions. interviewed parks an
// application whose interview took place until the interview is completed
// with a decision; completed closes an internship that went active.
var reviewTransitions = map[Status][]Status{
	StatusPending:            {StatusReviewing, StatusShortlisted, StatusRejected},
	StatusReviewing:          {StatusShortlisted, StatusRejected},
	StatusShortlisted:        {StatusReviewing, StatusRejected},
	StatusInterviewScheduled: {StatusInterviewed, StatusRejected},
	StatusInterviewed:        {StatusRejected},
	StatusOffered:            {StatusAccepted, StatusRejected},
	StatusActive:             {StatusCompleted},
}

func CanReview(from, to Status) bool {
	for _, s := range reviewTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanStartOnboarding reports whether an onboarding record may be opened.
func CanStartOnboarding(s Status) bool {
	return s == StatusOffered || s == StatusAccepted
}

func NewHistoryEntry(status Status, by uuid.UUID, at time.Time, note string) HistoryEntry {
	return HistoryEntry{Status: status, ChangedBy: by, ChangedAt: at.UTC(), Note: note}
}
