package role

import (
	"time"

	"github.com/google/uuid"
)

type WorkMode string

const (
	WorkModeOnsite WorkMode = "onsite"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeRemote WorkMode = "remote"
)

// Status is informational; the lifecycle never gates on it.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusUnderReview Status = "under_review"
	StatusActive      Status = "active"
	StatusMatched     Status = "matched"
	StatusCompleted   Status = "completed"
	StatusClosed      Status = "closed"
)

type Role struct {
	ID               uuid.UUID
	CompanyID        uuid.UUID
	Title            string
	Description      string
	MustHaveSkills   []string
	NiceToHaveSkills []string
	WorkMode         WorkMode
	City             string
	AcademicLevels   []string
	WeeklyHours      string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r Role) OwnedBy(companyID uuid.UUID) bool {
	return companyID != uuid.Nil && r.CompanyID == companyID
}
