package candidate

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID          uuid.UUID
	FullName    string
	Email       string
	Skills      []string
	WorkModes   []string
	City        string
	Degree      string
	WeeklyHours string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
