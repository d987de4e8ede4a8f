package usecase

import (
	"internhub/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated party performing an operation. Candidates are
// identified by their account id, which is also their profile id.
type Actor struct {
	ID   uuid.UUID
	Kind user.Kind
}

func CompanyActor(id uuid.UUID) Actor   { return Actor{ID: id, Kind: user.KindCompany} }
func CandidateActor(id uuid.UUID) Actor { return Actor{ID: id, Kind: user.KindCandidate} }

func (a Actor) IsCompany() bool   { return a.ID != uuid.Nil && a.Kind == user.KindCompany }
func (a Actor) IsCandidate() bool { return a.ID != uuid.Nil && a.Kind == user.KindCandidate }

func (a Actor) validate() error {
	if a.ID == uuid.Nil || !user.IsKnownKind(a.Kind) {
		return ErrUnauthorized
	}
	return nil
}

func (a Actor) requireCompany() error {
	if err := a.validate(); err != nil {
		return err
	}
	if !a.IsCompany() {
		return forbidden("company account required")
	}
	return nil
}

func (a Actor) requireCandidate() error {
	if err := a.validate(); err != nil {
		return err
	}
	if !a.IsCandidate() {
		return forbidden("candidate account required")
	}
	return nil
}

// owns reports whether a is the company or the candidate party of a record.
func (a Actor) owns(companyID, candidateID uuid.UUID) bool {
	switch a.Kind {
	case user.KindCompany:
		return a.ID == companyID
	case user.KindCandidate:
		return a.ID == candidateID
	default:
		return false
	}
}
