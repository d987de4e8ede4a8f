package usecase

import (
	"context"
	"strings"
	"time"

	"internhub/internal/domain/application"
	"internhub/internal/domain/onboarding"
	"internhub/internal/domain/role"
	"internhub/internal/notification"
	"internhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StartOnboardingInput struct {
	ApplicationID uuid.UUID
	StartDate     string
	EndDate       string
	Supervisor    onboarding.Supervisor
	CompanyNotes  string
}

// OnboardingPatch lists the fields a company may change. Nil fields are left as is.
type OnboardingPatch struct {
	StartDate    *string
	EndDate      *string
	Supervisor   *onboarding.Supervisor
	CompanyNotes *string
	Status       *onboarding.Status
}

type DocumentInput struct {
	Type string
	Name string
	URL  string
}

type OnboardingsUsecase interface {
	Start(ctx context.Context, actor Actor, in StartOnboardingInput) (onboarding.Onboarding, error)
	Advance(ctx context.Context, actor Actor, id uuid.UUID, patch OnboardingPatch) (onboarding.Onboarding, error)
	AddDocument(ctx context.Context, actor Actor, id uuid.UUID, in DocumentInput) (onboarding.Onboarding, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) (onboarding.Onboarding, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (onboarding.Onboarding, error)
	ListForCompany(ctx context.Context, actor Actor) ([]onboarding.Onboarding, error)
	ListForCandidate(ctx context.Context, actor Actor) ([]onboarding.Onboarding, error)
}

type Onboardings struct {
	Deps
}

func NewOnboardingsUsecase(deps Deps) *Onboardings {
	return &Onboardings{Deps: deps.withDefaults()}
}

// Start opens onboarding for an offered or accepted application. It is
// always an explicit company action.
func (u *Onboardings) Start(ctx context.Context, actor Actor, in StartOnboardingInput) (onboarding.Onboarding, error) {
	if err := actor.requireCompany(); err != nil {
		return onboarding.Onboarding{}, err
	}
	if in.ApplicationID == uuid.Nil {
		return onboarding.Onboarding{}, invalid("application_id is required")
	}
	start, err := parseOptionalDate("start_date", in.StartDate)
	if err != nil {
		return onboarding.Onboarding{}, err
	}
	end, err := parseOptionalDate("end_date", in.EndDate)
	if err != nil {
		return onboarding.Onboarding{}, err
	}
	if err := checkDateRange(start, end); err != nil {
		return onboarding.Onboarding{}, err
	}

	unlock, err := u.lock(ctx, "application", in.ApplicationID)
	if err != nil {
		return onboarding.Onboarding{}, err
	}
	defer unlock()

	app, err := u.Store.Applications().FindByID(ctx, in.ApplicationID)
	if err != nil {
		return onboarding.Onboarding{}, storeErr(err, "application")
	}
	r, err := u.Store.Roles().FindByID(ctx, app.RoleID)
	if err != nil {
		return onboarding.Onboarding{}, storeErr(err, "role")
	}
	if !r.OwnedBy(actor.ID) {
		return onboarding.Onboarding{}, forbidden("role belongs to another company")
	}
	if !application.CanStartOnboarding(app.Status) {
		return onboarding.Onboarding{}, conflict("application is %s, onboarding needs an offered or accepted application", app.Status)
	}

	now := u.now()
	o := onboarding.Onboarding{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		CandidateID:   app.CandidateID,
		RoleID:        app.RoleID,
		CompanyID:     r.CompanyID,
		Status:        onboarding.StatusPending,
		StartDate:     start,
		EndDate:       end,
		Supervisor:    trimSupervisor(in.Supervisor),
		Documents:     []onboarding.Document{},
		CompanyNotes:  strings.TrimSpace(in.CompanyNotes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = u.Store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Onboardings().Create(ctx, o); err != nil {
			return storeErr(err, "onboarding for this application")
		}
		_, err := u.syncApplication(ctx, tx, &app.ID, app.CandidateID, app.RoleID, actor.ID, application.StatusOnboarding, "onboarding started", nil)
		return err
	})
	if err != nil {
		return onboarding.Onboarding{}, err
	}

	u.Logger.Info("onboarding started", zap.Stringer("onboarding_id", o.ID), zap.Stringer("application_id", app.ID))
	u.notify(o.CandidateID, notification.TemplateOnboardingStarted, map[string]any{
		"onboarding_id": o.ID.String(),
		"role_title":    r.Title,
	})
	return o, nil
}

// Advance applies patch. The first supervisor or date edit on a pending
// record moves it to in_progress; completion activates the application.
func (u *Onboardings) Advance(ctx context.Context, actor Actor, id uuid.UUID, patch OnboardingPatch) (onboarding.Onboarding, error) {
	if err := actor.requireCompany(); err != nil {
		return onboarding.Onboarding{}, err
	}
	if patch.Status != nil {
		switch *patch.Status {
		case onboarding.StatusPending, onboarding.StatusInProgress, onboarding.StatusCompleted, onboarding.StatusCancelled:
		default:
			return onboarding.Onboarding{}, invalid("unknown onboarding status %q", *patch.Status)
		}
	}

	unlock, err := u.lock(ctx, "onboarding", id)
	if err != nil {
		return onboarding.Onboarding{}, err
	}
	defer unlock()

	o, r, err := u.load(ctx, actor, id)
	if err != nil {
		return onboarding.Onboarding{}, err
	}
	if !onboarding.IsOpen(o.Status) {
		return onboarding.Onboarding{}, conflict("onboarding is already %s", o.Status)
	}

	expected := o.Status
	edited := false
	if patch.StartDate != nil {
		if o.StartDate, err = parseOptionalDate("start_date", *patch.StartDate); err != nil {
			return onboarding.Onboarding{}, err
		}
		edited = true
	}
	if patch.EndDate != nil {
		if o.EndDate, err = parseOptionalDate("end_date", *patch.EndDate); err != nil {
			return onboarding.Onboarding{}, err
		}
		edited = true
	}
	if err := checkDateRange(o.StartDate, o.EndDate); err != nil {
		return onboarding.Onboarding{}, err
	}
	if patch.Supervisor != nil {
		o.Supervisor = trimSupervisor(*patch.Supervisor)
		edited = true
	}
	if patch.CompanyNotes != nil {
		o.CompanyNotes = strings.TrimSpace(*patch.CompanyNotes)
	}
	if edited && o.Status == onboarding.StatusPending {
		o.Status = onboarding.StatusInProgress
	}

	if patch.Status != nil && *patch.Status != o.Status {
		if !onboarding.CanMove(o.Status, *patch.Status) {
			return onboarding.Onboarding{}, conflict("cannot move onboarding from %s to %s", o.Status, *patch.Status)
		}
		o.Status = *patch.Status
	}

	now := u.now()
	switch o.Status {
	case onboarding.StatusCompleted:
		o.CompletedAt = &now
	case onboarding.StatusCancelled:
		o.CancelledAt = &now
	}

	err = u.Store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Onboardings().Update(ctx, o, expected); err != nil {
			return storeErr(err, "onboarding")
		}
		if o.Status != onboarding.StatusCompleted {
			return nil
		}
		appID := o.ApplicationID
		_, err := u.syncApplication(ctx, tx, &appID, o.CandidateID, o.RoleID, actor.ID, application.StatusActive, "onboarding completed", nil)
		return err
	})
	if err != nil {
		return onboarding.Onboarding{}, err
	}
	o.UpdatedAt = now

	if o.Status != expected {
		u.Logger.Info("onboarding advanced",
			zap.Stringer("onboarding_id", o.ID),
			zap.String("from", string(expected)),
			zap.String("to", string(o.Status)),
		)
	}
	u.notify(o.CandidateID, notification.TemplateOnboardingUpdated, map[string]any{
		"onboarding_id": o.ID.String(),
		"role_title":    r.Title,
		"status":        string(o.Status),
	})
	return o, nil
}

// AddDocument appends to the document list of an open onboarding. Either
// party may upload.
func (u *Onboardings) AddDocument(ctx context.Context, actor Actor, id uuid.UUID, in DocumentInput) (onboarding.Onboarding, error) {
	if err := actor.validate(); err != nil {
		return onboarding.Onboarding{}, err
	}
	docType := strings.TrimSpace(in.Type)
	name := strings.TrimSpace(in.Name)
	if docType == "" || name == "" {
		return onboarding.Onboarding{}, invalid("document type and name are required")
	}

	o, r, err := u.load(ctx, actor, id)
	if err != nil {
		return onboarding.Onboarding{}, err
	}
	if !onboarding.IsOpen(o.Status) {
		return onboarding.Onboarding{}, conflict("onboarding is already %s", o.Status)
	}

	doc := onboarding.Document{
		ID:         uuid.New(),
		Type:       docType,
		Name:       name,
		URL:        strings.TrimSpace(in.URL),
		Status:     onboarding.DocumentSubmitted,
		UploadedBy: actor.ID,
		UploadedAt: u.now(),
	}
	if err := u.Store.Onboardings().AppendDocument(ctx, o.ID, doc); err != nil {
		return onboarding.Onboarding{}, storeErr(err, "onboarding")
	}
	o.Documents = append(o.Documents, doc)

	to := o.CompanyID
	if actor.IsCompany() {
		to = o.CandidateID
	}
	u.notify(to, notification.TemplateDocumentAdded, map[string]any{
		"onboarding_id": o.ID.String(),
		"role_title":    r.Title,
		"document_type": doc.Type,
		"document_name": doc.Name,
	})
	return o, nil
}

// Cancel is the explicit removal path; the record is kept with status cancelled.
func (u *Onboardings) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (onboarding.Onboarding, error) {
	cancelled := onboarding.StatusCancelled
	return u.Advance(ctx, actor, id, OnboardingPatch{Status: &cancelled})
}

func (u *Onboardings) Get(ctx context.Context, actor Actor, id uuid.UUID) (onboarding.Onboarding, error) {
	if err := actor.validate(); err != nil {
		return onboarding.Onboarding{}, err
	}
	o, _, err := u.load(ctx, actor, id)
	return o, err
}

func (u *Onboardings) ListForCompany(ctx context.Context, actor Actor) ([]onboarding.Onboarding, error) {
	if err := actor.requireCompany(); err != nil {
		return nil, err
	}
	out, err := u.Store.Onboardings().ListByCompany(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "onboardings")
	}
	return out, nil
}

func (u *Onboardings) ListForCandidate(ctx context.Context, actor Actor) ([]onboarding.Onboarding, error) {
	if err := actor.requireCandidate(); err != nil {
		return nil, err
	}
	out, err := u.Store.Onboardings().ListByCandidate(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "onboardings")
	}
	return out, nil
}

func (u *Onboardings) load(ctx context.Context, actor Actor, id uuid.UUID) (onboarding.Onboarding, role.Role, error) {
	o, err := u.Store.Onboardings().FindByID(ctx, id)
	if err != nil {
		return onboarding.Onboarding{}, role.Role{}, storeErr(err, "onboarding")
	}
	r, err := u.Store.Roles().FindByID(ctx, o.RoleID)
	if err != nil {
		return onboarding.Onboarding{}, role.Role{}, storeErr(err, "role")
	}
	if !actor.owns(r.CompanyID, o.CandidateID) {
		return onboarding.Onboarding{}, role.Role{}, forbidden("not a party to this onboarding")
	}
	return o, r, nil
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, invalid("%s must be YYYY-MM-DD", field)
	}
	d = d.UTC()
	return &d, nil
}

func checkDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return invalid("end_date must not be before start_date")
	}
	return nil
}

func trimSupervisor(s onboarding.Supervisor) onboarding.Supervisor {
	return onboarding.Supervisor{
		Name:  strings.TrimSpace(s.Name),
		Email: strings.TrimSpace(s.Email),
		Phone: strings.TrimSpace(s.Phone),
	}
}
