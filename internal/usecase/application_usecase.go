package usecase

import (
	"context"
	"strings"

	"internhub/internal/domain/application"
	"internhub/internal/domain/role"
	"internhub/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApplyInput struct {
	RoleID      uuid.UUID
	CoverLetter string
}

type ApplicationsUsecase interface {
	Apply(ctx context.Context, actor Actor, in ApplyInput) (application.Application, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status application.Status, note string) (application.Application, error)
	RespondToOffer(ctx context.Context, actor Actor, id uuid.UUID, accept bool, note string) (application.Application, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error)
	ListForCandidate(ctx context.Context, actor Actor) ([]application.Application, error)
	ListForRole(ctx context.Context, actor Actor, roleID uuid.UUID) ([]application.Application, error)
}

type Applications struct {
	Deps
}

func NewApplicationsUsecase(deps Deps) *Applications {
	return &Applications{Deps: deps.withDefaults()}
}

// Apply is the direct application path. Unlike invitation acceptance it is
// strict: a second application for the same role is a conflict.
func (u *Applications) Apply(ctx context.Context, actor Actor, in ApplyInput) (application.Application, error) {
	if err := actor.requireCandidate(); err != nil {
		return application.Application{}, err
	}
	if in.RoleID == uuid.Nil {
		return application.Application{}, invalid("role_id is required")
	}

	r, err := u.Store.Roles().FindByID(ctx, in.RoleID)
	if err != nil {
		return application.Application{}, storeErr(err, "role")
	}
	if _, err := u.Store.Candidates().FindByID(ctx, actor.ID); err != nil {
		return application.Application{}, storeErr(err, "candidate profile")
	}

	now := u.now()
	app := application.Application{
		ID:            uuid.New(),
		CandidateID:   actor.ID,
		RoleID:        r.ID,
		CompanyID:     r.CompanyID,
		CoverLetter:   strings.TrimSpace(in.CoverLetter),
		Status:        application.StatusPending,
		StatusHistory: []application.HistoryEntry{application.NewHistoryEntry(application.StatusPending, actor.ID, now, "applied")},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.Store.Applications().Create(ctx, app); err != nil {
		return application.Application{}, storeErr(err, "application for this role")
	}

	u.Logger.Info("application created", zap.Stringer("application_id", app.ID), zap.Stringer("role_id", r.ID))
	u.notify(r.CompanyID, notification.TemplateApplicationReceived, map[string]any{
		"application_id": app.ID.String(),
		"role_title":     r.Title,
	})
	return app, nil
}

// UpdateStatus applies a company review decision.
func (u *Applications) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status application.Status, note string) (application.Application, error) {
	if err := actor.requireCompany(); err != nil {
		return application.Application{}, err
	}
	if !application.IsKnownStatus(status) {
		return application.Application{}, invalid("unknown application status %q", status)
	}

	unlock, err := u.lock(ctx, "application", id)
	if err != nil {
		return application.Application{}, err
	}
	defer unlock()

	app, r, err := u.load(ctx, actor, id)
	if err != nil {
		return application.Application{}, err
	}
	if !application.CanReview(app.Status, status) {
		return application.Application{}, conflict("cannot move application from %s to %s", app.Status, status)
	}

	app, err = u.transition(ctx, app, status, actor.ID, note)
	if err != nil {
		return application.Application{}, err
	}

	u.notify(app.CandidateID, notification.TemplateApplicationUpdated, map[string]any{
		"application_id": app.ID.String(),
		"role_title":     r.Title,
		"status":         string(status),
		"note":           strings.TrimSpace(note),
	})
	return app, nil
}

func (u *Applications) RespondToOffer(ctx context.Context, actor Actor, id uuid.UUID, accept bool, note string) (application.Application, error) {
	if err := actor.requireCandidate(); err != nil {
		return application.Application{}, err
	}

	unlock, err := u.lock(ctx, "application", id)
	if err != nil {
		return application.Application{}, err
	}
	defer unlock()

	app, r, err := u.load(ctx, actor, id)
	if err != nil {
		return application.Application{}, err
	}
	if app.Status != application.StatusOffered {
		return application.Application{}, conflict("application is %s, no open offer", app.Status)
	}

	to := application.StatusRejected
	if accept {
		to = application.StatusAccepted
	}
	app, err = u.transition(ctx, app, to, actor.ID, note)
	if err != nil {
		return application.Application{}, err
	}

	u.notify(app.CompanyID, notification.TemplateOfferResponded, map[string]any{
		"application_id": app.ID.String(),
		"role_title":     r.Title,
		"status":         string(to),
	})
	return app, nil
}

func (u *Applications) Get(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error) {
	if err := actor.validate(); err != nil {
		return application.Application{}, err
	}
	app, _, err := u.load(ctx, actor, id)
	return app, err
}

func (u *Applications) ListForCandidate(ctx context.Context, actor Actor) ([]application.Application, error) {
	if err := actor.requireCandidate(); err != nil {
		return nil, err
	}
	out, err := u.Store.Applications().ListByCandidate(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "applications")
	}
	return out, nil
}

func (u *Applications) ListForRole(ctx context.Context, actor Actor, roleID uuid.UUID) ([]application.Application, error) {
	if err := actor.requireCompany(); err != nil {
		return nil, err
	}
	r, err := u.Store.Roles().FindByID(ctx, roleID)
	if err != nil {
		return nil, storeErr(err, "role")
	}
	if !r.OwnedBy(actor.ID) {
		return nil, forbidden("role belongs to another company")
	}
	out, err := u.Store.Applications().ListByRole(ctx, roleID)
	if err != nil {
		return nil, storeErr(err, "applications")
	}
	return out, nil
}

func (u *Applications) load(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, role.Role, error) {
	app, err := u.Store.Applications().FindByID(ctx, id)
	if err != nil {
		return application.Application{}, role.Role{}, storeErr(err, "application")
	}
	r, err := u.Store.Roles().FindByID(ctx, app.RoleID)
	if err != nil {
		return application.Application{}, role.Role{}, storeErr(err, "role")
	}
	if !actor.owns(r.CompanyID, app.CandidateID) {
		return application.Application{}, role.Role{}, forbidden("not a party to this application")
	}
	return app, r, nil
}

func (u *Applications) transition(ctx context.Context, app application.Application, to application.Status, by uuid.UUID, note string) (application.Application, error) {
	now := u.now()
	entry := application.NewHistoryEntry(to, by, now, strings.TrimSpace(note))
	if err := u.Store.Applications().Transition(ctx, app.ID, app.Status, to, entry, nil); err != nil {
		return application.Application{}, storeErr(err, "application")
	}
	u.Logger.Info("application status changed",
		zap.Stringer("application_id", app.ID),
		zap.String("from", string(app.Status)),
		zap.String("to", string(to)),
	)
	app.Status = to
	app.StatusHistory = append(app.StatusHistory, entry)
	app.UpdatedAt = now
	return app, nil
}
