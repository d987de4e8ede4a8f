package usecase

import (
	"context"
	"errors"
	"time"

	"internhub/internal/domain/application"
	"internhub/internal/notification"
	"internhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Locker short-circuits concurrent duplicate transitions on one entity. ok is
// false only when another request holds the lock.
type Locker interface {
	TryLock(ctx context.Context, key string) (unlock func(), ok bool)
}

// Dispatcher hands notifications to a background sender.
type Dispatcher interface {
	Dispatch(msg notification.Message)
}

type Deps struct {
	Store    repository.Store
	Locks    Locker
	Notifier Dispatcher
	Logger   *zap.Logger
	Now      func() time.Time
}

type noLocks struct{}

func (noLocks) TryLock(context.Context, string) (func(), bool) { return func() {}, true }

type noDispatch struct{}

func (noDispatch) Dispatch(notification.Message) {}

func (d Deps) withDefaults() Deps {
	if d.Locks == nil {
		d.Locks = noLocks{}
	}
	if d.Notifier == nil {
		d.Notifier = noDispatch{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func (d Deps) now() time.Time {
	return d.Now().UTC()
}

func (d Deps) lock(ctx context.Context, kind string, id uuid.UUID) (func(), error) {
	unlock, ok := d.Locks.TryLock(ctx, kind+":"+id.String())
	if !ok {
		return nil, conflict("%s %s is being modified by another request", kind, id.String())
	}
	return unlock, nil
}

// notify queues a notification. Delivery problems never surface here.
func (d Deps) notify(to uuid.UUID, template string, data map[string]any) {
	if to == uuid.Nil {
		return
	}
	d.Notifier.Dispatch(notification.Message{To: to, Template: template, Data: data})
}

// syncApplication moves the application linked to an interview or onboarding
// record to status to. A missing application is tolerated, and applications
// that already reached a final status are left alone.
func (d Deps) syncApplication(ctx context.Context, tx repository.Store, appID *uuid.UUID, candidateID, roleID, by uuid.UUID, to application.Status, note string, offer *application.Offer) (*application.Application, error) {
	var (
		app application.Application
		err error
	)
	if appID != nil {
		app, err = tx.Applications().FindByID(ctx, *appID)
	} else {
		app, err = tx.Applications().FindByCandidateAndRole(ctx, candidateID, roleID)
	}
	if errors.Is(err, repository.ErrNotFound) {
		d.Logger.Debug("no application to sync",
			zap.Stringer("candidate_id", candidateID),
			zap.Stringer("role_id", roleID),
			zap.String("target_status", string(to)),
		)
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err, "application")
	}
	if app.Status == to && offer == nil {
		return &app, nil
	}
	if application.IsFinal(app.Status) {
		d.Logger.Info("application already final, not synced",
			zap.Stringer("application_id", app.ID),
			zap.String("status", string(app.Status)),
			zap.String("target_status", string(to)),
		)
		return &app, nil
	}

	now := d.now()
	entry := application.NewHistoryEntry(to, by, now, note)
	if err := tx.Applications().Transition(ctx, app.ID, app.Status, to, entry, offer); err != nil {
		return nil, storeErr(err, "application")
	}
	app.Status = to
	app.StatusHistory = append(app.StatusHistory, entry)
	if offer != nil {
		app.Offer = offer
	}
	app.UpdatedAt = now
	return &app, nil
}
