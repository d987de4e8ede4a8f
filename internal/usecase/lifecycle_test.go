package usecase

import (
	"context"
	"errors"
	"testing"

	"internhub/internal/domain/application"
	"internhub/internal/domain/interview"
	"internhub/internal/domain/invitation"
	"internhub/internal/domain/onboarding"
	"internhub/internal/notification"

	"github.com/google/uuid"
)

func TestInvitations_AcceptCreatesApplicationAndInterview(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	inv, err := f.invitations.Send(ctx, f.company, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID, Message: " hi "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if inv.Status != invitation.StatusPending || inv.Message != "hi" {
		t.Fatalf("unexpected invitation %+v", inv)
	}

	res, err := f.invitations.Respond(ctx, f.cand, inv.ID, invitation.StatusAccepted, "glad to")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Invitation.Status != invitation.StatusAccepted || res.Invitation.RespondedAt == nil {
		t.Fatalf("unexpected invitation %+v", res.Invitation)
	}
	if len(f.store.applications) != 1 || len(f.store.interviews) != 1 {
		t.Fatalf("expected one application and one interview, got %d/%d", len(f.store.applications), len(f.store.interviews))
	}
	if res.Application.Status != application.StatusPending {
		t.Fatalf("expected pending application, got %s", res.Application.Status)
	}
	if res.Interview.Status != interview.StatusPending || res.Interview.CandidateResponse != interview.ResponseAccepted {
		t.Fatalf("unexpected interview %s/%s", res.Interview.Status, res.Interview.CandidateResponse)
	}
	if res.Interview.ApplicationID == nil || *res.Interview.ApplicationID != res.Application.ID {
		t.Fatalf("expected interview linked to application")
	}

	got := f.notes.templates()
	if len(got) != 2 || got[0] != notification.TemplateInvitationReceived || got[1] != notification.TemplateInvitationResponded {
		t.Fatalf("unexpected notifications %v", got)
	}
	if f.notes.msgs[1].To != f.company.ID {
		t.Fatalf("expected company to be notified of the response")
	}
}

func TestInvitations_SecondResponseConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	inv, err := f.invitations.Send(ctx, f.company, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := f.invitations.Respond(ctx, f.cand, inv.ID, invitation.StatusAccepted, ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err = f.invitations.Respond(ctx, f.cand, inv.ID, invitation.StatusAccepted, "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(f.store.applications) != 1 || len(f.store.interviews) != 1 {
		t.Fatalf("expected counts unchanged, got %d/%d", len(f.store.applications), len(f.store.interviews))
	}
}

func TestInvitations_RejectCreatesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	inv, _ := f.invitations.Send(ctx, f.company, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID})
	res, err := f.invitations.Respond(ctx, f.cand, inv.ID, invitation.StatusRejected, "no thanks")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Application != nil || res.Interview != nil {
		t.Fatalf("expected no side effects on rejection")
	}
	if len(f.store.applications) != 0 || len(f.store.interviews) != 0 {
		t.Fatalf("expected no records")
	}
	if f.store.invitations[inv.ID].ResponseText != "no thanks" {
		t.Fatalf("expected response text stored")
	}
}

func TestInvitations_AcceptReusesExistingApplication(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	app, err := f.apps.Apply(ctx, f.cand, ApplyInput{RoleID: f.role.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := f.apps.UpdateStatus(ctx, f.company, app.ID, application.StatusReviewing, ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, linked, err := f.acceptedInvitation(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if linked.ID != app.ID {
		t.Fatalf("expected existing application to be reused")
	}
	if linked.Status != application.StatusPending || linked.InvitationID == nil {
		t.Fatalf("expected application reset to pending and linked, got %+v", linked)
	}
	if len(linked.StatusHistory) != 3 {
		t.Fatalf("expected history to be appended, got %d entries", len(linked.StatusHistory))
	}
	if len(f.store.applications) != 1 {
		t.Fatalf("expected a single application")
	}
}

func TestInvitations_RespondGuards(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	inv, _ := f.invitations.Send(ctx, f.company, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID})

	if _, err := f.invitations.Respond(ctx, CandidateActor(uuid.New()), inv.ID, invitation.StatusAccepted, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another candidate, got %v", err)
	}
	if _, err := f.invitations.Respond(ctx, f.company, inv.ID, invitation.StatusAccepted, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a company, got %v", err)
	}
	if _, err := f.invitations.Respond(ctx, f.cand, inv.ID, invitation.Status("maybe"), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.invitations.Respond(ctx, f.cand, uuid.New(), invitation.StatusAccepted, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.invitations.Respond(ctx, Actor{}, inv.ID, invitation.StatusAccepted, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestInvitations_RespondLockHeld(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	inv, _ := f.invitations.Send(ctx, f.company, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID})

	locked := NewInvitationsUsecase(Deps{
		Store: f.store,
		Locks: heldLocks{held: map[string]bool{"invitation:" + inv.ID.String(): true}},
	})
	if _, err := locked.Respond(ctx, f.cand, inv.ID, invitation.StatusAccepted, ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if f.store.invitations[inv.ID].Status != invitation.StatusPending {
		t.Fatalf("expected invitation untouched")
	}
}

func TestInvitations_AcceptRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	inv, _ := f.invitations.Send(ctx, f.company, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID})

	f.store.failInterviewUpsert = errBoom
	_, err := f.invitations.Respond(ctx, f.cand, inv.ID, invitation.StatusAccepted, "")
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if f.store.invitations[inv.ID].Status != invitation.StatusPending {
		t.Fatalf("expected invitation to stay pending")
	}
	if len(f.store.applications) != 0 {
		t.Fatalf("expected application write rolled back")
	}
}

func TestInvitations_DuplicatePendingConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	if _, err := f.invitations.Send(ctx, f.company, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := f.invitations.Send(ctx, f.company, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := f.invitations.Send(ctx, f.other, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another company's role, got %v", err)
	}
}

func TestInterviews_ScheduleAndComplete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	iv, app, err := f.acceptedInvitation(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	res, err := f.interviews.Schedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-03-10", Time: "14:30"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Interview.Status != interview.StatusScheduled || res.Interview.ScheduledAt == nil {
		t.Fatalf("unexpected interview %+v", res.Interview)
	}
	if res.Interview.Mode != interview.ModeVideo || res.Interview.DurationMinutes != 60 {
		t.Fatalf("expected defaults, got %s/%d", res.Interview.Mode, res.Interview.DurationMinutes)
	}
	if f.store.applications[app.ID].Status != application.StatusInterviewScheduled {
		t.Fatalf("expected application interview_scheduled, got %s", f.store.applications[app.ID].Status)
	}

	res, err = f.interviews.Complete(ctx, f.company, iv.ID, CompleteInput{Decision: interview.DecisionRejected, Feedback: "Not a fit"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Interview.Status != interview.StatusCompleted || res.Interview.Outcome.Decision != interview.DecisionRejected {
		t.Fatalf("unexpected interview %+v", res.Interview)
	}
	if res.Interview.Outcome.Feedback != "Not a fit" {
		t.Fatalf("expected feedback kept")
	}
	if f.store.applications[app.ID].Status != application.StatusRejected {
		t.Fatalf("expected application rejected, got %s", f.store.applications[app.ID].Status)
	}
}

func TestInterviews_ScheduleRequiresPending(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	iv, _, _ := f.acceptedInvitation(ctx)

	if _, err := f.interviews.Schedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-03-10", Time: "10:00"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	before := f.store.interviews[iv.ID]

	_, err := f.interviews.Schedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-04-01", Time: "09:00"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	after := f.store.interviews[iv.ID]
	if !after.ScheduledAt.Equal(*before.ScheduledAt) || after.Status != before.Status {
		t.Fatalf("expected interview unchanged")
	}

	if _, err := f.interviews.Complete(ctx, f.company, iv.ID, CompleteInput{Decision: interview.DecisionRejected}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := f.interviews.Schedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-04-01", Time: "09:00"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on completed interview, got %v", err)
	}
}

func TestInterviews_ScheduleValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	iv, _, _ := f.acceptedInvitation(ctx)

	cases := []ScheduleInput{
		{Date: "", Time: "10:00"},
		{Date: "10/03/2026", Time: "10:00"},
		{Date: "2026-03-10", Time: "25:00"},
		{Date: "2026-03-10", Time: "10:00", Mode: "carrier pigeon"},
		{Date: "2026-03-10", Time: "10:00", DurationMinutes: -5},
	}
	for _, in := range cases {
		if _, err := f.interviews.Schedule(ctx, f.company, iv.ID, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
	if f.store.interviews[iv.ID].Status != interview.StatusPending {
		t.Fatalf("expected interview untouched")
	}
}

func TestInterviews_CompleteAcceptedNeedsJoiningDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	iv, app, _ := f.acceptedInvitation(ctx)
	if _, err := f.interviews.Schedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-03-10", Time: "10:00"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := f.interviews.Complete(ctx, f.company, iv.ID, CompleteInput{Decision: interview.DecisionAccepted})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if f.store.interviews[iv.ID].Status != interview.StatusScheduled {
		t.Fatalf("expected interview unchanged")
	}
	if f.store.applications[app.ID].Status != application.StatusInterviewScheduled {
		t.Fatalf("expected application unchanged")
	}

	res, err := f.interviews.Complete(ctx, f.company, iv.ID, CompleteInput{
		Decision: interview.DecisionAccepted,
		Offer:    &OfferInput{JoiningDate: "2026-04-01", Message: "Welcome", OfferLetterRef: "offer.pdf", Attachments: []string{" handbook.pdf "}},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Application == nil || res.Application.Status != application.StatusOffered {
		t.Fatalf("expected offered application, got %+v", res.Application)
	}
	stored := f.store.applications[app.ID]
	if stored.Offer == nil || stored.Offer.JoiningDate.Format(dateLayout) != "2026-04-01" {
		t.Fatalf("expected offer stored, got %+v", stored.Offer)
	}
	if len(stored.Offer.Attachments) != 2 || stored.Offer.Attachments[0] != "offer.pdf" || stored.Offer.Attachments[1] != "handbook.pdf" {
		t.Fatalf("unexpected attachments %v", stored.Offer.Attachments)
	}
}

func TestInterviews_CandidateResponses(t *testing.T) {
	ctx := context.Background()

	t.Run("declined cancels and rejects", func(t *testing.T) {
		f := newFixture()
		iv, app, _ := f.acceptedInvitation(ctx)
		res, err := f.interviews.Respond(ctx, f.cand, iv.ID, RespondInput{Response: interview.ResponseDeclined, Note: "found another"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.Interview.Status != interview.StatusCancelled || res.Interview.CancelReason != "found another" {
			t.Fatalf("unexpected interview %+v", res.Interview)
		}
		if f.store.applications[app.ID].Status != application.StatusRejected {
			t.Fatalf("expected application rejected")
		}
	})

	t.Run("reschedule request keeps status", func(t *testing.T) {
		f := newFixture()
		iv, app, _ := f.acceptedInvitation(ctx)
		res, err := f.interviews.Respond(ctx, f.cand, iv.ID, RespondInput{Response: interview.ResponseRescheduleRequested, Note: "exams"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.Interview.Status != interview.StatusPending || len(res.Interview.RescheduleHistory) != 1 {
			t.Fatalf("unexpected interview %+v", res.Interview)
		}
		if res.Interview.RescheduleHistory[0].RequestedBy != f.cand.ID {
			t.Fatalf("expected requester recorded")
		}
		if f.store.applications[app.ID].Status != application.StatusPending {
			t.Fatalf("expected application untouched")
		}
	})

	t.Run("other candidate forbidden", func(t *testing.T) {
		f := newFixture()
		iv, _, _ := f.acceptedInvitation(ctx)
		_, err := f.interviews.Respond(ctx, CandidateActor(uuid.New()), iv.ID, RespondInput{Response: interview.ResponseAccepted})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestInterviews_RescheduleAndCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	iv, _, _ := f.acceptedInvitation(ctx)

	if _, err := f.interviews.Reschedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-03-11", Time: "10:00"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for pending interview, got %v", err)
	}
	if _, err := f.interviews.Schedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-03-10", Time: "10:00"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	res, err := f.interviews.Reschedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-03-11", Time: "11:00", Reason: "conflict"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Interview.Status != interview.StatusRescheduled || len(res.Interview.RescheduleHistory) != 1 {
		t.Fatalf("unexpected interview %+v", res.Interview)
	}

	if _, err := f.interviews.Cancel(ctx, f.other, iv.ID, "nope"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	res, err = f.interviews.Cancel(ctx, f.cand, iv.ID, "sick")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Interview.Status != interview.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", res.Interview.Status)
	}
	if _, err := f.interviews.Cancel(ctx, f.company, iv.ID, ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second cancel, got %v", err)
	}
	last := f.notes.msgs[len(f.notes.msgs)-1]
	if last.Template != notification.TemplateInterviewCancelled || last.To != f.company.ID {
		t.Fatalf("expected company notified of cancellation, got %+v", last)
	}
}

func TestInterviews_CompleteByOtherCompanyForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	iv, _, _ := f.acceptedInvitation(ctx)
	_, _ = f.interviews.Schedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-03-10", Time: "10:00"})

	_, err := f.interviews.Complete(ctx, f.other, iv.ID, CompleteInput{Decision: interview.DecisionRejected})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.store.interviews[iv.ID].Status != interview.StatusScheduled {
		t.Fatalf("expected interview unchanged")
	}
}

func TestInterviews_ScheduleByOtherCompanyForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	iv, app, err := f.acceptedInvitation(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	sent := len(f.notes.msgs)

	_, err = f.interviews.Schedule(ctx, f.other, iv.ID, ScheduleInput{Date: "2026-03-10", Time: "10:00"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if got := f.store.interviews[iv.ID].Status; got != interview.StatusPending {
		t.Fatalf("expected interview to stay pending, got %s", got)
	}
	if got := f.store.applications[app.ID].Status; got != application.StatusPending {
		t.Fatalf("expected application untouched, got %s", got)
	}
	if len(f.notes.msgs) != sent {
		t.Fatalf("expected no notification for a rejected schedule")
	}
}

func TestSyncApplication_SkipsFinalAndMissing(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	iv, app, _ := f.acceptedInvitation(ctx)

	stored := f.store.applications[app.ID]
	stored.Status = application.StatusRejected
	f.store.applications[app.ID] = stored

	if _, err := f.interviews.Schedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-03-10", Time: "10:00"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.store.applications[app.ID].Status != application.StatusRejected {
		t.Fatalf("expected final application left alone")
	}

	delete(f.store.applications, app.ID)
	if _, err := f.interviews.Complete(ctx, f.company, iv.ID, CompleteInput{Decision: interview.DecisionRejected}); err != nil {
		t.Fatalf("expected missing application to be tolerated, got %v", err)
	}
}

func TestApplications_ApplyIsStrict(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	app, err := f.apps.Apply(ctx, f.cand, ApplyInput{RoleID: f.role.ID, CoverLetter: "hello"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if app.Status != application.StatusPending || len(app.StatusHistory) != 1 {
		t.Fatalf("unexpected application %+v", app)
	}
	if _, err := f.apps.Apply(ctx, f.cand, ApplyInput{RoleID: f.role.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := f.apps.Apply(ctx, f.company, ApplyInput{RoleID: f.role.ID}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for company, got %v", err)
	}
}

func TestApplications_ReviewAndOffer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	app, _ := f.apps.Apply(ctx, f.cand, ApplyInput{RoleID: f.role.ID})

	if _, err := f.apps.UpdateStatus(ctx, f.company, app.ID, application.StatusOffered, ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for pending -> offered, got %v", err)
	}
	if _, err := f.apps.UpdateStatus(ctx, f.other, app.ID, application.StatusReviewing, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.apps.UpdateStatus(ctx, f.company, app.ID, application.Status("bogus"), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.apps.RespondToOffer(ctx, f.cand, app.ID, true, ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict without offer, got %v", err)
	}

	stored := f.store.applications[app.ID]
	stored.Status = application.StatusOffered
	f.store.applications[app.ID] = stored

	got, err := f.apps.RespondToOffer(ctx, f.cand, app.ID, true, "yes")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != application.StatusAccepted {
		t.Fatalf("expected accepted, got %s", got.Status)
	}
}

func TestOnboardings_Progression(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	iv, app, _ := f.acceptedInvitation(ctx)
	_, _ = f.interviews.Schedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-03-10", Time: "10:00"})

	if _, err := f.onboardings.Start(ctx, f.company, StartOnboardingInput{ApplicationID: app.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict before an offer, got %v", err)
	}

	_, err := f.interviews.Complete(ctx, f.company, iv.ID, CompleteInput{
		Decision: interview.DecisionAccepted,
		Offer:    &OfferInput{JoiningDate: "2026-04-01"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(f.store.onboardings) != 0 {
		t.Fatalf("expected no automatic onboarding")
	}

	if _, err := f.onboardings.Start(ctx, f.other, StartOnboardingInput{ApplicationID: app.ID}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	o, err := f.onboardings.Start(ctx, f.company, StartOnboardingInput{ApplicationID: app.ID, StartDate: "2026-04-01"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if o.Status != onboarding.StatusPending {
		t.Fatalf("expected pending, got %s", o.Status)
	}
	if f.store.applications[app.ID].Status != application.StatusOnboarding {
		t.Fatalf("expected application onboarding, got %s", f.store.applications[app.ID].Status)
	}
	if _, err := f.onboardings.Start(ctx, f.company, StartOnboardingInput{ApplicationID: app.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second start, got %v", err)
	}

	sup := onboarding.Supervisor{Name: " Rita "}
	o, err = f.onboardings.Advance(ctx, f.company, o.ID, OnboardingPatch{Supervisor: &sup})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if o.Status != onboarding.StatusInProgress || o.Supervisor.Name != "Rita" {
		t.Fatalf("expected in_progress with supervisor, got %s %+v", o.Status, o.Supervisor)
	}

	if _, err := f.onboardings.AddDocument(ctx, f.cand, o.ID, DocumentInput{Type: "id", Name: "passport.pdf"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(f.store.onboardings[o.ID].Documents) != 1 {
		t.Fatalf("expected one document")
	}

	done := onboarding.StatusCompleted
	o, err = f.onboardings.Advance(ctx, f.company, o.ID, OnboardingPatch{Status: &done})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if o.CompletedAt == nil {
		t.Fatalf("expected completion time")
	}
	if f.store.applications[app.ID].Status != application.StatusActive {
		t.Fatalf("expected application active, got %s", f.store.applications[app.ID].Status)
	}
	if len(f.store.onboardings[o.ID].Documents) != 1 {
		t.Fatalf("expected documents kept across updates")
	}

	if _, err := f.onboardings.AddDocument(ctx, f.cand, o.ID, DocumentInput{Type: "id", Name: "late.pdf"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on closed onboarding, got %v", err)
	}
	if _, err := f.onboardings.Cancel(ctx, f.company, o.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict cancelling a completed onboarding, got %v", err)
	}

	closed, err := f.apps.UpdateStatus(ctx, f.company, app.ID, application.StatusCompleted, "internship finished")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if closed.Status != application.StatusCompleted {
		t.Fatalf("expected completed, got %s", closed.Status)
	}
	if _, err := f.apps.UpdateStatus(ctx, f.company, app.ID, application.StatusRejected, ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on a completed application, got %v", err)
	}
}

func TestApplications_InterviewedThenOffered(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	iv, app, _ := f.acceptedInvitation(ctx)
	if _, err := f.interviews.Schedule(ctx, f.company, iv.ID, ScheduleInput{Date: "2026-03-10", Time: "10:00"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, err := f.apps.UpdateStatus(ctx, f.company, app.ID, application.StatusInterviewed, "went well")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != application.StatusInterviewed {
		t.Fatalf("expected interviewed, got %s", got.Status)
	}
	if _, err := f.apps.UpdateStatus(ctx, f.company, app.ID, application.StatusOffered, ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected offers to go through interview completion, got %v", err)
	}

	res, err := f.interviews.Complete(ctx, f.company, iv.ID, CompleteInput{
		Decision: interview.DecisionAccepted,
		Offer:    &OfferInput{JoiningDate: "2026-04-01"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Application == nil || res.Application.Status != application.StatusOffered {
		t.Fatalf("expected offered after completion, got %+v", res.Application)
	}
}

func TestOnboardings_PendingCannotComplete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	app, _ := f.apps.Apply(ctx, f.cand, ApplyInput{RoleID: f.role.ID})
	stored := f.store.applications[app.ID]
	stored.Status = application.StatusAccepted
	f.store.applications[app.ID] = stored

	o, err := f.onboardings.Start(ctx, f.company, StartOnboardingInput{ApplicationID: app.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	done := onboarding.StatusCompleted
	if _, err := f.onboardings.Advance(ctx, f.company, o.ID, OnboardingPatch{Status: &done}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	start, end := "2026-05-01", "2026-04-01"
	if _, err := f.onboardings.Advance(ctx, f.company, o.ID, OnboardingPatch{StartDate: &start, EndDate: &end}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for reversed dates, got %v", err)
	}

	o, err = f.onboardings.Cancel(ctx, f.company, o.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if o.Status != onboarding.StatusCancelled || o.CancelledAt == nil {
		t.Fatalf("unexpected onboarding %+v", o)
	}
}

func TestNotificationsNeverFailOperations(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	d := notification.NewDispatcher(notification.Multi{errNotifier{}}, 0, nil)
	f.invitations = NewInvitationsUsecase(Deps{Store: f.store, Notifier: d})

	inv, err := f.invitations.Send(ctx, f.company, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID})
	if err != nil {
		t.Fatalf("expected send to succeed despite failing notifier, got %v", err)
	}
	if _, err := f.invitations.Respond(ctx, f.cand, inv.ID, invitation.StatusAccepted, ""); err != nil {
		t.Fatalf("expected respond to succeed despite failing notifier, got %v", err)
	}
	if err := d.Wait(ctx); err != nil {
		t.Fatalf("unexpected wait err: %v", err)
	}
}

type errNotifier struct{}

func (errNotifier) Notify(context.Context, notification.Message) error { return errBoom }
