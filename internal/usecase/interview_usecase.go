package usecase

import (
	"context"
	"strings"
	"time"

	"internhub/internal/domain/application"
	"internhub/internal/domain/interview"
	"internhub/internal/domain/role"
	"internhub/internal/notification"
	"internhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	maxDurationMin = 8 * 60
)

type ScheduleInput struct {
	Date            string
	Time            string
	Mode            interview.Mode
	DurationMinutes int
	MeetingDetails  string
	// Reason is recorded in the reschedule log; ignored by Schedule.
	Reason string
}

type RespondInput struct {
	Response   interview.CandidateResponse
	Note       string
	ProposedAt *time.Time
}

type OfferInput struct {
	JoiningDate    string
	Message        string
	OfferLetterRef string
	Attachments    []string
}

type CompleteInput struct {
	Decision interview.Decision
	Feedback string
	Offer    *OfferInput
}

// InterviewResult carries the interview and, when one was synced, its application.
type InterviewResult struct {
	Interview   interview.Interview
	Application *application.Application
}

type InterviewsUsecase interface {
	Schedule(ctx context.Context, actor Actor, id uuid.UUID, in ScheduleInput) (InterviewResult, error)
	Respond(ctx context.Context, actor Actor, id uuid.UUID, in RespondInput) (InterviewResult, error)
	Reschedule(ctx context.Context, actor Actor, id uuid.UUID, in ScheduleInput) (InterviewResult, error)
	Complete(ctx context.Context, actor Actor, id uuid.UUID, in CompleteInput) (InterviewResult, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID, reason string) (InterviewResult, error)
	ListForCandidate(ctx context.Context, actor Actor) ([]interview.Interview, error)
	ListForCompany(ctx context.Context, actor Actor) ([]interview.Interview, error)
}

type Interviews struct {
	Deps
}

func NewInterviewsUsecase(deps Deps) *Interviews {
	return &Interviews{Deps: deps.withDefaults()}
}

type slot struct {
	at       time.Time
	mode     interview.Mode
	duration int
	details  string
}

func parseSlot(in ScheduleInput) (slot, error) {
	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)
	if date == "" || clock == "" {
		return slot{}, invalid("date and time are required")
	}
	at, err := time.Parse(dateLayout+" "+clockLayout, date+" "+clock)
	if err != nil {
		return slot{}, invalid("date must be YYYY-MM-DD and time HH:MM")
	}

	mode := interview.Mode(strings.ToLower(strings.TrimSpace(string(in.Mode))))
	if mode == "" {
		mode = interview.DefaultMode
	}
	if !interview.IsKnownMode(mode) {
		return slot{}, invalid("unknown interview mode %q", in.Mode)
	}

	duration := in.DurationMinutes
	if duration == 0 {
		duration = interview.DefaultDurationMinutes
	}
	if duration < 0 || duration > maxDurationMin {
		return slot{}, invalid("duration must be between 1 and %d minutes", maxDurationMin)
	}

	return slot{at: at.UTC(), mode: mode, duration: duration, details: strings.TrimSpace(in.MeetingDetails)}, nil
}

func (u *Interviews) Schedule(ctx context.Context, actor Actor, id uuid.UUID, in ScheduleInput) (InterviewResult, error) {
	if err := actor.requireCompany(); err != nil {
		return InterviewResult{}, err
	}
	s, err := parseSlot(in)
	if err != nil {
		return InterviewResult{}, err
	}

	unlock, err := u.lock(ctx, "interview", id)
	if err != nil {
		return InterviewResult{}, err
	}
	defer unlock()

	iv, r, err := u.load(ctx, actor, id)
	if err != nil {
		return InterviewResult{}, err
	}
	if !iv.CanSchedule() {
		return InterviewResult{}, conflict("interview is %s, only pending interviews can be scheduled", iv.Status)
	}

	expected := iv.Status
	iv.Status = interview.StatusScheduled
	iv.ScheduledAt = &s.at
	iv.Mode = s.mode
	iv.DurationMinutes = s.duration
	iv.MeetingDetails = s.details

	res, err := u.save(ctx, actor, iv, expected, application.StatusInterviewScheduled, "interview scheduled", nil)
	if err != nil {
		return InterviewResult{}, err
	}

	u.Logger.Info("interview scheduled", zap.Stringer("interview_id", iv.ID), zap.Time("scheduled_at", s.at))
	u.notify(iv.CandidateID, notification.TemplateInterviewScheduled, map[string]any{
		"interview_id":     iv.ID.String(),
		"role_title":       r.Title,
		"scheduled_at":     s.at.Format(time.RFC3339),
		"mode":             string(s.mode),
		"duration_minutes": s.duration,
		"meeting_details":  s.details,
	})
	return res, nil
}

func (u *Interviews) Respond(ctx context.Context, actor Actor, id uuid.UUID, in RespondInput) (InterviewResult, error) {
	if err := actor.requireCandidate(); err != nil {
		return InterviewResult{}, err
	}
	switch in.Response {
	case interview.ResponseAccepted, interview.ResponseDeclined, interview.ResponseRescheduleRequested:
	default:
		return InterviewResult{}, invalid("response must be accepted, declined or reschedule_requested")
	}

	unlock, err := u.lock(ctx, "interview", id)
	if err != nil {
		return InterviewResult{}, err
	}
	defer unlock()

	iv, r, err := u.load(ctx, actor, id)
	if err != nil {
		return InterviewResult{}, err
	}
	if !iv.CanCandidateRespond() {
		return InterviewResult{}, conflict("interview is %s, responses are accepted only while pending", iv.Status)
	}

	note := strings.TrimSpace(in.Note)
	expected := iv.Status
	iv.CandidateResponse = in.Response

	var (
		appStatus application.Status
		appNote   string
	)
	switch in.Response {
	case interview.ResponseAccepted:
		iv.Status = interview.StatusScheduled
		appStatus, appNote = application.StatusInterviewScheduled, "candidate accepted the interview"
	case interview.ResponseDeclined:
		iv.Status = interview.StatusCancelled
		iv.CancelReason = note
		appStatus, appNote = application.StatusRejected, "candidate declined the interview"
	case interview.ResponseRescheduleRequested:
		var proposed *time.Time
		if in.ProposedAt != nil {
			p := in.ProposedAt.UTC()
			proposed = &p
		}
		iv.RescheduleHistory = append(iv.RescheduleHistory, interview.RescheduleRequest{
			RequestedBy: actor.ID,
			Reason:      note,
			ProposedAt:  proposed,
			RequestedAt: u.now(),
		})
	}

	res, err := u.save(ctx, actor, iv, expected, appStatus, appNote, nil)
	if err != nil {
		return InterviewResult{}, err
	}

	u.Logger.Info("interview response recorded",
		zap.Stringer("interview_id", iv.ID),
		zap.String("response", string(in.Response)),
	)
	u.notify(iv.CompanyID, notification.TemplateInterviewResponse, map[string]any{
		"interview_id": iv.ID.String(),
		"role_title":   r.Title,
		"response":     string(in.Response),
		"note":         note,
	})
	return res, nil
}

func (u *Interviews) Reschedule(ctx context.Context, actor Actor, id uuid.UUID, in ScheduleInput) (InterviewResult, error) {
	if err := actor.requireCompany(); err != nil {
		return InterviewResult{}, err
	}
	s, err := parseSlot(in)
	if err != nil {
		return InterviewResult{}, err
	}

	unlock, err := u.lock(ctx, "interview", id)
	if err != nil {
		return InterviewResult{}, err
	}
	defer unlock()

	iv, r, err := u.load(ctx, actor, id)
	if err != nil {
		return InterviewResult{}, err
	}
	if !iv.CanReschedule() {
		return InterviewResult{}, conflict("interview is %s, only scheduled interviews can be rescheduled", iv.Status)
	}

	expected := iv.Status
	at := s.at
	iv.Status = interview.StatusRescheduled
	iv.ScheduledAt = &at
	iv.Mode = s.mode
	iv.DurationMinutes = s.duration
	if s.details != "" {
		iv.MeetingDetails = s.details
	}
	iv.RescheduleHistory = append(iv.RescheduleHistory, interview.RescheduleRequest{
		RequestedBy: actor.ID,
		Reason:      strings.TrimSpace(in.Reason),
		ProposedAt:  &at,
		RequestedAt: u.now(),
	})

	res, err := u.save(ctx, actor, iv, expected, "", "", nil)
	if err != nil {
		return InterviewResult{}, err
	}

	u.notify(iv.CandidateID, notification.TemplateInterviewRescheduled, map[string]any{
		"interview_id": iv.ID.String(),
		"role_title":   r.Title,
		"scheduled_at": at.Format(time.RFC3339),
	})
	return res, nil
}

// Complete records the company's decision. An accepted decision turns the
// linked application into an offer, which requires a joining date.
func (u *Interviews) Complete(ctx context.Context, actor Actor, id uuid.UUID, in CompleteInput) (InterviewResult, error) {
	if err := actor.requireCompany(); err != nil {
		return InterviewResult{}, err
	}
	if !interview.IsFinalDecision(in.Decision) {
		return InterviewResult{}, invalid("decision must be accepted or rejected")
	}

	var offerIn OfferInput
	if in.Offer != nil {
		offerIn = *in.Offer
	}
	var joining time.Time
	if in.Decision == interview.DecisionAccepted {
		raw := strings.TrimSpace(offerIn.JoiningDate)
		if raw == "" {
			return InterviewResult{}, invalid("joining date is required when the decision is accepted")
		}
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return InterviewResult{}, invalid("joining date must be YYYY-MM-DD")
		}
		joining = d.UTC()
	}

	unlock, err := u.lock(ctx, "interview", id)
	if err != nil {
		return InterviewResult{}, err
	}
	defer unlock()

	iv, r, err := u.load(ctx, actor, id)
	if err != nil {
		return InterviewResult{}, err
	}
	if !iv.CanComplete() {
		return InterviewResult{}, conflict("interview is %s, only scheduled interviews can be completed", iv.Status)
	}

	now := u.now()
	expected := iv.Status
	iv.Status = interview.StatusCompleted
	iv.Outcome = interview.Outcome{
		Decision:  in.Decision,
		Feedback:  strings.TrimSpace(in.Feedback),
		DecidedAt: &now,
	}

	appStatus := application.StatusRejected
	var offer *application.Offer
	if in.Decision == interview.DecisionAccepted {
		appStatus = application.StatusOffered
		iv.OfferLetterRef = strings.TrimSpace(offerIn.OfferLetterRef)
		attachments := make([]string, 0, len(offerIn.Attachments)+1)
		if iv.OfferLetterRef != "" {
			attachments = append(attachments, iv.OfferLetterRef)
		}
		for _, a := range offerIn.Attachments {
			if a = strings.TrimSpace(a); a != "" {
				attachments = append(attachments, a)
			}
		}
		offer = &application.Offer{
			JoiningDate: joining,
			Message:     strings.TrimSpace(offerIn.Message),
			Attachments: attachments,
			SentAt:      now,
		}
	}

	res, err := u.save(ctx, actor, iv, expected, appStatus, "interview "+string(in.Decision), offer)
	if err != nil {
		return InterviewResult{}, err
	}

	u.Logger.Info("interview completed",
		zap.Stringer("interview_id", iv.ID),
		zap.String("decision", string(in.Decision)),
	)
	data := map[string]any{
		"interview_id": iv.ID.String(),
		"role_title":   r.Title,
		"decision":     string(in.Decision),
		"feedback":     iv.Outcome.Feedback,
	}
	if offer != nil {
		data["joining_date"] = joining.Format(dateLayout)
	}
	u.notify(iv.CandidateID, notification.TemplateInterviewCompleted, data)
	return res, nil
}

func (u *Interviews) Cancel(ctx context.Context, actor Actor, id uuid.UUID, reason string) (InterviewResult, error) {
	if err := actor.validate(); err != nil {
		return InterviewResult{}, err
	}

	unlock, err := u.lock(ctx, "interview", id)
	if err != nil {
		return InterviewResult{}, err
	}
	defer unlock()

	iv, r, err := u.load(ctx, actor, id)
	if err != nil {
		return InterviewResult{}, err
	}
	if !iv.CanCancel() {
		return InterviewResult{}, conflict("interview is already %s", iv.Status)
	}

	expected := iv.Status
	iv.Status = interview.StatusCancelled
	iv.CancelReason = strings.TrimSpace(reason)

	res, err := u.save(ctx, actor, iv, expected, "", "", nil)
	if err != nil {
		return InterviewResult{}, err
	}

	to := iv.CandidateID
	if actor.IsCandidate() {
		to = iv.CompanyID
	}
	u.notify(to, notification.TemplateInterviewCancelled, map[string]any{
		"interview_id": iv.ID.String(),
		"role_title":   r.Title,
		"reason":       iv.CancelReason,
	})
	return res, nil
}

func (u *Interviews) ListForCandidate(ctx context.Context, actor Actor) ([]interview.Interview, error) {
	if err := actor.requireCandidate(); err != nil {
		return nil, err
	}
	out, err := u.Store.Interviews().ListByCandidate(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "interviews")
	}
	return out, nil
}

func (u *Interviews) ListForCompany(ctx context.Context, actor Actor) ([]interview.Interview, error) {
	if err := actor.requireCompany(); err != nil {
		return nil, err
	}
	out, err := u.Store.Interviews().ListByCompany(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "interviews")
	}
	return out, nil
}

// load fetches the interview and checks the actor is a party to it. Company
// ownership is resolved through the linked role.
func (u *Interviews) load(ctx context.Context, actor Actor, id uuid.UUID) (interview.Interview, role.Role, error) {
	iv, err := u.Store.Interviews().FindByID(ctx, id)
	if err != nil {
		return interview.Interview{}, role.Role{}, storeErr(err, "interview")
	}
	r, err := u.Store.Roles().FindByID(ctx, iv.RoleID)
	if err != nil {
		return interview.Interview{}, role.Role{}, storeErr(err, "role")
	}
	if !actor.owns(r.CompanyID, iv.CandidateID) {
		return interview.Interview{}, role.Role{}, forbidden("not a party to this interview")
	}
	return iv, r, nil
}

// save writes iv guarded by its previous status and, when appStatus is set,
// moves the linked application in the same transaction.
func (u *Interviews) save(ctx context.Context, actor Actor, iv interview.Interview, expected interview.Status, appStatus application.Status, note string, offer *application.Offer) (InterviewResult, error) {
	res := InterviewResult{}
	err := u.Store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Interviews().Update(ctx, iv, expected); err != nil {
			return storeErr(err, "interview")
		}
		if appStatus == "" {
			return nil
		}
		app, err := u.syncApplication(ctx, tx, iv.ApplicationID, iv.CandidateID, iv.RoleID, actor.ID, appStatus, note, offer)
		if err != nil {
			return err
		}
		res.Application = app
		return nil
	})
	if err != nil {
		return InterviewResult{}, err
	}
	iv.UpdatedAt = u.now()
	res.Interview = iv
	return res, nil
}
