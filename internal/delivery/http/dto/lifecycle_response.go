package dto

import (
	"time"

	"internhub/internal/domain/application"
	"internhub/internal/domain/interview"
	"internhub/internal/domain/invitation"
	"internhub/internal/domain/onboarding"

	"github.com/google/uuid"
)

type InvitationResponse struct {
	ID           uuid.UUID  `json:"id"`
	RoleID       uuid.UUID  `json:"role_id"`
	CandidateID  uuid.UUID  `json:"candidate_id"`
	CompanyID    uuid.UUID  `json:"company_id"`
	Status       string     `json:"status"`
	Message      string     `json:"message"`
	ResponseText string     `json:"response_text"`
	RespondedAt  *time.Time `json:"responded_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewInvitationResponse(inv invitation.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:           inv.ID,
		RoleID:       inv.RoleID,
		CandidateID:  inv.CandidateID,
		CompanyID:    inv.CompanyID,
		Status:       string(inv.Status),
		Message:      inv.Message,
		ResponseText: inv.ResponseText,
		RespondedAt:  inv.RespondedAt,
		CreatedAt:    inv.CreatedAt,
	}
}

func NewInvitationResponses(items []invitation.Invitation) []InvitationResponse {
	out := make([]InvitationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewInvitationResponse(it))
	}
	return out
}

type ApplicationResponse struct {
	ID            uuid.UUID                  `json:"id"`
	CandidateID   uuid.UUID                  `json:"candidate_id"`
	RoleID        uuid.UUID                  `json:"role_id"`
	CompanyID     uuid.UUID                  `json:"company_id"`
	InvitationID  *uuid.UUID                 `json:"invitation_id"`
	CoverLetter   string                     `json:"cover_letter"`
	Status        string                     `json:"status"`
	StatusHistory []application.HistoryEntry `json:"status_history"`
	Offer         *application.Offer         `json:"offer"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

func NewApplicationResponse(app application.Application) ApplicationResponse {
	history := app.StatusHistory
	if history == nil {
		history = []application.HistoryEntry{}
	}
	return ApplicationResponse{
		ID:            app.ID,
		CandidateID:   app.CandidateID,
		RoleID:        app.RoleID,
		CompanyID:     app.CompanyID,
		InvitationID:  app.InvitationID,
		CoverLetter:   app.CoverLetter,
		Status:        string(app.Status),
		StatusHistory: history,
		Offer:         app.Offer,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
}

func NewApplicationResponses(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewApplicationResponse(it))
	}
	return out
}

type InterviewResponse struct {
	ID                uuid.UUID                     `json:"id"`
	CandidateID       uuid.UUID                     `json:"candidate_id"`
	RoleID            uuid.UUID                     `json:"role_id"`
	CompanyID         uuid.UUID                     `json:"company_id"`
	InvitationID      *uuid.UUID                    `json:"invitation_id"`
	ApplicationID     *uuid.UUID                    `json:"application_id"`
	Status            string                        `json:"status"`
	CandidateResponse string                        `json:"candidate_response"`
	ScheduledAt       *time.Time                    `json:"scheduled_at"`
	DurationMinutes   int                           `json:"duration_minutes"`
	Mode              string                        `json:"mode"`
	MeetingDetails    string                        `json:"meeting_details"`
	RescheduleHistory []interview.RescheduleRequest `json:"reschedule_history"`
	Outcome           interview.Outcome             `json:"outcome"`
	OfferLetterRef    string                        `json:"offer_letter_ref,omitempty"`
	CancelReason      string                        `json:"cancel_reason,omitempty"`
	UpdatedAt         time.Time                     `json:"updated_at"`
}

func NewInterviewResponse(iv interview.Interview) InterviewResponse {
	history := iv.RescheduleHistory
	if history == nil {
		history = []interview.RescheduleRequest{}
	}
	return InterviewResponse{
		ID:                iv.ID,
		CandidateID:       iv.CandidateID,
		RoleID:            iv.RoleID,
		CompanyID:         iv.CompanyID,
		InvitationID:      iv.InvitationID,
		ApplicationID:     iv.ApplicationID,
		Status:            string(iv.Status),
		CandidateResponse: string(iv.CandidateResponse),
		ScheduledAt:       iv.ScheduledAt,
		DurationMinutes:   iv.DurationMinutes,
		Mode:              string(iv.Mode),
		MeetingDetails:    iv.MeetingDetails,
		RescheduleHistory: history,
		Outcome:           iv.Outcome,
		OfferLetterRef:    iv.OfferLetterRef,
		CancelReason:      iv.CancelReason,
		UpdatedAt:         iv.UpdatedAt,
	}
}

func NewInterviewResponses(items []interview.Interview) []InterviewResponse {
	out := make([]InterviewResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewInterviewResponse(it))
	}
	return out
}

type OnboardingResponse struct {
	ID            uuid.UUID             `json:"id"`
	ApplicationID uuid.UUID             `json:"application_id"`
	CandidateID   uuid.UUID             `json:"candidate_id"`
	RoleID        uuid.UUID             `json:"role_id"`
	CompanyID     uuid.UUID             `json:"company_id"`
	Status        string                `json:"status"`
	StartDate     *time.Time            `json:"start_date"`
	EndDate       *time.Time            `json:"end_date"`
	Supervisor    onboarding.Supervisor `json:"supervisor"`
	Documents     []onboarding.Document `json:"documents"`
	CompanyNotes  string                `json:"company_notes"`
	CompletedAt   *time.Time            `json:"completed_at"`
	CancelledAt   *time.Time            `json:"cancelled_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func NewOnboardingResponse(o onboarding.Onboarding) OnboardingResponse {
	docs := o.Documents
	if docs == nil {
		docs = []onboarding.Document{}
	}
	return OnboardingResponse{
		ID:            o.ID,
		ApplicationID: o.ApplicationID,
		CandidateID:   o.CandidateID,
		RoleID:        o.RoleID,
		CompanyID:     o.CompanyID,
		Status:        string(o.Status),
		StartDate:     o.StartDate,
		EndDate:       o.EndDate,
		Supervisor:    o.Supervisor,
		Documents:     docs,
		CompanyNotes:  o.CompanyNotes,
		CompletedAt:   o.CompletedAt,
		CancelledAt:   o.CancelledAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func NewOnboardingResponses(items []onboarding.Onboarding) []OnboardingResponse {
	out := make([]OnboardingResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewOnboardingResponse(it))
	}
	return out
}
