package usecase

import (
	"context"
	"strings"

	"internhub/internal/domain/application"
	"internhub/internal/domain/interview"
	"internhub/internal/domain/invitation"
	"internhub/internal/notification"
	"internhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SendInvitationInput struct {
	RoleID      uuid.UUID
	CandidateID uuid.UUID
	Message     string
}

// InvitationResponse is the outcome of a candidate response. Application and
// Interview are set only when the invitation was accepted.
type InvitationResponse struct {
	Invitation  invitation.Invitation
	Application *application.Application
	Interview   *interview.Interview
}

type InvitationsUsecase interface {
	Send(ctx context.Context, actor Actor, in SendInvitationInput) (invitation.Invitation, error)
	Respond(ctx context.Context, actor Actor, invitationID uuid.UUID, decision invitation.Status, responseText string) (InvitationResponse, error)
	ListForCandidate(ctx context.Context, actor Actor) ([]invitation.Invitation, error)
	ListForCompany(ctx context.Context, actor Actor) ([]invitation.Invitation, error)
}

type Invitations struct {
	Deps
}

func NewInvitationsUsecase(deps Deps) *Invitations {
	return &Invitations{Deps: deps.withDefaults()}
}

func (u *Invitations) Send(ctx context.Context, actor Actor, in SendInvitationInput) (invitation.Invitation, error) {
	if err := actor.requireCompany(); err != nil {
		return invitation.Invitation{}, err
	}
	if in.RoleID == uuid.Nil || in.CandidateID == uuid.Nil {
		return invitation.Invitation{}, invalid("role_id and candidate_id are required")
	}

	r, err := u.Store.Roles().FindByID(ctx, in.RoleID)
	if err != nil {
		return invitation.Invitation{}, storeErr(err, "role")
	}
	if !r.OwnedBy(actor.ID) {
		return invitation.Invitation{}, forbidden("role belongs to another company")
	}
	if _, err := u.Store.Candidates().FindByID(ctx, in.CandidateID); err != nil {
		return invitation.Invitation{}, storeErr(err, "candidate")
	}

	now := u.now()
	inv := invitation.Invitation{
		ID:          uuid.New(),
		RoleID:      r.ID,
		CandidateID: in.CandidateID,
		CompanyID:   r.CompanyID,
		Status:      invitation.StatusPending,
		Message:     strings.TrimSpace(in.Message),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.Store.Invitations().Create(ctx, inv); err != nil {
		return invitation.Invitation{}, storeErr(err, "pending invitation for this candidate and role")
	}

	u.Logger.Info("invitation sent",
		zap.Stringer("invitation_id", inv.ID),
		zap.Stringer("role_id", inv.RoleID),
		zap.Stringer("candidate_id", inv.CandidateID),
	)
	u.notify(inv.CandidateID, notification.TemplateInvitationReceived, map[string]any{
		"invitation_id": inv.ID.String(),
		"role_title":    r.Title,
		"message":       inv.Message,
	})
	return inv, nil
}

// Respond records the candidate's one-shot decision. Acceptance makes sure
// exactly one application and one interview exist for the pair, creating or
// re-confirming them in the same transaction as the invitation update.
func (u *Invitations) Respond(ctx context.Context, actor Actor, invitationID uuid.UUID, decision invitation.Status, responseText string) (InvitationResponse, error) {
	if err := actor.requireCandidate(); err != nil {
		return InvitationResponse{}, err
	}
	if !invitation.IsDecision(decision) {
		return InvitationResponse{}, invalid("decision must be accepted or rejected")
	}

	unlock, err := u.lock(ctx, "invitation", invitationID)
	if err != nil {
		return InvitationResponse{}, err
	}
	defer unlock()

	inv, err := u.Store.Invitations().FindByID(ctx, invitationID)
	if err != nil {
		return InvitationResponse{}, storeErr(err, "invitation")
	}
	if inv.CandidateID != actor.ID {
		return InvitationResponse{}, forbidden("invitation addressed to another candidate")
	}
	if !inv.CanRespond() {
		return InvitationResponse{}, conflict("invitation already %s", inv.Status)
	}
	r, err := u.Store.Roles().FindByID(ctx, inv.RoleID)
	if err != nil {
		return InvitationResponse{}, storeErr(err, "role")
	}

	now := u.now()
	responseText = strings.TrimSpace(responseText)
	out := InvitationResponse{}

	err = u.Store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Invitations().Respond(ctx, inv.ID, decision, responseText, now); err != nil {
			return storeErr(err, "invitation")
		}
		if decision != invitation.StatusAccepted {
			return nil
		}

		invID := inv.ID
		app, _, err := tx.Applications().UpsertForInvitation(ctx, application.Application{
			ID:           uuid.New(),
			CandidateID:  inv.CandidateID,
			RoleID:       inv.RoleID,
			CompanyID:    inv.CompanyID,
			InvitationID: &invID,
		}, application.NewHistoryEntry(application.StatusPending, actor.ID, now, "invitation accepted"))
		if err != nil {
			return storeErr(err, "application")
		}

		appID := app.ID
		iv, _, err := tx.Interviews().UpsertForInvitation(ctx,
			interview.NewForInvitation(uuid.New(), inv.CandidateID, inv.RoleID, inv.CompanyID, inv.ID, &appID))
		if err != nil {
			return storeErr(err, "interview")
		}

		out.Application = &app
		out.Interview = &iv
		return nil
	})
	if err != nil {
		return InvitationResponse{}, err
	}

	inv.Status = decision
	inv.ResponseText = responseText
	inv.RespondedAt = &now
	inv.UpdatedAt = now
	out.Invitation = inv

	u.Logger.Info("invitation answered",
		zap.Stringer("invitation_id", inv.ID),
		zap.String("decision", string(decision)),
	)
	u.notify(inv.CompanyID, notification.TemplateInvitationResponded, map[string]any{
		"invitation_id": inv.ID.String(),
		"role_title":    r.Title,
		"status":        string(decision),
		"response_text": responseText,
	})
	return out, nil
}

func (u *Invitations) ListForCandidate(ctx context.Context, actor Actor) ([]invitation.Invitation, error) {
	if err := actor.requireCandidate(); err != nil {
		return nil, err
	}
	out, err := u.Store.Invitations().ListByCandidate(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "invitations")
	}
	return out, nil
}

func (u *Invitations) ListForCompany(ctx context.Context, actor Actor) ([]invitation.Invitation, error) {
	if err := actor.requireCompany(); err != nil {
		return nil, err
	}
	out, err := u.Store.Invitations().ListByCompany(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "invitations")
	}
	return out, nil
}
