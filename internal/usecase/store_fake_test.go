package usecase

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"internhub/internal/domain/application"
	"internhub/internal/domain/candidate"
	"internhub/internal/domain/interview"
	"internhub/internal/domain/invitation"
	"internhub/internal/domain/onboarding"
	"internhub/internal/domain/role"
	"internhub/internal/notification"
	"internhub/internal/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory repository.Store with the same conflict and
// guarded-update behaviour as the Postgres store. InTx restores a snapshot
// when fn fails.
type memStore struct {
	mu           sync.Mutex
	roles        map[uuid.UUID]role.Role
	candidates   map[uuid.UUID]candidate.Candidate
	invitations  map[uuid.UUID]invitation.Invitation
	applications map[uuid.UUID]application.Application
	interviews   map[uuid.UUID]interview.Interview
	onboardings  map[uuid.UUID]onboarding.Onboarding

	failInterviewUpsert error
}

func newMemStore() *memStore {
	return &memStore{
		roles:        map[uuid.UUID]role.Role{},
		candidates:   map[uuid.UUID]candidate.Candidate{},
		invitations:  map[uuid.UUID]invitation.Invitation{},
		applications: map[uuid.UUID]application.Application{},
		interviews:   map[uuid.UUID]interview.Interview{},
		onboardings:  map[uuid.UUID]onboarding.Onboarding{},
	}
}

func (s *memStore) Roles() repository.RoleRepository               { return memRoles{s} }
func (s *memStore) Candidates() repository.CandidateRepository     { return memCandidates{s} }
func (s *memStore) Invitations() repository.InvitationRepository   { return memInvitations{s} }
func (s *memStore) Applications() repository.ApplicationRepository { return memApplications{s} }
func (s *memStore) Interviews() repository.InterviewRepository     { return memInterviews{s} }
func (s *memStore) Onboardings() repository.OnboardingRepository   { return memOnboardings{s} }

func (s *memStore) InTx(_ context.Context, fn func(tx repository.Store) error) error {
	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.roles, s.candidates, s.invitations = snap.roles, snap.candidates, snap.invitations
		s.applications, s.interviews, s.onboardings = snap.applications, snap.interviews, snap.onboardings
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) snapshot() *memStore {
	return &memStore{
		roles:        cloneMap(s.roles),
		candidates:   cloneMap(s.candidates),
		invitations:  cloneMap(s.invitations),
		applications: cloneMap(s.applications),
		interviews:   cloneMap(s.interviews),
		onboardings:  cloneMap(s.onboardings),
	}
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedValues[V any](m map[uuid.UUID]V, keep func(V) bool) []V {
	ids := make([]uuid.UUID, 0, len(m))
	for id, v := range m {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

type memRoles struct{ s *memStore }

func (r memRoles) Create(_ context.Context, ro role.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[ro.ID]; ok {
		return repository.ErrDuplicate
	}
	r.s.roles[ro.ID] = ro
	return nil
}

func (r memRoles) FindByID(_ context.Context, id uuid.UUID) (role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ro, ok := r.s.roles[id]
	if !ok {
		return role.Role{}, repository.ErrNotFound
	}
	return ro, nil
}

func (r memRoles) ListByCompany(_ context.Context, companyID uuid.UUID) ([]role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.roles, func(ro role.Role) bool { return ro.CompanyID == companyID }), nil
}

func (r memRoles) ListActive(context.Context) ([]role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.roles, func(ro role.Role) bool { return ro.Status == role.StatusActive }), nil
}

type memCandidates struct{ s *memStore }

func (r memCandidates) Upsert(_ context.Context, c candidate.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.candidates[c.ID] = c
	return nil
}

func (r memCandidates) FindByID(_ context.Context, id uuid.UUID) (candidate.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return candidate.Candidate{}, repository.ErrNotFound
	}
	return c, nil
}

func (r memCandidates) ListAll(context.Context) ([]candidate.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.candidates, func(candidate.Candidate) bool { return true }), nil
}

type memInvitations struct{ s *memStore }

func (r memInvitations) Create(_ context.Context, inv invitation.Invitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.invitations {
		if existing.Status == invitation.StatusPending && existing.RoleID == inv.RoleID && existing.CandidateID == inv.CandidateID {
			return repository.ErrDuplicate
		}
	}
	inv.Status = invitation.StatusPending
	r.s.invitations[inv.ID] = inv
	return nil
}

func (r memInvitations) FindByID(_ context.Context, id uuid.UUID) (invitation.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invitations[id]
	if !ok {
		return invitation.Invitation{}, repository.ErrNotFound
	}
	return inv, nil
}

func (r memInvitations) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]invitation.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.invitations, func(i invitation.Invitation) bool { return i.CandidateID == candidateID }), nil
}

func (r memInvitations) ListByCompany(_ context.Context, companyID uuid.UUID) ([]invitation.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.invitations, func(i invitation.Invitation) bool { return i.CompanyID == companyID }), nil
}

func (r memInvitations) Respond(_ context.Context, id uuid.UUID, status invitation.Status, responseText string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invitations[id]
	if !ok || inv.Status != invitation.StatusPending {
		return repository.ErrStaleStatus
	}
	inv.Status = status
	inv.ResponseText = responseText
	inv.RespondedAt = &at
	inv.UpdatedAt = at
	r.s.invitations[id] = inv
	return nil
}

type memApplications struct{ s *memStore }

func (r memApplications) Create(_ context.Context, app application.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.applications {
		if existing.CandidateID == app.CandidateID && existing.RoleID == app.RoleID {
			return repository.ErrDuplicate
		}
	}
	app.StatusHistory = append([]application.HistoryEntry(nil), app.StatusHistory...)
	r.s.applications[app.ID] = app
	return nil
}

func (r memApplications) UpsertForInvitation(_ context.Context, app application.Application, entry application.HistoryEntry) (application.Application, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.applications {
		if existing.CandidateID == app.CandidateID && existing.RoleID == app.RoleID {
			existing.Status = application.StatusPending
			existing.InvitationID = app.InvitationID
			existing.StatusHistory = append(append([]application.HistoryEntry(nil), existing.StatusHistory...), entry)
			existing.UpdatedAt = entry.ChangedAt
			r.s.applications[id] = existing
			return existing, false, nil
		}
	}
	app.Status = application.StatusPending
	app.StatusHistory = []application.HistoryEntry{entry}
	app.CreatedAt, app.UpdatedAt = entry.ChangedAt, entry.ChangedAt
	r.s.applications[app.ID] = app
	return app, true, nil
}

func (r memApplications) FindByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app, ok := r.s.applications[id]
	if !ok {
		return application.Application{}, repository.ErrNotFound
	}
	return app, nil
}

func (r memApplications) FindByCandidateAndRole(_ context.Context, candidateID, roleID uuid.UUID) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, app := range r.s.applications {
		if app.CandidateID == candidateID && app.RoleID == roleID {
			return app, nil
		}
	}
	return application.Application{}, repository.ErrNotFound
}

func (r memApplications) Transition(_ context.Context, id uuid.UUID, from, to application.Status, entry application.HistoryEntry, offer *application.Offer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app, ok := r.s.applications[id]
	if !ok || app.Status != from {
		return repository.ErrStaleStatus
	}
	app.Status = to
	app.StatusHistory = append(append([]application.HistoryEntry(nil), app.StatusHistory...), entry)
	if offer != nil {
		o := *offer
		app.Offer = &o
	}
	app.UpdatedAt = entry.ChangedAt
	r.s.applications[id] = app
	return nil
}

func (r memApplications) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.applications, func(a application.Application) bool { return a.CandidateID == candidateID }), nil
}

func (r memApplications) ListByRole(_ context.Context, roleID uuid.UUID) ([]application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.applications, func(a application.Application) bool { return a.RoleID == roleID }), nil
}

type memInterviews struct{ s *memStore }

func (r memInterviews) UpsertForInvitation(_ context.Context, iv interview.Interview) (interview.Interview, bool, error) {
	if r.s.failInterviewUpsert != nil {
		return interview.Interview{}, false, r.s.failInterviewUpsert
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.interviews {
		if existing.InvitationID != nil && iv.InvitationID != nil && *existing.InvitationID == *iv.InvitationID {
			existing.Status = interview.StatusPending
			existing.CandidateResponse = interview.ResponseAccepted
			if iv.ApplicationID != nil {
				existing.ApplicationID = iv.ApplicationID
			}
			r.s.interviews[id] = existing
			return existing, false, nil
		}
	}
	iv.Status = interview.StatusPending
	iv.CandidateResponse = interview.ResponseAccepted
	iv.Outcome = interview.Outcome{Decision: interview.DecisionPending}
	r.s.interviews[iv.ID] = iv
	return iv, true, nil
}

func (r memInterviews) FindByID(_ context.Context, id uuid.UUID) (interview.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	iv, ok := r.s.interviews[id]
	if !ok {
		return interview.Interview{}, repository.ErrNotFound
	}
	return iv, nil
}

func (r memInterviews) FindByInvitation(_ context.Context, invitationID uuid.UUID) (interview.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, iv := range r.s.interviews {
		if iv.InvitationID != nil && *iv.InvitationID == invitationID {
			return iv, nil
		}
	}
	return interview.Interview{}, repository.ErrNotFound
}

func (r memInterviews) Update(_ context.Context, iv interview.Interview, expected interview.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.interviews[iv.ID]
	if !ok || stored.Status != expected {
		return repository.ErrStaleStatus
	}
	iv.RescheduleHistory = append([]interview.RescheduleRequest(nil), iv.RescheduleHistory...)
	r.s.interviews[iv.ID] = iv
	return nil
}

func (r memInterviews) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]interview.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.interviews, func(iv interview.Interview) bool { return iv.CandidateID == candidateID }), nil
}

func (r memInterviews) ListByCompany(_ context.Context, companyID uuid.UUID) ([]interview.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.interviews, func(iv interview.Interview) bool { return iv.CompanyID == companyID }), nil
}

type memOnboardings struct{ s *memStore }

func (r memOnboardings) Create(_ context.Context, o onboarding.Onboarding) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.onboardings {
		if existing.ApplicationID == o.ApplicationID {
			return repository.ErrDuplicate
		}
	}
	r.s.onboardings[o.ID] = o
	return nil
}

func (r memOnboardings) FindByID(_ context.Context, id uuid.UUID) (onboarding.Onboarding, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.onboardings[id]
	if !ok {
		return onboarding.Onboarding{}, repository.ErrNotFound
	}
	return o, nil
}

func (r memOnboardings) Update(_ context.Context, o onboarding.Onboarding, expected onboarding.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.onboardings[o.ID]
	if !ok || stored.Status != expected {
		return repository.ErrStaleStatus
	}
	o.Documents = stored.Documents
	r.s.onboardings[o.ID] = o
	return nil
}

func (r memOnboardings) AppendDocument(_ context.Context, id uuid.UUID, doc onboarding.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.onboardings[id]
	if !ok || !onboarding.IsOpen(o.Status) {
		return repository.ErrStaleStatus
	}
	o.Documents = append(append([]onboarding.Document(nil), o.Documents...), doc)
	r.s.onboardings[id] = o
	return nil
}

func (r memOnboardings) ListByCompany(_ context.Context, companyID uuid.UUID) ([]onboarding.Onboarding, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.onboardings, func(o onboarding.Onboarding) bool { return o.CompanyID == companyID }), nil
}

func (r memOnboardings) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]onboarding.Onboarding, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.onboardings, func(o onboarding.Onboarding) bool { return o.CandidateID == candidateID }), nil
}

// recordingDispatcher keeps every message instead of sending it.
type recordingDispatcher struct {
	mu   sync.Mutex
	msgs []notification.Message
}

func (d *recordingDispatcher) Dispatch(msg notification.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.msgs = append(d.msgs, msg)
}

func (d *recordingDispatcher) templates() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.msgs))
	for _, m := range d.msgs {
		out = append(out, m.Template)
	}
	return out
}

// heldLocks refuses every key in held.
type heldLocks struct {
	held map[string]bool
}

func (l heldLocks) TryLock(_ context.Context, key string) (func(), bool) {
	if l.held[key] {
		return nil, false
	}
	return func() {}, true
}

var errBoom = errors.New("boom")

// fixture is a company with one role, a candidate, and use cases over one store.
type fixture struct {
	store       *memStore
	notes       *recordingDispatcher
	company     Actor
	other       Actor
	cand        Actor
	role        role.Role
	invitations *Invitations
	interviews  *Interviews
	apps        *Applications
	onboardings *Onboardings
}

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	store := newMemStore()
	notes := &recordingDispatcher{}
	f := &fixture{
		store:   store,
		notes:   notes,
		company: CompanyActor(uuid.New()),
		other:   CompanyActor(uuid.New()),
		cand:    CandidateActor(uuid.New()),
	}
	f.role = role.Role{
		ID:             uuid.New(),
		CompanyID:      f.company.ID,
		Title:          "Backend Intern",
		MustHaveSkills: []string{"Go", "SQL"},
		WorkMode:       role.WorkModeRemote,
		Status:         role.StatusActive,
	}
	store.roles[f.role.ID] = f.role
	store.candidates[f.cand.ID] = candidate.Candidate{ID: f.cand.ID, FullName: "Ana", Skills: []string{"go", "sql"}}

	deps := Deps{Store: store, Notifier: notes, Now: func() time.Time { return fixedNow }}
	f.invitations = NewInvitationsUsecase(deps)
	f.interviews = NewInterviewsUsecase(deps)
	f.apps = NewApplicationsUsecase(deps)
	f.onboardings = NewOnboardingsUsecase(deps)
	return f
}

// acceptedInvitation sends an invitation and accepts it, returning the
// resulting interview and application.
func (f *fixture) acceptedInvitation(ctx context.Context) (interview.Interview, application.Application, error) {
	inv, err := f.invitations.Send(ctx, f.company, SendInvitationInput{RoleID: f.role.ID, CandidateID: f.cand.ID})
	if err != nil {
		return interview.Interview{}, application.Application{}, err
	}
	res, err := f.invitations.Respond(ctx, f.cand, inv.ID, invitation.StatusAccepted, "")
	if err != nil {
		return interview.Interview{}, application.Application{}, err
	}
	return *res.Interview, *res.Application, nil
}
