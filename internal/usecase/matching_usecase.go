package usecase

import (
	"context"

	"internhub/internal/domain/candidate"
	"internhub/internal/domain/matching"
	"internhub/internal/domain/role"
	"internhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UseDefaultMinScore asks for the configured threshold.
const UseDefaultMinScore = -1

type CandidateMatch struct {
	Candidate candidate.Candidate
	Match     matching.Match
}

type RoleMatch struct {
	Role  role.Role
	Match matching.Match
}

type RoleMatchCount struct {
	Role  role.Role
	Count int
}

type MatchingUsecase interface {
	MatchesForRole(ctx context.Context, actor Actor, roleID uuid.UUID, minScore int) ([]CandidateMatch, error)
	MatchCountsForCompany(ctx context.Context, actor Actor, minScore int) ([]RoleMatchCount, error)
	RolesForCandidate(ctx context.Context, actor Actor, minScore int) ([]RoleMatch, error)
	ScoreCandidate(ctx context.Context, actor Actor, roleID, candidateID uuid.UUID) (matching.Match, error)
}

type Matching struct {
	store      repository.Store
	defaultMin int
	workers    int
	logger     *zap.Logger
}

func NewMatchingUsecase(store repository.Store, defaultMin, workers int, logger *zap.Logger) *Matching {
	if defaultMin < 0 || defaultMin > 100 {
		defaultMin = matching.DefaultMinScore
	}
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{store: store, defaultMin: defaultMin, workers: workers, logger: logger}
}

func (u *Matching) MatchesForRole(ctx context.Context, actor Actor, roleID uuid.UUID, minScore int) ([]CandidateMatch, error) {
	floor, err := u.threshold(minScore)
	if err != nil {
		return nil, err
	}
	if err := actor.requireCompany(); err != nil {
		return nil, err
	}
	r, err := u.ownedRole(ctx, actor, roleID)
	if err != nil {
		return nil, err
	}

	cands, err := u.store.Candidates().ListAll(ctx)
	if err != nil {
		return nil, storeErr(err, "candidates")
	}
	byID := make(map[uuid.UUID]candidate.Candidate, len(cands))
	attrs := make([]matching.Attributes, 0, len(cands))
	for _, c := range cands {
		byID[c.ID] = c
		attrs = append(attrs, attributesOf(c))
	}

	ranked := matching.RankCandidates(requirementsOf(r), attrs, floor)
	out := make([]CandidateMatch, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, CandidateMatch{Candidate: byID[m.CandidateID], Match: m})
	}
	return out, nil
}

// MatchCountsForCompany scores every candidate against each of the actor's
// roles, one role per pool task.
func (u *Matching) MatchCountsForCompany(ctx context.Context, actor Actor, minScore int) ([]RoleMatchCount, error) {
	floor, err := u.threshold(minScore)
	if err != nil {
		return nil, err
	}
	if err := actor.requireCompany(); err != nil {
		return nil, err
	}

	roles, err := u.store.Roles().ListByCompany(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "roles")
	}
	if len(roles) == 0 {
		return []RoleMatchCount{}, nil
	}
	cands, err := u.store.Candidates().ListAll(ctx)
	if err != nil {
		return nil, storeErr(err, "candidates")
	}
	attrs := make([]matching.Attributes, 0, len(cands))
	for _, c := range cands {
		attrs = append(attrs, attributesOf(c))
	}

	out := make([]RoleMatchCount, len(roles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for i := range roles {
		out[i].Role = roles[i]
		req := requirementsOf(roles[i])
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i].Count = matching.CountForRole(req, attrs, floor)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		u.logger.Warn("match count fan-out failed", zap.Stringer("company_id", actor.ID), zap.Error(err))
		return nil, storeErr(err, "match counts")
	}
	return out, nil
}

func (u *Matching) RolesForCandidate(ctx context.Context, actor Actor, minScore int) ([]RoleMatch, error) {
	floor, err := u.threshold(minScore)
	if err != nil {
		return nil, err
	}
	if err := actor.requireCandidate(); err != nil {
		return nil, err
	}

	c, err := u.store.Candidates().FindByID(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "candidate profile")
	}
	roles, err := u.store.Roles().ListActive(ctx)
	if err != nil {
		return nil, storeErr(err, "roles")
	}
	byID := make(map[uuid.UUID]role.Role, len(roles))
	reqs := make([]matching.Requirements, 0, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
		reqs = append(reqs, requirementsOf(r))
	}

	ranked := matching.RankRoles(attributesOf(c), reqs, floor)
	out := make([]RoleMatch, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, RoleMatch{Role: byID[m.RoleID], Match: m})
	}
	return out, nil
}

// ScoreCandidate is open to the owning company and to the candidate being scored.
func (u *Matching) ScoreCandidate(ctx context.Context, actor Actor, roleID, candidateID uuid.UUID) (matching.Match, error) {
	if err := actor.validate(); err != nil {
		return matching.Match{}, err
	}
	r, err := u.store.Roles().FindByID(ctx, roleID)
	if err != nil {
		return matching.Match{}, storeErr(err, "role")
	}
	c, err := u.store.Candidates().FindByID(ctx, candidateID)
	if err != nil {
		return matching.Match{}, storeErr(err, "candidate")
	}
	if !actor.owns(r.CompanyID, c.ID) {
		return matching.Match{}, forbidden("not a party to this match")
	}

	req := requirementsOf(r)
	attrs := attributesOf(c)
	res := matching.Calculate(req, attrs)
	return matching.Match{
		RoleID:        r.ID,
		CandidateID:   c.ID,
		Score:         res.Score,
		MatchedSkills: res.MatchedSkills,
		Breakdown:     res.Breakdown,
	}, nil
}

func (u *Matching) threshold(minScore int) (int, error) {
	if minScore == UseDefaultMinScore {
		return u.defaultMin, nil
	}
	if minScore < 0 || minScore > 100 {
		return 0, invalid("min score must be within 0-100")
	}
	return minScore, nil
}

func (u *Matching) ownedRole(ctx context.Context, actor Actor, roleID uuid.UUID) (role.Role, error) {
	r, err := u.store.Roles().FindByID(ctx, roleID)
	if err != nil {
		return role.Role{}, storeErr(err, "role")
	}
	if !r.OwnedBy(actor.ID) {
		return role.Role{}, forbidden("role belongs to another company")
	}
	return r, nil
}

func requirementsOf(r role.Role) matching.Requirements {
	return matching.Requirements{
		RoleID:           r.ID,
		MustHaveSkills:   r.MustHaveSkills,
		NiceToHaveSkills: r.NiceToHaveSkills,
		WorkMode:         string(r.WorkMode),
		City:             r.City,
		AcademicLevels:   r.AcademicLevels,
		WeeklyHours:      r.WeeklyHours,
	}
}

func attributesOf(c candidate.Candidate) matching.Attributes {
	return matching.Attributes{
		CandidateID: c.ID,
		Skills:      c.Skills,
		WorkModes:   c.WorkModes,
		City:        c.City,
		Degree:      c.Degree,
		WeeklyHours: c.WeeklyHours,
	}
}
