package dto

import (
	"internhub/internal/domain/matching"
	"internhub/internal/usecase"

	"github.com/google/uuid"
)

type BreakdownResponse struct {
	Skills   float64 `json:"skills"`
	WorkMode float64 `json:"work_mode"`
	Location float64 `json:"location"`
	Academic float64 `json:"academic"`
	Hours    float64 `json:"hours"`
}

type MatchResponse struct {
	RoleID        uuid.UUID         `json:"role_id"`
	CandidateID   uuid.UUID         `json:"candidate_id"`
	Score         int               `json:"score"`
	MatchedSkills []string          `json:"matched_skills"`
	Breakdown     BreakdownResponse `json:"breakdown"`
}

func NewMatchResponse(m matching.Match) MatchResponse {
	return MatchResponse{
		RoleID:        m.RoleID,
		CandidateID:   m.CandidateID,
		Score:         m.Score,
		MatchedSkills: nonNil(m.MatchedSkills),
		Breakdown: BreakdownResponse{
			Skills:   m.Breakdown.Skills,
			WorkMode: m.Breakdown.WorkMode,
			Location: m.Breakdown.Location,
			Academic: m.Breakdown.Academic,
			Hours:    m.Breakdown.Hours,
		},
	}
}

type CandidateMatchResponse struct {
	Candidate CandidateResponse `json:"candidate"`
	Match     MatchResponse     `json:"match"`
}

type RoleMatchResponse struct {
	Role  RoleResponse  `json:"role"`
	Match MatchResponse `json:"match"`
}

type RoleMatchCountResponse struct {
	Role  RoleResponse `json:"role"`
	Count int          `json:"count"`
}

func NewCandidateMatchResponses(items []usecase.CandidateMatch) []CandidateMatchResponse {
	out := make([]CandidateMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, CandidateMatchResponse{Candidate: NewCandidateResponse(it.Candidate), Match: NewMatchResponse(it.Match)})
	}
	return out
}

func NewRoleMatchResponses(items []usecase.RoleMatch) []RoleMatchResponse {
	out := make([]RoleMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, RoleMatchResponse{Role: NewRoleResponse(it.Role), Match: NewMatchResponse(it.Match)})
	}
	return out
}

func NewRoleMatchCountResponses(items []usecase.RoleMatchCount) []RoleMatchCountResponse {
	out := make([]RoleMatchCountResponse, 0, len(items))
	for _, it := range items {
		out = append(out, RoleMatchCountResponse{Role: NewRoleResponse(it.Role), Count: it.Count})
	}
	return out
}
