package matching

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

const DefaultMinScore = 50

// Match is a scored role/candidate pair. It is derived on demand and never stored.
type Match struct {
	RoleID        uuid.UUID
	CandidateID   uuid.UUID
	Score         int
	MatchedSkills []string
	Breakdown     Breakdown
}

// RankCandidates scores every candidate against req, keeps those at or above
// minScore and orders them by score descending, then candidate id ascending.
func RankCandidates(req Requirements, candidates []Attributes, minScore int) []Match {
	out := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		res := Calculate(req, c)
		if res.Score < minScore {
			continue
		}
		out = append(out, newMatch(req, c, res))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return bytes.Compare(out[i].CandidateID[:], out[j].CandidateID[:]) < 0
	})
	return out
}

// RankRoles is the candidate-facing direction of RankCandidates.
func RankRoles(attrs Attributes, roles []Requirements, minScore int) []Match {
	out := make([]Match, 0, len(roles))
	for _, r := range roles {
		res := Calculate(r, attrs)
		if res.Score < minScore {
			continue
		}
		out = append(out, newMatch(r, attrs, res))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return bytes.Compare(out[i].RoleID[:], out[j].RoleID[:]) < 0
	})
	return out
}

// CountMatches returns, per role, how many candidates reach minScore.
func CountMatches(roles []Requirements, candidates []Attributes, minScore int) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(roles))
	for _, r := range roles {
		out[r.RoleID] = CountForRole(r, candidates, minScore)
	}
	return out
}

func CountForRole(req Requirements, candidates []Attributes, minScore int) int {
	n := 0
	for _, c := range candidates {
		if Calculate(req, c).Score >= minScore {
			n++
		}
	}
	return n
}

func newMatch(req Requirements, attrs Attributes, res Result) Match {
	return Match{
		RoleID:        req.RoleID,
		CandidateID:   attrs.CandidateID,
		Score:         res.Score,
		MatchedSkills: res.MatchedSkills,
		Breakdown:     res.Breakdown,
	}
}
