package matching

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	WeightSkills   = 40.0
	WeightWorkMode = 20.0
	WeightLocation = 15.0
	WeightAcademic = 15.0
	WeightHours    = 10.0

	workModePartial  = 10.0
	workModeDefault  = 10.0
	locationRemote   = 10.0
	locationDefault  = 7.0
	academicAdjacent = 10.0
	academicDefault  = 7.0
	hoursNear        = 5.0
	hoursDefault     = 5.0

	hoursNearDelta = 10
)

const (
	modeHybrid = "hybrid"
	modeRemote = "remote"
)

// Requirements are the attributes of a Role the scorer looks at.
type Requirements struct {
	RoleID           uuid.UUID
	MustHaveSkills   []string
	NiceToHaveSkills []string
	WorkMode         string
	City             string
	AcademicLevels   []string
	WeeklyHours      string
}

// Attributes are the attributes of a Candidate the scorer looks at.
type Attributes struct {
	CandidateID uuid.UUID
	Skills      []string
	WorkModes   []string
	City        string
	Degree      string
	WeeklyHours string
}

type Breakdown struct {
	Skills   float64
	WorkMode float64
	Location float64
	Academic float64
	Hours    float64
}

func (b Breakdown) Total() float64 {
	return b.Skills + b.WorkMode + b.Location + b.Academic + b.Hours
}

type Result struct {
	Score         int
	MatchedSkills []string
	Breakdown     Breakdown
}

// Calculate scores one candidate against one role. Missing data on either
// side falls back to a neutral default per component instead of zero.
func Calculate(req Requirements, attrs Attributes) Result {
	skills, matched := skillsComponent(req, attrs)

	b := Breakdown{
		Skills:   skills,
		WorkMode: workModeComponent(req.WorkMode, attrs.WorkModes),
		Location: locationComponent(req, attrs),
		Academic: academicComponent(req.AcademicLevels, attrs.Degree),
		Hours:    hoursComponent(req.WeeklyHours, attrs.WeeklyHours),
	}

	score := int(math.Round(b.Total()))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{
		Score:         score,
		MatchedSkills: matched,
		Breakdown:     b,
	}
}

func skillsComponent(req Requirements, attrs Attributes) (float64, []string) {
	required := dedupeFold(append(append([]string{}, req.MustHaveSkills...), req.NiceToHaveSkills...))
	matched := make([]string, 0, len(required))

	have := make(map[string]struct{}, len(attrs.Skills))
	for _, s := range attrs.Skills {
		k := normalize(s)
		if k == "" {
			continue
		}
		have[k] = struct{}{}
	}
	if len(required) == 0 || len(have) == 0 {
		return 0, matched
	}

	for _, s := range required {
		if _, ok := have[normalize(s)]; ok {
			matched = append(matched, s)
		}
	}

	return float64(len(matched)) / float64(len(required)) * WeightSkills, matched
}

func workModeComponent(roleMode string, candidateModes []string) float64 {
	rm := normalize(roleMode)
	modes := normalizedSet(candidateModes)
	if rm == "" || len(modes) == 0 {
		return workModeDefault
	}
	if rm == modeHybrid {
		return WeightWorkMode
	}
	if _, ok := modes[modeHybrid]; ok {
		return WeightWorkMode
	}
	if _, ok := modes[rm]; ok {
		return WeightWorkMode
	}
	return workModePartial
}

func locationComponent(req Requirements, attrs Attributes) float64 {
	rc := normalize(req.City)
	cc := normalize(attrs.City)
	if rc == "" || cc == "" {
		return locationDefault
	}
	if rc == cc {
		return WeightLocation
	}
	if normalize(req.WorkMode) == modeRemote {
		return locationRemote
	}
	if _, ok := normalizedSet(attrs.WorkModes)[modeRemote]; ok {
		return locationRemote
	}
	return 0
}

func academicComponent(levels []string, degree string) float64 {
	d := academicLevel(degree)
	if d == "" || len(levels) == 0 {
		return academicDefault
	}

	set := make(map[string]struct{}, len(levels))
	for _, l := range levels {
		if n := academicLevel(l); n != "" {
			set[n] = struct{}{}
		}
	}
	if len(set) == 0 {
		return academicDefault
	}
	if _, ok := set[d]; ok {
		return WeightAcademic
	}
	if adj, ok := adjacentLevels[d]; ok {
		if _, ok := set[adj]; ok {
			return academicAdjacent
		}
	}
	return 0
}

var adjacentLevels = map[string]string{
	"bachelor": "master",
	"master":   "bachelor",
}

var levelAliases = map[string]string{
	"bachelors":     "bachelor",
	"bachelor's":    "bachelor",
	"bsc":           "bachelor",
	"ba":            "bachelor",
	"undergraduate": "bachelor",
	"masters":       "master",
	"master's":      "master",
	"msc":           "master",
	"ma":            "master",
	"postgraduate":  "master",
	"doctorate":     "phd",
}

func academicLevel(s string) string {
	n := normalize(s)
	if alias, ok := levelAliases[n]; ok {
		return alias
	}
	return n
}

var hoursLowerBoundRe = regexp.MustCompile(`(\d+)\s*(?:-\s*\d+)?`)

func hoursComponent(roleHours, candidateHours string) float64 {
	rh := normalize(roleHours)
	ch := normalize(candidateHours)
	if rh == "" || ch == "" {
		return hoursDefault
	}
	if rh == ch {
		return WeightHours
	}

	rl, ok1 := lowerBound(rh)
	cl, ok2 := lowerBound(ch)
	if !ok1 || !ok2 {
		return 0
	}
	diff := rl - cl
	if diff < 0 {
		diff = -diff
	}
	if diff <= hoursNearDelta {
		return hoursNear
	}
	return 0
}

func lowerBound(bucket string) (int, bool) {
	m := hoursLowerBoundRe.FindStringSubmatch(bucket)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizedSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		if n := normalize(it); n != "" {
			out[n] = struct{}{}
		}
	}
	return out
}

// dedupeFold keeps the first spelling of every case-insensitive duplicate.
func dedupeFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		n := normalize(it)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, strings.TrimSpace(it))
	}
	return out
}
