package matching

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestCalculate_ScenarioHalfSkills(t *testing.T) {
	req := Requirements{
		RoleID:         uuid.New(),
		MustHaveSkills: []string{"React", "SQL"},
		WorkMode:       "remote",
		City:           "Berlin",
		AcademicLevels: []string{"bachelor"},
		WeeklyHours:    "21-30",
	}
	attrs := Attributes{
		CandidateID: uuid.New(),
		Skills:      []string{"react", "python"},
		WorkModes:   []string{"remote"},
		City:        "berlin",
		Degree:      "Bachelor",
		WeeklyHours: "21-30",
	}

	res := Calculate(req, attrs)
	if res.Score != 80 {
		t.Fatalf("expected score 80, got %d (%+v)", res.Score, res.Breakdown)
	}
	if !reflect.DeepEqual(res.MatchedSkills, []string{"React"}) {
		t.Fatalf("expected matched [React], got %v", res.MatchedSkills)
	}
	if res.Breakdown.Skills != 20 {
		t.Fatalf("expected skills component 20, got %v", res.Breakdown.Skills)
	}
}

func TestCalculate_EmptyInputsUseDefaults(t *testing.T) {
	res := Calculate(Requirements{}, Attributes{})
	want := Breakdown{Skills: 0, WorkMode: 10, Location: 7, Academic: 7, Hours: 5}
	if res.Breakdown != want {
		t.Fatalf("expected defaults %+v, got %+v", want, res.Breakdown)
	}
	if res.Score != 29 {
		t.Fatalf("expected 29, got %d", res.Score)
	}
	if res.MatchedSkills == nil || len(res.MatchedSkills) != 0 {
		t.Fatalf("expected empty non-nil matched skills, got %#v", res.MatchedSkills)
	}
}

func TestCalculate_EmptyRoleSkillsContributeZero(t *testing.T) {
	res := Calculate(Requirements{}, Attributes{Skills: []string{"Go", "SQL"}})
	if res.Breakdown.Skills != 0 {
		t.Fatalf("expected 0 skill points, got %v", res.Breakdown.Skills)
	}
}

func TestCalculate_HybridRoleFullWorkMode(t *testing.T) {
	for _, modes := range [][]string{{"onsite"}, {"remote"}, {"hybrid"}, {"Remote", "onsite"}} {
		res := Calculate(Requirements{WorkMode: "hybrid"}, Attributes{WorkModes: modes})
		if res.Breakdown.WorkMode != WeightWorkMode {
			t.Fatalf("modes %v: expected %v, got %v", modes, WeightWorkMode, res.Breakdown.WorkMode)
		}
	}
}

func TestCalculate_WorkModePartial(t *testing.T) {
	res := Calculate(Requirements{WorkMode: "onsite"}, Attributes{WorkModes: []string{"remote"}})
	if res.Breakdown.WorkMode != 10 {
		t.Fatalf("expected partial 10, got %v", res.Breakdown.WorkMode)
	}
}

func TestCalculate_Location(t *testing.T) {
	cases := []struct {
		name string
		req  Requirements
		at   Attributes
		want float64
	}{
		{"same city", Requirements{City: "Paris"}, Attributes{City: " paris "}, 15},
		{"role remote", Requirements{City: "Paris", WorkMode: "remote"}, Attributes{City: "Lyon"}, 10},
		{"candidate remote", Requirements{City: "Paris"}, Attributes{City: "Lyon", WorkModes: []string{"remote"}}, 10},
		{"different city", Requirements{City: "Paris", WorkMode: "onsite"}, Attributes{City: "Lyon"}, 0},
		{"missing city", Requirements{City: "Paris"}, Attributes{}, 7},
	}
	for _, tc := range cases {
		got := Calculate(tc.req, tc.at).Breakdown.Location
		if got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestCalculate_Academic(t *testing.T) {
	cases := []struct {
		levels []string
		degree string
		want   float64
	}{
		{[]string{"bachelor", "master"}, "master", 15},
		{[]string{"bachelor"}, "Masters", 10},
		{[]string{"master"}, "bachelor", 10},
		{[]string{"phd"}, "bachelor", 0},
		{nil, "bachelor", 7},
		{[]string{"bachelor"}, "", 7},
	}
	for _, tc := range cases {
		got := Calculate(Requirements{AcademicLevels: tc.levels}, Attributes{Degree: tc.degree}).Breakdown.Academic
		if got != tc.want {
			t.Fatalf("levels=%v degree=%q: expected %v, got %v", tc.levels, tc.degree, tc.want, got)
		}
	}
}

func TestCalculate_WeeklyHours(t *testing.T) {
	cases := []struct {
		role, cand string
		want       float64
	}{
		{"21-30", "21-30", 10},
		{"21-30", "11-20", 5},
		{"31-40", "11-20", 0},
		{"flexible", "11-20", 0},
		{"", "11-20", 5},
	}
	for _, tc := range cases {
		got := Calculate(Requirements{WeeklyHours: tc.role}, Attributes{WeeklyHours: tc.cand}).Breakdown.Hours
		if got != tc.want {
			t.Fatalf("%q vs %q: expected %v, got %v", tc.role, tc.cand, tc.want, got)
		}
	}
}

func TestCalculate_RangeAndDeterminism(t *testing.T) {
	skills := []string{"Go", "SQL", "React", "Docker", "Kubernetes"}
	modes := []string{"", "onsite", "hybrid", "remote"}
	cities := []string{"", "Jakarta", "Bandung"}
	hours := []string{"", "0-10", "11-20", "21-30", "40+"}

	for i := 0; i < len(skills); i++ {
		for _, m := range modes {
			for _, city := range cities {
				for _, h := range hours {
					req := Requirements{
						MustHaveSkills:   skills[:i],
						NiceToHaveSkills: skills[i:],
						WorkMode:         m,
						City:             city,
						AcademicLevels:   []string{"bachelor"},
						WeeklyHours:      h,
					}
					attrs := Attributes{
						Skills:      []string{strings.ToUpper(skills[i]), "rust"},
						WorkModes:   []string{m},
						City:        cities[i%len(cities)],
						Degree:      "master",
						WeeklyHours: hours[i%len(hours)],
					}
					a := Calculate(req, attrs)
					b := Calculate(req, attrs)
					if a.Score < 0 || a.Score > 100 {
						t.Fatalf("score out of range: %d", a.Score)
					}
					if !reflect.DeepEqual(a, b) {
						t.Fatalf("non-deterministic result: %+v vs %+v", a, b)
					}
					assertSubset(t, a.MatchedSkills, append(append([]string{}, req.MustHaveSkills...), req.NiceToHaveSkills...))
				}
			}
		}
	}
}

func TestCalculate_DuplicateRoleSkillsCountedOnce(t *testing.T) {
	req := Requirements{MustHaveSkills: []string{"Go", "go"}, NiceToHaveSkills: []string{"GO", "SQL"}}
	res := Calculate(req, Attributes{Skills: []string{"go"}})
	if res.Breakdown.Skills != 20 {
		t.Fatalf("expected 20 skill points, got %v", res.Breakdown.Skills)
	}
	if !reflect.DeepEqual(res.MatchedSkills, []string{"Go"}) {
		t.Fatalf("expected [Go], got %v", res.MatchedSkills)
	}
}

func assertSubset(t *testing.T, got, of []string) {
	t.Helper()
	set := make(map[string]struct{}, len(of))
	for _, s := range of {
		set[s] = struct{}{}
	}
	for _, s := range got {
		if _, ok := set[s]; !ok {
			t.Fatalf("matched skill %q not among role skills %v", s, of)
		}
	}
}
