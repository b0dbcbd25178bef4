package performance

import (
	"reflect"
	"testing"
	"time"

	"PerfDash/entity"
)

func TestScoreEducator_Thresholds(t *testing.T) {
	visited := map[int64]bool{1: true}
	cases := []struct {
		name    string
		access  time.Time
		college int64
		score   int
		reasons []string
	}{
		{"recent access, visited school", daysAgo(3), 1, 0, []string{}},
		{"exactly 7 days", daysAgo(7), 1, 0, []string{}},
		{"8 days", daysAgo(8), 1, 25, []string{"low access (8 days)"}},
		{"14 days", daysAgo(14), 1, 25, []string{"low access (14 days)"}},
		{"20 days, visited school", daysAgo(20), 1, 50, []string{"no access in 20 days"}},
		{"30 days", daysAgo(30), 1, 50, []string{"no access in 30 days"}},
		{"31 days", daysAgo(31), 1, 70, []string{"no access in 31 days"}},
		{"never accessed", time.Time{}, 1, 70, []string{ReasonNoAccessRecord}},
		{"recent access, unvisited school", daysAgo(1), 2, 20, []string{ReasonSchoolNoVisit}},
		{"never accessed, unvisited school", time.Time{}, 2, 90, []string{ReasonNoAccessRecord, ReasonSchoolNoVisit}},
		{"no college counts as unvisited", daysAgo(1), 0, 20, []string{ReasonSchoolNoVisit}},
		{"never accessed, no college", time.Time{}, 0, 90, []string{ReasonNoAccessRecord, ReasonSchoolNoVisit}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := entity.Educator{ID: 1, FirstName: "Edu", CollegeID: tc.college, LastAccessAt: tc.access}
			got := ScoreEducator(e, visited, testNow)
			if got.Score != tc.score {
				t.Fatalf("score: got %d want %d", got.Score, tc.score)
			}
			if !reflect.DeepEqual(got.Reasons, tc.reasons) {
				t.Fatalf("reasons: got %q want %q", got.Reasons, tc.reasons)
			}
		})
	}
}

func TestScoreEducator_DaysIdle(t *testing.T) {
	got := ScoreEducator(entity.Educator{ID: 1, LastAccessAt: daysAgo(20)}, nil, testNow)
	if got.DaysIdle == nil || *got.DaysIdle != 20 {
		t.Fatalf("expected 20 idle days, got %v", got.DaysIdle)
	}
	never := ScoreEducator(entity.Educator{ID: 2}, nil, testNow)
	if never.DaysIdle != nil {
		t.Fatalf("educator without access should have no idle days")
	}
}

func TestScoreEducator_Bounds(t *testing.T) {
	for days := 0; days < 120; days++ {
		for _, college := range []int64{0, 1, 2} {
			e := entity.Educator{ID: 1, CollegeID: college, LastAccessAt: daysAgo(days)}
			s := ScoreEducator(e, map[int64]bool{1: true}, testNow).Score
			if s < 0 || s > 100 {
				t.Fatalf("score %d out of range for %d days", s, days)
			}
		}
	}
	null := ScoreEducator(entity.Educator{ID: 1, CollegeID: 1}, map[int64]bool{1: true}, testNow)
	if null.Score < 70 {
		t.Fatalf("educator without access record must score at least 70, got %d", null.Score)
	}
}

func TestScoreRisk_OrderAndLimit(t *testing.T) {
	colleges := []entity.College{{ID: 1, Name: "Escola Azul"}, {ID: 2, Name: "Escola Verde"}}
	visits30 := []entity.Visit{visit(1, 1, 1, entity.VisitCompleted, daysAgo(2))}

	// scores: Zeca 0, Bia 90, Ana 50, Caio 70
	educators := []entity.Educator{
		{ID: 1, FirstName: "Zeca", CollegeID: 1, LastAccessAt: daysAgo(1)},
		{ID: 2, FirstName: "Bia", CollegeID: 2},
		{ID: 3, FirstName: "Ana", CollegeID: 1, LastAccessAt: daysAgo(20)},
		{ID: 4, FirstName: "Caio", CollegeID: 1},
	}
	for i := 0; i < 8; i++ {
		educators = append(educators, entity.Educator{ID: int64(10 + i), FirstName: "Lia", CollegeID: 1, LastAccessAt: daysAgo(9)})
	}

	risk := ScoreRisk(educators, colleges, visits30, testNow)
	if len(risk) != riskLimit {
		t.Fatalf("expected %d entries, got %d", riskLimit, len(risk))
	}
	if risk[0].EducatorID != 2 || risk[0].Score != 90 || risk[0].School != "Escola Verde" {
		t.Fatalf("unexpected top entry: %+v", risk[0])
	}
	if risk[1].EducatorID != 4 || risk[2].EducatorID != 3 {
		t.Fatalf("unexpected order: %+v", risk[:3])
	}
	for i := 3; i < len(risk); i++ {
		if risk[i].Score != 25 {
			t.Fatalf("expected low access entries after the top three, got %+v", risk[i])
		}
		if i > 3 && risk[i].EducatorID < risk[i-1].EducatorID {
			t.Fatalf("equal scores and names should order by id: %+v", risk)
		}
	}
	for _, r := range risk {
		if r.EducatorID == 1 {
			t.Fatalf("zero-score educator should be truncated away: %+v", risk)
		}
	}
}

func TestScoreRisk_KeepsZeroScoresBelowLimit(t *testing.T) {
	colleges := []entity.College{{ID: 1, Name: "Escola Azul"}}
	visits30 := []entity.Visit{visit(1, 1, 1, entity.VisitCompleted, daysAgo(2))}
	educators := []entity.Educator{
		{ID: 1, FirstName: "Zeca", CollegeID: 1, LastAccessAt: daysAgo(1)},
		{ID: 2, FirstName: "Bia", CollegeID: 1},
		{ID: 3, FirstName: "Ana"},
	}

	risk := ScoreRisk(educators, colleges, visits30, testNow)
	if len(risk) != 3 {
		t.Fatalf("expected every educator below the limit, got %+v", risk)
	}
	if risk[0].EducatorID != 2 || risk[1].EducatorID != 3 || risk[1].Score != 20 {
		t.Fatalf("unexpected order: %+v", risk)
	}
	if risk[2].EducatorID != 1 || risk[2].Score != 0 || risk[2].School != "Escola Azul" {
		t.Fatalf("zero-score educator should close the list: %+v", risk[2])
	}
}
