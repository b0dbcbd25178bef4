package performance

import (
	"testing"
	"time"

	"PerfDash/entity"
)

func TestRate(t *testing.T) {
	cases := []struct {
		part, total, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 7, 0},
		{6, 10, 60},
		{2, 5, 40},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{10, 10, 100},
	}
	for _, tc := range cases {
		if got := Rate(tc.part, tc.total); got != tc.want {
			t.Fatalf("Rate(%d, %d): got %d want %d", tc.part, tc.total, got, tc.want)
		}
	}
}

func TestRate_AlwaysWithinBounds(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for part := 0; part <= total; part++ {
			r := Rate(part, total)
			if r < 0 || r > 100 {
				t.Fatalf("Rate(%d, %d) = %d out of range", part, total, r)
			}
		}
	}
}

func TestDaysSince(t *testing.T) {
	if _, ok := DaysSince(testNow, time.Time{}); ok {
		t.Fatalf("zero time must not resolve")
	}
	if d, _ := DaysSince(testNow, testNow.Add(-47*time.Hour)); d != 1 {
		t.Fatalf("47 hours should floor to 1 day, got %d", d)
	}
	if d, _ := DaysSince(testNow, daysAgo(20)); d != 20 {
		t.Fatalf("expected 20 days, got %d", d)
	}
	if d, _ := DaysSince(testNow, testNow.Add(3*time.Hour)); d != 0 {
		t.Fatalf("future access should count as 0 days, got %d", d)
	}
}

func TestComputeSummary_Consultants(t *testing.T) {
	in := entity.Collections{
		Consultants: []entity.Consultant{
			{ID: 1, IsActive: true},
			{ID: 2, IsActive: true, IsBlocked: true},
			{ID: 3, IsActive: false},
			{ID: 4, IsActive: true, VacationMode: true},
		},
	}
	s := ComputeSummary(in, testNow)
	if s.TotalConsultants != 4 || s.ActiveConsultants != 2 || s.VacationConsultants != 1 {
		t.Fatalf("unexpected consultant counts: %+v", s)
	}
}

func TestComputeSummary_SchoolsWithoutRecentVisit(t *testing.T) {
	in := entity.Collections{
		Colleges: []entity.College{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}},
		Visits30: []entity.Visit{
			{ID: 1, SchoolID: 3},
			{ID: 2, SchoolID: 3},
			{ID: 3, SchoolID: 0},
		},
	}
	s := ComputeSummary(in, testNow)
	if s.SchoolsWithoutRecentVisit != 4 {
		t.Fatalf("expected 4 schools without visit, got %d", s.SchoolsWithoutRecentVisit)
	}

	// visited schools outside the scoped list never push the count below zero
	in.Colleges = in.Colleges[:0]
	if s := ComputeSummary(in, testNow); s.SchoolsWithoutRecentVisit != 0 {
		t.Fatalf("expected clamp to 0, got %d", s.SchoolsWithoutRecentVisit)
	}
}

func TestComputeSummary_WeekAndMonthRates(t *testing.T) {
	week := visitsWithStatuses(1, 1,
		entity.VisitCompleted, entity.VisitCompleted, entity.VisitCancelled, entity.VisitCancelled, entity.VisitScheduled)
	month := visitsWithStatuses(1, 1, append(repeat(entity.VisitCompleted, 3), entity.VisitRescheduled)...)

	s := ComputeSummary(entity.Collections{VisitsWeek: week, VisitsMonth: month}, testNow)
	if s.WeekTotal != 5 || s.WeekCompleted != 2 || s.WeekCancelled != 2 {
		t.Fatalf("unexpected week counts: %+v", s)
	}
	if s.WeekCancellationRate != 40 || s.WeekCompletionRate != 40 {
		t.Fatalf("unexpected week rates: completion %d cancellation %d", s.WeekCompletionRate, s.WeekCancellationRate)
	}
	if s.MonthTotal != 4 || s.MonthCompletionRate != 75 || s.MonthCancellationRate != 0 {
		t.Fatalf("unexpected month figures: %+v", s)
	}

	empty := ComputeSummary(entity.Collections{}, testNow)
	if empty.WeekCompletionRate != 0 || empty.WeekCancellationRate != 0 || empty.MonthCompletionRate != 0 {
		t.Fatalf("empty windows must rate 0: %+v", empty)
	}
}

func TestComputeSummary_EducatorEngagement(t *testing.T) {
	in := entity.Collections{
		Educators: []entity.Educator{
			{ID: 1, LastAccessAt: daysAgo(2)},
			{ID: 2, LastAccessAt: daysAgo(10)},
			{ID: 3, LastAccessAt: daysAgo(20)},
			{ID: 4, LastAccessAt: daysAgo(45)},
			{ID: 5},
		},
	}
	s := ComputeSummary(in, testNow)
	if s.EducatorsActive7d != 1 || s.EducatorsActive30d != 3 {
		t.Fatalf("unexpected active counts: 7d=%d 30d=%d", s.EducatorsActive7d, s.EducatorsActive30d)
	}
	if s.EducatorsInactive14 != 3 {
		t.Fatalf("expected 3 inactive (20d, 45d, never), got %d", s.EducatorsInactive14)
	}
	if s.AccessRate7d != 20 || s.AccessRate30d != 60 || s.AccessDeltaRate != -40 {
		t.Fatalf("unexpected access rates: %+v", s)
	}
}

func TestComputeSummary_Deterministic(t *testing.T) {
	in := entity.Collections{
		Educators: []entity.Educator{{ID: 1, LastAccessAt: daysAgo(3)}},
		Visits30:  visitsWithStatuses(1, 2, entity.VisitCompleted),
	}
	a := ComputeSummary(in, testNow)
	b := ComputeSummary(in, testNow)
	if a != b {
		t.Fatalf("summary differs between identical calls: %+v vs %+v", a, b)
	}
}
