package performance

import (
	"math"
	"time"

	"PerfDash/entity"
)

const (
	recentAccessDays = 7
	monthAccessDays  = 30
	idleAccessDays   = 14
)

// Rate returns round(100*part/total), or 0 when total is not positive.
func Rate(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	r := int(math.Round(100 * float64(part) / float64(total)))
	if r > 100 {
		return 100
	}
	return r
}

// DaysSince returns the whole days elapsed between t and now. A zero t has
// no answer. Timestamps in the future count as today.
func DaysSince(now, t time.Time) (int, bool) {
	if t.IsZero() {
		return 0, false
	}
	days := int(math.Floor(now.Sub(t).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return days, true
}

type statusCount struct {
	total     int
	completed int
	cancelled int
}

func (s *statusCount) add(v *entity.Visit) {
	s.total++
	switch {
	case v.IsCompleted():
		s.completed++
	case v.IsCancelled():
		s.cancelled++
	}
}

func countStatuses(visits []entity.Visit) statusCount {
	var s statusCount
	for i := range visits {
		s.add(&visits[i])
	}
	return s
}

// ComputeSummary derives the scalar KPIs of already scoped collections.
func ComputeSummary(in entity.Collections, now time.Time) entity.Summary {
	s := entity.Summary{
		TotalConsultants: len(in.Consultants),
		TotalEducators:   len(in.Educators),
		TotalSchools:     len(in.Colleges),
		Last30Total:      len(in.Visits30),
	}

	for _, c := range in.Consultants {
		if c.IsAvailable() {
			s.ActiveConsultants++
		}
		if c.VacationMode {
			s.VacationConsultants++
		}
	}

	visited := visitedSchools(in.Visits30)
	s.SchoolsWithoutRecentVisit = max(0, s.TotalSchools-len(visited))

	week := countStatuses(in.VisitsWeek)
	s.WeekTotal = week.total
	s.WeekCompleted = week.completed
	s.WeekCancelled = week.cancelled
	s.WeekCompletionRate = Rate(week.completed, week.total)
	s.WeekCancellationRate = Rate(week.cancelled, week.total)

	month := countStatuses(in.VisitsMonth)
	s.MonthTotal = month.total
	s.MonthCompleted = month.completed
	s.MonthCancelled = month.cancelled
	s.MonthCompletionRate = Rate(month.completed, month.total)
	s.MonthCancellationRate = Rate(month.cancelled, month.total)

	for _, e := range in.Educators {
		days, ok := DaysSince(now, e.LastAccessAt)
		if !ok {
			s.EducatorsInactive14++
			continue
		}
		if days <= recentAccessDays {
			s.EducatorsActive7d++
		}
		if days <= monthAccessDays {
			s.EducatorsActive30d++
		}
		if days > idleAccessDays {
			s.EducatorsInactive14++
		}
	}
	s.AccessRate7d = Rate(s.EducatorsActive7d, s.TotalEducators)
	s.AccessRate30d = Rate(s.EducatorsActive30d, s.TotalEducators)
	s.AccessDeltaRate = s.AccessRate7d - s.AccessRate30d

	return s
}

// visitedSchools returns the distinct resolvable school ids of the visits.
func visitedSchools(visits []entity.Visit) map[int64]bool {
	set := make(map[int64]bool)
	for _, v := range visits {
		if v.SchoolID > 0 {
			set[v.SchoolID] = true
		}
	}
	return set
}
