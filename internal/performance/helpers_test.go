package performance

import (
	"time"

	"PerfDash/entity"
)

// Thursday; the current week starts on Monday 2026-10-12.
var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(days int) time.Time {
	return testNow.AddDate(0, 0, -days)
}

func visit(id, consultant, school int64, status entity.VisitStatus, date time.Time) entity.Visit {
	return entity.Visit{ID: id, ConsultantID: consultant, SchoolID: school, Status: status, VisitDate: date}
}

func visitsWithStatuses(consultant, school int64, statuses ...entity.VisitStatus) []entity.Visit {
	visits := make([]entity.Visit, 0, len(statuses))
	for i, s := range statuses {
		visits = append(visits, visit(int64(i+1), consultant, school, s, daysAgo(1)))
	}
	return visits
}

func repeat(status entity.VisitStatus, n int) []entity.VisitStatus {
	out := make([]entity.VisitStatus, n)
	for i := range out {
		out[i] = status
	}
	return out
}
