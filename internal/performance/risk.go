package performance

import (
	"fmt"
	"sort"
	"time"

	"PerfDash/entity"
)

const (
	riskLimit = 8
	maxRisk   = 100

	HighRiskScore = 70
)

const (
	ReasonNoAccessRecord = "no access record"
	ReasonSchoolNoVisit  = "school has no recent visit"
)

// ScoreEducator applies the additive disengagement heuristic to one educator.
// visited holds the schools with at least one visit in the last 30 days; an
// educator without a college never matches it.
func ScoreEducator(e entity.Educator, visited map[int64]bool, now time.Time) entity.RiskEntry {
	entry := entity.RiskEntry{
		EducatorID: e.ID,
		Name:       e.FullName(),
		CollegeID:  e.CollegeID,
		Reasons:    []string{},
	}

	days, ok := DaysSince(now, e.LastAccessAt)
	switch {
	case !ok:
		entry.Score += 70
		entry.Reasons = append(entry.Reasons, ReasonNoAccessRecord)
	case days > 30:
		entry.Score += 70
		entry.Reasons = append(entry.Reasons, fmt.Sprintf("no access in %d days", days))
	case days > 14:
		entry.Score += 50
		entry.Reasons = append(entry.Reasons, fmt.Sprintf("no access in %d days", days))
	case days > 7:
		entry.Score += 25
		entry.Reasons = append(entry.Reasons, fmt.Sprintf("low access (%d days)", days))
	}
	if ok {
		entry.DaysIdle = &days
	}

	if e.CollegeID <= 0 || !visited[e.CollegeID] {
		entry.Score += 20
		entry.Reasons = append(entry.Reasons, ReasonSchoolNoVisit)
	}

	entry.Score = min(maxRisk, entry.Score)
	return entry
}

// ScoreRisk scores every educator and returns the riskLimit highest scores,
// zero scores included when fewer educators are at risk.
func ScoreRisk(educators []entity.Educator, colleges []entity.College, visits30 []entity.Visit, now time.Time) []entity.RiskEntry {
	visited := visitedSchools(visits30)
	schools := make(map[int64]string, len(colleges))
	for i := range colleges {
		schools[colleges[i].ID] = colleges[i].DisplayName()
	}

	entries := make([]entity.RiskEntry, 0)
	for _, e := range educators {
		entry := ScoreEducator(e, visited, now)
		entry.School = schools[e.CollegeID]
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.EducatorID < b.EducatorID
	})

	if len(entries) > riskLimit {
		entries = entries[:riskLimit]
	}
	return entries
}
