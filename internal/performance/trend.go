package performance

import (
	"time"

	"PerfDash/entity"
)

const (
	trendWeeks = 4
	dateLayout = "2006-01-02"
)

// WeekStart returns midnight of the Monday that opens t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	shift := int(t.Weekday() - time.Monday)
	if t.Weekday() == time.Sunday {
		shift = 6
	}
	return time.Date(t.Year(), t.Month(), t.Day()-shift, 0, 0, 0, 0, t.Location())
}

// WeeklyTrend splits the visits into the current week and the three before
// it, oldest first. Visit dates are read in now's location. Visits without a
// date or outside those weeks are left out.
func WeeklyTrend(visits []entity.Visit, now time.Time) []entity.TrendBucket {
	current := WeekStart(now)

	buckets := make([]entity.TrendBucket, trendWeeks)
	counts := make([]statusCount, trendWeeks)
	index := make(map[string]int, trendWeeks)
	for i := 0; i < trendWeeks; i++ {
		key := current.AddDate(0, 0, -7*(trendWeeks-1-i)).Format(dateLayout)
		buckets[i].WeekStart = key
		index[key] = i
	}

	for i := range visits {
		date, ok := visits[i].Date()
		if !ok {
			continue
		}
		key := WeekStart(date.In(now.Location())).Format(dateLayout)
		idx, ok := index[key]
		if !ok {
			continue
		}
		counts[idx].add(&visits[i])
	}

	for i := range buckets {
		buckets[i].Total = counts[i].total
		buckets[i].Completed = counts[i].completed
		buckets[i].Cancelled = counts[i].cancelled
		buckets[i].CompletionRate = Rate(counts[i].completed, counts[i].total)
	}
	return buckets
}
