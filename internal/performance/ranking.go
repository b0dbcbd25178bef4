package performance

import (
	"sort"

	"PerfDash/entity"
)

const schoolRankingLimit = 8

// RankConsultants groups the visits by consultant and orders the rows by
// completion rate, then completed visits, then total visits, all descending.
// Visits without a consultant are dropped. Names resolve against the full
// consultant list so that cross-region consultants keep their names.
func RankConsultants(visits []entity.Visit, consultants []entity.Consultant, scope entity.Scope) []entity.RankingRow {
	names := make(map[int64]string, len(consultants))
	for i := range consultants {
		names[consultants[i].ID] = consultants[i].FullName()
	}

	rows := buildRows(visits, func(v *entity.Visit) int64 { return v.ConsultantID }, func(id int64) string {
		if name, ok := names[id]; ok {
			return name
		}
		c := entity.Consultant{ID: id}
		return c.FullName()
	})

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.CompletionRate != b.CompletionRate {
			return a.CompletionRate > b.CompletionRate
		}
		if a.Completed != b.Completed {
			return a.Completed > b.Completed
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.ID < b.ID
	})

	if !scope.AllConsultants() {
		rows = filter(rows, func(r *entity.RankingRow) bool { return r.ID == scope.ConsultantID })
	}
	return rows
}

// RankSchools groups the visits by school, orders by completion rate then
// total visits and keeps the top entries.
func RankSchools(visits []entity.Visit, colleges []entity.College) []entity.RankingRow {
	names := make(map[int64]string, len(colleges))
	for i := range colleges {
		names[colleges[i].ID] = colleges[i].DisplayName()
	}

	rows := buildRows(visits, func(v *entity.Visit) int64 { return v.SchoolID }, func(id int64) string {
		if name, ok := names[id]; ok {
			return name
		}
		c := entity.College{ID: id}
		return c.DisplayName()
	})

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.CompletionRate != b.CompletionRate {
			return a.CompletionRate > b.CompletionRate
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.ID < b.ID
	})

	if len(rows) > schoolRankingLimit {
		rows = rows[:schoolRankingLimit]
	}
	return rows
}

func buildRows(visits []entity.Visit, key func(*entity.Visit) int64, name func(int64) string) []entity.RankingRow {
	tallies := make(map[int64]*statusCount)
	var order []int64
	for i := range visits {
		id := key(&visits[i])
		if id <= 0 {
			continue
		}
		t, ok := tallies[id]
		if !ok {
			t = &statusCount{}
			tallies[id] = t
			order = append(order, id)
		}
		t.add(&visits[i])
	}

	rows := make([]entity.RankingRow, 0, len(order))
	for _, id := range order {
		t := tallies[id]
		rows = append(rows, entity.RankingRow{
			ID:             id,
			Name:           name(id),
			Total:          t.total,
			Completed:      t.completed,
			Cancelled:      t.cancelled,
			CompletionRate: Rate(t.completed, t.total),
		})
	}
	return rows
}
