// Package performance turns one snapshot of visits, consultants, educators and
// colleges into the performance report of a scope. Every function is pure:
// the current time and the scope are always passed in.
package performance

import (
	"time"

	"PerfDash/entity"
)

const WarningLoadFailed = "could not load performance data"

// BuildReport runs the whole pipeline for one scope. now also fixes the
// location used for calendar weeks. A nil snapshot yields an empty report.
func BuildReport(snap *entity.Snapshot, scope entity.Scope, now time.Time, auditLimit int) entity.Report {
	if snap == nil {
		snap = &entity.Snapshot{}
	}

	scoped := FilterByScope(snap.Collections, scope)
	summary := ComputeSummary(scoped, now)
	consultants := RankConsultants(scoped.Visits30, snap.Consultants, scope)
	schools := RankSchools(scoped.Visits30, snap.Colleges)
	risk := ScoreRisk(scoped.Educators, snap.Colleges, scoped.Visits30, now)

	report := entity.Report{
		GeneratedAt:       now,
		SnapshotAt:        snap.FetchedAt,
		Scope:             scope,
		Summary:           summary,
		ConsultantRanking: consultants,
		SchoolRanking:     schools,
		WeeklyTrend:       WeeklyTrend(scoped.Visits30, now),
		Risk:              risk,
		Alerts:            BuildAlerts(summary, consultants, risk),
		Recommendations:   BuildRecommendations(summary, consultants, risk),
		RecentActivity:    recentActivity(snap.Audit, auditLimit),
	}

	if snap.HasFailures() {
		report.Warning = WarningLoadFailed
		report.FailedSources = append([]string(nil), snap.Failed...)
	}
	return report
}

func recentActivity(entries []entity.AuditEntry, limit int) []entity.AuditEntry {
	if limit <= 0 || len(entries) < limit {
		limit = len(entries)
	}
	out := make([]entity.AuditEntry, limit)
	copy(out, entries[:limit])
	return out
}
