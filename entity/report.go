package entity

import "time"

type Summary struct {
	TotalConsultants          int `json:"total_consultants"`
	ActiveConsultants         int `json:"active_consultants"`
	VacationConsultants       int `json:"vacation_consultants"`
	TotalEducators            int `json:"total_educators"`
	TotalSchools              int `json:"total_schools"`
	SchoolsWithoutRecentVisit int `json:"schools_without_recent_visit"`

	Last30Total int `json:"last30_total"`

	WeekTotal            int `json:"week_total"`
	WeekCompleted        int `json:"week_completed"`
	WeekCancelled        int `json:"week_cancelled"`
	WeekCompletionRate   int `json:"week_completion_rate"`
	WeekCancellationRate int `json:"week_cancellation_rate"`

	MonthTotal            int `json:"month_total"`
	MonthCompleted        int `json:"month_completed"`
	MonthCancelled        int `json:"month_cancelled"`
	MonthCompletionRate   int `json:"month_completion_rate"`
	MonthCancellationRate int `json:"month_cancellation_rate"`

	EducatorsActive7d   int `json:"educators_active_7d"`
	EducatorsActive30d  int `json:"educators_active_30d"`
	EducatorsInactive14 int `json:"educators_inactive_14d"`
	AccessRate7d        int `json:"access_rate_7d"`
	AccessRate30d       int `json:"access_rate_30d"`
	AccessDeltaRate     int `json:"access_delta_rate"`
}

// RankingRow is one consultant or school line of a leaderboard.
type RankingRow struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	Cancelled      int    `json:"cancelled"`
	CompletionRate int    `json:"completion_rate"`
}

// TrendBucket aggregates the visits of one Monday-start week.
type TrendBucket struct {
	WeekStart      string `json:"week_start"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	Cancelled      int    `json:"cancelled"`
	CompletionRate int    `json:"completion_rate"`
}

type RiskEntry struct {
	EducatorID int64    `json:"educator_id"`
	Name       string   `json:"name"`
	CollegeID  int64    `json:"college_id,omitempty"`
	School     string   `json:"school,omitempty"`
	DaysIdle   *int     `json:"days_since_access"`
	Score      int      `json:"score"`
	Reasons    []string `json:"reasons"`
}

type Report struct {
	GeneratedAt       time.Time     `json:"generated_at"`
	SnapshotAt        time.Time     `json:"snapshot_at"`
	Scope             Scope         `json:"scope"`
	Summary           Summary       `json:"summary"`
	ConsultantRanking []RankingRow  `json:"consultant_ranking"`
	SchoolRanking     []RankingRow  `json:"school_ranking"`
	WeeklyTrend       []TrendBucket `json:"weekly_trend"`
	Risk              []RiskEntry   `json:"risk"`
	Alerts            []string      `json:"alerts"`
	Recommendations   []string      `json:"recommendations"`
	RecentActivity    []AuditEntry  `json:"recent_activity"`
	Warning           string        `json:"warning,omitempty"`
	FailedSources     []string      `json:"failed_sources,omitempty"`
}
