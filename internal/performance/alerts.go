package performance

import (
	"fmt"
	"strings"

	"PerfDash/entity"
)

const (
	CancellationAlertRate = 20
	LowCompletionRate     = 50

	NoAlerts          = "No critical alerts for the selected scope."
	NoRecommendations = "Keep the current visit cadence and keep monitoring the indicators."
)

// idleConsultants lists consultants that had visits but completed none.
func idleConsultants(ranking []entity.RankingRow) []string {
	var names []string
	for _, r := range ranking {
		if r.Total > 0 && r.Completed == 0 {
			names = append(names, r.Name)
		}
	}
	return names
}

func highRisk(risk []entity.RiskEntry) int {
	n := 0
	for _, r := range risk {
		if r.Score >= HighRiskScore {
			n++
		}
	}
	return n
}

// BuildAlerts evaluates the alert rules in a fixed order. The result always
// holds at least one line.
func BuildAlerts(s entity.Summary, consultants []entity.RankingRow, risk []entity.RiskEntry) []string {
	var alerts []string

	if s.WeekCancellationRate >= CancellationAlertRate {
		alerts = append(alerts, fmt.Sprintf("Weekly cancellation rate at %d%% (%d of %d visits).",
			s.WeekCancellationRate, s.WeekCancelled, s.WeekTotal))
	}
	if s.WeekTotal > 0 && s.WeekCompletionRate < LowCompletionRate {
		alerts = append(alerts, fmt.Sprintf("Weekly completion rate is only %d%%.", s.WeekCompletionRate))
	}
	if s.SchoolsWithoutRecentVisit > 0 {
		alerts = append(alerts, fmt.Sprintf("%d of %d schools have no visit in the last 30 days.",
			s.SchoolsWithoutRecentVisit, s.TotalSchools))
	}
	if names := idleConsultants(consultants); len(names) > 0 {
		alerts = append(alerts, fmt.Sprintf("Consultants with visits but no completions in 30 days: %s.",
			strings.Join(names, ", ")))
	}
	if s.EducatorsInactive14 > 0 {
		alerts = append(alerts, fmt.Sprintf("%d educators without platform access for more than 14 days.",
			s.EducatorsInactive14))
	}
	if n := highRisk(risk); n > 0 {
		alerts = append(alerts, fmt.Sprintf("%d educators at high disengagement risk.", n))
	}

	if len(alerts) == 0 {
		return []string{NoAlerts}
	}
	return alerts
}

// BuildRecommendations mirrors BuildAlerts with suggested actions.
func BuildRecommendations(s entity.Summary, consultants []entity.RankingRow, risk []entity.RiskEntry) []string {
	var recs []string

	if s.WeekCancellationRate >= CancellationAlertRate {
		recs = append(recs, "Confirm scheduled visits with the schools 48 hours in advance.")
	}
	if s.SchoolsWithoutRecentVisit > 0 {
		recs = append(recs, fmt.Sprintf("Prioritize the %d schools without a recent visit in next week's agenda.",
			s.SchoolsWithoutRecentVisit))
		if s.VacationConsultants > 0 {
			recs = append(recs, fmt.Sprintf("Reassign the schools of the %d consultants on vacation.",
				s.VacationConsultants))
		}
	}
	if len(idleConsultants(consultants)) > 0 {
		recs = append(recs, "Review the agenda of consultants without completed visits with their coordinator.")
	}
	if s.EducatorsInactive14 > 0 || highRisk(risk) > 0 {
		recs = append(recs, "Contact educators without recent access and offer platform support.")
	}

	if len(recs) == 0 {
		return []string{NoRecommendations}
	}
	return recs
}
