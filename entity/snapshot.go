package entity

import "time"

const (
	SourceVisits30    = "visits_last30"
	SourceVisitsMonth = "visits_month"
	SourceVisitsWeek  = "visits_week"
	SourceConsultants = "consultants"
	SourceEducators   = "educators"
	SourceColleges    = "colleges"
	SourceAudit       = "audit"
)

// Collections are the canonical inputs of one load cycle.
type Collections struct {
	Visits30    []Visit
	VisitsMonth []Visit
	VisitsWeek  []Visit
	Consultants []Consultant
	Educators   []Educator
	Colleges    []College
}

// Snapshot is an immutable result of one fetch cycle. It is replaced as a
// whole by the next refresh and must not be modified after it is published.
type Snapshot struct {
	Collections
	Audit     []AuditEntry
	FetchedAt time.Time
	Failed    []string
	Sequence  uint64
}

func (s *Snapshot) HasFailures() bool {
	return len(s.Failed) > 0
}
