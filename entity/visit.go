package entity

import "time"

type VisitStatus string

const (
	VisitScheduled   VisitStatus = "scheduled"
	VisitCompleted   VisitStatus = "completed"
	VisitCancelled   VisitStatus = "cancelled"
	VisitRescheduled VisitStatus = "rescheduled"
	VisitUnknown     VisitStatus = "unknown"
)

// Visit is a scheduled or completed consultancy event at a school.
// Zero ids mean the upstream record did not carry a usable value.
type Visit struct {
	ID           int64       `json:"id"`
	ConsultantID int64       `json:"consultant_id"`
	SchoolID     int64       `json:"school_id"`
	Status       VisitStatus `json:"status"`
	VisitDate    time.Time   `json:"visit_date,omitempty"`
	CreatedAt    time.Time   `json:"created_at,omitempty"`
	UpdatedAt    time.Time   `json:"updated_at,omitempty"`
}

// Date returns the first known timestamp of the visit: visit date, then
// creation, then last update.
func (v *Visit) Date() (time.Time, bool) {
	for _, t := range []time.Time{v.VisitDate, v.CreatedAt, v.UpdatedAt} {
		if !t.IsZero() {
			return t, true
		}
	}
	return time.Time{}, false
}

func (v *Visit) IsCompleted() bool {
	return v.Status == VisitCompleted
}

func (v *Visit) IsCancelled() bool {
	return v.Status == VisitCancelled
}
