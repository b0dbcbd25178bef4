package entity

import "time"

const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
	TriggerStartup  = "startup"
)

// PerformanceRun is the stored outcome of one refresh cycle for the whole network.
type PerformanceRun struct {
	ID            string    `json:"id" bson:"_id"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	SnapshotAt    time.Time `json:"snapshot_at" bson:"snapshot_at"`
	Trigger       string    `json:"trigger" bson:"trigger"`
	User          string    `json:"user,omitempty" bson:"user,omitempty"`
	Summary       Summary   `json:"summary" bson:"summary"`
	Alerts        []string  `json:"alerts" bson:"alerts"`
	FailedSources []string  `json:"failed_sources,omitempty" bson:"failed_sources,omitempty"`
}
