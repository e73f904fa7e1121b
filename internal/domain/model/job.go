package model

import "time"

// RefreshReason says why a league snapshot rebuild was requested.
type RefreshReason string

// Refresh reasons.
const (
	ReasonStartup  RefreshReason = "startup"
	ReasonManual   RefreshReason = "manual"
	ReasonSchedule RefreshReason = "schedule"
)

// RefreshJob asks the workers to rebuild one league's snapshot.
type RefreshJob struct {
	JobID       string        `json:"jobId"`
	LeagueID    string        `json:"leagueId"`
	Reason      RefreshReason `json:"reason"`
	RequestedAt time.Time     `json:"requestedAt"`
}
