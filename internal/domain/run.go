package domain

import "time"

// RunStatus enumerates ranking run milestones.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run records one deduplication pass over the raw articles.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     RunStatus
	Articles   int
	Clusters   int
	Warnings   int
	Error      string
}
