// Package sim submits simulation input archives to the remote job
// service and formats job results. All calls are one-shot: errors
// propagate from the underlying HTTP client without retry logic.
package sim

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state reported by the job service.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusSucceeded JobStatus = "succeeded"
	StatusFailed    JobStatus = "failed"
)

// JobDefinition describes a simulation job to submit. It is passed
// through to the service unchanged.
type JobDefinition struct {
	Name              string `json:"name"`
	Solver            string `json:"solver"`
	RequestedCPU      int    `json:"requested_cpu"`
	RequestedMemoryMB int    `json:"requested_memory_mb"`
}

// PreJob is the service's acknowledgement of an uploaded simulation,
// returned before the job is scheduled.
type PreJob struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Job is a job result as reported by the service.
type Job struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"job_name"`
	Status            JobStatus         `json:"status"`
	ExitCode          int               `json:"exit_code"`
	StartedAt         *time.Time        `json:"started_at,omitempty"`
	FinishedAt        *time.Time        `json:"finished_at,omitempty"`
	RequestedCPU      int               `json:"requested_cpu"`
	RequestedMemoryMB int               `json:"requested_memory_mb"`
	OutputSizeBytes   int64             `json:"output_size_bytes"`
	DownloadURLs      map[string]string `json:"download_urls,omitempty"`
}
