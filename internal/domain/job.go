package domain

import "time"

// JobStatus enumerates job lifecycle states.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusError      JobStatus = "error"
)

// Terminal reports whether the status permits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusDone || s == JobStatusError
}

// Job encapsulates the lifecycle of one short-video generation request.
// Message is set only while in error, Script once the script stage has
// completed, ArtifactID and DownloadURL only once the job is done.
type Job struct {
	ID          string
	Status      JobStatus
	Message     string
	Script      string
	ArtifactID  string
	DownloadURL string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobMutation describes a field-level update to a job record. Nil fields
// are left untouched by the store.
type JobMutation struct {
	Status      *JobStatus
	Message     *string
	Script      *string
	ArtifactID  *string
	DownloadURL *string
}
