package domain

import "time"

// JobStatus enumerates job lifecycle states.
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// Job is a queued batch of images to run through detection.
type Job struct {
	ID        string
	UserID    string
	Status    JobStatus
	ImageURLs []string
	Metadata  map[string]any
	Results   []ImageResult
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ImageResult records the outcome for a single image of a job.
type ImageResult struct {
	ImageURL       string            `json:"imageUrl"`
	ImageIndex     int               `json:"imageIndex"`
	Detections     []DetectionResult `json:"detections"`
	DetectionCount int               `json:"detectionCount"`
	Error          string            `json:"error,omitempty"`
}
