package models

import "time"

// RequestStatus describes where a generation attempt is in its lifecycle.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusGenerating RequestStatus = "generating"
	StatusCompleted  RequestStatus = "completed"
	StatusError      RequestStatus = "error"
)

// Terminal reports whether the status is final.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// GenerationRequest tracks one in-flight attempt. Requests live only in the
// in-memory queue and are never persisted; the queue is empty after every
// restart.
type GenerationRequest struct {
	ID           string
	ProjectID    string
	Prompt       string
	Status       RequestStatus
	Result       *GeneratedImage
	ErrorMessage string
	Settings     GenerationSettings
	StartedAt    time.Time
}
