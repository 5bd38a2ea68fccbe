package models

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionJob is a queued background transcript extraction.
type ExtractionJob struct {
	ID          uuid.UUID            `json:"id"`
	URL         string               `json:"url"`
	Language    string               `json:"language"`
	Status      string               `json:"status"` // "pending" | "processing" | "completed" | "failed"
	Error       string               `json:"error,omitempty"`
	Result      *AggregatedVideoData `json:"result,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
}

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type StatusUpdate struct {
	JobID    uuid.UUID `json:"job_id"`
	Step     int       `json:"step"`
	StepName string    `json:"step_name"`
}

type CompletedEvent struct {
	JobID   uuid.UUID `json:"job_id"`
	Success bool      `json:"success"`
	VideoID string    `json:"video_id"`
}

type ErrorEvent struct {
	JobID        uuid.UUID `json:"job_id"`
	ErrorMessage string    `json:"error_message"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
