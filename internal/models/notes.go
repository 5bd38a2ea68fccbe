package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TimestampedNote is a single note anchored to a point in the video.
type TimestampedNote struct {
	TimeSeconds int    `json:"time"`
	Note        string `json:"note"`
}

// VideoNotes is the per-user notes record for a video. One row per
// (user_id, video_id) pair; saves are upserts.
type VideoNotes struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	VideoID    string          `json:"video_id"`
	Notes      string          `json:"notes"`
	Timestamps json.RawMessage `json:"timestamps"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type SaveNotesRequest struct {
	UserID     uuid.UUID         `json:"user_id"`
	VideoID    string            `json:"video_id"`
	Notes      string            `json:"notes"`
	Timestamps []TimestampedNote `json:"timestamps"`
}

// NotesSummary is the list-view shape: notes text truncated, timestamps
// reduced to a count.
type NotesSummary struct {
	ID              uuid.UUID `json:"id"`
	VideoID         string    `json:"video_id"`
	Notes           string    `json:"notes"`
	TimestampsCount int       `json:"timestamps_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
