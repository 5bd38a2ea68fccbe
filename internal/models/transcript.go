package models

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptSegment is one timed caption entry. Segments are ordered by
// start time; overlaps can occur because source data is noisy.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Attempt records one extraction strategy invocation. Exactly one of OK or
// Error is meaningful: OK carries the outcome when the strategy ran to
// completion, Error carries the failure text otherwise.
type Attempt struct {
	Method string `json:"method"`
	OK     *bool  `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// TranscriptResult is the outcome of running the extraction strategy chain
// for one video. Attempts is always populated, including on total failure,
// so callers can tell "no captions exist" from "every strategy was blocked".
type TranscriptResult struct {
	Success     bool                `json:"success"`
	VideoID     string              `json:"video_id"`
	Language    string              `json:"language,omitempty"`
	Transcript  string              `json:"transcript"`
	Segments    []TranscriptSegment `json:"segments"`
	WordCount   int                 `json:"word_count"`
	Method      string              `json:"method,omitempty"`
	Attempts    []Attempt           `json:"fallbacks"`
	Error       string              `json:"error,omitempty"`
	ExtractedAt time.Time           `json:"extracted_at"`
}

// DebugExchange is a snapshot of the most recent HTTP exchange seen while
// talking to YouTube, kept for operational troubleshooting.
type DebugExchange struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Snippet    string `json:"snippet"`
}

// AggregatedVideoData is the full per-video envelope. Success mirrors the
// transcript outcome; metadata, languages and chapters are best-effort
// enrichments that never fail the whole operation.
type AggregatedVideoData struct {
	Success            bool              `json:"success"`
	Cached             bool              `json:"cached,omitempty"`
	VideoID            string            `json:"video_id"`
	SourceURL          string            `json:"url"`
	Metadata           *VideoMetadata    `json:"metadata"`
	Transcript         *TranscriptResult `json:"transcript"`
	AvailableLanguages []CaptionTrack    `json:"available_languages"`
	Chapters           []Chapter         `json:"chapters"`
	DebugInfo          *DebugExchange    `json:"server_debug,omitempty"`
	Error              string            `json:"error,omitempty"`
	ExtractedAt        time.Time         `json:"extracted_at"`
}

// StoredTranscript is a transcript persisted for a user's video, either
// acquired automatically or supplied manually. Source is the extraction
// method name, or "manual" for pasted/uploaded text.
type StoredTranscript struct {
	UserID     uuid.UUID `json:"user_id"`
	VideoID    string    `json:"video_id"`
	Transcript string    `json:"transcript"`
	Language   string    `json:"language"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
