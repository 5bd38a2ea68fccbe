package models

import "time"

// VideoMetadata holds basic information about a YouTube video. A synthetic
// fallback (title "YouTube Video {id}", everything else zero) is returned
// when the oEmbed lookup fails; callers treat it like real metadata.
type VideoMetadata struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Duration     int       `json:"duration"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Provider     string    `json:"provider"`
	ExtractedAt  time.Time `json:"extracted_at"`
}

// CaptionTrack describes one subtitle language variant a video exposes.
type CaptionTrack struct {
	LanguageCode  string `json:"language_code"`
	LanguageName  string `json:"language_name"`
	AutoGenerated bool   `json:"auto_generated"`
}

// Chapter is a chapter marker scraped from the video page. The timestamp is
// the display string YouTube renders; the page markup does not reliably
// expose a numeric offset.
type Chapter struct {
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
}

// ExtractRequest asks for a transcript extraction. UserID is optional; when
// present, a successful transcript is also persisted for that user so the
// chat endpoint can answer questions about the video later.
type ExtractRequest struct {
	URL      string `json:"url"`
	Language string `json:"language"`
	UserID   string `json:"user_id,omitempty"`
}

type VideoInfo struct {
	VideoID            string         `json:"video_id"`
	Metadata           *VideoMetadata `json:"metadata"`
	AvailableLanguages []CaptionTrack `json:"available_languages"`
	HasTranscript      bool           `json:"has_transcript"`
	Cached             bool           `json:"cached,omitempty"`
}
