package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"edureach-backend/internal/models"
	"edureach-backend/internal/repository"
	"edureach-backend/internal/youtube"
)

type NotesHandler struct {
	notes *repository.NotesRepo
	yt    *youtube.Service
}

func NewNotesHandler(notes *repository.NotesRepo, yt *youtube.Service) *NotesHandler {
	return &NotesHandler{notes: notes, yt: yt}
}

func (h *NotesHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.SaveNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := map[string]string{}
	if req.UserID == uuid.Nil {
		fields["user_id"] = "user_id is required"
	}
	videoID, ok := h.yt.ResolveVideoID(req.VideoID)
	if !ok {
		fields["video_id"] = "valid YouTube video ID or URL is required"
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}
	req.VideoID = videoID

	notes, err := h.notes.Upsert(r.Context(), &req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save notes", r))
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Valid user_id query param is required", r))
		return
	}
	videoID := chi.URLParam(r, "videoID")

	notes, err := h.notes.GetByVideo(r.Context(), userID, videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No notes for this video", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load notes", r))
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Valid user_id query param is required", r))
		return
	}

	summaries, err := h.notes.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list notes", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"notes": summaries})
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Valid user_id query param is required", r))
		return
	}
	videoID := chi.URLParam(r, "videoID")

	if err := h.notes.Delete(r.Context(), userID, videoID); err != nil {
		if repository.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No notes for this video", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete notes", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notes deleted"})
}

// Download renders the notes as a downloadable txt or markdown file with a
// video metadata header and the timestamped notes formatted as mm:ss.
func (h *NotesHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Valid user_id query param is required", r))
		return
	}
	videoID := chi.URLParam(r, "videoID")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "txt"
	}
	if format != "txt" && format != "md" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "format must be txt or md", r))
		return
	}

	notes, err := h.notes.GetByVideo(r.Context(), userID, videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No notes for this video", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load notes", r))
		return
	}

	metadata := h.yt.GetMetadata(r.Context(), videoID)

	var timestamps []models.TimestampedNote
	json.Unmarshal(notes.Timestamps, &timestamps)

	body := renderNotes(format, metadata, notes.Notes, timestamps)

	filename := fmt.Sprintf("notes-%s.%s", videoID, format)
	if format == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write([]byte(body))
}

func renderNotes(format string, metadata *models.VideoMetadata, notes string, timestamps []models.TimestampedNote) string {
	var b strings.Builder

	if format == "md" {
		fmt.Fprintf(&b, "# Notes: %s\n\n", metadata.Title)
		fmt.Fprintf(&b, "- Channel: %s\n", metadata.Author)
		fmt.Fprintf(&b, "- Video: https://www.youtube.com/watch?v=%s\n\n", metadata.VideoID)
		if notes != "" {
			b.WriteString(notes)
			b.WriteString("\n")
		}
		if len(timestamps) > 0 {
			b.WriteString("\n## Timestamped notes\n\n")
			for _, ts := range timestamps {
				fmt.Fprintf(&b, "- **%s** %s\n", formatTimestamp(ts.TimeSeconds), ts.Note)
			}
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Notes: %s\n", metadata.Title)
	fmt.Fprintf(&b, "Channel: %s\n", metadata.Author)
	fmt.Fprintf(&b, "Video: https://www.youtube.com/watch?v=%s\n\n", metadata.VideoID)
	if notes != "" {
		b.WriteString(notes)
		b.WriteString("\n")
	}
	if len(timestamps) > 0 {
		b.WriteString("\nTimestamped notes:\n")
		for _, ts := range timestamps {
			fmt.Fprintf(&b, "[%s] %s\n", formatTimestamp(ts.TimeSeconds), ts.Note)
		}
	}
	return b.String()
}

func formatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
