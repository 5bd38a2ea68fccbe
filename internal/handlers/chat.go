package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"edureach-backend/internal/ai"
	"edureach-backend/internal/models"
	"edureach-backend/internal/repository"
)

const (
	chatChunkSize     = 3000
	chatContextChunks = 3
)

type ChatHandler struct {
	transcripts *repository.TranscriptRepo
	completer   *ai.Completer
}

func NewChatHandler(transcripts *repository.TranscriptRepo, completer *ai.Completer) *ChatHandler {
	return &ChatHandler{transcripts: transcripts, completer: completer}
}

// AskQuestion answers a question about a video using the stored transcript.
// The transcript is chunked and only the chunks most relevant to the
// question are sent to the model.
func (h *ChatHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fields := map[string]string{}
	if req.UserID == uuid.Nil {
		fields["user_id"] = "user_id is required"
	}
	if req.VideoID == "" {
		fields["video_id"] = "video_id is required"
	}
	if strings.TrimSpace(req.Message) == "" {
		fields["message"] = "message is required"
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	stored, err := h.transcripts.GetByVideo(r.Context(), req.UserID, req.VideoID)
	if err != nil {
		if repository.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No transcript stored for this video", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load transcript", r))
		return
	}

	chunks := ai.ChunkText(stored.Transcript, chatChunkSize)
	relevant := ai.SelectRelevantChunks(chunks, req.Message, chatContextChunks)

	reply, err := h.completer.AnswerWithContext(r.Context(), req.Message, relevant, req.History)
	if err != nil {
		if errors.Is(err, ai.ErrQuotaExceeded) {
			writeJSON(w, http.StatusServiceUnavailable, errorResp("AI_QUOTA", "AI quota exceeded, try again later", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("AI_ERROR", "Failed to get AI response", r))
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}
