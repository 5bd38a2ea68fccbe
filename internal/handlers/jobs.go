package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"edureach-backend/internal/models"
	"edureach-backend/internal/youtube"
)

const jobTTL = 24 * time.Hour

type JobsHandler struct {
	redis *redis.Client
	yt    *youtube.Service
}

func NewJobsHandler(redisClient *redis.Client, yt *youtube.Service) *JobsHandler {
	return &JobsHandler{redis: redisClient, yt: yt}
}

// ExtractAsync queues a background extraction and returns immediately. Job
// progress streams over the websocket; the final result is also readable
// via GetJob.
func (h *JobsHandler) ExtractAsync(w http.ResponseWriter, r *http.Request) {
	var req models.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if _, ok := h.yt.ResolveVideoID(strings.TrimSpace(req.URL)); !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid YouTube URL", r))
		return
	}

	job := models.ExtractionJob{
		ID:        uuid.New(),
		URL:       req.URL,
		Language:  req.Language,
		Status:    "pending",
		CreatedAt: time.Now(),
	}

	jobBytes, err := json.Marshal(job)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to encode job", r))
		return
	}

	if err := h.redis.Set(r.Context(), "job:"+job.ID.String(), jobBytes, jobTTL).Err(); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create job", r))
		return
	}
	if err := h.redis.LPush(r.Context(), "queue:transcript-extraction", jobBytes).Err(); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to enqueue job", r))
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": job.ID,
		"status": job.Status,
	})
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid job ID", r))
		return
	}

	jobBytes, err := h.redis.Get(r.Context(), "job:"+jobID.String()).Bytes()
	if err != nil {
		if err == redis.Nil {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Job not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load job", r))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(jobBytes)
}
