package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"edureach-backend/internal/cache"
	"edureach-backend/internal/models"
	"edureach-backend/internal/repository"
	"edureach-backend/internal/services"
	"edureach-backend/internal/youtube"
)

type YouTubeHandler struct {
	yt            *youtube.Service
	cache         cache.Store
	transcripts   *repository.TranscriptRepo
	importer      *services.TranscriptImportService
	storagePath   string
	transcriptTTL time.Duration
	videoInfoTTL  time.Duration
}

func NewYouTubeHandler(
	yt *youtube.Service,
	cacheStore cache.Store,
	transcripts *repository.TranscriptRepo,
	importer *services.TranscriptImportService,
	storagePath string,
	transcriptTTL, videoInfoTTL time.Duration,
) *YouTubeHandler {
	return &YouTubeHandler{
		yt:            yt,
		cache:         cacheStore,
		transcripts:   transcripts,
		importer:      importer,
		storagePath:   storagePath,
		transcriptTTL: transcriptTTL,
		videoInfoTTL:  videoInfoTTL,
	}
}

// extractFailure adds the manual-paste hint to the failure envelope so the
// frontend can offer the paste dialog.
type extractFailure struct {
	models.AggregatedVideoData
	CanPasteManual bool `json:"can_paste_manual"`
}

func (h *YouTubeHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req models.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"url": "url is required"}, r))
		return
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	key := cache.TranscriptKey(req.URL, language)
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		var data models.AggregatedVideoData
		if json.Unmarshal(cached, &data) == nil && data.Success {
			data.Cached = true
			h.persistTranscript(r, req.UserID, &data)
			writeJSON(w, http.StatusOK, data)
			return
		}
	}

	data := h.yt.ExtractComplete(r.Context(), req.URL, language)
	if !data.Success {
		writeJSON(w, http.StatusUnprocessableEntity, extractFailure{
			AggregatedVideoData: data,
			CanPasteManual:      true,
		})
		return
	}

	if b, err := json.Marshal(data); err == nil {
		h.cache.Set(r.Context(), key, b, h.transcriptTTL)
	}
	h.persistTranscript(r, req.UserID, &data)
	writeJSON(w, http.StatusOK, data)
}

// persistTranscript stores a successful extraction for the requesting user.
// Best-effort: an anonymous request or a storage error never fails the
// extraction response.
func (h *YouTubeHandler) persistTranscript(r *http.Request, userIDStr string, data *models.AggregatedVideoData) {
	if userIDStr == "" || data.Transcript == nil || !data.Transcript.Success {
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return
	}
	h.transcripts.Upsert(r.Context(), &models.StoredTranscript{
		UserID:     userID,
		VideoID:    data.VideoID,
		Transcript: data.Transcript.Transcript,
		Language:   data.Transcript.Language,
		Source:     data.Transcript.Method,
	})
}

func (h *YouTubeHandler) VideoInfo(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	videoID, ok := h.yt.ResolveVideoID(url)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid YouTube URL", r))
		return
	}

	key := cache.VideoInfoKey(videoID)
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		var info models.VideoInfo
		if json.Unmarshal(cached, &info) == nil {
			info.Cached = true
			writeJSON(w, http.StatusOK, info)
			return
		}
	}

	tracks := h.yt.ListCaptionTracks(r.Context(), videoID)
	info := models.VideoInfo{
		VideoID:            videoID,
		Metadata:           h.yt.GetMetadata(r.Context(), videoID),
		AvailableLanguages: tracks,
		HasTranscript:      len(tracks) > 0,
	}

	b, err := json.Marshal(info)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to encode video info", r))
		return
	}
	h.cache.Set(r.Context(), key, b, h.videoInfoTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

// ManualTranscript accepts a user-supplied transcript for a video the
// automatic strategies could not crack: JSON with pasted text, or a
// multipart upload of a .txt/.srt/.vtt/.pdf/.docx file.
func (h *YouTubeHandler) ManualTranscript(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")

	var userIDStr, videoRef, language, rawText string
	var cleaned string

	if strings.HasPrefix(contentType, "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, 20*1024*1024)
		if err := r.ParseMultipartForm(20 * 1024 * 1024); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart form", r))
			return
		}
		userIDStr = r.FormValue("user_id")
		videoRef = r.FormValue("video_id")
		language = r.FormValue("language")

		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
			return
		}
		defer file.Close()

		text, err := h.importUpload(file, header.Filename)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResp("IMPORT_FAILED", err.Error(), r))
			return
		}
		cleaned = text
	} else {
		var req struct {
			UserID     string `json:"user_id"`
			VideoID    string `json:"video_id"`
			Language   string `json:"language"`
			Transcript string `json:"transcript"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
			return
		}
		userIDStr = req.UserID
		videoRef = req.VideoID
		language = req.Language
		rawText = req.Transcript

		text, err := h.importer.ImportText(rawText)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResp("IMPORT_FAILED", err.Error(), r))
			return
		}
		cleaned = text
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"user_id": "valid user_id is required"}, r))
		return
	}
	videoID, ok := h.yt.ResolveVideoID(videoRef)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"video_id": "valid YouTube video ID or URL is required"}, r))
		return
	}
	if language == "" {
		language = "en"
	}

	stored := &models.StoredTranscript{
		UserID:     userID,
		VideoID:    videoID,
		Transcript: cleaned,
		Language:   language,
		Source:     "manual",
	}
	if err := h.transcripts.Upsert(r.Context(), stored); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store transcript", r))
		return
	}

	writeJSON(w, http.StatusOK, models.TranscriptResult{
		Success:     true,
		VideoID:     videoID,
		Language:    language,
		Transcript:  cleaned,
		Segments:    []models.TranscriptSegment{},
		WordCount:   len(strings.Fields(cleaned)),
		Method:      "manual",
		Attempts:    []models.Attempt{},
		ExtractedAt: stored.UpdatedAt,
	})
}

// importUpload spools the upload to the storage path so the file-based
// extractors (which need a seekable file) can run, then removes it.
func (h *YouTubeHandler) importUpload(file io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(h.storagePath, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	tmpPath := filepath.Join(h.storagePath, uuid.New().String()+ext)
	dst, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		return "", err
	}
	dst.Close()

	return h.importer.ImportFromFile(tmpPath)
}
