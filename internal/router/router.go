package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"edureach-backend/internal/handlers"
	"edureach-backend/internal/middleware"
	"edureach-backend/internal/websocket"
)

func New(
	youtubeHandler *handlers.YouTubeHandler,
	notesHandler *handlers.NotesHandler,
	chatHandler *handlers.ChatHandler,
	jobsHandler *handlers.JobsHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Extraction rate limiter (30 req/min per IP)
	extractLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── YouTube Routes ────
		r.Route("/youtube", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(extractLimiter.Middleware)
				r.Post("/extract", youtubeHandler.Extract)
				r.Post("/extract-async", jobsHandler.ExtractAsync)
			})
			r.Get("/video-info", youtubeHandler.VideoInfo)
			r.Post("/manual-transcript", youtubeHandler.ManualTranscript)
			r.Get("/jobs/{id}", jobsHandler.GetJob)

			// ──── Notes Routes ────
			r.Route("/notes", func(r chi.Router) {
				r.Post("/", notesHandler.Save)
				r.Get("/", notesHandler.List)
				r.Get("/{videoID}", notesHandler.Get)
				r.Delete("/{videoID}", notesHandler.Delete)
				r.Get("/{videoID}/download", notesHandler.Download)
			})
		})

		// ──── Chat Routes ────
		r.Post("/chat", chatHandler.AskQuestion)

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
