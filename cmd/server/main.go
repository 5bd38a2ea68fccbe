package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edureach-backend/internal/ai"
	"edureach-backend/internal/cache"
	"edureach-backend/internal/config"
	"edureach-backend/internal/database"
	"edureach-backend/internal/handlers"
	"edureach-backend/internal/repository"
	"edureach-backend/internal/router"
	"edureach-backend/internal/services"
	"edureach-backend/internal/websocket"
	"edureach-backend/internal/worker"
	"edureach-backend/internal/youtube"
)

func main() {
	log.Println("🚀 Starting EduReach Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	notesRepo := repository.NewNotesRepo(pool)
	transcriptRepo := repository.NewTranscriptRepo(pool)

	// ──── Step 5: Initialize Gemini Client ────
	completer, err := ai.NewCompleter(cfg.GeminiAPIKey, cfg.GeminiConcurrentReqs)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer completer.Close()
	log.Println("✓ Gemini Flash client initialized")

	// ──── Initialize Services ────
	cacheStore := cache.NewRedisStore(redisClients.Queue)
	transcriptTTL := time.Duration(cfg.TranscriptCacheTTLSeconds) * time.Second
	videoInfoTTL := time.Duration(cfg.VideoInfoCacheTTLSeconds) * time.Second

	youtubeService := youtube.NewService(youtube.Options{
		HTTPTimeout:      time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
		MaxRetries:       cfg.HTTPMaxRetries,
		EnableDownloader: cfg.EnableDownloaderFallback,
	})
	importService := services.NewTranscriptImportService()

	// ──── Initialize Handlers ────
	youtubeHandler := handlers.NewYouTubeHandler(
		youtubeService,
		cacheStore,
		transcriptRepo,
		importService,
		cfg.StoragePath,
		transcriptTTL,
		videoInfoTTL,
	)
	notesHandler := handlers.NewNotesHandler(notesRepo, youtubeService)
	chatHandler := handlers.NewChatHandler(transcriptRepo, completer)
	jobsHandler := handlers.NewJobsHandler(redisClients.Queue, youtubeService)

	// ──── Step 6: Start Job Worker Pool ────
	workerPool := worker.NewPool(redisClients.Queue, youtubeService, cacheStore, transcriptTTL, cfg.WorkerCount)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.WorkerCount)

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	r := router.New(
		youtubeHandler,
		notesHandler,
		chatHandler,
		jobsHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ EduReach Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
