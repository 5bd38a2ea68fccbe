package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Gemini AI
	GeminiAPIKey         string
	GeminiConcurrentReqs int

	// YouTube extraction
	HTTPTimeoutSeconds       int
	HTTPMaxRetries           int
	EnableDownloaderFallback bool

	// Cache TTLs
	TranscriptCacheTTLSeconds int
	VideoInfoCacheTTLSeconds  int

	// Storage (manual transcript uploads)
	StoragePath string

	// Workers
	WorkerCount int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                      getEnvOrDefault("PORT", "8080"),
		Env:                       getEnvOrDefault("ENV", "development"),
		DatabaseURL:               mustGetEnv("DATABASE_URL"),
		RedisURL:                  mustGetEnv("REDIS_URL"),
		GeminiAPIKey:              mustGetEnv("GEMINI_API_KEY"),
		GeminiConcurrentReqs:      getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		HTTPTimeoutSeconds:        getEnvAsIntOrDefault("HTTP_TIMEOUT_SECONDS", 15),
		HTTPMaxRetries:            getEnvAsIntOrDefault("HTTP_MAX_RETRIES", 3),
		EnableDownloaderFallback:  getEnvAsBoolOrDefault("ENABLE_DOWNLOADER_FALLBACK", false),
		TranscriptCacheTTLSeconds: getEnvAsIntOrDefault("TRANSCRIPT_CACHE_TTL_SECONDS", 3600),
		VideoInfoCacheTTLSeconds:  getEnvAsIntOrDefault("VIDEO_INFO_CACHE_TTL_SECONDS", 21600),
		StoragePath:               getEnvOrDefault("STORAGE_PATH", "./uploads"),
		WorkerCount:               getEnvAsIntOrDefault("WORKER_COUNT", 5),
		FrontendURL:               getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
