package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port         string
	DatabasePath string
	LogLevel     string

	// S3
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Gemini
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	// Auth
	JWTSecret string
	Env       string

	// Upload limits
	MaxFileSize int64

	// When true the summary and questions calls run concurrently.
	// Default is sequential because both calls target a possibly
	// rate-limited service.
	ParallelEnrichment bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "data/ailib.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		S3Endpoint:         getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:      getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey:  getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "documents"),
		S3UseSSL:           getEnv("S3_USE_SSL", "false") == "true",
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiTimeout:      90 * time.Second,
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret"),
		Env:                getEnv("ENV", "development"),
		MaxFileSize:        20 * 1024 * 1024,
		ParallelEnrichment: getEnv("PARALLEL_ENRICHMENT", "false") == "true",
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if cfg.Env == "production" && os.Getenv("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
