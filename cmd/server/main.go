package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veyselka/AI-LIB/internal/config"
	"github.com/veyselka/AI-LIB/internal/db"
	"github.com/veyselka/AI-LIB/internal/gemini"
	"github.com/veyselka/AI-LIB/internal/repository"
	"github.com/veyselka/AI-LIB/internal/router"
	"github.com/veyselka/AI-LIB/internal/services"
	"github.com/veyselka/AI-LIB/internal/storage"
	"github.com/veyselka/AI-LIB/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)

	database, err := db.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	if err := db.RunMigrations(cfg.DatabasePath); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	objectStorage, err := storage.NewS3Storage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", "error", err)
	}

	enricher := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, cfg.GeminiTimeout, logger)

	docRepo := repository.NewRepository(database)
	docService := services.NewService(docRepo, objectStorage, enricher, cfg, logger)

	handler := router.NewRouter(docService, cfg, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
		// Enrichment keeps the upload request open for the duration of
		// both model calls, so the write timeout must cover them.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.GeminiTimeout*2 + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
