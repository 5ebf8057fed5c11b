package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/veyselka/AI-LIB/internal/config"
	"github.com/veyselka/AI-LIB/internal/handlers"
	"github.com/veyselka/AI-LIB/internal/middleware"
	"github.com/veyselka/AI-LIB/internal/services"
	"github.com/veyselka/AI-LIB/internal/utils"
)

func NewRouter(docService services.DocumentService, cfg *config.Config, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	docHandler := handlers.NewDocumentHandler(docService, cfg.MaxFileSize, logger)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Everything else requires a verified identity
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.Auth([]byte(cfg.JWTSecret), logger))

	authed.HandleFunc("/auth/register", docHandler.RegisterUser).Methods(http.MethodPost)
	authed.HandleFunc("/documents/upload", docHandler.UploadDocument).Methods(http.MethodPost)
	authed.HandleFunc("/documents", docHandler.ListDocuments).Methods(http.MethodGet)
	authed.HandleFunc("/documents/{id}", docHandler.GetDocument).Methods(http.MethodGet)

	return r
}
