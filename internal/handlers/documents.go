package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/veyselka/AI-LIB/internal/middleware"
	"github.com/veyselka/AI-LIB/internal/models"
	"github.com/veyselka/AI-LIB/internal/services"
	"github.com/veyselka/AI-LIB/internal/utils"
)

type DocumentHandler struct {
	service     services.DocumentService
	logger      *utils.Logger
	maxFileSize int64
}

func NewDocumentHandler(service services.DocumentService, maxFileSize int64, logger *utils.Logger) *DocumentHandler {
	return &DocumentHandler{
		service:     service,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxFileSize {
		h.respondError(w, utils.NewValidationError("File exceeds the size limit"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			h.respondError(w, utils.NewValidationError("File exceeds the size limit"))
			return
		}
		h.respondError(w, utils.NewValidationError("Invalid form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewValidationError("No file provided"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	fileType, ok := models.FileTypeFromExtension(ext)
	if !ok {
		h.respondError(w, utils.NewValidationError("Unsupported file format. Please upload PDF, DOCX or PPTX"))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, utils.NewInternalError("Failed to read file"))
		return
	}

	if len(data) == 0 {
		h.respondError(w, utils.NewValidationError("Uploaded file is empty"))
		return
	}

	h.logger.Info("upload received",
		"file_name", header.Filename,
		"file_type", fileType,
		"size_bytes", len(data))

	req := &models.UploadRequest{
		File:     data,
		FileName: header.Filename,
		FileType: fileType,
	}

	resp, err := h.service.UploadDocument(r.Context(), middleware.OwnerID(r), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListDocuments(r.Context(), middleware.OwnerID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.respondError(w, utils.NewValidationError("Document ID is required"))
		return
	}

	doc, err := h.service.GetDocument(r.Context(), middleware.OwnerID(r), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, doc)
}

type registerRequest struct {
	FullName string `json:"full_name"`
}

// RegisterUser creates the profile row for a verified identity. The
// identity itself comes from the bearer token, not the body.
func (h *DocumentHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		h.respondError(w, utils.NewAuthenticationError("User identity could not be verified"))
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		h.respondError(w, utils.NewValidationError("Invalid request body"))
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = claims.Name
	}

	user := &models.User{
		ID:       claims.Sub,
		FullName: fullName,
		Email:    claims.Email,
	}

	if err := h.service.RegisterUser(r.Context(), user); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

func (h *DocumentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (h *DocumentHandler) respondError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*utils.AppError)
	if !ok {
		appErr = utils.NewInternalError("Internal server error")
	}

	h.logger.Error("request error", "status", appErr.StatusCode, "code", appErr.Code, "error", appErr.Message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(appErr)
}
