package utils

import "net/http"

// Error codes grouping failures by cause so operators can tell
// infrastructure problems from logic problems in logs.
const (
	CodeAuthentication = "authentication_failure"
	CodeValidation     = "validation_failure"
	CodeExtraction     = "extraction_failure"
	CodeStore          = "store_failure"
	CodeEnrichment     = "enrichment_failure"
	CodeNotFound       = "not_found"
	CodeInternal       = "internal_error"
)

// AppError is the structured error returned by services to handlers.
// DocumentID is set on enrichment failures so the client still learns
// the id of the record that was created before enrichment failed.
type AppError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	DocumentID string `json:"document_id,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAuthenticationError(message string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Code: CodeAuthentication, Message: message}
}

func NewValidationError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: CodeValidation, Message: message}
}

func NewExtractionError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: CodeExtraction, Message: message}
}

func NewStoreError(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: CodeStore, Message: message}
}

func NewEnrichmentError(message, documentID string) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeEnrichment,
		Message:    message,
		DocumentID: documentID,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: CodeInternal, Message: message}
}
