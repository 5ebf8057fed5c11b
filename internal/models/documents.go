package models

import (
	"time"
)

// FileType is the declared format of an uploaded document.
type FileType string

const (
	FileTypePDF  FileType = "PDF"
	FileTypeDOCX FileType = "DOCX"
	FileTypePPTX FileType = "PPTX"
)

// FileTypeFromExtension maps a file extension (with leading dot,
// case-insensitive) to a FileType. The second return value is false
// for unsupported extensions.
func FileTypeFromExtension(ext string) (FileType, bool) {
	switch ext {
	case ".pdf":
		return FileTypePDF, true
	case ".docx":
		return FileTypeDOCX, true
	case ".pptx":
		return FileTypePPTX, true
	}
	return "", false
}

// Document status values. A record is created as PROCESSING and moves
// exactly once to COMPLETED or FAILED; both are terminal.
const (
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

type Document struct {
	ID              string    `json:"id" db:"id"`
	OwnerID         string    `json:"-" db:"owner_id"`
	FileName        string    `json:"file_name" db:"file_name"`
	SizeBytes       int64     `json:"size_bytes" db:"size_bytes"`
	FileType        FileType  `json:"file_type" db:"file_type"`
	UploadTimestamp time.Time `json:"upload_timestamp" db:"upload_timestamp"`
	StorageKey      string    `json:"storage_key" db:"storage_key"`
	Status          string    `json:"status" db:"status"`
	RawText         string    `json:"raw_text,omitempty" db:"raw_text"`
	Summary         *string   `json:"summary,omitempty" db:"summary"`
	Questions       *string   `json:"questions,omitempty" db:"questions"`
	Error           *string   `json:"error,omitempty" db:"error"`
}

type User struct {
	ID        string    `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type UploadRequest struct {
	File     []byte
	FileName string
	FileType FileType
}

type UploadResponse struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	Summary   string `json:"summary"`
	Questions string `json:"questions"`
	Message   string `json:"message"`
}

// QuestionsPayload is the structured shape of the generated quiz:
// exactly ten questions, five classic and five multiple-choice.
type QuestionsPayload struct {
	Questions []Question `json:"questions"`
}

type Question struct {
	Type          string   `json:"type"` // "classic" or "multiple_choice"
	Question      string   `json:"question"`
	Answer        string   `json:"answer,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}
