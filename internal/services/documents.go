package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/veyselka/AI-LIB/internal/config"
	"github.com/veyselka/AI-LIB/internal/extractor"
	"github.com/veyselka/AI-LIB/internal/models"
	"github.com/veyselka/AI-LIB/internal/repository"
	"github.com/veyselka/AI-LIB/internal/storage"
	"github.com/veyselka/AI-LIB/internal/utils"
)

// Enricher produces the two AI artifacts attached to a document.
type Enricher interface {
	Summarize(ctx context.Context, text, title string) (string, error)
	GenerateQuestions(ctx context.Context, text, title string) (string, error)
}

type DocumentService interface {
	UploadDocument(ctx context.Context, ownerID string, req *models.UploadRequest) (*models.UploadResponse, error)
	ListDocuments(ctx context.Context, ownerID string) ([]models.Document, error)
	GetDocument(ctx context.Context, ownerID, id string) (*models.Document, error)
	RegisterUser(ctx context.Context, user *models.User) error
}

type documentService struct {
	repo     repository.Repository
	storage  storage.Storage
	enricher Enricher
	cfg      *config.Config
	logger   *utils.Logger
}

// NewService wires the orchestrator with its collaborators. All
// external handles arrive as explicit dependencies so tests can
// substitute fakes.
func NewService(repo repository.Repository, store storage.Storage, enricher Enricher, cfg *config.Config, logger *utils.Logger) DocumentService {
	return &documentService{
		repo:     repo,
		storage:  store,
		enricher: enricher,
		cfg:      cfg,
		logger:   logger,
	}
}

// UploadDocument runs the upload pipeline: extract, persist a
// PROCESSING record, enrich twice, persist the terminal state. The
// record exists durably with its raw text before any enrichment call
// is attempted, so a crash mid-enrichment leaves an inspectable record
// rather than an orphaned upload.
func (s *documentService) UploadDocument(ctx context.Context, ownerID string, req *models.UploadRequest) (*models.UploadResponse, error) {
	if ownerID == "" {
		return nil, utils.NewAuthenticationError("User identity could not be verified")
	}

	switch req.FileType {
	case models.FileTypePDF, models.FileTypeDOCX, models.FileTypePPTX:
	default:
		return nil, utils.NewValidationError("Unsupported file format. Please upload PDF, DOCX or PPTX")
	}

	rawText, err := extractor.Extract(req.File, req.FileType)
	if err != nil {
		s.logger.Warn("extraction failed", "file_name", req.FileName, "file_type", req.FileType, "error", err)
		return nil, utils.NewExtractionError("File content could not be parsed: " + err.Error())
	}

	if strings.TrimSpace(rawText) == "" {
		return nil, utils.NewValidationError("File content could not be read or is empty")
	}

	docID := utils.GenerateID()
	storageKey := utils.GenerateStorageKey("." + strings.ToLower(string(req.FileType)))

	if err := s.storage.Upload(ctx, storageKey, req.File, contentTypeFor(req.FileType)); err != nil {
		s.logger.Error("failed to store binary", "storage_key", storageKey, "error", err)
		return nil, utils.NewStoreError("Failed to store document")
	}

	doc := &models.Document{
		ID:              docID,
		OwnerID:         ownerID,
		FileName:        req.FileName,
		SizeBytes:       int64(len(req.File)),
		FileType:        req.FileType,
		UploadTimestamp: time.Now(),
		StorageKey:      storageKey,
		Status:          models.StatusProcessing,
		RawText:         rawText,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.logger.Error("failed to create document record", "doc_id", docID, "error", err)
		return nil, utils.NewStoreError("Failed to save document metadata")
	}

	s.logger.Info("document record created",
		"doc_id", docID,
		"file_name", req.FileName,
		"file_type", req.FileType,
		"text_length", len(rawText))

	// From here on the record must reach a terminal state even if the
	// caller disconnects, so enrichment and the terminal persist run on
	// a context detached from the request.
	enrichCtx := context.WithoutCancel(ctx)

	summary, questions, err := s.enrich(enrichCtx, rawText, req.FileName)
	if err != nil {
		s.logger.Error("enrichment failed", "doc_id", docID, "error", err)

		if updErr := s.repo.UpdateFailure(enrichCtx, docID, err.Error()); updErr != nil {
			s.logger.Error("failed to persist FAILED state", "doc_id", docID, "error", updErr)
			return nil, utils.NewStoreError("Failed to save document state")
		}

		return nil, utils.NewEnrichmentError("Document was uploaded but AI analysis failed: "+err.Error(), docID)
	}

	if err := s.repo.UpdateResult(enrichCtx, docID, summary, questions); err != nil {
		s.logger.Error("failed to persist COMPLETED state", "doc_id", docID, "error", err)
		return nil, utils.NewStoreError("Failed to save analysis results")
	}

	s.logger.Info("document completed", "doc_id", docID, "summary_length", len(summary))

	return &models.UploadResponse{
		ID:        docID,
		FileName:  req.FileName,
		Summary:   summary,
		Questions: questions,
		Message:   "Document uploaded and AI analysis completed",
	}, nil
}

// enrich runs the summary and questions calls, sequentially by default
// since both target a possibly rate-limited service. Both results are
// collected before the caller persists the terminal state.
func (s *documentService) enrich(ctx context.Context, rawText, title string) (string, string, error) {
	if s.cfg.ParallelEnrichment {
		var summary, questions string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			summary, err = s.enricher.Summarize(gctx, rawText, title)
			return err
		})
		g.Go(func() error {
			var err error
			questions, err = s.enricher.GenerateQuestions(gctx, rawText, title)
			return err
		})
		if err := g.Wait(); err != nil {
			return "", "", err
		}
		return summary, questions, nil
	}

	summary, err := s.enricher.Summarize(ctx, rawText, title)
	if err != nil {
		return "", "", err
	}

	questions, err := s.enricher.GenerateQuestions(ctx, rawText, title)
	if err != nil {
		return "", "", err
	}

	return summary, questions, nil
}

func (s *documentService) ListDocuments(ctx context.Context, ownerID string) ([]models.Document, error) {
	if ownerID == "" {
		return nil, utils.NewAuthenticationError("User identity could not be verified")
	}

	docs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list documents", "owner_id", ownerID, "error", err)
		return nil, utils.NewStoreError("Failed to load documents")
	}

	return docs, nil
}

func (s *documentService) GetDocument(ctx context.Context, ownerID, id string) (*models.Document, error) {
	if ownerID == "" {
		return nil, utils.NewAuthenticationError("User identity could not be verified")
	}

	doc, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		s.logger.Error("failed to get document", "doc_id", id, "error", err)
		return nil, utils.NewStoreError("Failed to load document")
	}
	if doc == nil {
		return nil, utils.NewNotFoundError("Document not found")
	}

	return doc, nil
}

func (s *documentService) RegisterUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return utils.NewAuthenticationError("User identity could not be verified")
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user profile", "user_id", user.ID, "error", err)
		return utils.NewStoreError("Failed to save user profile")
	}

	return nil
}

func contentTypeFor(fileType models.FileType) string {
	switch fileType {
	case models.FileTypePDF:
		return "application/pdf"
	case models.FileTypeDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case models.FileTypePPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	}
	return "application/octet-stream"
}
