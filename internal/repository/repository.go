package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/veyselka/AI-LIB/internal/models"
)

type Repository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, ownerID, id string) (*models.Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error)
	UpdateResult(ctx context.Context, id, summary, questions string) error
	UpdateFailure(ctx context.Context, id, errMsg string) error
	CreateUser(ctx context.Context, user *models.User) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (id, owner_id, file_name, size_bytes, file_type, upload_timestamp, storage_key, status, raw_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.OwnerID,
		doc.FileName,
		doc.SizeBytes,
		doc.FileType,
		doc.UploadTimestamp,
		doc.StorageKey,
		doc.Status,
		doc.RawText,
	)

	return err
}

func (r *repository) GetByID(ctx context.Context, ownerID, id string) (*models.Document, error) {
	var doc models.Document

	query := `
		SELECT id, owner_id, file_name, size_bytes, file_type, upload_timestamp,
		       storage_key, status, raw_text, summary, questions, error
		FROM documents
		WHERE id = $1 AND owner_id = $2
	`

	err := r.db.GetContext(ctx, &doc, query, id, ownerID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	docs := []models.Document{}

	query := `
		SELECT id, owner_id, file_name, size_bytes, file_type, upload_timestamp,
		       storage_key, status, raw_text, summary, questions, error
		FROM documents
		WHERE owner_id = $1
		ORDER BY upload_timestamp DESC
	`

	if err := r.db.SelectContext(ctx, &docs, query, ownerID); err != nil {
		return nil, err
	}

	return docs, nil
}

// UpdateResult moves a PROCESSING record to COMPLETED. The status guard
// keeps terminal states immutable.
func (r *repository) UpdateResult(ctx context.Context, id, summary, questions string) error {
	query := `
		UPDATE documents
		SET summary = $2, questions = $3, status = $4
		WHERE id = $1 AND status = $5
	`

	res, err := r.db.ExecContext(ctx, query, id, summary, questions, models.StatusCompleted, models.StatusProcessing)
	if err != nil {
		return err
	}

	return requireRow(res, id)
}

// UpdateFailure moves a PROCESSING record to FAILED with the diagnostic.
func (r *repository) UpdateFailure(ctx context.Context, id, errMsg string) error {
	query := `
		UPDATE documents
		SET error = $2, status = $3
		WHERE id = $1 AND status = $4
	`

	res, err := r.db.ExecContext(ctx, query, id, errMsg, models.StatusFailed, models.StatusProcessing)
	if err != nil {
		return err
	}

	return requireRow(res, id)
}

func (r *repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, full_name, email, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET full_name = excluded.full_name, email = excluded.email
	`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query, user.ID, user.FullName, user.Email, user.CreatedAt)
	return err
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("document %s not found or already terminal", id)
	}
	return nil
}
