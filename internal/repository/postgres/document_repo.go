package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portos/internal/domain"
	"portos/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, d *domain.Document) error {
	d.CreatedAt = time.Now().UTC()

	query := `INSERT INTO documents
		(id, enterprise_id, uploaded_by, file_name, original_name, storage_key, size_bytes, mime_type, document_type, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.EnterpriseID, d.UploadedBy, d.FileName, d.OriginalName, d.StorageKey,
		d.SizeBytes, d.MimeType, d.Type, d.IsActive, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, enterpriseID, documentID uuid.UUID) (*domain.Document, error) {
	var d domain.Document
	err := r.db.GetContext(ctx, &d,
		"SELECT * FROM documents WHERE id = $1 AND enterprise_id = $2 AND is_active = TRUE",
		documentID, enterpriseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &d, nil
}

func (r *documentRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE enterprise_id = $1 AND is_active = TRUE", enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByEnterprise count: %w", err)
	}

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE enterprise_id = $1 AND is_active = TRUE
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		enterpriseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByEnterprise: %w", err)
	}
	return docs, total, nil
}

// Delete soft-deletes the document row; the storage object is removed by the
// service.
func (r *documentRepo) Delete(ctx context.Context, enterpriseID, documentID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE documents SET is_active = FALSE WHERE id = $1 AND enterprise_id = $2",
		documentID, enterpriseID)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
