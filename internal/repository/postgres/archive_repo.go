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

type archiveRepo struct {
	db *sqlx.DB
}

// NewArchiveRepo creates a new PostgreSQL-backed ArchiveRepository.
func NewArchiveRepo(db *sqlx.DB) port.ArchiveRepository {
	return &archiveRepo{db: db}
}

func (r *archiveRepo) Create(ctx context.Context, a *domain.Archive) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `INSERT INTO archives
		(id, enterprise_id, created_by, title, description, category, status, montant, date, reference_id, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.EnterpriseID, a.CreatedBy, a.Title, a.Description, a.Category,
		a.Status, a.Amount, a.Date, a.ReferenceID, a.Payload, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("archiveRepo.Create: %w", err)
	}
	return nil
}

func (r *archiveRepo) GetByID(ctx context.Context, enterpriseID, archiveID uuid.UUID) (*domain.Archive, error) {
	var a domain.Archive
	err := r.db.GetContext(ctx, &a,
		"SELECT * FROM archives WHERE id = $1 AND enterprise_id = $2", archiveID, enterpriseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("archiveRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *archiveRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, filter port.ArchiveFilter) ([]domain.Archive, int, error) {
	where := "WHERE enterprise_id = $1"
	args := []any{enterpriseID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM archives "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("archiveRepo.ListByEnterprise count: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf("SELECT * FROM archives %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var archives []domain.Archive
	if err := r.db.SelectContext(ctx, &archives, query, args...); err != nil {
		return nil, 0, fmt.Errorf("archiveRepo.ListByEnterprise: %w", err)
	}
	return archives, total, nil
}

func (r *archiveRepo) Update(ctx context.Context, a *domain.Archive) error {
	a.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE archives SET title = $1, description = $2, montant = $3, date = $4, payload = $5, updated_at = $6
		 WHERE id = $7 AND enterprise_id = $8`,
		a.Title, a.Description, a.Amount, a.Date, a.Payload, a.UpdatedAt, a.ID, a.EnterpriseID)
	if err != nil {
		return fmt.Errorf("archiveRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *archiveRepo) UpdateStatus(ctx context.Context, enterpriseID, archiveID uuid.UUID, status domain.ApprovalStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE archives SET status = $1, updated_at = $2 WHERE id = $3 AND enterprise_id = $4",
		status, time.Now().UTC(), archiveID, enterpriseID)
	if err != nil {
		return fmt.Errorf("archiveRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *archiveRepo) Delete(ctx context.Context, enterpriseID, archiveID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM archives WHERE id = $1 AND enterprise_id = $2", archiveID, enterpriseID)
	if err != nil {
		return fmt.Errorf("archiveRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
