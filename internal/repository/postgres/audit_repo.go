package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"portos/internal/domain"
	"portos/internal/port"
)

type auditLogRepo struct {
	db *sqlx.DB
}

// NewAuditLogRepo creates a new PostgreSQL-backed AuditLogRepository.
func NewAuditLogRepo(db *sqlx.DB) port.AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	entry.CreatedAt = time.Now().UTC()

	query := `INSERT INTO audit_logs
		(id, user_id, action, table_name, record_id, old_values, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Action, entry.TableName, entry.RecordID,
		entry.OldValues, entry.NewValues, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("auditLogRepo.Create: %w", err)
	}
	return nil
}

func (r *auditLogRepo) ListByRecord(ctx context.Context, tableName, recordID string, offset, limit int) ([]domain.AuditLog, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM audit_logs WHERE table_name = $1 AND record_id = $2", tableName, recordID)
	if err != nil {
		return nil, 0, fmt.Errorf("auditLogRepo.ListByRecord count: %w", err)
	}

	var entries []domain.AuditLog
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM audit_logs WHERE table_name = $1 AND record_id = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		tableName, recordID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("auditLogRepo.ListByRecord: %w", err)
	}
	return entries, total, nil
}
