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

type launderingSettingRepo struct {
	db *sqlx.DB
}

// NewLaunderingSettingRepo creates a new PostgreSQL-backed LaunderingSettingRepository.
func NewLaunderingSettingRepo(db *sqlx.DB) port.LaunderingSettingRepository {
	return &launderingSettingRepo{db: db}
}

// GetGlobal returns the global scope row, identified by a nil enterprise id.
func (r *launderingSettingRepo) GetGlobal(ctx context.Context) (*domain.LaunderingSetting, error) {
	var s domain.LaunderingSetting
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM laundering_settings WHERE enterprise_id = $1", uuid.Nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("launderingSettingRepo.GetGlobal: %w", err)
	}
	return &s, nil
}

func (r *launderingSettingRepo) GetByEnterprise(ctx context.Context, enterpriseID uuid.UUID) (*domain.LaunderingSetting, error) {
	var s domain.LaunderingSetting
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM laundering_settings WHERE enterprise_id = $1", enterpriseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("launderingSettingRepo.GetByEnterprise: %w", err)
	}
	return &s, nil
}

func (r *launderingSettingRepo) Upsert(ctx context.Context, s *domain.LaunderingSetting) error {
	s.UpdatedAt = time.Now().UTC()
	query := `INSERT INTO laundering_settings
		(id, enterprise_id, is_enabled, use_global, perc_entreprise, perc_groupe, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (enterprise_id) DO UPDATE SET
			is_enabled = EXCLUDED.is_enabled,
			use_global = EXCLUDED.use_global,
			perc_entreprise = EXCLUDED.perc_entreprise,
			perc_groupe = EXCLUDED.perc_groupe,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.EnterpriseID, s.IsEnabled, s.UseGlobal, s.PercEnterprise, s.PercGroup, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("launderingSettingRepo.Upsert: %w", err)
	}
	return nil
}

type launderingRowRepo struct {
	db *sqlx.DB
}

// NewLaunderingRowRepo creates a new PostgreSQL-backed LaunderingRowRepository.
func NewLaunderingRowRepo(db *sqlx.DB) port.LaunderingRowRepository {
	return &launderingRowRepo{db: db}
}

func (r *launderingRowRepo) Create(ctx context.Context, row *domain.LaunderingRow) error {
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	query := `INSERT INTO laundering_rows
		(id, enterprise_id, created_by, status, date_recu, date_rendu, duree_jours,
		 groupe, employe, donneur_id, recepteur_id, somme, entreprise_perc, groupe_perc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.EnterpriseID, row.CreatedBy, row.Status, row.DateReceived, row.DateReturned,
		row.DurationDays, row.Group, row.Employee, row.GiverID, row.ReceiverID, row.Amount,
		row.PercEnterprise, row.PercGroup, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("launderingRowRepo.Create: %w", err)
	}
	return nil
}

func (r *launderingRowRepo) GetByID(ctx context.Context, enterpriseID, rowID uuid.UUID) (*domain.LaunderingRow, error) {
	var row domain.LaunderingRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM laundering_rows WHERE id = $1 AND enterprise_id = $2", rowID, enterpriseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("launderingRowRepo.GetByID: %w", err)
	}
	return &row, nil
}

func (r *launderingRowRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.LaunderingRow, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM laundering_rows WHERE enterprise_id = $1", enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("launderingRowRepo.ListByEnterprise count: %w", err)
	}

	var rows []domain.LaunderingRow
	err = r.db.SelectContext(ctx, &rows,
		`SELECT * FROM laundering_rows WHERE enterprise_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		enterpriseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("launderingRowRepo.ListByEnterprise: %w", err)
	}
	return rows, total, nil
}

func (r *launderingRowRepo) Update(ctx context.Context, row *domain.LaunderingRow) error {
	row.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE laundering_rows SET status = $1, date_recu = $2, date_rendu = $3, duree_jours = $4,
		 groupe = $5, employe = $6, donneur_id = $7, recepteur_id = $8, somme = $9,
		 entreprise_perc = $10, groupe_perc = $11, updated_at = $12
		 WHERE id = $13 AND enterprise_id = $14`,
		row.Status, row.DateReceived, row.DateReturned, row.DurationDays,
		row.Group, row.Employee, row.GiverID, row.ReceiverID, row.Amount,
		row.PercEnterprise, row.PercGroup, row.UpdatedAt, row.ID, row.EnterpriseID)
	if err != nil {
		return fmt.Errorf("launderingRowRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *launderingRowRepo) Delete(ctx context.Context, enterpriseID, rowID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM laundering_rows WHERE id = $1 AND enterprise_id = $2", rowID, enterpriseID)
	if err != nil {
		return fmt.Errorf("launderingRowRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
