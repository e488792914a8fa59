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

type taxDeclarationRepo struct {
	db *sqlx.DB
}

// NewTaxDeclarationRepo creates a new PostgreSQL-backed TaxDeclarationRepository.
func NewTaxDeclarationRepo(db *sqlx.DB) port.TaxDeclarationRepository {
	return &taxDeclarationRepo{db: db}
}

func (r *taxDeclarationRepo) Create(ctx context.Context, d *domain.TaxDeclaration) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	query := `INSERT INTO tax_declarations
		(id, enterprise_id, user_id, period, revenus_totaux, revenus_imposables, abattements,
		 patrimoine, impot_revenus, impot_patrimoine, impot_total, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.EnterpriseID, d.UserID, d.Period, d.Revenue, d.TaxableRevenue, d.Deductions,
		d.Wealth, d.IncomeTax, d.WealthTax, d.TotalTax, d.Status, d.Notes, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("taxDeclarationRepo.Create: %w", err)
	}
	return nil
}

func (r *taxDeclarationRepo) GetByID(ctx context.Context, enterpriseID, declarationID uuid.UUID) (*domain.TaxDeclaration, error) {
	var d domain.TaxDeclaration
	err := r.db.GetContext(ctx, &d,
		"SELECT * FROM tax_declarations WHERE id = $1 AND enterprise_id = $2", declarationID, enterpriseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("taxDeclarationRepo.GetByID: %w", err)
	}
	return &d, nil
}

func (r *taxDeclarationRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.TaxDeclaration, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM tax_declarations WHERE enterprise_id = $1", enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("taxDeclarationRepo.ListByEnterprise count: %w", err)
	}

	var declarations []domain.TaxDeclaration
	err = r.db.SelectContext(ctx, &declarations,
		`SELECT * FROM tax_declarations WHERE enterprise_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		enterpriseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("taxDeclarationRepo.ListByEnterprise: %w", err)
	}
	return declarations, total, nil
}

func (r *taxDeclarationRepo) Update(ctx context.Context, d *domain.TaxDeclaration) error {
	d.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE tax_declarations SET period = $1, revenus_totaux = $2, revenus_imposables = $3,
		 abattements = $4, patrimoine = $5, impot_revenus = $6, impot_patrimoine = $7,
		 impot_total = $8, status = $9, notes = $10, updated_at = $11
		 WHERE id = $12 AND enterprise_id = $13`,
		d.Period, d.Revenue, d.TaxableRevenue, d.Deductions, d.Wealth,
		d.IncomeTax, d.WealthTax, d.TotalTax, d.Status, d.Notes, d.UpdatedAt,
		d.ID, d.EnterpriseID)
	if err != nil {
		return fmt.Errorf("taxDeclarationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taxDeclarationRepo) Delete(ctx context.Context, enterpriseID, declarationID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tax_declarations WHERE id = $1 AND enterprise_id = $2", declarationID, enterpriseID)
	if err != nil {
		return fmt.Errorf("taxDeclarationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
