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

type dotationReportRepo struct {
	db *sqlx.DB
}

// NewDotationReportRepo creates a new PostgreSQL-backed DotationReportRepository.
func NewDotationReportRepo(db *sqlx.DB) port.DotationReportRepository {
	return &dotationReportRepo{db: db}
}

func (r *dotationReportRepo) Create(ctx context.Context, report *domain.DotationReport) error {
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	query := `INSERT INTO dotation_reports
		(id, enterprise_id, created_by, title, period, status, total_ca, total_salaires, total_primes, total_employees, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.EnterpriseID, report.CreatedBy, report.Title, report.Period,
		report.Status, report.TotalCA, report.TotalSalaries, report.TotalBonuses,
		report.TotalEmployees, report.Notes, report.CreatedAt, report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("dotationReportRepo.Create: %w", err)
	}
	return nil
}

func (r *dotationReportRepo) GetByID(ctx context.Context, enterpriseID, reportID uuid.UUID) (*domain.DotationReport, error) {
	var report domain.DotationReport
	err := r.db.GetContext(ctx, &report,
		"SELECT * FROM dotation_reports WHERE id = $1 AND enterprise_id = $2", reportID, enterpriseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("dotationReportRepo.GetByID: %w", err)
	}
	return &report, nil
}

func (r *dotationReportRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.DotationReport, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM dotation_reports WHERE enterprise_id = $1", enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("dotationReportRepo.ListByEnterprise count: %w", err)
	}

	var reports []domain.DotationReport
	err = r.db.SelectContext(ctx, &reports,
		`SELECT * FROM dotation_reports WHERE enterprise_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		enterpriseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("dotationReportRepo.ListByEnterprise: %w", err)
	}
	return reports, total, nil
}

func (r *dotationReportRepo) Update(ctx context.Context, report *domain.DotationReport) error {
	report.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE dotation_reports SET title = $1, period = $2, status = $3, total_ca = $4,
		 total_salaires = $5, total_primes = $6, total_employees = $7, notes = $8, updated_at = $9
		 WHERE id = $10 AND enterprise_id = $11`,
		report.Title, report.Period, report.Status, report.TotalCA, report.TotalSalaries,
		report.TotalBonuses, report.TotalEmployees, report.Notes, report.UpdatedAt,
		report.ID, report.EnterpriseID)
	if err != nil {
		return fmt.Errorf("dotationReportRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *dotationReportRepo) Delete(ctx context.Context, enterpriseID, reportID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM dotation_reports WHERE id = $1 AND enterprise_id = $2", reportID, enterpriseID)
	if err != nil {
		return fmt.Errorf("dotationReportRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type dotationRowRepo struct {
	db *sqlx.DB
}

// NewDotationRowRepo creates a new PostgreSQL-backed DotationRowRepository.
func NewDotationRowRepo(db *sqlx.DB) port.DotationRowRepository {
	return &dotationRowRepo{db: db}
}

func (r *dotationRowRepo) BulkInsert(ctx context.Context, rows []domain.DotationRow) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range rows {
		rows[i].CreatedAt = now
	}

	query := `INSERT INTO dotation_rows
		(id, report_id, employee_name, grade, run, facture, vente, ca_total, salaire, prime, created_at)
		VALUES (:id, :report_id, :employee_name, :grade, :run, :facture, :vente, :ca_total, :salaire, :prime, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("dotationRowRepo.BulkInsert: %w", err)
	}
	return nil
}

func (r *dotationRowRepo) ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.DotationRow, error) {
	var rows []domain.DotationRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM dotation_rows WHERE report_id = $1 ORDER BY created_at, employee_name", reportID)
	if err != nil {
		return nil, fmt.Errorf("dotationRowRepo.ListByReport: %w", err)
	}
	return rows, nil
}

func (r *dotationRowRepo) Update(ctx context.Context, row *domain.DotationRow) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE dotation_rows SET employee_name = $1, grade = $2, run = $3, facture = $4,
		 vente = $5, ca_total = $6, salaire = $7, prime = $8
		 WHERE id = $9 AND report_id = $10`,
		row.EmployeeName, row.Grade, row.Run, row.Facture, row.Vente,
		row.CATotal, row.Salaire, row.Prime, row.ID, row.ReportID)
	if err != nil {
		return fmt.Errorf("dotationRowRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *dotationRowRepo) Delete(ctx context.Context, reportID, rowID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM dotation_rows WHERE id = $1 AND report_id = $2", rowID, reportID)
	if err != nil {
		return fmt.Errorf("dotationRowRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
