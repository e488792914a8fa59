package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"portos/internal/domain"
	"portos/internal/ingest"
	"portos/internal/port"
	"portos/internal/xlsx"
)

// Canonical column names of a pasted dotation block, in positional order.
var dotationFields = []ingest.Field{
	{Name: "nom", Aliases: []string{"name", "employé", "employe", "employee"}},
	{Name: "run", Aliases: []string{"runs"}},
	{Name: "facture", Aliases: []string{"factures", "invoice"}},
	{Name: "vente", Aliases: []string{"ventes", "sale"}},
}

// CreateReportInput is the DTO for creating a dotation report.
type CreateReportInput struct {
	EnterpriseID uuid.UUID
	CreatedBy    uuid.UUID
	Role         domain.Role
	Title        string
	Period       string
	Notes        string
	// PastedText optionally seeds the report rows from a pasted block.
	PastedText string
}

// ImportRowsInput is the DTO for bulk importing rows into a report.
type ImportRowsInput struct {
	EnterpriseID uuid.UUID
	ReportID     uuid.UUID
	Role         domain.Role
	PastedText   string
}

// ImportRowsResult summarizes a bulk import.
type ImportRowsResult struct {
	Report  *domain.DotationReport `json:"report"`
	Rows    []domain.DotationRow   `json:"rows"`
	Valid   int                    `json:"valid"`
	Skipped int                    `json:"skipped"`
}

// UpdateRowInput is the DTO for editing a single report row.
type UpdateRowInput struct {
	EnterpriseID uuid.UUID
	ReportID     uuid.UUID
	RowID        uuid.UUID
	Role         domain.Role
	EmployeeName string
	Grade        string
	Run          float64
	Facture      float64
	Vente        float64
}

// DotationService defines the payroll report contract.
type DotationService interface {
	CreateReport(ctx context.Context, input *CreateReportInput) (*ImportRowsResult, error)
	GetReport(ctx context.Context, enterpriseID, reportID uuid.UUID, role domain.Role) (*domain.DotationReport, []domain.DotationRow, error)
	ListReports(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, offset, limit int) ([]domain.DotationReport, int, error)
	ImportRows(ctx context.Context, input *ImportRowsInput) (*ImportRowsResult, error)
	// ImportWorkbook bulk imports rows from an uploaded xlsx workbook.
	ImportWorkbook(ctx context.Context, enterpriseID, reportID uuid.UUID, role domain.Role, r io.Reader) (*ImportRowsResult, error)
	UpdateRow(ctx context.Context, input *UpdateRowInput) (*domain.DotationRow, error)
	DeleteRow(ctx context.Context, enterpriseID, reportID, rowID uuid.UUID, role domain.Role) error
	DeleteReport(ctx context.Context, enterpriseID, reportID uuid.UUID, role domain.Role) error
	// Preview parses a pasted block and computes payouts without persisting.
	Preview(ctx context.Context, role domain.Role, pastedText string) (*ImportRowsResult, error)
}

type dotationService struct {
	reportRepo  port.DotationReportRepository
	rowRepo     port.DotationRowRepository
	bracketRepo port.BracketRepository
}

// NewDotationService creates a new DotationService implementation.
func NewDotationService(
	reportRepo port.DotationReportRepository,
	rowRepo port.DotationRowRepository,
	bracketRepo port.BracketRepository,
) DotationService {
	return &dotationService{
		reportRepo:  reportRepo,
		rowRepo:     rowRepo,
		bracketRepo: bracketRepo,
	}
}

func (s *dotationService) table(ctx context.Context) (domain.BracketTable, error) {
	tiers, err := s.bracketRepo.ListByKind(ctx, domain.BracketDotation)
	if err != nil {
		return domain.BracketTable{}, fmt.Errorf("dotation.table: %w", err)
	}
	return domain.NewBracketTable(domain.BracketDotation, tiers)
}

// rowClass maps a row's grade label to its clamp class. Owner gradations are
// matched textually so pasted blocks keep working without a role lookup.
func rowClass(grade string) domain.RoleClass {
	if strings.Contains(strings.ToLower(grade), "patron") {
		return domain.ClassOwner
	}
	return domain.ClassEmployee
}

// parseRows turns a pasted block into computed dotation rows.
func parseRows(text string, reportID uuid.UUID, table domain.BracketTable) ([]domain.DotationRow, *ingest.Result, error) {
	res, err := ingest.Parse(text, ingest.Options{Fields: dotationFields})
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	rows := make([]domain.DotationRow, 0, len(res.Records))
	for _, rec := range res.Records {
		row := domain.DotationRow{
			ID:           uuid.New(),
			ReportID:     reportID,
			EmployeeName: rec.Text("nom"),
			Run:          rec.Number("run"),
			Facture:      rec.Number("facture"),
			Vente:        rec.Number("vente"),
			CreatedAt:    now,
		}
		row.Recompute(table, rowClass(row.Grade))
		rows = append(rows, row)
	}
	return rows, res, nil
}

// recomputeTotals refreshes the report aggregates from its rows.
func recomputeTotals(report *domain.DotationReport, rows []domain.DotationRow) {
	report.TotalCA = 0
	report.TotalSalaries = 0
	report.TotalBonuses = 0
	for _, r := range rows {
		report.TotalCA += r.CATotal
		report.TotalSalaries += r.Salaire
		report.TotalBonuses += r.Prime
	}
	report.TotalEmployees = len(rows)
	report.UpdatedAt = time.Now().UTC()
}

func (s *dotationService) CreateReport(ctx context.Context, input *CreateReportInput) (*ImportRowsResult, error) {
	if !domain.CanAccessDotation(input.Role) {
		return nil, domain.ErrInsufficientRole
	}
	if input.Title == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	report := &domain.DotationReport{
		ID:           uuid.New(),
		EnterpriseID: input.EnterpriseID,
		CreatedBy:    input.CreatedBy,
		Title:        input.Title,
		Period:       input.Period,
		Status:       domain.StatusPending,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result := &ImportRowsResult{Report: report}
	if strings.TrimSpace(input.PastedText) != "" {
		table, err := s.table(ctx)
		if err != nil {
			return nil, err
		}
		rows, res, err := parseRows(input.PastedText, report.ID, table)
		if err != nil {
			return nil, err
		}
		recomputeTotals(report, rows)
		result.Rows = rows
		result.Valid = res.Valid
		result.Skipped = res.Skipped
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("dotation.CreateReport: %w", err)
	}
	if len(result.Rows) > 0 {
		if err := s.rowRepo.BulkInsert(ctx, result.Rows); err != nil {
			return nil, fmt.Errorf("dotation.CreateReport: %w", err)
		}
	}
	return result, nil
}

func (s *dotationService) GetReport(ctx context.Context, enterpriseID, reportID uuid.UUID, role domain.Role) (*domain.DotationReport, []domain.DotationRow, error) {
	if !domain.CanAccessDotation(role) {
		return nil, nil, domain.ErrInsufficientRole
	}
	report, err := s.reportRepo.GetByID(ctx, enterpriseID, reportID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.rowRepo.ListByReport(ctx, report.ID)
	if err != nil {
		return nil, nil, err
	}
	return report, rows, nil
}

func (s *dotationService) ListReports(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, offset, limit int) ([]domain.DotationReport, int, error) {
	if !domain.CanAccessDotation(role) {
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.reportRepo.ListByEnterprise(ctx, enterpriseID, offset, limit)
}

func (s *dotationService) ImportRows(ctx context.Context, input *ImportRowsInput) (*ImportRowsResult, error) {
	if !domain.CanAccessDotation(input.Role) {
		return nil, domain.ErrInsufficientRole
	}
	report, err := s.reportRepo.GetByID(ctx, input.EnterpriseID, input.ReportID)
	if err != nil {
		return nil, err
	}

	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	rows, res, err := parseRows(input.PastedText, report.ID, table)
	if err != nil {
		return nil, err
	}
	if err := s.rowRepo.BulkInsert(ctx, rows); err != nil {
		return nil, fmt.Errorf("dotation.ImportRows: %w", err)
	}

	all, err := s.rowRepo.ListByReport(ctx, report.ID)
	if err != nil {
		return nil, err
	}
	recomputeTotals(report, all)
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("dotation.ImportRows: %w", err)
	}

	return &ImportRowsResult{
		Report:  report,
		Rows:    rows,
		Valid:   res.Valid,
		Skipped: res.Skipped,
	}, nil
}

func (s *dotationService) ImportWorkbook(ctx context.Context, enterpriseID, reportID uuid.UUID, role domain.Role, r io.Reader) (*ImportRowsResult, error) {
	if !domain.CanAccessDotation(role) {
		return nil, domain.ErrInsufficientRole
	}
	report, err := s.reportRepo.GetByID(ctx, enterpriseID, reportID)
	if err != nil {
		return nil, err
	}

	raw, err := xlsx.ReadDotationRows(r)
	if err != nil {
		return nil, err
	}
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rows := make([]domain.DotationRow, 0, len(raw))
	for _, row := range raw {
		// Trailing aggregate lines of an exported workbook are not rows.
		if strings.EqualFold(strings.TrimSpace(row.EmployeeName), "total") {
			continue
		}
		row.ID = uuid.New()
		row.ReportID = report.ID
		row.CreatedAt = now
		row.Recompute(table, rowClass(row.Grade))
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, domain.ErrFormat
	}
	if err := s.rowRepo.BulkInsert(ctx, rows); err != nil {
		return nil, fmt.Errorf("dotation.ImportWorkbook: %w", err)
	}

	all, err := s.rowRepo.ListByReport(ctx, report.ID)
	if err != nil {
		return nil, err
	}
	recomputeTotals(report, all)
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("dotation.ImportWorkbook: %w", err)
	}

	return &ImportRowsResult{
		Report:  report,
		Rows:    rows,
		Valid:   len(rows),
		Skipped: len(raw) - len(rows),
	}, nil
}

func (s *dotationService) UpdateRow(ctx context.Context, input *UpdateRowInput) (*domain.DotationRow, error) {
	if !domain.CanAccessDotation(input.Role) {
		return nil, domain.ErrInsufficientRole
	}
	report, err := s.reportRepo.GetByID(ctx, input.EnterpriseID, input.ReportID)
	if err != nil {
		return nil, err
	}
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	row := &domain.DotationRow{
		ID:           input.RowID,
		ReportID:     report.ID,
		EmployeeName: input.EmployeeName,
		Grade:        input.Grade,
		Run:          input.Run,
		Facture:      input.Facture,
		Vente:        input.Vente,
	}
	row.Recompute(table, rowClass(row.Grade))
	if err := s.rowRepo.Update(ctx, row); err != nil {
		return nil, err
	}

	all, err := s.rowRepo.ListByReport(ctx, report.ID)
	if err != nil {
		return nil, err
	}
	recomputeTotals(report, all)
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("dotation.UpdateRow: %w", err)
	}
	return row, nil
}

func (s *dotationService) DeleteRow(ctx context.Context, enterpriseID, reportID, rowID uuid.UUID, role domain.Role) error {
	if !domain.CanAccessDotation(role) {
		return domain.ErrInsufficientRole
	}
	if domain.IsReadOnlyForStaff(role) {
		return domain.ErrForbidden
	}
	report, err := s.reportRepo.GetByID(ctx, enterpriseID, reportID)
	if err != nil {
		return err
	}
	if err := s.rowRepo.Delete(ctx, report.ID, rowID); err != nil {
		return err
	}

	all, err := s.rowRepo.ListByReport(ctx, report.ID)
	if err != nil {
		return err
	}
	recomputeTotals(report, all)
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return fmt.Errorf("dotation.DeleteRow: %w", err)
	}
	return nil
}

func (s *dotationService) DeleteReport(ctx context.Context, enterpriseID, reportID uuid.UUID, role domain.Role) error {
	if !domain.CanAccessDotation(role) {
		return domain.ErrInsufficientRole
	}
	if domain.IsReadOnlyForStaff(role) {
		return domain.ErrForbidden
	}
	return s.reportRepo.Delete(ctx, enterpriseID, reportID)
}

func (s *dotationService) Preview(ctx context.Context, role domain.Role, pastedText string) (*ImportRowsResult, error) {
	if !domain.CanAccessDotation(role) {
		return nil, domain.ErrInsufficientRole
	}
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	rows, res, err := parseRows(pastedText, uuid.Nil, table)
	if err != nil {
		return nil, err
	}

	report := &domain.DotationReport{Status: domain.StatusPending}
	recomputeTotals(report, rows)
	return &ImportRowsResult{
		Report:  report,
		Rows:    rows,
		Valid:   res.Valid,
		Skipped: res.Skipped,
	}, nil
}
