package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portos/internal/domain"
	"portos/internal/port"
)

// TaxComputeInput carries the raw figures of a tax simulation.
type TaxComputeInput struct {
	Revenue        float64 `json:"revenus_totaux"`
	TaxableRevenue float64 `json:"revenus_imposables"`
	Deductions     float64 `json:"abattements"`
	Wealth         float64 `json:"patrimoine"`
}

// TaxComputeResult carries the outcome of a tax simulation.
type TaxComputeResult struct {
	TaxBase  float64          `json:"base_imposable"`
	Income   domain.TaxResult `json:"impot_revenus"`
	Wealth   domain.TaxResult `json:"impot_patrimoine"`
	TotalTax float64          `json:"impot_total"`
	NetAfter float64          `json:"net_apres_impot"`
	Computed time.Time        `json:"computed_at"`
}

// CreateDeclarationInput is the DTO for filing a tax declaration.
type CreateDeclarationInput struct {
	EnterpriseID uuid.UUID
	UserID       uuid.UUID
	Role         domain.Role
	Period       string
	Notes        string
	Figures      TaxComputeInput
}

// TaxService defines the tax module contract.
type TaxService interface {
	// Compute runs the income and wealth tax tables over the given figures
	// without persisting anything.
	Compute(ctx context.Context, role domain.Role, input TaxComputeInput) (*TaxComputeResult, error)
	CreateDeclaration(ctx context.Context, input *CreateDeclarationInput) (*domain.TaxDeclaration, error)
	GetDeclaration(ctx context.Context, enterpriseID, declarationID uuid.UUID, role domain.Role) (*domain.TaxDeclaration, error)
	ListDeclarations(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, offset, limit int) ([]domain.TaxDeclaration, int, error)
	UpdateDeclaration(ctx context.Context, input *CreateDeclarationInput, declarationID uuid.UUID) (*domain.TaxDeclaration, error)
	DeleteDeclaration(ctx context.Context, enterpriseID, declarationID uuid.UUID, role domain.Role) error
}

type taxService struct {
	declRepo    port.TaxDeclarationRepository
	bracketRepo port.BracketRepository
}

// NewTaxService creates a new TaxService implementation.
func NewTaxService(declRepo port.TaxDeclarationRepository, bracketRepo port.BracketRepository) TaxService {
	return &taxService{declRepo: declRepo, bracketRepo: bracketRepo}
}

func (s *taxService) tables(ctx context.Context) (income, wealth domain.BracketTable, err error) {
	incomeTiers, err := s.bracketRepo.ListByKind(ctx, domain.BracketRevenue)
	if err != nil {
		return income, wealth, fmt.Errorf("tax.tables: %w", err)
	}
	wealthTiers, err := s.bracketRepo.ListByKind(ctx, domain.BracketWealth)
	if err != nil {
		return income, wealth, fmt.Errorf("tax.tables: %w", err)
	}
	income, err = domain.NewBracketTable(domain.BracketRevenue, incomeTiers)
	if err != nil {
		return income, wealth, err
	}
	wealth, err = domain.NewBracketTable(domain.BracketWealth, wealthTiers)
	return income, wealth, err
}

func (s *taxService) compute(ctx context.Context, input TaxComputeInput) (*TaxComputeResult, error) {
	income, wealth, err := s.tables(ctx)
	if err != nil {
		return nil, err
	}

	base := domain.TaxBase(input.TaxableRevenue, input.Deductions)
	incomeTax := income.Tax(base)
	wealthTax := wealth.Tax(input.Wealth)
	total := incomeTax.Tax + wealthTax.Tax

	return &TaxComputeResult{
		TaxBase:  base,
		Income:   incomeTax,
		Wealth:   wealthTax,
		TotalTax: total,
		NetAfter: input.Revenue - total,
		Computed: time.Now().UTC(),
	}, nil
}

func (s *taxService) Compute(ctx context.Context, role domain.Role, input TaxComputeInput) (*TaxComputeResult, error) {
	if !domain.CanAccessTax(role) {
		return nil, domain.ErrInsufficientRole
	}
	return s.compute(ctx, input)
}

func (s *taxService) CreateDeclaration(ctx context.Context, input *CreateDeclarationInput) (*domain.TaxDeclaration, error) {
	if !domain.CanAccessTax(input.Role) {
		return nil, domain.ErrInsufficientRole
	}
	if input.Period == "" {
		return nil, domain.ErrValidation
	}

	result, err := s.compute(ctx, input.Figures)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	decl := &domain.TaxDeclaration{
		ID:             uuid.New(),
		EnterpriseID:   input.EnterpriseID,
		UserID:         input.UserID,
		Period:         input.Period,
		Revenue:        input.Figures.Revenue,
		TaxableRevenue: input.Figures.TaxableRevenue,
		Deductions:     input.Figures.Deductions,
		Wealth:         input.Figures.Wealth,
		IncomeTax:      result.Income.Tax,
		WealthTax:      result.Wealth.Tax,
		TotalTax:       result.TotalTax,
		Status:         domain.StatusPending,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.declRepo.Create(ctx, decl); err != nil {
		return nil, fmt.Errorf("tax.CreateDeclaration: %w", err)
	}
	return decl, nil
}

func (s *taxService) GetDeclaration(ctx context.Context, enterpriseID, declarationID uuid.UUID, role domain.Role) (*domain.TaxDeclaration, error) {
	if !domain.CanAccessTax(role) {
		return nil, domain.ErrInsufficientRole
	}
	return s.declRepo.GetByID(ctx, enterpriseID, declarationID)
}

func (s *taxService) ListDeclarations(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, offset, limit int) ([]domain.TaxDeclaration, int, error) {
	if !domain.CanAccessTax(role) {
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.declRepo.ListByEnterprise(ctx, enterpriseID, offset, limit)
}

func (s *taxService) UpdateDeclaration(ctx context.Context, input *CreateDeclarationInput, declarationID uuid.UUID) (*domain.TaxDeclaration, error) {
	if !domain.CanAccessTax(input.Role) {
		return nil, domain.ErrInsufficientRole
	}

	decl, err := s.declRepo.GetByID(ctx, input.EnterpriseID, declarationID)
	if err != nil {
		return nil, err
	}

	result, err := s.compute(ctx, input.Figures)
	if err != nil {
		return nil, err
	}

	if input.Period != "" {
		decl.Period = input.Period
	}
	decl.Revenue = input.Figures.Revenue
	decl.TaxableRevenue = input.Figures.TaxableRevenue
	decl.Deductions = input.Figures.Deductions
	decl.Wealth = input.Figures.Wealth
	decl.IncomeTax = result.Income.Tax
	decl.WealthTax = result.Wealth.Tax
	decl.TotalTax = result.TotalTax
	decl.Notes = input.Notes
	decl.UpdatedAt = time.Now().UTC()

	if err := s.declRepo.Update(ctx, decl); err != nil {
		return nil, fmt.Errorf("tax.UpdateDeclaration: %w", err)
	}
	return decl, nil
}

func (s *taxService) DeleteDeclaration(ctx context.Context, enterpriseID, declarationID uuid.UUID, role domain.Role) error {
	if !domain.CanAccessTax(role) {
		return domain.ErrInsufficientRole
	}
	if domain.IsReadOnlyForStaff(role) {
		return domain.ErrForbidden
	}
	return s.declRepo.Delete(ctx, enterpriseID, declarationID)
}
