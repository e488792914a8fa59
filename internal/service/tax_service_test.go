package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portos/internal/domain"
	"portos/internal/service"
	"portos/mocks"
)

func incomeTiers() []domain.BracketTier {
	return []domain.BracketTier{
		{Kind: domain.BracketRevenue, Min: 0, Max: ceil(50000), Rate: 0.10},
		{Kind: domain.BracketRevenue, Min: 50001, Max: ceil(100000), Rate: 0.15},
		{Kind: domain.BracketRevenue, Min: 100001, Max: nil, Rate: 0.20},
	}
}

func wealthTiers() []domain.BracketTier {
	return []domain.BracketTier{
		{Kind: domain.BracketWealth, Min: 0, Max: ceil(200000), Rate: 0.05},
		{Kind: domain.BracketWealth, Min: 200001, Max: nil, Rate: 0.10},
	}
}

func setupTax() (*mocks.MockTaxDeclarationRepo, *mocks.MockBracketRepo, service.TaxService) {
	declRepo := new(mocks.MockTaxDeclarationRepo)
	bracketRepo := new(mocks.MockBracketRepo)
	svc := service.NewTaxService(declRepo, bracketRepo)
	return declRepo, bracketRepo, svc
}

func TestCompute_BothTables(t *testing.T) {
	_, bracketRepo, svc := setupTax()

	bracketRepo.On("ListByKind", mock.Anything, domain.BracketRevenue).Return(incomeTiers(), nil)
	bracketRepo.On("ListByKind", mock.Anything, domain.BracketWealth).Return(wealthTiers(), nil)

	result, err := svc.Compute(context.Background(), domain.RolePatron, service.TaxComputeInput{
		Revenue:        200000,
		TaxableRevenue: 160000,
		Deductions:     10000,
		Wealth:         250000,
	})

	require.NoError(t, err)
	// Base 150000 lands in the top tier; only the slice above the floor is taxed.
	assert.Equal(t, 150000.0, result.TaxBase)
	assert.InDelta(t, (150000-100001)*0.20, result.Income.Tax, 0.01)
	assert.Equal(t, 20.0, result.Income.Rate)
	assert.InDelta(t, (250000-200001)*0.10, result.Wealth.Tax, 0.01)
	assert.InDelta(t, result.Income.Tax+result.Wealth.Tax, result.TotalTax, 0.01)
	assert.InDelta(t, 200000-result.TotalTax, result.NetAfter, 0.01)
}

func TestCompute_DeductionsFloorAtZero(t *testing.T) {
	_, bracketRepo, svc := setupTax()

	bracketRepo.On("ListByKind", mock.Anything, domain.BracketRevenue).Return(incomeTiers(), nil)
	bracketRepo.On("ListByKind", mock.Anything, domain.BracketWealth).Return(wealthTiers(), nil)

	result, err := svc.Compute(context.Background(), domain.RoleStaff, service.TaxComputeInput{
		TaxableRevenue: 5000,
		Deductions:     20000,
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.TaxBase)
	assert.Equal(t, 0.0, result.Income.Tax)
	assert.Equal(t, 0.0, result.Wealth.Tax)
}

func TestCompute_DeniedForDot(t *testing.T) {
	_, _, svc := setupTax()

	_, err := svc.Compute(context.Background(), domain.RoleDot, service.TaxComputeInput{})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestCreateDeclaration_PersistsComputedTotals(t *testing.T) {
	declRepo, bracketRepo, svc := setupTax()

	bracketRepo.On("ListByKind", mock.Anything, domain.BracketRevenue).Return(incomeTiers(), nil)
	bracketRepo.On("ListByKind", mock.Anything, domain.BracketWealth).Return(wealthTiers(), nil)
	declRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TaxDeclaration")).Return(nil)

	decl, err := svc.CreateDeclaration(context.Background(), &service.CreateDeclarationInput{
		EnterpriseID: uuid.New(),
		UserID:       uuid.New(),
		Role:         domain.RoleCoPatron,
		Period:       "2025-07",
		Figures: service.TaxComputeInput{
			Revenue:        80000,
			TaxableRevenue: 75000,
			Deductions:     5000,
			Wealth:         100000,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, decl.Status)
	// Base 70000 falls in the middle tier.
	assert.InDelta(t, (70000-50001)*0.15, decl.IncomeTax, 0.01)
	assert.InDelta(t, 100000*0.05, decl.WealthTax, 0.01)
	assert.InDelta(t, decl.IncomeTax+decl.WealthTax, decl.TotalTax, 0.01)

	declRepo.AssertExpectations(t)
}

func TestCreateDeclaration_RequiresPeriod(t *testing.T) {
	_, _, svc := setupTax()

	_, err := svc.CreateDeclaration(context.Background(), &service.CreateDeclarationInput{
		Role: domain.RolePatron,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteDeclaration_StaffIsReadOnly(t *testing.T) {
	_, _, svc := setupTax()

	err := svc.DeleteDeclaration(context.Background(), uuid.New(), uuid.New(), domain.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
