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

func TestListBrackets_ReturnsSortedTable(t *testing.T) {
	bracketRepo := new(mocks.MockBracketRepo)
	svc := service.NewBracketService(bracketRepo)

	// Stored out of order; the table sorts by tier floor.
	tiers := []domain.BracketTier{
		{Min: 50001, Max: ceil(100000), Rate: 0.15},
		{Min: 0, Max: ceil(50000), Rate: 0.1},
	}
	bracketRepo.On("ListByKind", mock.Anything, domain.BracketRevenue).Return(tiers, nil)

	table, err := svc.List(context.Background(), domain.BracketRevenue, domain.RolePatron)

	require.NoError(t, err)
	require.Len(t, table.Tiers, 2)
	assert.Equal(t, 0.0, table.Tiers[0].Min)
	assert.Equal(t, 50001.0, table.Tiers[1].Min)
}

func TestListBrackets_DeniedForEmploye(t *testing.T) {
	svc := service.NewBracketService(new(mocks.MockBracketRepo))

	_, err := svc.List(context.Background(), domain.BracketDotation, domain.RoleEmploye)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestReplaceBrackets_TaxTableIsStaffOnly(t *testing.T) {
	svc := service.NewBracketService(new(mocks.MockBracketRepo))

	_, err := svc.Replace(context.Background(), domain.BracketRevenue, domain.RolePatron, []domain.BracketTier{
		{Min: 0, Rate: 0.1},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestReplaceBrackets_DotationTableOpenToOwners(t *testing.T) {
	bracketRepo := new(mocks.MockBracketRepo)
	svc := service.NewBracketService(bracketRepo)

	bracketRepo.On("ReplaceKind", mock.Anything, domain.BracketDotation, mock.AnythingOfType("[]domain.BracketTier")).Return(nil)

	table, err := svc.Replace(context.Background(), domain.BracketDotation, domain.RolePatron, []domain.BracketTier{
		{Min: 0, Max: ceil(50000), Rate: 0.1},
		{Min: 50001, Rate: 0.15},
	})

	require.NoError(t, err)
	for _, tier := range table.Tiers {
		assert.NotEqual(t, uuid.Nil, tier.ID)
		assert.Equal(t, domain.BracketDotation, tier.Kind)
		assert.True(t, tier.IsActive)
	}
	bracketRepo.AssertExpectations(t)
}

func TestReplaceBrackets_RejectsOverlappingTiers(t *testing.T) {
	bracketRepo := new(mocks.MockBracketRepo)
	svc := service.NewBracketService(bracketRepo)

	_, err := svc.Replace(context.Background(), domain.BracketRevenue, domain.RoleStaff, []domain.BracketTier{
		{Min: 0, Max: ceil(60000), Rate: 0.1},
		{Min: 50000, Rate: 0.15},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidBracketTable)
	bracketRepo.AssertNotCalled(t, "ReplaceKind", mock.Anything, mock.Anything, mock.Anything)
}
