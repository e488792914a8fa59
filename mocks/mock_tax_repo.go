package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portos/internal/domain"
)

// MockTaxDeclarationRepo is a mock implementation of port.TaxDeclarationRepository.
type MockTaxDeclarationRepo struct {
	mock.Mock
}

func (m *MockTaxDeclarationRepo) Create(ctx context.Context, d *domain.TaxDeclaration) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockTaxDeclarationRepo) GetByID(ctx context.Context, enterpriseID, declarationID uuid.UUID) (*domain.TaxDeclaration, error) {
	args := m.Called(ctx, enterpriseID, declarationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxDeclaration), args.Error(1)
}

func (m *MockTaxDeclarationRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.TaxDeclaration, int, error) {
	args := m.Called(ctx, enterpriseID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TaxDeclaration), args.Int(1), args.Error(2)
}

func (m *MockTaxDeclarationRepo) Update(ctx context.Context, d *domain.TaxDeclaration) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockTaxDeclarationRepo) Delete(ctx context.Context, enterpriseID, declarationID uuid.UUID) error {
	args := m.Called(ctx, enterpriseID, declarationID)
	return args.Error(0)
}
