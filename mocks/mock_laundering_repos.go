package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portos/internal/domain"
)

// MockLaunderingSettingRepo is a mock implementation of port.LaunderingSettingRepository.
type MockLaunderingSettingRepo struct {
	mock.Mock
}

func (m *MockLaunderingSettingRepo) GetGlobal(ctx context.Context) (*domain.LaunderingSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LaunderingSetting), args.Error(1)
}

func (m *MockLaunderingSettingRepo) GetByEnterprise(ctx context.Context, enterpriseID uuid.UUID) (*domain.LaunderingSetting, error) {
	args := m.Called(ctx, enterpriseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LaunderingSetting), args.Error(1)
}

func (m *MockLaunderingSettingRepo) Upsert(ctx context.Context, s *domain.LaunderingSetting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockLaunderingRowRepo is a mock implementation of port.LaunderingRowRepository.
type MockLaunderingRowRepo struct {
	mock.Mock
}

func (m *MockLaunderingRowRepo) Create(ctx context.Context, row *domain.LaunderingRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockLaunderingRowRepo) GetByID(ctx context.Context, enterpriseID, rowID uuid.UUID) (*domain.LaunderingRow, error) {
	args := m.Called(ctx, enterpriseID, rowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LaunderingRow), args.Error(1)
}

func (m *MockLaunderingRowRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.LaunderingRow, int, error) {
	args := m.Called(ctx, enterpriseID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.LaunderingRow), args.Int(1), args.Error(2)
}

func (m *MockLaunderingRowRepo) Update(ctx context.Context, row *domain.LaunderingRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockLaunderingRowRepo) Delete(ctx context.Context, enterpriseID, rowID uuid.UUID) error {
	args := m.Called(ctx, enterpriseID, rowID)
	return args.Error(0)
}
