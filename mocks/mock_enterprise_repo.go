package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portos/internal/domain"
)

// MockEnterpriseRepo is a mock implementation of port.EnterpriseRepository.
type MockEnterpriseRepo struct {
	mock.Mock
}

func (m *MockEnterpriseRepo) Create(ctx context.Context, e *domain.Enterprise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEnterpriseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Enterprise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enterprise), args.Error(1)
}

func (m *MockEnterpriseRepo) GetByGuildID(ctx context.Context, guildID string) (*domain.Enterprise, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enterprise), args.Error(1)
}

func (m *MockEnterpriseRepo) List(ctx context.Context, offset, limit int) ([]domain.Enterprise, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Enterprise), args.Int(1), args.Error(2)
}

func (m *MockEnterpriseRepo) Update(ctx context.Context, e *domain.Enterprise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEnterpriseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
