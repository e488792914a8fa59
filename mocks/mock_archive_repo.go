package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portos/internal/domain"
	"portos/internal/port"
)

// MockArchiveRepo is a mock implementation of port.ArchiveRepository.
type MockArchiveRepo struct {
	mock.Mock
}

func (m *MockArchiveRepo) Create(ctx context.Context, a *domain.Archive) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockArchiveRepo) GetByID(ctx context.Context, enterpriseID, archiveID uuid.UUID) (*domain.Archive, error) {
	args := m.Called(ctx, enterpriseID, archiveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Archive), args.Error(1)
}

func (m *MockArchiveRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, filter port.ArchiveFilter) ([]domain.Archive, int, error) {
	args := m.Called(ctx, enterpriseID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Archive), args.Int(1), args.Error(2)
}

func (m *MockArchiveRepo) Update(ctx context.Context, a *domain.Archive) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockArchiveRepo) UpdateStatus(ctx context.Context, enterpriseID, archiveID uuid.UUID, status domain.ApprovalStatus) error {
	args := m.Called(ctx, enterpriseID, archiveID, status)
	return args.Error(0)
}

func (m *MockArchiveRepo) Delete(ctx context.Context, enterpriseID, archiveID uuid.UUID) error {
	args := m.Called(ctx, enterpriseID, archiveID)
	return args.Error(0)
}

// MockAuditLogRepo is a mock implementation of port.AuditLogRepository.
type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepo) ListByRecord(ctx context.Context, tableName, recordID string, offset, limit int) ([]domain.AuditLog, int, error) {
	args := m.Called(ctx, tableName, recordID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AuditLog), args.Int(1), args.Error(2)
}
