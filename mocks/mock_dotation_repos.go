package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portos/internal/domain"
)

// MockDotationReportRepo is a mock implementation of port.DotationReportRepository.
type MockDotationReportRepo struct {
	mock.Mock
}

func (m *MockDotationReportRepo) Create(ctx context.Context, r *domain.DotationReport) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDotationReportRepo) GetByID(ctx context.Context, enterpriseID, reportID uuid.UUID) (*domain.DotationReport, error) {
	args := m.Called(ctx, enterpriseID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DotationReport), args.Error(1)
}

func (m *MockDotationReportRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.DotationReport, int, error) {
	args := m.Called(ctx, enterpriseID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DotationReport), args.Int(1), args.Error(2)
}

func (m *MockDotationReportRepo) Update(ctx context.Context, r *domain.DotationReport) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDotationReportRepo) Delete(ctx context.Context, enterpriseID, reportID uuid.UUID) error {
	args := m.Called(ctx, enterpriseID, reportID)
	return args.Error(0)
}

// MockDotationRowRepo is a mock implementation of port.DotationRowRepository.
type MockDotationRowRepo struct {
	mock.Mock
}

func (m *MockDotationRowRepo) BulkInsert(ctx context.Context, rows []domain.DotationRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockDotationRowRepo) ListByReport(ctx context.Context, reportID uuid.UUID) ([]domain.DotationRow, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DotationRow), args.Error(1)
}

func (m *MockDotationRowRepo) Update(ctx context.Context, row *domain.DotationRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockDotationRowRepo) Delete(ctx context.Context, reportID, rowID uuid.UUID) error {
	args := m.Called(ctx, reportID, rowID)
	return args.Error(0)
}

// MockBracketRepo is a mock implementation of port.BracketRepository.
type MockBracketRepo struct {
	mock.Mock
}

func (m *MockBracketRepo) ListByKind(ctx context.Context, kind domain.BracketKind) ([]domain.BracketTier, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BracketTier), args.Error(1)
}

func (m *MockBracketRepo) ReplaceKind(ctx context.Context, kind domain.BracketKind, tiers []domain.BracketTier) error {
	args := m.Called(ctx, kind, tiers)
	return args.Error(0)
}
