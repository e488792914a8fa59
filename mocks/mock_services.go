package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portos/internal/domain"
	"portos/internal/port"
	"portos/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) AuthorizeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockAuthService) HandleCallback(ctx context.Context, code, guildID string) (*service.AuthResult, error) {
	args := m.Called(ctx, code, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

// MockArchiveService is a mock implementation of service.ArchiveService.
type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) Create(ctx context.Context, input *service.CreateArchiveInput) (*domain.Archive, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Archive), args.Error(1)
}

func (m *MockArchiveService) GetByID(ctx context.Context, enterpriseID, archiveID uuid.UUID, role domain.Role) (*domain.Archive, error) {
	args := m.Called(ctx, enterpriseID, archiveID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Archive), args.Error(1)
}

func (m *MockArchiveService) List(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, filter port.ArchiveFilter) ([]domain.Archive, int, error) {
	args := m.Called(ctx, enterpriseID, role, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Archive), args.Int(1), args.Error(2)
}

func (m *MockArchiveService) Update(ctx context.Context, input *service.UpdateArchiveInput) (*domain.Archive, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Archive), args.Error(1)
}

func (m *MockArchiveService) Validate(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role) (*domain.Archive, error) {
	args := m.Called(ctx, enterpriseID, archiveID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Archive), args.Error(1)
}

func (m *MockArchiveService) Reject(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role) (*domain.Archive, error) {
	args := m.Called(ctx, enterpriseID, archiveID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Archive), args.Error(1)
}

func (m *MockArchiveService) Delete(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role) error {
	args := m.Called(ctx, enterpriseID, archiveID, userID, role)
	return args.Error(0)
}
