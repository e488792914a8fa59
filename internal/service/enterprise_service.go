package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portos/internal/domain"
	"portos/internal/port"
)

// EnterpriseInput is the DTO for creating or updating an enterprise.
type EnterpriseInput struct {
	Role           domain.Role
	Name           string
	GuildID        string
	StaffRoleID    string
	PatronRoleID   string
	CoPatronRoleID string
	DotRoleID      string
	EmployeRoleID  string
	IsActive       bool
}

// EnterpriseService defines the enterprise administration contract. Every
// mutating operation is staff only.
type EnterpriseService interface {
	Create(ctx context.Context, input *EnterpriseInput) (*domain.Enterprise, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Enterprise, error)
	List(ctx context.Context, role domain.Role, offset, limit int) ([]domain.Enterprise, int, error)
	Update(ctx context.Context, id uuid.UUID, input *EnterpriseInput) (*domain.Enterprise, error)
	Delete(ctx context.Context, id uuid.UUID, role domain.Role) error
	ListMembers(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, offset, limit int) ([]domain.User, int, error)
	SetMemberActive(ctx context.Context, enterpriseID, userID uuid.UUID, role domain.Role, active bool) (*domain.User, error)
}

type enterpriseService struct {
	enterpriseRepo port.EnterpriseRepository
	userRepo       port.UserRepository
}

// NewEnterpriseService creates a new EnterpriseService implementation.
func NewEnterpriseService(enterpriseRepo port.EnterpriseRepository, userRepo port.UserRepository) EnterpriseService {
	return &enterpriseService{enterpriseRepo: enterpriseRepo, userRepo: userRepo}
}

func (s *enterpriseService) Create(ctx context.Context, input *EnterpriseInput) (*domain.Enterprise, error) {
	if !domain.CanAccessStaffConfig(input.Role) {
		return nil, domain.ErrInsufficientRole
	}
	if input.Name == "" || input.GuildID == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	e := &domain.Enterprise{
		ID:             uuid.New(),
		Name:           input.Name,
		GuildID:        input.GuildID,
		StaffRoleID:    input.StaffRoleID,
		PatronRoleID:   input.PatronRoleID,
		CoPatronRoleID: input.CoPatronRoleID,
		DotRoleID:      input.DotRoleID,
		EmployeRoleID:  input.EmployeRoleID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.enterpriseRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("enterprise.Create: %w", err)
	}
	return e, nil
}

func (s *enterpriseService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Enterprise, error) {
	return s.enterpriseRepo.GetByID(ctx, id)
}

func (s *enterpriseService) List(ctx context.Context, role domain.Role, offset, limit int) ([]domain.Enterprise, int, error) {
	if !domain.CanAccessStaffConfig(role) {
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.enterpriseRepo.List(ctx, offset, limit)
}

func (s *enterpriseService) Update(ctx context.Context, id uuid.UUID, input *EnterpriseInput) (*domain.Enterprise, error) {
	if !domain.CanAccessStaffConfig(input.Role) {
		return nil, domain.ErrInsufficientRole
	}

	e, err := s.enterpriseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		e.Name = input.Name
	}
	if input.GuildID != "" {
		e.GuildID = input.GuildID
	}
	e.StaffRoleID = input.StaffRoleID
	e.PatronRoleID = input.PatronRoleID
	e.CoPatronRoleID = input.CoPatronRoleID
	e.DotRoleID = input.DotRoleID
	e.EmployeRoleID = input.EmployeRoleID
	e.IsActive = input.IsActive
	e.UpdatedAt = time.Now().UTC()

	if err := s.enterpriseRepo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("enterprise.Update: %w", err)
	}
	return e, nil
}

func (s *enterpriseService) Delete(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if !domain.CanAccessStaffConfig(role) {
		return domain.ErrInsufficientRole
	}
	return s.enterpriseRepo.Delete(ctx, id)
}

func (s *enterpriseService) ListMembers(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, offset, limit int) ([]domain.User, int, error) {
	switch {
	case domain.CanAccessStaffConfig(role), domain.CanAccessCompanyConfig(role):
	default:
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.userRepo.ListByEnterprise(ctx, enterpriseID, offset, limit)
}

func (s *enterpriseService) SetMemberActive(ctx context.Context, enterpriseID, userID uuid.UUID, role domain.Role, active bool) (*domain.User, error) {
	if !domain.CanAccessStaffConfig(role) {
		return nil, domain.ErrInsufficientRole
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.EnterpriseID == nil || *user.EnterpriseID != enterpriseID {
		return nil, domain.ErrNotFound
	}
	user.IsActive = active
	user.UpdatedAt = time.Now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("enterprise.SetMemberActive: %w", err)
	}
	return user, nil
}
