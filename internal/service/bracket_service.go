package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portos/internal/domain"
	"portos/internal/port"
)

// BracketService defines the tier table configuration contract.
type BracketService interface {
	List(ctx context.Context, kind domain.BracketKind, role domain.Role) (*domain.BracketTable, error)
	// Replace swaps the whole table of one kind after validating it. The tax
	// tables are staff territory; the dotation table is also open to the
	// company owners.
	Replace(ctx context.Context, kind domain.BracketKind, role domain.Role, tiers []domain.BracketTier) (*domain.BracketTable, error)
}

type bracketService struct {
	bracketRepo port.BracketRepository
}

// NewBracketService creates a new BracketService implementation.
func NewBracketService(bracketRepo port.BracketRepository) BracketService {
	return &bracketService{bracketRepo: bracketRepo}
}

func canEditBrackets(kind domain.BracketKind, role domain.Role) bool {
	if domain.CanAccessStaffConfig(role) {
		return true
	}
	return kind == domain.BracketDotation && domain.CanAccessCompanyConfig(role)
}

func (s *bracketService) List(ctx context.Context, kind domain.BracketKind, role domain.Role) (*domain.BracketTable, error) {
	if role == domain.RoleEmploye {
		return nil, domain.ErrInsufficientRole
	}
	tiers, err := s.bracketRepo.ListByKind(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("bracket.List: %w", err)
	}
	table, err := domain.NewBracketTable(kind, tiers)
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *bracketService) Replace(ctx context.Context, kind domain.BracketKind, role domain.Role, tiers []domain.BracketTier) (*domain.BracketTable, error) {
	if !canEditBrackets(kind, role) {
		return nil, domain.ErrInsufficientRole
	}

	now := time.Now().UTC()
	for i := range tiers {
		if tiers[i].ID == uuid.Nil {
			tiers[i].ID = uuid.New()
		}
		tiers[i].Kind = kind
		tiers[i].IsActive = true
		tiers[i].CreatedAt = now
	}

	// Validate before touching the stored table.
	table, err := domain.NewBracketTable(kind, tiers)
	if err != nil {
		return nil, err
	}
	if err := s.bracketRepo.ReplaceKind(ctx, kind, table.Tiers); err != nil {
		return nil, fmt.Errorf("bracket.Replace: %w", err)
	}
	return &table, nil
}
