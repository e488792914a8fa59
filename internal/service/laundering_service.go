package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portos/internal/domain"
	"portos/internal/ingest"
	"portos/internal/port"
)

// Canonical column names of a pasted laundering block, in positional order.
var launderingFields = []ingest.Field{
	{Name: "statut", Aliases: []string{"status", "etat", "état"}},
	{Name: "date_recu", Aliases: []string{"date reçu", "date recu", "recu", "reçu"}},
	{Name: "date_rendu", Aliases: []string{"date rendu", "rendu"}},
	{Name: "groupe", Aliases: []string{"group", "org"}},
	{Name: "employe", Aliases: []string{"employé", "employee", "nom"}},
	{Name: "donneur_id", Aliases: []string{"donneur", "giver"}},
	{Name: "recepteur_id", Aliases: []string{"récepteur", "recepteur", "receiver"}},
	{Name: "somme", Aliases: []string{"montant", "amount"}},
}

// Date layouts accepted in pasted laundering blocks.
var launderingDateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

// UpdateSettingsInput is the DTO for changing laundering settings of a scope.
type UpdateSettingsInput struct {
	// EnterpriseID is uuid.Nil for the global scope.
	EnterpriseID   uuid.UUID
	Role           domain.Role
	IsEnabled      bool
	UseGlobal      bool
	PercEnterprise float64
	PercGroup      float64
}

// LaunderingRowInput is the DTO for creating or editing a ledger row.
type LaunderingRowInput struct {
	EnterpriseID uuid.UUID
	CreatedBy    uuid.UUID
	Role         domain.Role
	Status       domain.LaunderingStatus
	DateReceived *time.Time
	DateReturned *time.Time
	Group        string
	Employee     string
	GiverID      string
	ReceiverID   string
	Amount       float64
}

// ImportLaunderingResult summarizes a bulk ledger import.
type ImportLaunderingResult struct {
	Rows    []domain.LaunderingRow `json:"rows"`
	Valid   int                    `json:"valid"`
	Skipped int                    `json:"skipped"`
}

// LaunderingService defines the laundering ledger contract.
type LaunderingService interface {
	// Settings resolves the effective setting for an enterprise, following
	// the global scope when the enterprise delegates to it.
	Settings(ctx context.Context, enterpriseID uuid.UUID, role domain.Role) (*domain.LaunderingSetting, error)
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*domain.LaunderingSetting, error)
	CreateRow(ctx context.Context, input *LaunderingRowInput) (*domain.LaunderingRow, error)
	GetRow(ctx context.Context, enterpriseID, rowID uuid.UUID, role domain.Role) (*domain.LaunderingRow, error)
	ListRows(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, offset, limit int) ([]domain.LaunderingRow, int, error)
	UpdateRow(ctx context.Context, input *LaunderingRowInput, rowID uuid.UUID) (*domain.LaunderingRow, error)
	DeleteRow(ctx context.Context, enterpriseID, rowID uuid.UUID, role domain.Role) error
	ImportRows(ctx context.Context, enterpriseID, createdBy uuid.UUID, role domain.Role, pastedText string) (*ImportLaunderingResult, error)
}

type launderingService struct {
	settingRepo port.LaunderingSettingRepository
	rowRepo     port.LaunderingRowRepository
}

// NewLaunderingService creates a new LaunderingService implementation.
func NewLaunderingService(settingRepo port.LaunderingSettingRepository, rowRepo port.LaunderingRowRepository) LaunderingService {
	return &launderingService{settingRepo: settingRepo, rowRepo: rowRepo}
}

// resolveSettings returns the effective setting for the enterprise. A missing
// enterprise setting, or one delegating to the global scope, falls back to
// the global values while keeping the enterprise's own enablement flag.
func (s *launderingService) resolveSettings(ctx context.Context, enterpriseID uuid.UUID) (*domain.LaunderingSetting, error) {
	setting, err := s.settingRepo.GetByEnterprise(ctx, enterpriseID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("laundering.resolveSettings: %w", err)
		}
		setting = &domain.LaunderingSetting{
			EnterpriseID: enterpriseID,
			IsEnabled:    false,
			UseGlobal:    true,
		}
	}

	if setting.UseGlobal {
		global, err := s.settingRepo.GetGlobal(ctx)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("laundering.resolveSettings: %w", err)
			}
		} else {
			setting.PercEnterprise = global.PercEnterprise
			setting.PercGroup = global.PercGroup
		}
	}
	return setting, nil
}

func (s *launderingService) Settings(ctx context.Context, enterpriseID uuid.UUID, role domain.Role) (*domain.LaunderingSetting, error) {
	if !domain.CanAccessLaundering(role) {
		return nil, domain.ErrInsufficientRole
	}
	return s.resolveSettings(ctx, enterpriseID)
}

func (s *launderingService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*domain.LaunderingSetting, error) {
	// The global scope and per-enterprise enablement are staff territory.
	if !domain.CanAccessStaffConfig(input.Role) {
		return nil, domain.ErrInsufficientRole
	}
	if input.PercEnterprise < 0 || input.PercEnterprise > 100 ||
		input.PercGroup < 0 || input.PercGroup > 100 {
		return nil, domain.ErrValidation
	}

	setting := &domain.LaunderingSetting{
		ID:             uuid.New(),
		EnterpriseID:   input.EnterpriseID,
		IsEnabled:      input.IsEnabled,
		UseGlobal:      input.UseGlobal,
		PercEnterprise: input.PercEnterprise,
		PercGroup:      input.PercGroup,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("laundering.UpdateSettings: %w", err)
	}
	return setting, nil
}

// requireEnabled checks both the capability and the enablement toggle and
// returns the resolved setting so callers can snapshot the percentages.
func (s *launderingService) requireEnabled(ctx context.Context, enterpriseID uuid.UUID, role domain.Role) (*domain.LaunderingSetting, error) {
	if !domain.CanAccessLaundering(role) {
		return nil, domain.ErrInsufficientRole
	}
	setting, err := s.resolveSettings(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}
	if !setting.IsEnabled {
		return nil, domain.ErrLaunderingDisabled
	}
	return setting, nil
}

func (s *launderingService) CreateRow(ctx context.Context, input *LaunderingRowInput) (*domain.LaunderingRow, error) {
	setting, err := s.requireEnabled(ctx, input.EnterpriseID, input.Role)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.LaunderingInProgress
	}

	now := time.Now().UTC()
	row := &domain.LaunderingRow{
		ID:           uuid.New(),
		EnterpriseID: input.EnterpriseID,
		CreatedBy:    input.CreatedBy,
		Status:       status,
		DateReceived: input.DateReceived,
		DateReturned: input.DateReturned,
		Group:        input.Group,
		Employee:     input.Employee,
		GiverID:      input.GiverID,
		ReceiverID:   input.ReceiverID,
		Amount:       input.Amount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := row.ValidateForCreate(); err != nil {
		return nil, err
	}
	row.RecomputeDuration()
	row.ApplySettings(*setting)

	if err := s.rowRepo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("laundering.CreateRow: %w", err)
	}
	return row, nil
}

func (s *launderingService) GetRow(ctx context.Context, enterpriseID, rowID uuid.UUID, role domain.Role) (*domain.LaunderingRow, error) {
	if !domain.CanAccessLaundering(role) {
		return nil, domain.ErrInsufficientRole
	}
	return s.rowRepo.GetByID(ctx, enterpriseID, rowID)
}

func (s *launderingService) ListRows(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, offset, limit int) ([]domain.LaunderingRow, int, error) {
	if !domain.CanAccessLaundering(role) {
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.rowRepo.ListByEnterprise(ctx, enterpriseID, offset, limit)
}

func (s *launderingService) UpdateRow(ctx context.Context, input *LaunderingRowInput, rowID uuid.UUID) (*domain.LaunderingRow, error) {
	setting, err := s.requireEnabled(ctx, input.EnterpriseID, input.Role)
	if err != nil {
		return nil, err
	}

	row, err := s.rowRepo.GetByID(ctx, input.EnterpriseID, rowID)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		row.Status = input.Status
	}
	row.DateReceived = input.DateReceived
	row.DateReturned = input.DateReturned
	row.Group = input.Group
	row.Employee = input.Employee
	row.GiverID = input.GiverID
	row.ReceiverID = input.ReceiverID
	row.Amount = input.Amount
	row.UpdatedAt = time.Now().UTC()

	if err := row.ValidateForCreate(); err != nil {
		return nil, err
	}
	row.RecomputeDuration()
	row.ApplySettings(*setting)

	if err := s.rowRepo.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("laundering.UpdateRow: %w", err)
	}
	return row, nil
}

func (s *launderingService) DeleteRow(ctx context.Context, enterpriseID, rowID uuid.UUID, role domain.Role) error {
	if !domain.CanAccessLaundering(role) {
		return domain.ErrInsufficientRole
	}
	if domain.IsReadOnlyForStaff(role) {
		return domain.ErrForbidden
	}
	return s.rowRepo.Delete(ctx, enterpriseID, rowID)
}

func (s *launderingService) ImportRows(ctx context.Context, enterpriseID, createdBy uuid.UUID, role domain.Role, pastedText string) (*ImportLaunderingResult, error) {
	setting, err := s.requireEnabled(ctx, enterpriseID, role)
	if err != nil {
		return nil, err
	}

	res, err := ingest.Parse(pastedText, ingest.Options{
		Fields: launderingFields,
		// Only group, employee and amount are mandatory in a pasted block.
		MinFields: 3,
	})
	if err != nil {
		return nil, err
	}

	result := &ImportLaunderingResult{Skipped: res.Skipped}
	now := time.Now().UTC()
	for _, rec := range res.Records {
		row := domain.LaunderingRow{
			ID:           uuid.New(),
			EnterpriseID: enterpriseID,
			CreatedBy:    createdBy,
			Status:       parseLaunderingStatus(rec.Text("statut")),
			DateReceived: parseLaunderingDate(rec.Text("date_recu")),
			DateReturned: parseLaunderingDate(rec.Text("date_rendu")),
			Group:        rec.Text("groupe"),
			Employee:     rec.Text("employe"),
			GiverID:      rec.Text("donneur_id"),
			ReceiverID:   rec.Text("recepteur_id"),
			Amount:       rec.Number("somme"),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if row.ValidateForCreate() != nil {
			result.Skipped++
			continue
		}
		row.RecomputeDuration()
		row.ApplySettings(*setting)

		if err := s.rowRepo.Create(ctx, &row); err != nil {
			return nil, fmt.Errorf("laundering.ImportRows: %w", err)
		}
		result.Rows = append(result.Rows, row)
	}
	result.Valid = len(result.Rows)
	return result, nil
}

func parseLaunderingStatus(v string) domain.LaunderingStatus {
	switch domain.LaunderingStatus(v) {
	case domain.LaunderingDone, domain.LaunderingSuspended, domain.LaunderingCancelled:
		return domain.LaunderingStatus(v)
	}
	return domain.LaunderingInProgress
}

func parseLaunderingDate(v string) *time.Time {
	for _, layout := range launderingDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
