package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"portos/internal/domain"
	"portos/internal/port"
)

// CreateArchiveInput is the DTO for sending a record to the archive.
type CreateArchiveInput struct {
	EnterpriseID uuid.UUID
	CreatedBy    uuid.UUID
	Role         domain.Role
	Title        string
	Description  string
	Category     domain.ArchiveCategory
	Amount       float64
	Date         time.Time
	ReferenceID  *uuid.UUID
	Payload      json.RawMessage
}

// UpdateArchiveInput is the DTO for editing an archive's fields.
type UpdateArchiveInput struct {
	EnterpriseID uuid.UUID
	ArchiveID    uuid.UUID
	UserID       uuid.UUID
	Role         domain.Role
	Title        string
	Description  string
	Amount       float64
	Date         time.Time
	Payload      json.RawMessage
}

// ArchiveService defines the archive approval contract.
type ArchiveService interface {
	Create(ctx context.Context, input *CreateArchiveInput) (*domain.Archive, error)
	GetByID(ctx context.Context, enterpriseID, archiveID uuid.UUID, role domain.Role) (*domain.Archive, error)
	List(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, filter port.ArchiveFilter) ([]domain.Archive, int, error)
	Update(ctx context.Context, input *UpdateArchiveInput) (*domain.Archive, error)
	Validate(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role) (*domain.Archive, error)
	Reject(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role) (*domain.Archive, error)
	Delete(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role) error
}

type archiveService struct {
	archiveRepo port.ArchiveRepository
	auditRepo   port.AuditLogRepository
	notifier    port.Notifier
}

// NewArchiveService creates a new ArchiveService implementation.
func NewArchiveService(archiveRepo port.ArchiveRepository, auditRepo port.AuditLogRepository, notifier port.Notifier) ArchiveService {
	return &archiveService{
		archiveRepo: archiveRepo,
		auditRepo:   auditRepo,
		notifier:    notifier,
	}
}

func (s *archiveService) Create(ctx context.Context, input *CreateArchiveInput) (*domain.Archive, error) {
	if !domain.CanCreateArchive(input.Role) {
		return nil, domain.ErrInsufficientRole
	}
	if input.Title == "" || input.Category == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	archive := &domain.Archive{
		ID:           uuid.New(),
		EnterpriseID: input.EnterpriseID,
		CreatedBy:    input.CreatedBy,
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Status:       domain.StatusPending,
		Amount:       input.Amount,
		Date:         date,
		ReferenceID:  input.ReferenceID,
		Payload:      input.Payload,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.archiveRepo.Create(ctx, archive); err != nil {
		return nil, fmt.Errorf("archive.Create: %w", err)
	}

	s.audit(ctx, &input.CreatedBy, "archive.create", archive.ID, nil, archive)
	s.notifier.Success(ctx, fmt.Sprintf("Archive envoyée: %s (%s)", archive.Title, archive.Category))
	return archive, nil
}

func (s *archiveService) GetByID(ctx context.Context, enterpriseID, archiveID uuid.UUID, role domain.Role) (*domain.Archive, error) {
	if role == domain.RoleEmploye {
		return nil, domain.ErrInsufficientRole
	}
	return s.archiveRepo.GetByID(ctx, enterpriseID, archiveID)
}

func (s *archiveService) List(ctx context.Context, enterpriseID uuid.UUID, role domain.Role, filter port.ArchiveFilter) ([]domain.Archive, int, error) {
	if role == domain.RoleEmploye {
		return nil, 0, domain.ErrInsufficientRole
	}
	return s.archiveRepo.ListByEnterprise(ctx, enterpriseID, filter)
}

func (s *archiveService) Update(ctx context.Context, input *UpdateArchiveInput) (*domain.Archive, error) {
	archive, err := s.archiveRepo.GetByID(ctx, input.EnterpriseID, input.ArchiveID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditArchive(input.Role, archive.Status) {
		return nil, domain.ErrInsufficientRole
	}

	before := *archive
	if input.Title != "" {
		archive.Title = input.Title
	}
	archive.Description = input.Description
	archive.Amount = input.Amount
	if !input.Date.IsZero() {
		archive.Date = input.Date
	}
	if len(input.Payload) > 0 {
		archive.Payload = input.Payload
	}
	archive.UpdatedAt = time.Now().UTC()

	if err := s.archiveRepo.Update(ctx, archive); err != nil {
		return nil, fmt.Errorf("archive.Update: %w", err)
	}
	s.audit(ctx, &input.UserID, "archive.update", archive.ID, &before, archive)
	return archive, nil
}

func (s *archiveService) Validate(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role) (*domain.Archive, error) {
	return s.transition(ctx, enterpriseID, archiveID, userID, role, domain.StatusValidated)
}

func (s *archiveService) Reject(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role) (*domain.Archive, error) {
	return s.transition(ctx, enterpriseID, archiveID, userID, role, domain.StatusRejected)
}

func (s *archiveService) transition(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role, to domain.ApprovalStatus) (*domain.Archive, error) {
	archive, err := s.archiveRepo.GetByID(ctx, enterpriseID, archiveID)
	if err != nil {
		return nil, err
	}

	before := *archive
	if err := domain.TransitionArchive(archive, role, to); err != nil {
		return nil, err
	}
	if err := s.archiveRepo.UpdateStatus(ctx, enterpriseID, archiveID, to); err != nil {
		return nil, fmt.Errorf("archive.transition: %w", err)
	}

	s.audit(ctx, &userID, "archive.status", archive.ID, &before, archive)
	switch to {
	case domain.StatusValidated:
		s.notifier.Success(ctx, fmt.Sprintf("Archive validée: %s", archive.Title))
	case domain.StatusRejected:
		s.notifier.Error(ctx, fmt.Sprintf("Archive refusée: %s", archive.Title))
	}
	return archive, nil
}

func (s *archiveService) Delete(ctx context.Context, enterpriseID, archiveID, userID uuid.UUID, role domain.Role) error {
	if !domain.CanReviewArchive(role) {
		return domain.ErrInsufficientRole
	}
	archive, err := s.archiveRepo.GetByID(ctx, enterpriseID, archiveID)
	if err != nil {
		return err
	}
	if err := s.archiveRepo.Delete(ctx, enterpriseID, archiveID); err != nil {
		return err
	}
	s.audit(ctx, &userID, "archive.delete", archive.ID, archive, nil)
	return nil
}

// audit records a mutation on the archive table. Failures are logged by the
// repository caller chain; an audit miss never blocks the business action.
func (s *archiveService) audit(ctx context.Context, userID *uuid.UUID, action string, recordID uuid.UUID, oldValues, newValues any) {
	entry := &domain.AuditLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		TableName: "archives",
		RecordID:  recordID.String(),
		CreatedAt: time.Now().UTC(),
	}
	if oldValues != nil {
		if b, err := json.Marshal(oldValues); err == nil {
			entry.OldValues = b
		}
	}
	if newValues != nil {
		if b, err := json.Marshal(newValues); err == nil {
			entry.NewValues = b
		}
	}
	_ = s.auditRepo.Create(ctx, entry)
}
