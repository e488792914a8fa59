package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portos/internal/domain"
	"portos/internal/port"
	"portos/internal/service"
	"portos/mocks"
)

func setupArchive() (*mocks.MockArchiveRepo, *mocks.MockAuditLogRepo, *mocks.MockNotifier, service.ArchiveService) {
	archiveRepo := new(mocks.MockArchiveRepo)
	auditRepo := new(mocks.MockAuditLogRepo)
	notifier := new(mocks.MockNotifier)
	svc := service.NewArchiveService(archiveRepo, auditRepo, notifier)
	return archiveRepo, auditRepo, notifier, svc
}

func pendingArchive(enterpriseID uuid.UUID) *domain.Archive {
	return &domain.Archive{
		ID:           uuid.New(),
		EnterpriseID: enterpriseID,
		CreatedBy:    uuid.New(),
		Title:        "Facture Juillet",
		Category:     domain.ArchiveDotation,
		Status:       domain.StatusPending,
		Amount:       12500,
	}
}

func TestCreateArchive_StartsPendingAndNotifies(t *testing.T) {
	archiveRepo, auditRepo, notifier, svc := setupArchive()

	archiveRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Archive")).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).Return(nil)
	notifier.On("Success", mock.Anything, mock.AnythingOfType("string")).Return()

	archive, err := svc.Create(context.Background(), &service.CreateArchiveInput{
		EnterpriseID: uuid.New(),
		CreatedBy:    uuid.New(),
		Role:         domain.RolePatron,
		Title:        "Facture Juillet",
		Category:     domain.ArchiveDotation,
		Amount:       12500,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, archive.Status)
	assert.False(t, archive.Date.IsZero())
	notifier.AssertCalled(t, "Success", mock.Anything, "Archive envoyée: Facture Juillet (Dotation)")
}

func TestCreateArchive_DeniedForEmploye(t *testing.T) {
	_, _, _, svc := setupArchive()

	_, err := svc.Create(context.Background(), &service.CreateArchiveInput{
		Role:     domain.RoleEmploye,
		Title:    "Facture Juillet",
		Category: domain.ArchiveDotation,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestCreateArchive_RequiresTitleAndCategory(t *testing.T) {
	_, _, _, svc := setupArchive()

	_, err := svc.Create(context.Background(), &service.CreateArchiveInput{
		Role:  domain.RolePatron,
		Title: "Facture Juillet",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidateArchive_StaffOnly(t *testing.T) {
	archiveRepo, _, _, svc := setupArchive()

	enterpriseID := uuid.New()
	archive := pendingArchive(enterpriseID)
	archiveRepo.On("GetByID", mock.Anything, enterpriseID, archive.ID).Return(archive, nil)

	_, err := svc.Validate(context.Background(), enterpriseID, archive.ID, uuid.New(), domain.RolePatron)

	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	assert.Equal(t, domain.StatusPending, archive.Status)
	archiveRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateArchive_FromPending(t *testing.T) {
	archiveRepo, auditRepo, notifier, svc := setupArchive()

	enterpriseID := uuid.New()
	archive := pendingArchive(enterpriseID)
	archiveRepo.On("GetByID", mock.Anything, enterpriseID, archive.ID).Return(archive, nil)
	archiveRepo.On("UpdateStatus", mock.Anything, enterpriseID, archive.ID, domain.StatusValidated).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).Return(nil)
	notifier.On("Success", mock.Anything, "Archive validée: Facture Juillet").Return()

	out, err := svc.Validate(context.Background(), enterpriseID, archive.ID, uuid.New(), domain.RoleStaff)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusValidated, out.Status)
	archiveRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestValidateArchive_AllowedFromRejected(t *testing.T) {
	archiveRepo, auditRepo, notifier, svc := setupArchive()

	enterpriseID := uuid.New()
	archive := pendingArchive(enterpriseID)
	archive.Status = domain.StatusRejected
	archiveRepo.On("GetByID", mock.Anything, enterpriseID, archive.ID).Return(archive, nil)
	archiveRepo.On("UpdateStatus", mock.Anything, enterpriseID, archive.ID, domain.StatusValidated).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).Return(nil)
	notifier.On("Success", mock.Anything, mock.AnythingOfType("string")).Return()

	out, err := svc.Validate(context.Background(), enterpriseID, archive.ID, uuid.New(), domain.RoleStaff)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusValidated, out.Status)
}

func TestRejectArchive_ValidatedIsTerminal(t *testing.T) {
	archiveRepo, _, _, svc := setupArchive()

	enterpriseID := uuid.New()
	archive := pendingArchive(enterpriseID)
	archive.Status = domain.StatusValidated
	archiveRepo.On("GetByID", mock.Anything, enterpriseID, archive.ID).Return(archive, nil)

	_, err := svc.Reject(context.Background(), enterpriseID, archive.ID, uuid.New(), domain.RoleStaff)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.StatusValidated, archive.Status)
}

func TestRejectArchive_NotifiesError(t *testing.T) {
	archiveRepo, auditRepo, notifier, svc := setupArchive()

	enterpriseID := uuid.New()
	archive := pendingArchive(enterpriseID)
	archiveRepo.On("GetByID", mock.Anything, enterpriseID, archive.ID).Return(archive, nil)
	archiveRepo.On("UpdateStatus", mock.Anything, enterpriseID, archive.ID, domain.StatusRejected).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).Return(nil)
	notifier.On("Error", mock.Anything, "Archive refusée: Facture Juillet").Return()

	out, err := svc.Reject(context.Background(), enterpriseID, archive.ID, uuid.New(), domain.RoleStaff)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, out.Status)
	notifier.AssertExpectations(t)
}

func TestUpdateArchive_PatronCanEditRejectedOnly(t *testing.T) {
	archiveRepo, auditRepo, _, svc := setupArchive()

	enterpriseID := uuid.New()
	pending := pendingArchive(enterpriseID)
	archiveRepo.On("GetByID", mock.Anything, enterpriseID, pending.ID).Return(pending, nil)

	_, err := svc.Update(context.Background(), &service.UpdateArchiveInput{
		EnterpriseID: enterpriseID,
		ArchiveID:    pending.ID,
		UserID:       uuid.New(),
		Role:         domain.RolePatron,
		Title:        "Facture corrigée",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)

	rejected := pendingArchive(enterpriseID)
	rejected.Status = domain.StatusRejected
	archiveRepo.On("GetByID", mock.Anything, enterpriseID, rejected.ID).Return(rejected, nil)
	archiveRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Archive")).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

	out, err := svc.Update(context.Background(), &service.UpdateArchiveInput{
		EnterpriseID: enterpriseID,
		ArchiveID:    rejected.ID,
		UserID:       uuid.New(),
		Role:         domain.RolePatron,
		Title:        "Facture corrigée",
	})

	require.NoError(t, err)
	assert.Equal(t, "Facture corrigée", out.Title)
	// A rejected archive keeps its status until staff reviews it again.
	assert.Equal(t, domain.StatusRejected, out.Status)
}

func TestDeleteArchive_StaffOnly(t *testing.T) {
	_, _, _, svc := setupArchive()

	err := svc.Delete(context.Background(), uuid.New(), uuid.New(), uuid.New(), domain.RolePatron)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestListArchives_DeniedForEmploye(t *testing.T) {
	_, _, _, svc := setupArchive()

	_, _, err := svc.List(context.Background(), uuid.New(), domain.RoleEmploye, port.ArchiveFilter{})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}
