package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portos/internal/domain"
	"portos/internal/service"
	"portos/mocks"
)

func setupLaundering() (*mocks.MockLaunderingSettingRepo, *mocks.MockLaunderingRowRepo, service.LaunderingService) {
	settingRepo := new(mocks.MockLaunderingSettingRepo)
	rowRepo := new(mocks.MockLaunderingRowRepo)
	svc := service.NewLaunderingService(settingRepo, rowRepo)
	return settingRepo, rowRepo, svc
}

func TestSettings_DelegatesToGlobalScope(t *testing.T) {
	settingRepo, _, svc := setupLaundering()

	enterpriseID := uuid.New()
	settingRepo.On("GetByEnterprise", mock.Anything, enterpriseID).Return(&domain.LaunderingSetting{
		EnterpriseID: enterpriseID,
		IsEnabled:    true,
		UseGlobal:    true,
	}, nil)
	settingRepo.On("GetGlobal", mock.Anything).Return(&domain.LaunderingSetting{
		PercEnterprise: 15,
		PercGroup:      10,
	}, nil)

	setting, err := svc.Settings(context.Background(), enterpriseID, domain.RolePatron)

	require.NoError(t, err)
	assert.True(t, setting.IsEnabled)
	assert.Equal(t, 15.0, setting.PercEnterprise)
	assert.Equal(t, 10.0, setting.PercGroup)
}

func TestSettings_MissingRowDefaultsToDisabled(t *testing.T) {
	settingRepo, _, svc := setupLaundering()

	enterpriseID := uuid.New()
	settingRepo.On("GetByEnterprise", mock.Anything, enterpriseID).Return(nil, domain.ErrNotFound)
	settingRepo.On("GetGlobal", mock.Anything).Return(nil, domain.ErrNotFound)

	setting, err := svc.Settings(context.Background(), enterpriseID, domain.RoleStaff)

	require.NoError(t, err)
	assert.False(t, setting.IsEnabled)
}

func TestUpdateSettings_StaffOnly(t *testing.T) {
	_, _, svc := setupLaundering()

	_, err := svc.UpdateSettings(context.Background(), &service.UpdateSettingsInput{
		Role: domain.RolePatron,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestUpdateSettings_RejectsOutOfRangePercentage(t *testing.T) {
	_, _, svc := setupLaundering()

	_, err := svc.UpdateSettings(context.Background(), &service.UpdateSettingsInput{
		Role:           domain.RoleStaff,
		PercEnterprise: 150,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateRow_SnapshotsPercentagesAndDuration(t *testing.T) {
	settingRepo, rowRepo, svc := setupLaundering()

	enterpriseID := uuid.New()
	settingRepo.On("GetByEnterprise", mock.Anything, enterpriseID).Return(&domain.LaunderingSetting{
		EnterpriseID:   enterpriseID,
		IsEnabled:      true,
		PercEnterprise: 20,
		PercGroup:      5,
	}, nil)
	rowRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.LaunderingRow")).Return(nil)

	received := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	returned := time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC)
	row, err := svc.CreateRow(context.Background(), &service.LaunderingRowInput{
		EnterpriseID: enterpriseID,
		CreatedBy:    uuid.New(),
		Role:         domain.RoleCoPatron,
		DateReceived: &received,
		DateReturned: &returned,
		Group:        "Les Ballas",
		Employee:     "Jean Dupont",
		Amount:       50000,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.LaunderingInProgress, row.Status)
	require.NotNil(t, row.DurationDays)
	assert.Equal(t, 7, *row.DurationDays)
	assert.Equal(t, 20.0, row.PercEnterprise)
	assert.Equal(t, 5.0, row.PercGroup)

	rowRepo.AssertExpectations(t)
}

func TestCreateRow_DisabledModule(t *testing.T) {
	settingRepo, _, svc := setupLaundering()

	enterpriseID := uuid.New()
	settingRepo.On("GetByEnterprise", mock.Anything, enterpriseID).Return(&domain.LaunderingSetting{
		EnterpriseID: enterpriseID,
		IsEnabled:    false,
	}, nil)

	_, err := svc.CreateRow(context.Background(), &service.LaunderingRowInput{
		EnterpriseID: enterpriseID,
		Role:         domain.RolePatron,
		Group:        "Les Ballas",
		Employee:     "Jean Dupont",
		Amount:       100,
	})

	assert.ErrorIs(t, err, domain.ErrLaunderingDisabled)
}

func TestCreateRow_ValidatesRequiredFields(t *testing.T) {
	settingRepo, _, svc := setupLaundering()

	enterpriseID := uuid.New()
	settingRepo.On("GetByEnterprise", mock.Anything, enterpriseID).Return(&domain.LaunderingSetting{
		EnterpriseID: enterpriseID,
		IsEnabled:    true,
	}, nil)

	_, err := svc.CreateRow(context.Background(), &service.LaunderingRowInput{
		EnterpriseID: enterpriseID,
		Role:         domain.RolePatron,
		Group:        "Les Ballas",
		// Employee missing, amount zero.
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestImportRows_SkipsInvalidLines(t *testing.T) {
	settingRepo, rowRepo, svc := setupLaundering()

	enterpriseID := uuid.New()
	settingRepo.On("GetByEnterprise", mock.Anything, enterpriseID).Return(&domain.LaunderingSetting{
		EnterpriseID:   enterpriseID,
		IsEnabled:      true,
		PercEnterprise: 10,
		PercGroup:      10,
	}, nil)
	rowRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.LaunderingRow")).Return(nil)

	text := "En cours;2025-07-01;2025-07-08;Les Ballas;Jean Dupont;D1;R1;50000\n" +
		"En cours;2025-07-02;;Vagos;Marie Curie;D2;R2;30000\n" +
		"En cours;2025-07-03;;Vagos;;D3;R3;0"

	result, err := svc.ImportRows(context.Background(), enterpriseID, uuid.New(), domain.RoleStaff, text)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Valid)
	assert.Equal(t, 1, result.Skipped)
	require.NotNil(t, result.Rows[0].DurationDays)
	assert.Equal(t, 7, *result.Rows[0].DurationDays)
	assert.Nil(t, result.Rows[1].DurationDays)
}

func TestDeleteRow_StaffIsReadOnly(t *testing.T) {
	_, _, svc := setupLaundering()

	err := svc.DeleteRow(context.Background(), uuid.New(), uuid.New(), domain.RoleStaff)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
