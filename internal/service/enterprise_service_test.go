package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portos/internal/domain"
	"portos/internal/service"
	"portos/mocks"
)

func setupEnterprise() (*mocks.MockEnterpriseRepo, *mocks.MockUserRepo, service.EnterpriseService) {
	enterpriseRepo := new(mocks.MockEnterpriseRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewEnterpriseService(enterpriseRepo, userRepo)
	return enterpriseRepo, userRepo, svc
}

func TestCreateEnterprise_StaffOnly(t *testing.T) {
	_, _, svc := setupEnterprise()

	_, err := svc.Create(context.Background(), &service.EnterpriseInput{
		Role:    domain.RolePatron,
		Name:    "Bahama Mamas",
		GuildID: "guild-1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestCreateEnterprise_RequiresNameAndGuild(t *testing.T) {
	_, _, svc := setupEnterprise()

	_, err := svc.Create(context.Background(), &service.EnterpriseInput{
		Role: domain.RoleStaff,
		Name: "Bahama Mamas",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateEnterprise_StartsActive(t *testing.T) {
	enterpriseRepo, _, svc := setupEnterprise()

	enterpriseRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Enterprise")).Return(nil)

	e, err := svc.Create(context.Background(), &service.EnterpriseInput{
		Role:         domain.RoleStaff,
		Name:         "Bahama Mamas",
		GuildID:      "guild-1",
		PatronRoleID: "role-patron",
	})

	require.NoError(t, err)
	assert.True(t, e.IsActive)
	assert.Equal(t, "role-patron", e.PatronRoleID)
}

func TestSetMemberActive_ChecksMembership(t *testing.T) {
	_, userRepo, svc := setupEnterprise()

	enterpriseID := uuid.New()
	otherEnterprise := uuid.New()
	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:           userID,
		EnterpriseID: &otherEnterprise,
	}, nil)

	_, err := svc.SetMemberActive(context.Background(), enterpriseID, userID, domain.RoleStaff, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetMemberActive_UpdatesFlag(t *testing.T) {
	_, userRepo, svc := setupEnterprise()

	enterpriseID := uuid.New()
	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:           userID,
		EnterpriseID: &enterpriseID,
		IsActive:     true,
	}, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.SetMemberActive(context.Background(), enterpriseID, userID, domain.RoleStaff, false)

	require.NoError(t, err)
	assert.False(t, user.IsActive)
	userRepo.AssertExpectations(t)
}

func TestListMembers_DeniedForDot(t *testing.T) {
	_, _, svc := setupEnterprise()

	_, _, err := svc.ListMembers(context.Background(), uuid.New(), domain.RoleDot, 0, 20)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}
