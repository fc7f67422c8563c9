package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/core/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
)

// --- Test Suite Setup ---

type IdentityServiceTestSuite struct {
	suite.Suite
	mockIdentityRepo *MockIdentityRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.IdentitySvc
}

func (suite *IdentityServiceTestSuite) SetupTest() {
	suite.mockIdentityRepo = new(MockIdentityRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewIdentityService(suite.mockIdentityRepo, suite.mockUserRepo)
}

// --- Test Cases ---

func (suite *IdentityServiceTestSuite) TestResolveActor_OwnOwnerFallback() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockIdentityRepo.On("FindEmploymentByUser", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	actor, err := suite.service.ResolveActor(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(userID, actor.OwnerID)
	suite.Equal(userID, actor.ActingUserID)
	suite.True(actor.IsOwner)
	suite.Equal(domain.AllPermissions(), actor.Permissions)
}

func (suite *IdentityServiceTestSuite) TestResolveActor_Employee() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	employeeID := uuid.NewString()
	perms := domain.PermissionSet{ManageSecondary: true}
	employment := &domain.Employment{OwnerID: ownerID, EmployeeUserID: employeeID, Permissions: perms, IsActive: true}

	suite.mockIdentityRepo.On("FindEmploymentByUser", ctx, employeeID).Return(employment, nil).Once()

	actor, err := suite.service.ResolveActor(ctx, employeeID)

	suite.Require().NoError(err)
	suite.Equal(ownerID, actor.OwnerID)
	suite.Equal(employeeID, actor.ActingUserID)
	suite.False(actor.IsOwner)
	suite.Equal(perms, actor.Permissions)
	suite.True(actor.Allows(actor.Permissions.ManageSecondary))
	suite.False(actor.Allows(actor.Permissions.CancelMovements))
}

func (suite *IdentityServiceTestSuite) TestResolveActor_EmptyUserID() {
	ctx := context.Background()

	_, err := suite.service.ResolveActor(ctx, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockIdentityRepo.AssertNotCalled(suite.T(), "FindEmploymentByUser", mock.Anything, mock.Anything)
}

func (suite *IdentityServiceTestSuite) TestUpsertEmployment_Success() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	employeeID := uuid.NewString()
	req := dto.UpsertEmploymentRequest{
		EmployeeUserID: employeeID,
		Permissions:    domain.PermissionSet{CancelMovements: true, ManageSecondary: true},
	}

	suite.mockIdentityRepo.On("FindEmploymentByUser", ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).Return(&domain.User{UserID: employeeID, Username: "empleado"}, nil).Once()
	suite.mockIdentityRepo.On("UpsertEmployment", ctx, mock.AnythingOfType("domain.Employment")).Return(nil).Once()

	employment, err := suite.service.UpsertEmployment(ctx, ownerID, req)

	suite.Require().NoError(err)
	suite.Equal(ownerID, employment.OwnerID)
	suite.Equal(employeeID, employment.EmployeeUserID)
	suite.Equal(req.Permissions, employment.Permissions)
	suite.True(employment.IsActive)
	suite.mockIdentityRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestUpsertEmployment_EmployedElsewhere() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	employeeID := uuid.NewString()
	req := dto.UpsertEmploymentRequest{EmployeeUserID: employeeID}

	suite.mockIdentityRepo.On("FindEmploymentByUser", ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).Return(&domain.User{UserID: employeeID, Username: "empleado"}, nil).Once()
	suite.mockIdentityRepo.On("UpsertEmployment", ctx, mock.AnythingOfType("domain.Employment")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.UpsertEmployment(ctx, ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockIdentityRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestUpsertEmployment_OnlyOwnerMay() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	employeeID := uuid.NewString()
	employment := &domain.Employment{OwnerID: ownerID, EmployeeUserID: employeeID, IsActive: true}

	suite.mockIdentityRepo.On("FindEmploymentByUser", ctx, employeeID).Return(employment, nil).Once()

	_, err := suite.service.UpsertEmployment(ctx, employeeID, dto.UpsertEmploymentRequest{EmployeeUserID: uuid.NewString()})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockIdentityRepo.AssertNotCalled(suite.T(), "UpsertEmployment", mock.Anything, mock.Anything)
}

func (suite *IdentityServiceTestSuite) TestUpsertEmployment_SelfRejected() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	suite.mockIdentityRepo.On("FindEmploymentByUser", ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpsertEmployment(ctx, ownerID, dto.UpsertEmploymentRequest{EmployeeUserID: ownerID})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *IdentityServiceTestSuite) TestUpsertEmployment_UnknownUser() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	employeeID := uuid.NewString()

	suite.mockIdentityRepo.On("FindEmploymentByUser", ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, employeeID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpsertEmployment(ctx, ownerID, dto.UpsertEmploymentRequest{EmployeeUserID: employeeID})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *IdentityServiceTestSuite) TestDeactivateEmployment_Success() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	employeeID := uuid.NewString()

	suite.mockIdentityRepo.On("FindEmploymentByUser", ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockIdentityRepo.On("DeactivateEmployment", ctx, ownerID, employeeID, ownerID).Return(nil).Once()

	err := suite.service.DeactivateEmployment(ctx, ownerID, employeeID)

	suite.Require().NoError(err)
	suite.mockIdentityRepo.AssertExpectations(suite.T())
}

func (suite *IdentityServiceTestSuite) TestListEmployments_OnlyOwnerMay() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	employeeID := uuid.NewString()
	employment := &domain.Employment{OwnerID: ownerID, EmployeeUserID: employeeID, IsActive: true}

	suite.mockIdentityRepo.On("FindEmploymentByUser", ctx, employeeID).Return(employment, nil).Once()

	_, err := suite.service.ListEmployments(ctx, employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestIdentityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityServiceTestSuite))
}
