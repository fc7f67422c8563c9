package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/core/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
)

// --- Test Suite Setup ---

type MovementServiceTestSuite struct {
	suite.Suite
	mockMovementRepo *MockMovementRepository
	mockCatalogRepo  *MockCatalogRepository
	mockClosingRepo  *MockClosingRepository
	mockIdentitySvc  *MockIdentitySvc
	service          portssvc.MovementSvcFacade

	ownerID string
	date    time.Time
}

func (suite *MovementServiceTestSuite) SetupTest() {
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.mockCatalogRepo = new(MockCatalogRepository)
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.mockIdentitySvc = new(MockIdentitySvc)
	suite.service = services.NewMovementService(suite.mockMovementRepo, suite.mockCatalogRepo, suite.mockClosingRepo, suite.mockIdentitySvc, time.UTC)

	suite.ownerID = uuid.NewString()
	suite.date = time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
}

func (suite *MovementServiceTestSuite) expectOwner() {
	suite.mockIdentitySvc.On("ResolveActor", mock.Anything, suite.ownerID).Return(ownerActor(suite.ownerID), nil).Once()
}

func (suite *MovementServiceTestSuite) expectOpenDay() {
	suite.mockClosingRepo.On("FindClosingByDate", mock.Anything, suite.ownerID, suite.date).Return(nil, apperrors.ErrNotFound).Once()
}

func activeCategory(direction domain.CatalogDirection) *domain.Category {
	return &domain.Category{
		CategoryID: uuid.NewString(),
		Name:       "Ventas",
		Direction:  direction,
		IsActive:   true,
	}
}

func activeMethods(ids ...string) map[string]domain.PaymentMethod {
	methods := make(map[string]domain.PaymentMethod, len(ids))
	for _, id := range ids {
		methods[id] = domain.PaymentMethod{MethodID: id, Name: "Método " + id[:8], IsActive: true}
	}
	return methods
}

// --- Test Cases ---

func (suite *MovementServiceTestSuite) TestCreateMovement_Success() {
	ctx := context.Background()
	category := activeCategory(domain.CatalogInflow)
	cashID := uuid.NewString()
	cardID := uuid.NewString()
	req := dto.CreateMovementRequest{
		Direction:   domain.Inflow,
		CategoryID:  category.CategoryID,
		Description: " Venta mostrador ",
		Date:        "2026-08-28",
		Splits: []dto.CreateSplitRequest{
			{MethodID: cashID, Amount: decimal.NewFromInt(300)},
			{MethodID: cardID, Amount: decimal.NewFromInt(150)},
		},
	}

	suite.expectOwner()
	suite.expectOpenDay()
	suite.mockCatalogRepo.On("FindCategoryByID", ctx, suite.ownerID, category.CategoryID).Return(category, nil).Once()
	suite.mockCatalogRepo.On("FindPaymentMethodsByIDs", ctx, suite.ownerID, []string{cashID, cardID}).Return(activeMethods(cashID, cardID), nil).Once()
	suite.mockMovementRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.Movement")).Return(nil).Once()

	movement, err := suite.service.CreateMovement(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(movement)
	suite.NotEmpty(movement.MovementID)
	suite.Equal(suite.ownerID, movement.OwnerID)
	suite.True(suite.date.Equal(movement.MovementDate))
	suite.Equal(domain.Inflow, movement.Direction)
	suite.True(decimal.NewFromInt(450).Equal(movement.TotalAmount))
	suite.Equal("Venta mostrador", movement.Description)
	suite.Len(movement.Splits, 2)
	for _, split := range movement.Splits {
		suite.NotEmpty(split.SplitID)
		suite.Equal(movement.MovementID, split.MovementID)
	}
	suite.Equal(suite.ownerID, movement.CreatedBy)
	suite.WithinDuration(time.Now(), movement.CreatedAt, time.Second)

	suite.mockMovementRepo.AssertExpectations(suite.T())
	suite.mockCatalogRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestCreateMovement_DuplicateMethod() {
	ctx := context.Background()
	category := activeCategory(domain.CatalogBoth)
	methodID := uuid.NewString()
	req := dto.CreateMovementRequest{
		Direction:  domain.Inflow,
		CategoryID: category.CategoryID,
		Date:       "2026-08-28",
		Splits: []dto.CreateSplitRequest{
			{MethodID: methodID, Amount: decimal.NewFromInt(100)},
			{MethodID: methodID, Amount: decimal.NewFromInt(50)},
		},
	}

	suite.expectOwner()
	suite.expectOpenDay()
	suite.mockCatalogRepo.On("FindCategoryByID", ctx, suite.ownerID, category.CategoryID).Return(category, nil).Once()

	movement, err := suite.service.CreateMovement(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestCreateMovement_InactiveCategory() {
	ctx := context.Background()
	category := activeCategory(domain.CatalogInflow)
	category.IsActive = false
	req := dto.CreateMovementRequest{
		Direction:  domain.Inflow,
		CategoryID: category.CategoryID,
		Date:       "2026-08-28",
		Splits:     []dto.CreateSplitRequest{{MethodID: uuid.NewString(), Amount: decimal.NewFromInt(100)}},
	}

	suite.expectOwner()
	suite.expectOpenDay()
	suite.mockCatalogRepo.On("FindCategoryByID", ctx, suite.ownerID, category.CategoryID).Return(category, nil).Once()

	_, err := suite.service.CreateMovement(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MovementServiceTestSuite) TestCreateMovement_DirectionMismatch() {
	ctx := context.Background()
	category := activeCategory(domain.CatalogOutflow)
	req := dto.CreateMovementRequest{
		Direction:  domain.Inflow,
		CategoryID: category.CategoryID,
		Date:       "2026-08-28",
		Splits:     []dto.CreateSplitRequest{{MethodID: uuid.NewString(), Amount: decimal.NewFromInt(100)}},
	}

	suite.expectOwner()
	suite.expectOpenDay()
	suite.mockCatalogRepo.On("FindCategoryByID", ctx, suite.ownerID, category.CategoryID).Return(category, nil).Once()

	_, err := suite.service.CreateMovement(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MovementServiceTestSuite) TestCreateMovement_TransferCategoryRejected() {
	ctx := context.Background()
	code := domain.SystemToSecondary
	category := activeCategory(domain.CatalogOutflow)
	category.IsSystem = true
	category.SystemCode = &code
	req := dto.CreateMovementRequest{
		Direction:  domain.Outflow,
		CategoryID: category.CategoryID,
		Date:       "2026-08-28",
		Splits:     []dto.CreateSplitRequest{{MethodID: uuid.NewString(), Amount: decimal.NewFromInt(100)}},
	}

	suite.expectOwner()
	suite.expectOpenDay()
	suite.mockCatalogRepo.On("FindCategoryByID", ctx, suite.ownerID, category.CategoryID).Return(category, nil).Once()

	_, err := suite.service.CreateMovement(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestCreateMovement_ClosedDayWithoutPermission() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	actor := employeeActor(suite.ownerID, employeeID, domain.PermissionSet{CancelMovements: true})
	counted := decimal.NewFromInt(500)
	closing := &domain.DayClosing{
		ClosingID:   uuid.NewString(),
		OwnerID:     suite.ownerID,
		ClosingDate: suite.date,
		CountedCash: &counted,
		Closed:      true,
	}
	req := dto.CreateMovementRequest{
		Direction:  domain.Inflow,
		CategoryID: uuid.NewString(),
		Date:       "2026-08-28",
		Splits:     []dto.CreateSplitRequest{{MethodID: uuid.NewString(), Amount: decimal.NewFromInt(100)}},
	}

	suite.mockIdentitySvc.On("ResolveActor", mock.Anything, employeeID).Return(actor, nil).Once()
	suite.mockClosingRepo.On("FindClosingByDate", ctx, suite.ownerID, suite.date).Return(closing, nil).Once()

	_, err := suite.service.CreateMovement(ctx, employeeID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestCreateMovement_ClosedDayWithEditClosing() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	actor := employeeActor(suite.ownerID, employeeID, domain.PermissionSet{EditClosing: true})
	counted := decimal.NewFromInt(500)
	closing := &domain.DayClosing{OwnerID: suite.ownerID, ClosingDate: suite.date, CountedCash: &counted, Closed: true}
	category := activeCategory(domain.CatalogInflow)
	methodID := uuid.NewString()
	req := dto.CreateMovementRequest{
		Direction:  domain.Inflow,
		CategoryID: category.CategoryID,
		Date:       "2026-08-28",
		Splits:     []dto.CreateSplitRequest{{MethodID: methodID, Amount: decimal.NewFromInt(100)}},
	}

	suite.mockIdentitySvc.On("ResolveActor", mock.Anything, employeeID).Return(actor, nil).Once()
	suite.mockClosingRepo.On("FindClosingByDate", ctx, suite.ownerID, suite.date).Return(closing, nil).Once()
	suite.mockCatalogRepo.On("FindCategoryByID", ctx, suite.ownerID, category.CategoryID).Return(category, nil).Once()
	suite.mockCatalogRepo.On("FindPaymentMethodsByIDs", ctx, suite.ownerID, []string{methodID}).Return(activeMethods(methodID), nil).Once()
	suite.mockMovementRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.Movement")).Return(nil).Once()

	movement, err := suite.service.CreateMovement(ctx, employeeID, req)

	suite.Require().NoError(err)
	suite.Equal(employeeID, movement.CreatedBy)
	suite.Equal(suite.ownerID, movement.OwnerID)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestCreateMovement_UnknownMethod() {
	ctx := context.Background()
	category := activeCategory(domain.CatalogInflow)
	methodID := uuid.NewString()
	req := dto.CreateMovementRequest{
		Direction:  domain.Inflow,
		CategoryID: category.CategoryID,
		Date:       "2026-08-28",
		Splits:     []dto.CreateSplitRequest{{MethodID: methodID, Amount: decimal.NewFromInt(100)}},
	}

	suite.expectOwner()
	suite.expectOpenDay()
	suite.mockCatalogRepo.On("FindCategoryByID", ctx, suite.ownerID, category.CategoryID).Return(category, nil).Once()
	suite.mockCatalogRepo.On("FindPaymentMethodsByIDs", ctx, suite.ownerID, []string{methodID}).Return(map[string]domain.PaymentMethod{}, nil).Once()

	_, err := suite.service.CreateMovement(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MovementServiceTestSuite) TestCancelMovement_Success() {
	ctx := context.Background()
	movementID := uuid.NewString()
	category := activeCategory(domain.CatalogInflow)
	existing := &domain.Movement{
		MovementID:   movementID,
		OwnerID:      suite.ownerID,
		MovementDate: suite.date,
		Direction:    domain.Inflow,
		TotalAmount:  decimal.NewFromInt(200),
		CategoryID:   category.CategoryID,
	}

	suite.expectOwner()
	suite.mockMovementRepo.On("FindMovementByID", ctx, suite.ownerID, movementID).Return(existing, nil).Once()
	suite.expectOpenDay()
	suite.mockCatalogRepo.On("FindCategoryByID", ctx, suite.ownerID, category.CategoryID).Return(category, nil).Once()
	suite.mockMovementRepo.On("MarkMovementCancelled", ctx, suite.ownerID, movementID, "error de carga", suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	cancelled, err := suite.service.CancelMovement(ctx, suite.ownerID, movementID, "error de carga")

	suite.Require().NoError(err)
	suite.Require().NotNil(cancelled)
	suite.True(cancelled.Cancelled)
	suite.Equal("error de carga", cancelled.CancelReason)
	suite.NotNil(cancelled.CancelledAt)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestCancelMovement_MissingPermission() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	actor := employeeActor(suite.ownerID, employeeID, domain.PermissionSet{})

	suite.mockIdentitySvc.On("ResolveActor", mock.Anything, employeeID).Return(actor, nil).Once()

	_, err := suite.service.CancelMovement(ctx, employeeID, uuid.NewString(), "motivo")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "MarkMovementCancelled", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestCancelMovement_EmptyReason() {
	ctx := context.Background()

	suite.expectOwner()

	_, err := suite.service.CancelMovement(ctx, suite.ownerID, uuid.NewString(), "   ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MovementServiceTestSuite) TestCancelMovement_AlreadyCancelled() {
	ctx := context.Background()
	movementID := uuid.NewString()
	existing := &domain.Movement{
		MovementID:   movementID,
		OwnerID:      suite.ownerID,
		MovementDate: suite.date,
		Cancelled:    true,
	}

	suite.expectOwner()
	suite.mockMovementRepo.On("FindMovementByID", ctx, suite.ownerID, movementID).Return(existing, nil).Once()

	_, err := suite.service.CancelMovement(ctx, suite.ownerID, movementID, "motivo")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MovementServiceTestSuite) TestCancelMovement_TransferCategoryRejected() {
	ctx := context.Background()
	movementID := uuid.NewString()
	code := domain.SystemFromSecondary
	category := activeCategory(domain.CatalogInflow)
	category.IsSystem = true
	category.SystemCode = &code
	existing := &domain.Movement{
		MovementID:   movementID,
		OwnerID:      suite.ownerID,
		MovementDate: suite.date,
		CategoryID:   category.CategoryID,
	}

	suite.expectOwner()
	suite.mockMovementRepo.On("FindMovementByID", ctx, suite.ownerID, movementID).Return(existing, nil).Once()
	suite.expectOpenDay()
	suite.mockCatalogRepo.On("FindCategoryByID", ctx, suite.ownerID, category.CategoryID).Return(category, nil).Once()

	_, err := suite.service.CancelMovement(ctx, suite.ownerID, movementID, "motivo")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "MarkMovementCancelled", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestListMovements_Success() {
	ctx := context.Background()
	expected := []domain.Movement{{MovementID: uuid.NewString(), OwnerID: suite.ownerID, MovementDate: suite.date}}

	suite.expectOwner()
	suite.mockMovementRepo.On("FindMovementsByDate", ctx, suite.ownerID, suite.date).Return(expected, nil).Once()

	movements, err := suite.service.ListMovements(ctx, suite.ownerID, suite.date)

	suite.Require().NoError(err)
	suite.Equal(expected, movements)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestUpdateDescription_Success() {
	ctx := context.Background()
	movementID := uuid.NewString()
	existing := &domain.Movement{MovementID: movementID, OwnerID: suite.ownerID, MovementDate: suite.date}

	suite.expectOwner()
	suite.mockMovementRepo.On("FindMovementByID", ctx, suite.ownerID, movementID).Return(existing, nil).Once()
	suite.mockMovementRepo.On("UpdateMovementDescription", ctx, suite.ownerID, movementID, "nueva nota", suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.UpdateDescription(ctx, suite.ownerID, movementID, "  nueva nota  ")

	suite.Require().NoError(err)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestUpdateDescription_NotFound() {
	ctx := context.Background()
	movementID := uuid.NewString()

	suite.expectOwner()
	suite.mockMovementRepo.On("FindMovementByID", ctx, suite.ownerID, movementID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.UpdateDescription(ctx, suite.ownerID, movementID, "nota")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestMovementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MovementServiceTestSuite))
}
