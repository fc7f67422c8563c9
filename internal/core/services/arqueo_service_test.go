package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portsrepo "github.com/cajadiaria/caja_diaria_app/internal/core/ports/repositories"
	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/core/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
)

// --- Test Suite Setup ---

type ArqueoServiceTestSuite struct {
	suite.Suite
	mockArqueoRepo   *MockArqueoRepository
	mockCatalogRepo  *MockCatalogRepository
	mockIdentitySvc  *MockIdentitySvc
	mockSecondarySvc *MockSecondarySvc
	service          portssvc.ArqueoSvcFacade

	ownerID string
	date    time.Time
}

func (suite *ArqueoServiceTestSuite) SetupTest() {
	suite.mockArqueoRepo = new(MockArqueoRepository)
	suite.mockCatalogRepo = new(MockCatalogRepository)
	suite.mockIdentitySvc = new(MockIdentitySvc)
	suite.mockSecondarySvc = new(MockSecondarySvc)
	suite.service = services.NewArqueoService(suite.mockArqueoRepo, suite.mockCatalogRepo, suite.mockIdentitySvc, suite.mockSecondarySvc)

	suite.ownerID = uuid.NewString()
	suite.date = time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
}

func (suite *ArqueoServiceTestSuite) expectOwner() {
	suite.mockIdentitySvc.On("ResolveActor", mock.Anything, suite.ownerID).Return(ownerActor(suite.ownerID), nil).Once()
}

// --- Test Cases ---

func (suite *ArqueoServiceTestSuite) TestCreateArqueo_Success() {
	ctx := context.Background()
	adjustmentCode := domain.SystemCashAdjustment
	adjustmentCategory := &domain.Category{CategoryID: uuid.NewString(), Name: "Ajuste de caja", IsSystem: true, SystemCode: &adjustmentCode, IsActive: true}
	cashCode := domain.SystemCash
	cash := &domain.PaymentMethod{MethodID: uuid.NewString(), Name: "Efectivo", IsCash: true, IsSystem: true, SystemCode: &cashCode, IsActive: true}
	req := dto.CreateArqueoRequest{Date: "2026-08-28", CountedCash: decimal.NewFromInt(980), Reason: " faltante chico "}

	suite.expectOwner()
	suite.mockCatalogRepo.On("FindSystemCategory", ctx, domain.SystemCashAdjustment).Return(adjustmentCategory, nil).Once()
	suite.mockCatalogRepo.On("FindSystemPaymentMethod", ctx, domain.SystemCash).Return(cash, nil).Once()

	var captured portsrepo.CreateArqueoParams
	suite.mockArqueoRepo.On("CreateArqueo", ctx, mock.AnythingOfType("repositories.CreateArqueoParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.CreateArqueoParams)
		}).
		Return(&domain.Arqueo{
			ArqueoID:     uuid.NewString(),
			OwnerID:      suite.ownerID,
			ArqueoDate:   suite.date,
			ExpectedCash: decimal.NewFromInt(1000),
			CountedCash:  req.CountedCash,
			Difference:   decimal.NewFromInt(-20),
		}, nil).Once()

	arqueo, err := suite.service.CreateArqueo(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(arqueo)
	suite.True(decimal.NewFromInt(-20).Equal(arqueo.Difference))

	// The service pre-generates every ID and resolves the system rows so the
	// repository transaction never needs a catalog lookup.
	suite.NotEmpty(captured.Arqueo.ArqueoID)
	suite.NotEmpty(captured.AdjustmentMovementID)
	suite.NotEmpty(captured.AdjustmentSplitID)
	suite.Equal(adjustmentCategory.CategoryID, captured.AdjustmentCategoryID)
	suite.Equal(cash.MethodID, captured.CashMethodID)
	suite.Equal("faltante chico", captured.Arqueo.DifferenceReason)
	suite.Equal(suite.ownerID, captured.Arqueo.OwnerID)

	suite.mockArqueoRepo.AssertExpectations(suite.T())
	suite.mockCatalogRepo.AssertExpectations(suite.T())
}

func (suite *ArqueoServiceTestSuite) TestCreateArqueo_NegativeCount() {
	ctx := context.Background()
	req := dto.CreateArqueoRequest{Date: "2026-08-28", CountedCash: decimal.NewFromInt(-1)}

	suite.expectOwner()

	_, err := suite.service.CreateArqueo(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockArqueoRepo.AssertNotCalled(suite.T(), "CreateArqueo", mock.Anything, mock.Anything)
}

func (suite *ArqueoServiceTestSuite) TestCreateArqueo_MissingSystemCategory() {
	ctx := context.Background()
	req := dto.CreateArqueoRequest{Date: "2026-08-28", CountedCash: decimal.NewFromInt(100)}

	suite.expectOwner()
	suite.mockCatalogRepo.On("FindSystemCategory", ctx, domain.SystemCashAdjustment).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateArqueo(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.mockArqueoRepo.AssertNotCalled(suite.T(), "CreateArqueo", mock.Anything, mock.Anything)
}

func (suite *ArqueoServiceTestSuite) TestCreateArqueo_RepoError() {
	ctx := context.Background()
	adjustmentCode := domain.SystemCashAdjustment
	adjustmentCategory := &domain.Category{CategoryID: uuid.NewString(), IsSystem: true, SystemCode: &adjustmentCode, IsActive: true}
	cashCode := domain.SystemCash
	cash := &domain.PaymentMethod{MethodID: uuid.NewString(), IsCash: true, IsSystem: true, SystemCode: &cashCode, IsActive: true}
	req := dto.CreateArqueoRequest{Date: "2026-08-28", CountedCash: decimal.NewFromInt(100)}

	suite.expectOwner()
	suite.mockCatalogRepo.On("FindSystemCategory", ctx, domain.SystemCashAdjustment).Return(adjustmentCategory, nil).Once()
	suite.mockCatalogRepo.On("FindSystemPaymentMethod", ctx, domain.SystemCash).Return(cash, nil).Once()
	suite.mockArqueoRepo.On("CreateArqueo", ctx, mock.AnythingOfType("repositories.CreateArqueoParams")).Return(nil, assert.AnError).Once()

	_, err := suite.service.CreateArqueo(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ArqueoServiceTestSuite) TestExpectedCash_Success() {
	ctx := context.Background()
	expected := decimal.NewFromInt(1234)

	suite.expectOwner()
	suite.mockArqueoRepo.On("ComputeExpectedCash", ctx, suite.ownerID, suite.date).Return(expected, nil).Once()

	got, err := suite.service.ExpectedCash(ctx, suite.ownerID, suite.date)

	suite.Require().NoError(err)
	suite.True(expected.Equal(got))
}

func (suite *ArqueoServiceTestSuite) TestLatestArqueo_NoneForDate() {
	ctx := context.Background()

	suite.expectOwner()
	suite.mockArqueoRepo.On("ListArqueosByDate", ctx, suite.ownerID, suite.date).Return([]domain.Arqueo{}, nil).Once()

	_, err := suite.service.LatestArqueo(ctx, suite.ownerID, suite.date)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ArqueoServiceTestSuite) TestLatestArqueo_ReturnsFirst() {
	ctx := context.Background()
	newest := domain.Arqueo{ArqueoID: uuid.NewString(), OwnerID: suite.ownerID, ArqueoDate: suite.date}
	older := domain.Arqueo{ArqueoID: uuid.NewString(), OwnerID: suite.ownerID, ArqueoDate: suite.date}

	suite.expectOwner()
	suite.mockArqueoRepo.On("ListArqueosByDate", ctx, suite.ownerID, suite.date).Return([]domain.Arqueo{newest, older}, nil).Once()

	latest, err := suite.service.LatestArqueo(ctx, suite.ownerID, suite.date)

	suite.Require().NoError(err)
	suite.Equal(newest.ArqueoID, latest.ArqueoID)
}

func (suite *ArqueoServiceTestSuite) TestDeleteArqueo_Success() {
	ctx := context.Background()
	arqueoID := uuid.NewString()

	suite.expectOwner()
	suite.mockArqueoRepo.On("DeleteArqueo", ctx, suite.ownerID, arqueoID).Return(nil).Once()

	err := suite.service.DeleteArqueo(ctx, suite.ownerID, arqueoID)

	suite.Require().NoError(err)
	suite.mockArqueoRepo.AssertExpectations(suite.T())
}

func (suite *ArqueoServiceTestSuite) TestDeleteArqueo_MissingPermission() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	actor := employeeActor(suite.ownerID, employeeID, domain.PermissionSet{EditClosing: true})

	suite.mockIdentitySvc.On("ResolveActor", mock.Anything, employeeID).Return(actor, nil).Once()

	err := suite.service.DeleteArqueo(ctx, employeeID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockArqueoRepo.AssertNotCalled(suite.T(), "DeleteArqueo", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ArqueoServiceTestSuite) TestMoveSurplusToSecondary_Success() {
	ctx := context.Background()
	arqueoID := uuid.NewString()
	arqueo := &domain.Arqueo{
		ArqueoID:   arqueoID,
		OwnerID:    suite.ownerID,
		ArqueoDate: suite.date,
		Difference: decimal.NewFromInt(50),
	}
	moved := &domain.SecondaryMovement{SecondaryMovementID: uuid.NewString(), Origin: domain.OriginReconciliationIn}

	suite.expectOwner()
	suite.mockArqueoRepo.On("FindArqueoByID", ctx, suite.ownerID, arqueoID).Return(arqueo, nil).Once()
	suite.mockSecondarySvc.On("TransferFromReconciliation", ctx, suite.ownerID, arqueo.Difference, suite.date, mock.AnythingOfType("string")).Return(moved, nil).Once()

	secondary, err := suite.service.MoveSurplusToSecondary(ctx, suite.ownerID, arqueoID)

	suite.Require().NoError(err)
	suite.Equal(moved.SecondaryMovementID, secondary.SecondaryMovementID)
	suite.mockSecondarySvc.AssertExpectations(suite.T())
}

func (suite *ArqueoServiceTestSuite) TestMoveSurplusToSecondary_NoSurplus() {
	ctx := context.Background()
	arqueoID := uuid.NewString()
	arqueo := &domain.Arqueo{
		ArqueoID:   arqueoID,
		OwnerID:    suite.ownerID,
		ArqueoDate: suite.date,
		Difference: decimal.NewFromInt(-30),
	}

	suite.expectOwner()
	suite.mockArqueoRepo.On("FindArqueoByID", ctx, suite.ownerID, arqueoID).Return(arqueo, nil).Once()

	_, err := suite.service.MoveSurplusToSecondary(ctx, suite.ownerID, arqueoID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSecondarySvc.AssertNotCalled(suite.T(), "TransferFromReconciliation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestArqueoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ArqueoServiceTestSuite))
}
