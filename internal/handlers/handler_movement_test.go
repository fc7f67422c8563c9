package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/cajadiaria/caja_diaria_app/internal/handlers"
	"github.com/cajadiaria/caja_diaria_app/internal/middleware"
)

// --- Mock MovementService ---

type MockMovementService struct {
	mock.Mock
}

func (m *MockMovementService) ListMovements(ctx context.Context, actingUserID string, date time.Time) ([]domain.Movement, error) {
	args := m.Called(ctx, actingUserID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementService) GetDailySummary(ctx context.Context, actingUserID string, date time.Time) (*domain.DailySummary, error) {
	args := m.Called(ctx, actingUserID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySummary), args.Error(1)
}

func (m *MockMovementService) GetTotalsByMethod(ctx context.Context, actingUserID string, date time.Time) ([]domain.MethodTotals, error) {
	args := m.Called(ctx, actingUserID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MethodTotals), args.Error(1)
}

func (m *MockMovementService) CreateMovement(ctx context.Context, actingUserID string, req dto.CreateMovementRequest) (*domain.Movement, error) {
	args := m.Called(ctx, actingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

func (m *MockMovementService) CancelMovement(ctx context.Context, actingUserID, movementID, reason string) (*domain.Movement, error) {
	args := m.Called(ctx, actingUserID, movementID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

func (m *MockMovementService) UpdateDescription(ctx context.Context, actingUserID, movementID, description string) error {
	args := m.Called(ctx, actingUserID, movementID, description)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.MovementSvcFacade = (*MockMovementService)(nil)

// --- Test Suite ---

type MovementHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockMovementService
	jwtSecret   string
}

func (suite *MovementHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "caja-diaria-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *MovementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockMovementService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterMovementRoutes(v1, suite.mockService, time.UTC)
}

// --- Test Cases ---

func (suite *MovementHandlerTestSuite) TestListMovements_Success() {
	userID := uuid.NewString()
	date := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	expected := []domain.Movement{
		{
			MovementID:   uuid.NewString(),
			OwnerID:      userID,
			MovementDate: date,
			Direction:    domain.Inflow,
			TotalAmount:  decimal.NewFromInt(450),
			CategoryID:   uuid.NewString(),
			Splits: []domain.PaymentSplit{
				{SplitID: uuid.NewString(), MethodID: uuid.NewString(), Amount: decimal.NewFromInt(450)},
			},
		},
	}

	suite.mockService.On("ListMovements", mock.Anything, userID, date).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/movements?date=2026-08-28", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body []dto.MovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal(expected[0].MovementID, body[0].MovementID)
	suite.Len(body[0].Splits, 1)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *MovementHandlerTestSuite) TestListMovements_BadDate() {
	userID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/movements?date=28-08-2026", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListMovements", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementHandlerTestSuite) TestCreateMovement_Success() {
	userID := uuid.NewString()
	categoryID := uuid.NewString()
	methodID := uuid.NewString()
	created := &domain.Movement{
		MovementID:   uuid.NewString(),
		OwnerID:      userID,
		MovementDate: time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC),
		Direction:    domain.Inflow,
		TotalAmount:  decimal.NewFromInt(300),
		CategoryID:   categoryID,
		Splits: []domain.PaymentSplit{
			{SplitID: uuid.NewString(), MethodID: methodID, Amount: decimal.NewFromInt(300)},
		},
	}

	suite.mockService.On("CreateMovement", mock.Anything, userID, mock.MatchedBy(func(r dto.CreateMovementRequest) bool {
		return r.CategoryID == categoryID && len(r.Splits) == 1
	})).Return(created, nil).Once()

	payload := fmt.Sprintf(`{"direction":"INFLOW","categoryID":%q,"date":"2026-08-28","splits":[{"methodID":%q,"amount":"300"}]}`, categoryID, methodID)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/movements", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.MovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(created.MovementID, body.MovementID)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *MovementHandlerTestSuite) TestCreateMovement_ZeroAmountRejectedByBinding() {
	userID := uuid.NewString()

	payload := `{"direction":"INFLOW","categoryID":"c1","splits":[{"methodID":"m1","amount":"0"}]}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/movements", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementHandlerTestSuite) TestCancelMovement_Forbidden() {
	userID := uuid.NewString()
	movementID := uuid.NewString()

	suite.mockService.On("CancelMovement", mock.Anything, userID, movementID, "duplicado").
		Return(nil, fmt.Errorf("%w: missing permission to cancel movements", apperrors.ErrForbidden)).Once()

	payload := `{"reason":"duplicado"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/movements/"+movementID+"/cancel", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *MovementHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/movements", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListMovements", mock.Anything, mock.Anything, mock.Anything)
}

func TestMovementHandler(t *testing.T) {
	suite.Run(t, new(MovementHandlerTestSuite))
}
