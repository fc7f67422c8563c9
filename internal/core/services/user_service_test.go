package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"google.golang.org/api/idtoken"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/core/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/cajadiaria/caja_diaria_app/internal/utils"
)

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockVerifier *MockGoogleTokenVerifier
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockVerifier = new(MockGoogleTokenVerifier)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockVerifier)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: " Carla@Example.com ", Password: "superSecret1", Name: "Carla"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "carla@example.com").Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal("carla@example.com", user.Username)
	suite.Equal("Carla", user.Name)
	suite.NotEmpty(saved.PasswordHash)
	suite.NotEqual(req.Password, saved.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
	suite.WithinDuration(time.Now(), user.CreatedAt, time.Second)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Username: "carla@example.com"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "carla@example.com").Return(existing, nil).Once()

	_, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Username: "carla@example.com", Password: "superSecret1", Name: "Carla"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "superSecret1"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "carla@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "carla@example.com").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, "Carla@Example.com", password)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authenticated.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("rightPassword")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "carla@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "carla@example.com").Return(user, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "carla@example.com", "wrongPassword")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUserIsUnauthorized() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_GoogleOnlyAccount() {
	ctx := context.Background()
	// Provisioned via Google sign-in: no password hash stored.
	user := &domain.User{UserID: uuid.NewString(), Username: "carla@example.com"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "carla@example.com").Return(user, nil).Once()

	_, err := suite.service.AuthenticateUser(ctx, "carla@example.com", "anything")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateWithGoogle_ExistingUser() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Username: "carla@example.com"}
	payload := &idtoken.Payload{Claims: map[string]interface{}{
		"email":          "Carla@Example.com",
		"email_verified": true,
		"name":           "Carla",
	}}

	suite.mockVerifier.On("ValidateGoogleIDToken", ctx, "valid-token").Return(payload, nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "carla@example.com").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateWithGoogle(ctx, "valid-token")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authenticated.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateWithGoogle_FirstSignInProvisions() {
	ctx := context.Background()
	payload := &idtoken.Payload{Claims: map[string]interface{}{
		"email":          "nueva@example.com",
		"email_verified": true,
		"name":           "Nueva Usuaria",
	}}

	suite.mockVerifier.On("ValidateGoogleIDToken", ctx, "valid-token").Return(payload, nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "nueva@example.com").Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.AuthenticateWithGoogle(ctx, "valid-token")

	suite.Require().NoError(err)
	suite.Equal("nueva@example.com", user.Username)
	suite.Equal("Nueva Usuaria", user.Name)
	suite.Empty(saved.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateWithGoogle_InvalidToken() {
	ctx := context.Background()

	suite.mockVerifier.On("ValidateGoogleIDToken", ctx, "bad-token").Return(nil, assert.AnError).Once()

	_, err := suite.service.AuthenticateWithGoogle(ctx, "bad-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByUsername", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateWithGoogle_UnverifiedEmail() {
	ctx := context.Background()
	payload := &idtoken.Payload{Claims: map[string]interface{}{
		"email":          "carla@example.com",
		"email_verified": false,
	}}

	suite.mockVerifier.On("ValidateGoogleIDToken", ctx, "valid-token").Return(payload, nil).Once()

	_, err := suite.service.AuthenticateWithGoogle(ctx, "valid-token")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestClearRefreshToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("UpdateRefreshToken", ctx, userID, "", (*time.Time)(nil)).Return(nil).Once()

	err := suite.service.ClearRefreshToken(ctx, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
