package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"google.golang.org/api/idtoken"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portsrepo "github.com/cajadiaria/caja_diaria_app/internal/core/ports/repositories"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
)

// Shared mocks for the service test suites. Each mock implements the
// corresponding ports interface; suites wire only the ones their service
// under test depends on.

// --- MockIdentityRepository ---

type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) FindEmploymentByUser(ctx context.Context, employeeUserID string) (*domain.Employment, error) {
	args := m.Called(ctx, employeeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employment), args.Error(1)
}

func (m *MockIdentityRepository) ListEmployments(ctx context.Context, ownerID string) ([]domain.Employment, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employment), args.Error(1)
}

func (m *MockIdentityRepository) UpsertEmployment(ctx context.Context, employment domain.Employment) error {
	args := m.Called(ctx, employment)
	return args.Error(0)
}

func (m *MockIdentityRepository) DeactivateEmployment(ctx context.Context, ownerID, employeeUserID, updatedBy string) error {
	args := m.Called(ctx, ownerID, employeeUserID, updatedBy)
	return args.Error(0)
}

// --- MockUserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

// --- MockCatalogRepository ---

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context, ownerID string, direction *domain.CatalogDirection) ([]domain.Category, error) {
	args := m.Called(ctx, ownerID, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCatalogRepository) FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, ownerID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogRepository) FindSystemCategory(ctx context.Context, code domain.SystemCode) (*domain.Category, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListPaymentMethods(ctx context.Context, ownerID string) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

func (m *MockCatalogRepository) FindPaymentMethodByID(ctx context.Context, ownerID, methodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, ownerID, methodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockCatalogRepository) FindPaymentMethodsByIDs(ctx context.Context, ownerID string, methodIDs []string) (map[string]domain.PaymentMethod, error) {
	args := m.Called(ctx, ownerID, methodIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PaymentMethod), args.Error(1)
}

func (m *MockCatalogRepository) FindSystemPaymentMethod(ctx context.Context, code domain.SystemCode) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockCatalogRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

// --- MockMovementRepository ---

type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, ownerID, movementID string) (*domain.Movement, error) {
	args := m.Called(ctx, ownerID, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindMovementsByDate(ctx context.Context, ownerID string, date time.Time) ([]domain.Movement, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) GetDailySummary(ctx context.Context, ownerID string, date time.Time) (*domain.DailySummary, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySummary), args.Error(1)
}

func (m *MockMovementRepository) GetTotalsByMethod(ctx context.Context, ownerID string, date time.Time) ([]domain.MethodTotals, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MethodTotals), args.Error(1)
}

func (m *MockMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) MarkMovementCancelled(ctx context.Context, ownerID, movementID, reason, cancelledBy string, at time.Time) error {
	args := m.Called(ctx, ownerID, movementID, reason, cancelledBy, at)
	return args.Error(0)
}

func (m *MockMovementRepository) UpdateMovementDescription(ctx context.Context, ownerID, movementID, description, updatedBy string, at time.Time) error {
	args := m.Called(ctx, ownerID, movementID, description, updatedBy, at)
	return args.Error(0)
}

func (m *MockMovementRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockMovementRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockMovementRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- MockClosingRepository ---

type MockClosingRepository struct {
	mock.Mock
}

func (m *MockClosingRepository) FindClosingByDate(ctx context.Context, ownerID string, date time.Time) (*domain.DayClosing, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DayClosing), args.Error(1)
}

func (m *MockClosingRepository) UpsertOpeningBalance(ctx context.Context, closing domain.DayClosing) (*domain.DayClosing, error) {
	args := m.Called(ctx, closing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DayClosing), args.Error(1)
}

func (m *MockClosingRepository) UpsertClose(ctx context.Context, closing domain.DayClosing) (*domain.DayClosing, error) {
	args := m.Called(ctx, closing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DayClosing), args.Error(1)
}

func (m *MockClosingRepository) Reopen(ctx context.Context, ownerID string, date time.Time, updatedBy string, at time.Time) error {
	args := m.Called(ctx, ownerID, date, updatedBy, at)
	return args.Error(0)
}

func (m *MockClosingRepository) ListUnclosedPastDays(ctx context.Context, ownerID string, before time.Time) ([]time.Time, error) {
	args := m.Called(ctx, ownerID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

// --- MockSecondaryRepository ---

type MockSecondaryRepository struct {
	mock.Mock
}

func (m *MockSecondaryRepository) SaveTransferPair(ctx context.Context, principal domain.Movement, secondary domain.SecondaryMovement, enforceBalance bool) error {
	args := m.Called(ctx, principal, secondary, enforceBalance)
	return args.Error(0)
}

func (m *MockSecondaryRepository) SaveSecondaryExpense(ctx context.Context, expense domain.SecondaryMovement) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockSecondaryRepository) FindSecondaryMovementByID(ctx context.Context, ownerID, secondaryMovementID string) (*domain.SecondaryMovement, error) {
	args := m.Called(ctx, ownerID, secondaryMovementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecondaryMovement), args.Error(1)
}

func (m *MockSecondaryRepository) ListSecondaryMovements(ctx context.Context, ownerID string, date *time.Time) ([]domain.SecondaryMovement, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecondaryMovement), args.Error(1)
}

func (m *MockSecondaryRepository) GetSecondaryBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSecondaryRepository) CancelTransferPair(ctx context.Context, ownerID, secondaryMovementID, pairedMovementID, reason, cancelledBy string, at time.Time) error {
	args := m.Called(ctx, ownerID, secondaryMovementID, pairedMovementID, reason, cancelledBy, at)
	return args.Error(0)
}

func (m *MockSecondaryRepository) DeleteSecondaryExpense(ctx context.Context, ownerID, secondaryMovementID string) error {
	args := m.Called(ctx, ownerID, secondaryMovementID)
	return args.Error(0)
}

// --- MockArqueoRepository ---

type MockArqueoRepository struct {
	mock.Mock
}

func (m *MockArqueoRepository) CreateArqueo(ctx context.Context, params portsrepo.CreateArqueoParams) (*domain.Arqueo, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Arqueo), args.Error(1)
}

func (m *MockArqueoRepository) ComputeExpectedCash(ctx context.Context, ownerID string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockArqueoRepository) FindArqueoByID(ctx context.Context, ownerID, arqueoID string) (*domain.Arqueo, error) {
	args := m.Called(ctx, ownerID, arqueoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Arqueo), args.Error(1)
}

func (m *MockArqueoRepository) ListArqueosByDate(ctx context.Context, ownerID string, date time.Time) ([]domain.Arqueo, error) {
	args := m.Called(ctx, ownerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Arqueo), args.Error(1)
}

func (m *MockArqueoRepository) DeleteArqueo(ctx context.Context, ownerID, arqueoID string) error {
	args := m.Called(ctx, ownerID, arqueoID)
	return args.Error(0)
}

// --- MockIdentitySvc ---

type MockIdentitySvc struct {
	mock.Mock
}

func (m *MockIdentitySvc) ResolveActor(ctx context.Context, userID string) (*domain.Actor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

func (m *MockIdentitySvc) ListEmployments(ctx context.Context, actingUserID string) ([]domain.Employment, error) {
	args := m.Called(ctx, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employment), args.Error(1)
}

func (m *MockIdentitySvc) UpsertEmployment(ctx context.Context, actingUserID string, req dto.UpsertEmploymentRequest) (*domain.Employment, error) {
	args := m.Called(ctx, actingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employment), args.Error(1)
}

func (m *MockIdentitySvc) DeactivateEmployment(ctx context.Context, actingUserID, employeeUserID string) error {
	args := m.Called(ctx, actingUserID, employeeUserID)
	return args.Error(0)
}

// --- MockSecondarySvc ---

type MockSecondarySvc struct {
	mock.Mock
}

func (m *MockSecondarySvc) GetBalance(ctx context.Context, actingUserID string) (decimal.Decimal, error) {
	args := m.Called(ctx, actingUserID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSecondarySvc) ListMovements(ctx context.Context, actingUserID string, date *time.Time) ([]domain.SecondaryMovement, error) {
	args := m.Called(ctx, actingUserID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecondaryMovement), args.Error(1)
}

func (m *MockSecondarySvc) TransferToSecondary(ctx context.Context, actingUserID string, req dto.TransferRequest) (*domain.SecondaryMovement, error) {
	args := m.Called(ctx, actingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecondaryMovement), args.Error(1)
}

func (m *MockSecondarySvc) ReintegrateToPrincipal(ctx context.Context, actingUserID string, req dto.TransferRequest) (*domain.SecondaryMovement, error) {
	args := m.Called(ctx, actingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecondaryMovement), args.Error(1)
}

func (m *MockSecondarySvc) RegisterExpense(ctx context.Context, actingUserID string, req dto.SecondaryExpenseRequest) (*domain.SecondaryMovement, error) {
	args := m.Called(ctx, actingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecondaryMovement), args.Error(1)
}

func (m *MockSecondarySvc) TransferFromReconciliation(ctx context.Context, actingUserID string, amount decimal.Decimal, date time.Time, description string) (*domain.SecondaryMovement, error) {
	args := m.Called(ctx, actingUserID, amount, date, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecondaryMovement), args.Error(1)
}

func (m *MockSecondarySvc) CancelMovement(ctx context.Context, actingUserID, secondaryMovementID, reason string) error {
	args := m.Called(ctx, actingUserID, secondaryMovementID, reason)
	return args.Error(0)
}

// --- MockGoogleTokenVerifier ---

type MockGoogleTokenVerifier struct {
	mock.Mock
}

func (m *MockGoogleTokenVerifier) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

// --- Actor fixtures ---

// ownerActor returns an actor operating on their own ledger with every
// permission, the shape ResolveActor produces for a user with no employment.
func ownerActor(userID string) *domain.Actor {
	return &domain.Actor{
		OwnerID:      userID,
		ActingUserID: userID,
		IsOwner:      true,
		Permissions:  domain.AllPermissions(),
	}
}

// employeeActor returns an actor acting on someone else's ledger with
// exactly the given permissions.
func employeeActor(ownerID, userID string, perms domain.PermissionSet) *domain.Actor {
	return &domain.Actor{
		OwnerID:      ownerID,
		ActingUserID: userID,
		IsOwner:      false,
		Permissions:  perms,
	}
}
