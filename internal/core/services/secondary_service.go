package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portsrepo "github.com/cajadiaria/caja_diaria_app/internal/core/ports/repositories"
	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/cajadiaria/caja_diaria_app/internal/middleware"
	"github.com/cajadiaria/caja_diaria_app/internal/utils"
	"github.com/shopspring/decimal"
)

// secondaryService manages the secondary cash box: a cash-only sub-ledger
// whose transfers are always mirrored by a principal-ledger movement in the
// same transaction.
type secondaryService struct {
	secondaryRepo portsrepo.SecondaryRepository
	catalogRepo   portsrepo.CatalogRepository
	identitySvc   portssvc.IdentitySvc
	businessLoc   *time.Location
}

// NewSecondaryService creates a new SecondaryService.
func NewSecondaryService(secondaryRepo portsrepo.SecondaryRepository, catalogRepo portsrepo.CatalogRepository, identitySvc portssvc.IdentitySvc, businessLoc *time.Location) portssvc.SecondarySvcFacade {
	return &secondaryService{
		secondaryRepo: secondaryRepo,
		catalogRepo:   catalogRepo,
		identitySvc:   identitySvc,
		businessLoc:   businessLoc,
	}
}

var _ portssvc.SecondarySvcFacade = (*secondaryService)(nil)

func (s *secondaryService) resolveDate(value string) (time.Time, error) {
	if value == "" {
		return utils.TruncateToDate(time.Now(), s.businessLoc), nil
	}
	return utils.ParseBusinessDate(value)
}

// GetBalance returns the box's current balance.
func (s *secondaryService) GetBalance(ctx context.Context, actingUserID string) (decimal.Decimal, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := s.secondaryRepo.GetSecondaryBalance(ctx, actor.OwnerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute secondary balance: %w", err)
	}
	return balance, nil
}

// ListMovements lists the box's non-cancelled movements, newest first.
func (s *secondaryService) ListMovements(ctx context.Context, actingUserID string, date *time.Time) ([]domain.SecondaryMovement, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	movements, err := s.secondaryRepo.ListSecondaryMovements(ctx, actor.OwnerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list secondary movements: %w", err)
	}
	return movements, nil
}

// transferPair builds the mirrored principal movement and secondary movement
// for one transfer. The principal side always carries a single cash split.
func (s *secondaryService) transferPair(ctx context.Context, actor *domain.Actor, amount decimal.Decimal, date time.Time, description string, origin domain.SecondaryOrigin) (domain.Movement, domain.SecondaryMovement, error) {
	var principalCategory domain.SystemCode
	var principalDirection, secondaryDirection domain.MovementDirection
	switch origin {
	case domain.OriginTransferIn, domain.OriginReconciliationIn:
		principalCategory = domain.SystemToSecondary
		principalDirection = domain.Outflow
		secondaryDirection = domain.Inflow
	case domain.OriginTransferOut:
		principalCategory = domain.SystemFromSecondary
		principalDirection = domain.Inflow
		secondaryDirection = domain.Outflow
	default:
		return domain.Movement{}, domain.SecondaryMovement{}, fmt.Errorf("origin %s has no principal pair", origin)
	}

	category, err := s.catalogRepo.FindSystemCategory(ctx, principalCategory)
	if err != nil {
		return domain.Movement{}, domain.SecondaryMovement{}, fmt.Errorf("failed to resolve system category %s: %w", principalCategory, err)
	}
	cashMethod, err := s.catalogRepo.FindSystemPaymentMethod(ctx, domain.SystemCash)
	if err != nil {
		return domain.Movement{}, domain.SecondaryMovement{}, fmt.Errorf("failed to resolve system cash method: %w", err)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.ActingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.ActingUserID,
	}

	movementID := uuid.NewString()
	principal := domain.Movement{
		MovementID:   movementID,
		OwnerID:      actor.OwnerID,
		MovementDate: date,
		Direction:    principalDirection,
		TotalAmount:  amount,
		CategoryID:   category.CategoryID,
		Description:  description,
		AuditFields:  audit,
		Splits: []domain.PaymentSplit{{
			SplitID:    uuid.NewString(),
			MovementID: movementID,
			MethodID:   cashMethod.MethodID,
			Amount:     amount,
		}},
	}

	secondary := domain.SecondaryMovement{
		SecondaryMovementID: uuid.NewString(),
		OwnerID:             actor.OwnerID,
		MovementDate:        date,
		Direction:           secondaryDirection,
		Origin:              origin,
		Amount:              amount,
		Description:         description,
		PairedMovementID:    &movementID,
		AuditFields:         audit,
	}
	return principal, secondary, nil
}

// TransferToSecondary moves cash from the principal ledger into the box.
func (s *secondaryService) TransferToSecondary(ctx context.Context, actingUserID string, req dto.TransferRequest) (*domain.SecondaryMovement, error) {
	return s.transfer(ctx, actingUserID, req, domain.OriginTransferIn)
}

// ReintegrateToPrincipal moves cash from the box back into the principal
// ledger, failing when the box cannot cover the amount.
func (s *secondaryService) ReintegrateToPrincipal(ctx context.Context, actingUserID string, req dto.TransferRequest) (*domain.SecondaryMovement, error) {
	return s.transfer(ctx, actingUserID, req, domain.OriginTransferOut)
}

func (s *secondaryService) transfer(ctx context.Context, actingUserID string, req dto.TransferRequest, origin domain.SecondaryOrigin) (*domain.SecondaryMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.ManageSecondary) {
		return nil, fmt.Errorf("%w: missing permission to manage the secondary cash box", apperrors.ErrForbidden)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	principal, secondary, err := s.transferPair(ctx, actor, req.Amount, date, strings.TrimSpace(req.Description), origin)
	if err != nil {
		return nil, err
	}

	// Reintegrations draw down the box, so the balance is checked under the
	// owner lock inside the repository transaction.
	enforceBalance := origin == domain.OriginTransferOut
	if err := s.secondaryRepo.SaveTransferPair(ctx, principal, secondary, enforceBalance); err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Error("Failed to save transfer pair", slog.String("error", err.Error()), slog.String("owner_id", actor.OwnerID), slog.String("origin", string(origin)))
		}
		return nil, err
	}

	logger.Info("Secondary transfer recorded", slog.String("secondary_movement_id", secondary.SecondaryMovementID), slog.String("origin", string(origin)), slog.String("amount", req.Amount.String()))
	return &secondary, nil
}

// TransferFromReconciliation moves a counted surplus into the box. The
// reconciliation flow is the only caller; it has already checked permissions.
func (s *secondaryService) TransferFromReconciliation(ctx context.Context, actingUserID string, amount decimal.Decimal, date time.Time, description string) (*domain.SecondaryMovement, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: surplus amount must be positive", apperrors.ErrValidation)
	}

	principal, secondary, err := s.transferPair(ctx, actor, amount, date, description, domain.OriginReconciliationIn)
	if err != nil {
		return nil, err
	}

	if err := s.secondaryRepo.SaveTransferPair(ctx, principal, secondary, false); err != nil {
		return nil, err
	}
	return &secondary, nil
}

// RegisterExpense records an expense paid from the box. Only the secondary
// ledger is touched.
func (s *secondaryService) RegisterExpense(ctx context.Context, actingUserID string, req dto.SecondaryExpenseRequest) (*domain.SecondaryMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.ManageSecondary) {
		return nil, fmt.Errorf("%w: missing permission to manage the secondary cash box", apperrors.ErrForbidden)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	category, err := s.catalogRepo.FindCategoryByID(ctx, actor.OwnerID, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if !category.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCategoryInactive)
	}
	if !category.AppliesTo(domain.Outflow) {
		return nil, fmt.Errorf("%w: category %s does not accept outflow movements", apperrors.ErrValidation, category.Name)
	}
	if category.SystemCode != nil && (*category.SystemCode == domain.SystemToSecondary || *category.SystemCode == domain.SystemFromSecondary) {
		return nil, fmt.Errorf("%w: transfer categories cannot be used for expenses", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	categoryID := req.CategoryID
	expense := domain.SecondaryMovement{
		SecondaryMovementID: uuid.NewString(),
		OwnerID:             actor.OwnerID,
		MovementDate:        date,
		Direction:           domain.Outflow,
		Origin:              domain.OriginExpense,
		Amount:              req.Amount,
		CategoryID:          &categoryID,
		Description:         strings.TrimSpace(req.Description),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.secondaryRepo.SaveSecondaryExpense(ctx, expense); err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Error("Failed to save secondary expense", slog.String("error", err.Error()), slog.String("owner_id", actor.OwnerID))
		}
		return nil, err
	}

	logger.Info("Secondary expense recorded", slog.String("secondary_movement_id", expense.SecondaryMovementID), slog.String("amount", req.Amount.String()))
	return &expense, nil
}

// CancelMovement cancels a secondary movement. Transfer origins cascade to
// their paired principal movement in one transaction; expenses are removed
// from the box only.
func (s *secondaryService) CancelMovement(ctx context.Context, actingUserID, secondaryMovementID, reason string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return err
	}
	if !actor.Allows(actor.Permissions.ManageSecondary) {
		return fmt.Errorf("%w: missing permission to manage the secondary cash box", apperrors.ErrForbidden)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}

	movement, err := s.secondaryRepo.FindSecondaryMovementByID(ctx, actor.OwnerID, secondaryMovementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: secondary movement %s", apperrors.ErrNotFound, secondaryMovementID)
		}
		return fmt.Errorf("failed to find secondary movement: %w", err)
	}
	if movement.Cancelled {
		return fmt.Errorf("%w: secondary movement %s is already cancelled", apperrors.ErrValidation, secondaryMovementID)
	}

	now := time.Now().UTC()
	if movement.Origin.HasPrincipalPair() {
		if movement.PairedMovementID == nil {
			return fmt.Errorf("secondary movement %s has origin %s but no paired movement", secondaryMovementID, movement.Origin)
		}
		if err := s.secondaryRepo.CancelTransferPair(ctx, actor.OwnerID, secondaryMovementID, *movement.PairedMovementID, reason, actingUserID, now); err != nil {
			if errors.Is(err, apperrors.ErrInsufficientFunds) {
				return err
			}
			logger.Error("Failed to cancel transfer pair", slog.String("error", err.Error()), slog.String("secondary_movement_id", secondaryMovementID))
			return fmt.Errorf("failed to cancel transfer pair: %w", err)
		}
		logger.Info("Transfer pair cancelled", slog.String("secondary_movement_id", secondaryMovementID), slog.String("paired_movement_id", *movement.PairedMovementID))
		return nil
	}

	if err := s.secondaryRepo.DeleteSecondaryExpense(ctx, actor.OwnerID, secondaryMovementID); err != nil {
		logger.Error("Failed to delete secondary expense", slog.String("error", err.Error()), slog.String("secondary_movement_id", secondaryMovementID))
		return fmt.Errorf("failed to delete secondary expense: %w", err)
	}
	logger.Info("Secondary expense deleted", slog.String("secondary_movement_id", secondaryMovementID))
	return nil
}
