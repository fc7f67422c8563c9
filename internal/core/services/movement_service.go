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

var (
	ErrEmptySplits      = errors.New("movement must have at least one payment split")
	ErrDuplicateMethod  = errors.New("movement splits repeat a payment method")
	ErrCategoryInactive = errors.New("category is inactive")
	ErrMethodInactive   = errors.New("payment method is inactive")
)

// movementService provides the principal daily cash ledger operations.
type movementService struct {
	movementRepo portsrepo.MovementRepositoryWithTx
	catalogRepo  portsrepo.CatalogRepository
	closingRepo  portsrepo.ClosingRepository
	identitySvc  portssvc.IdentitySvc
	businessLoc  *time.Location
}

// NewMovementService creates a new MovementService.
func NewMovementService(movementRepo portsrepo.MovementRepositoryWithTx, catalogRepo portsrepo.CatalogRepository, closingRepo portsrepo.ClosingRepository, identitySvc portssvc.IdentitySvc, businessLoc *time.Location) portssvc.MovementSvcFacade {
	return &movementService{
		movementRepo: movementRepo,
		catalogRepo:  catalogRepo,
		closingRepo:  closingRepo,
		identitySvc:  identitySvc,
		businessLoc:  businessLoc,
	}
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// resolveDate parses the optional request date, defaulting to today in the
// business timezone.
func (s *movementService) resolveDate(value string) (time.Time, error) {
	if value == "" {
		return utils.TruncateToDate(time.Now(), s.businessLoc), nil
	}
	return utils.ParseBusinessDate(value)
}

// ensureDayOpen rejects writes on a closed day unless the actor holds the
// edit-closing permission. A day with no closing row is open.
func (s *movementService) ensureDayOpen(ctx context.Context, actor *domain.Actor, date time.Time) error {
	closing, err := s.closingRepo.FindClosingByDate(ctx, actor.OwnerID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check day closing: %w", err)
	}
	if closing != nil && closing.Closed && !actor.Allows(actor.Permissions.EditClosing) {
		return fmt.Errorf("%w: day %s is closed", apperrors.ErrForbidden, utils.FormatBusinessDate(date))
	}
	return nil
}

// ListMovements returns the date's non-cancelled movements with their splits.
func (s *movementService) ListMovements(ctx context.Context, actingUserID string, date time.Time) ([]domain.Movement, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.FindMovementsByDate(ctx, actor.OwnerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

// GetDailySummary aggregates the date's movements by the cash flag of each
// split's payment method.
func (s *movementService) GetDailySummary(ctx context.Context, actingUserID string, date time.Time) (*domain.DailySummary, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	summary, err := s.movementRepo.GetDailySummary(ctx, actor.OwnerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute daily summary: %w", err)
	}
	return summary, nil
}

// GetTotalsByMethod returns the per-method breakdown for the date.
func (s *movementService) GetTotalsByMethod(ctx context.Context, actingUserID string, date time.Time) ([]domain.MethodTotals, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	totals, err := s.movementRepo.GetTotalsByMethod(ctx, actor.OwnerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals by method: %w", err)
	}
	return totals, nil
}

// CreateMovement validates and records a movement with its payment splits.
// The movement row and every split persist in one transaction.
func (s *movementService) CreateMovement(ctx context.Context, actingUserID string, req dto.CreateMovementRequest) (*domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDayOpen(ctx, actor, date); err != nil {
		return nil, err
	}

	if len(req.Splits) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptySplits)
	}

	// --- Category validation ---
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
	if !category.AppliesTo(req.Direction) {
		return nil, fmt.Errorf("%w: category %s does not accept %s movements", apperrors.ErrValidation, category.Name, req.Direction)
	}
	// Transfers must flow through the secondary cash box so the two ledgers
	// stay paired.
	if category.SystemCode != nil && (*category.SystemCode == domain.SystemToSecondary || *category.SystemCode == domain.SystemFromSecondary) {
		return nil, fmt.Errorf("%w: transfer movements are created through the secondary cash box", apperrors.ErrValidation)
	}

	// --- Split validation ---
	methodIDs := make([]string, 0, len(req.Splits))
	seen := make(map[string]bool, len(req.Splits))
	total := decimal.Zero
	for _, split := range req.Splits {
		if split.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: split amount must be positive for method %s", apperrors.ErrValidation, split.MethodID)
		}
		if seen[split.MethodID] {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDuplicateMethod)
		}
		seen[split.MethodID] = true
		methodIDs = append(methodIDs, split.MethodID)
		total = total.Add(split.Amount)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: movement total must be positive", apperrors.ErrValidation)
	}

	methods, err := s.catalogRepo.FindPaymentMethodsByIDs(ctx, actor.OwnerID, methodIDs)
	if err != nil {
		logger.Error("Failed to fetch payment methods for movement", slog.String("error", err.Error()), slog.String("owner_id", actor.OwnerID))
		return nil, fmt.Errorf("failed to fetch payment methods: %w", err)
	}
	for _, id := range methodIDs {
		method, found := methods[id]
		if !found {
			return nil, fmt.Errorf("%w: payment method %s", apperrors.ErrNotFound, id)
		}
		if !method.IsActive {
			return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrMethodInactive, method.Name)
		}
	}

	// --- Persistence ---
	now := time.Now().UTC()
	movementID := uuid.NewString()
	splits := make([]domain.PaymentSplit, len(req.Splits))
	for i, split := range req.Splits {
		splits[i] = domain.PaymentSplit{
			SplitID:    uuid.NewString(),
			MovementID: movementID,
			MethodID:   split.MethodID,
			Amount:     split.Amount,
		}
	}

	movement := domain.Movement{
		MovementID:   movementID,
		OwnerID:      actor.OwnerID,
		MovementDate: date,
		Direction:    req.Direction,
		TotalAmount:  total,
		CategoryID:   req.CategoryID,
		Description:  strings.TrimSpace(req.Description),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
		Splits: splits,
	}

	if err := s.movementRepo.SaveMovement(ctx, movement); err != nil {
		logger.Error("Failed to save movement", slog.String("error", err.Error()), slog.String("owner_id", actor.OwnerID))
		return nil, fmt.Errorf("failed to save movement: %w", err)
	}

	logger.Info("Movement created", slog.String("movement_id", movementID), slog.String("owner_id", actor.OwnerID), slog.String("direction", string(req.Direction)))
	return &movement, nil
}

// CancelMovement soft-cancels a movement; splits stay for audit. Transfer
// movements are rejected here because they must cascade from their secondary
// pair.
func (s *movementService) CancelMovement(ctx context.Context, actingUserID, movementID, reason string) (*domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.CancelMovements) {
		return nil, fmt.Errorf("%w: missing permission to cancel movements", apperrors.ErrForbidden)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}

	movement, err := s.movementRepo.FindMovementByID(ctx, actor.OwnerID, movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, movementID)
		}
		return nil, fmt.Errorf("failed to find movement: %w", err)
	}
	if movement.Cancelled {
		return nil, fmt.Errorf("%w: movement %s is already cancelled", apperrors.ErrValidation, movementID)
	}
	if err := s.ensureDayOpen(ctx, actor, movement.MovementDate); err != nil {
		return nil, err
	}

	category, err := s.catalogRepo.FindCategoryByID(ctx, actor.OwnerID, movement.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movement category: %w", err)
	}
	if category.SystemCode != nil && (*category.SystemCode == domain.SystemToSecondary || *category.SystemCode == domain.SystemFromSecondary) {
		return nil, fmt.Errorf("%w: transfer movements are cancelled through the secondary cash box", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.movementRepo.MarkMovementCancelled(ctx, actor.OwnerID, movementID, reason, actingUserID, now); err != nil {
		logger.Error("Failed to cancel movement", slog.String("error", err.Error()), slog.String("movement_id", movementID))
		return nil, fmt.Errorf("failed to cancel movement: %w", err)
	}

	movement.Cancelled = true
	movement.CancelledAt = &now
	movement.CancelReason = reason
	movement.LastUpdatedAt = now
	movement.LastUpdatedBy = actingUserID

	logger.Info("Movement cancelled", slog.String("movement_id", movementID), slog.String("owner_id", actor.OwnerID))
	return movement, nil
}

// UpdateDescription changes a movement's description, its only other mutable
// field. Needs no special permission.
func (s *movementService) UpdateDescription(ctx context.Context, actingUserID, movementID, description string) error {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return err
	}

	if _, err := s.movementRepo.FindMovementByID(ctx, actor.OwnerID, movementID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, movementID)
		}
		return fmt.Errorf("failed to find movement: %w", err)
	}

	now := time.Now().UTC()
	if err := s.movementRepo.UpdateMovementDescription(ctx, actor.OwnerID, movementID, strings.TrimSpace(description), actingUserID, now); err != nil {
		return fmt.Errorf("failed to update movement description: %w", err)
	}
	return nil
}
