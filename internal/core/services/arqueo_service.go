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

// arqueoService runs cash reconciliations. Expected cash is always computed
// inside the repository transaction that records the count, so two
// concurrent arqueos for the same day cannot both see the same expected
// value and double-adjust.
type arqueoService struct {
	arqueoRepo   portsrepo.ArqueoRepository
	catalogRepo  portsrepo.CatalogRepository
	identitySvc  portssvc.IdentitySvc
	secondarySvc portssvc.SecondarySvcFacade
}

// NewArqueoService creates a new ArqueoService.
func NewArqueoService(arqueoRepo portsrepo.ArqueoRepository, catalogRepo portsrepo.CatalogRepository, identitySvc portssvc.IdentitySvc, secondarySvc portssvc.SecondarySvcFacade) portssvc.ArqueoSvcFacade {
	return &arqueoService{
		arqueoRepo:   arqueoRepo,
		catalogRepo:  catalogRepo,
		identitySvc:  identitySvc,
		secondarySvc: secondarySvc,
	}
}

var _ portssvc.ArqueoSvcFacade = (*arqueoService)(nil)

// ExpectedCash computes the ledger-implied cash for a date at call time.
func (s *arqueoService) ExpectedCash(ctx context.Context, actingUserID string, date time.Time) (decimal.Decimal, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return decimal.Zero, err
	}

	expected, err := s.arqueoRepo.ComputeExpectedCash(ctx, actor.OwnerID, date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute expected cash: %w", err)
	}
	return expected, nil
}

// ListArqueos returns a date's reconciliations, most recent first.
func (s *arqueoService) ListArqueos(ctx context.Context, actingUserID string, date time.Time) ([]domain.Arqueo, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	arqueos, err := s.arqueoRepo.ListArqueosByDate(ctx, actor.OwnerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list arqueos: %w", err)
	}
	return arqueos, nil
}

// LatestArqueo returns the most recent reconciliation of a date.
func (s *arqueoService) LatestArqueo(ctx context.Context, actingUserID string, date time.Time) (*domain.Arqueo, error) {
	arqueos, err := s.ListArqueos(ctx, actingUserID, date)
	if err != nil {
		return nil, err
	}
	if len(arqueos) == 0 {
		return nil, fmt.Errorf("%w: no arqueo for the date", apperrors.ErrNotFound)
	}
	return &arqueos[0], nil
}

// CreateArqueo records a cash count. The repository computes expected cash
// under a per-(owner,date) lock and, when counted differs, posts exactly one
// compensating adjustment movement in the same transaction.
func (s *arqueoService) CreateArqueo(ctx context.Context, actingUserID string, req dto.CreateArqueoRequest) (*domain.Arqueo, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	date, err := utils.ParseBusinessDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.CountedCash.IsNegative() {
		return nil, fmt.Errorf("%w: counted cash cannot be negative", apperrors.ErrValidation)
	}

	// Resolve the system rows up front: a missing adjustment category or
	// cash method must fail the whole operation, never fall back.
	adjustmentCategory, err := s.catalogRepo.FindSystemCategory(ctx, domain.SystemCashAdjustment)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve adjustment category: %w", err)
	}
	cashMethod, err := s.catalogRepo.FindSystemPaymentMethod(ctx, domain.SystemCash)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve system cash method: %w", err)
	}

	now := time.Now().UTC()
	params := portsrepo.CreateArqueoParams{
		Arqueo: domain.Arqueo{
			ArqueoID:         uuid.NewString(),
			OwnerID:          actor.OwnerID,
			ArqueoDate:       date,
			CountedCash:      req.CountedCash,
			DifferenceReason: strings.TrimSpace(req.Reason),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actingUserID,
			},
		},
		AdjustmentMovementID: uuid.NewString(),
		AdjustmentSplitID:    uuid.NewString(),
		AdjustmentCategoryID: adjustmentCategory.CategoryID,
		CashMethodID:         cashMethod.MethodID,
	}

	arqueo, err := s.arqueoRepo.CreateArqueo(ctx, params)
	if err != nil {
		logger.Error("Failed to create arqueo", slog.String("error", err.Error()), slog.String("owner_id", actor.OwnerID))
		return nil, fmt.Errorf("failed to create arqueo: %w", err)
	}

	logger.Info("Arqueo created",
		slog.String("arqueo_id", arqueo.ArqueoID),
		slog.String("owner_id", actor.OwnerID),
		slog.String("difference", arqueo.Difference.String()))
	return arqueo, nil
}

// DeleteArqueo removes a reconciliation record. Its adjustment movement, if
// any, stays on the ledger; the two are decoupled once created.
func (s *arqueoService) DeleteArqueo(ctx context.Context, actingUserID, arqueoID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return err
	}
	if !actor.Allows(actor.Permissions.DeleteArqueos) {
		return fmt.Errorf("%w: missing permission to delete arqueos", apperrors.ErrForbidden)
	}

	if err := s.arqueoRepo.DeleteArqueo(ctx, actor.OwnerID, arqueoID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: arqueo %s", apperrors.ErrNotFound, arqueoID)
		}
		logger.Error("Failed to delete arqueo", slog.String("error", err.Error()), slog.String("arqueo_id", arqueoID))
		return fmt.Errorf("failed to delete arqueo: %w", err)
	}

	logger.Info("Arqueo deleted", slog.String("arqueo_id", arqueoID), slog.String("owner_id", actor.OwnerID))
	return nil
}

// MoveSurplusToSecondary transfers a positive counted surplus into the
// secondary cash box.
func (s *arqueoService) MoveSurplusToSecondary(ctx context.Context, actingUserID, arqueoID string) (*domain.SecondaryMovement, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.ManageSecondary) {
		return nil, fmt.Errorf("%w: missing permission to manage the secondary cash box", apperrors.ErrForbidden)
	}

	arqueo, err := s.arqueoRepo.FindArqueoByID(ctx, actor.OwnerID, arqueoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: arqueo %s", apperrors.ErrNotFound, arqueoID)
		}
		return nil, fmt.Errorf("failed to find arqueo: %w", err)
	}
	if !arqueo.Difference.IsPositive() {
		return nil, fmt.Errorf("%w: arqueo %s has no surplus to move", apperrors.ErrValidation, arqueoID)
	}

	description := fmt.Sprintf("Surplus from cash count on %s", utils.FormatBusinessDate(arqueo.ArqueoDate))
	return s.secondarySvc.TransferFromReconciliation(ctx, actingUserID, arqueo.Difference, arqueo.ArqueoDate, description)
}
