package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

// closingService drives the per-day closing state machine: no record, open
// (opening balance drafted) and closed, with reopen as the only way back.
type closingService struct {
	closingRepo portsrepo.ClosingRepository
	identitySvc portssvc.IdentitySvc
	businessLoc *time.Location
}

// NewClosingService creates a new ClosingService.
func NewClosingService(closingRepo portsrepo.ClosingRepository, identitySvc portssvc.IdentitySvc, businessLoc *time.Location) portssvc.ClosingSvcFacade {
	return &closingService{
		closingRepo: closingRepo,
		identitySvc: identitySvc,
		businessLoc: businessLoc,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// GetClosing returns the closing row for a date, or nil when none exists.
func (s *closingService) GetClosing(ctx context.Context, actingUserID string, date time.Time) (*domain.DayClosing, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	closing, err := s.closingRepo.FindClosingByDate(ctx, actor.OwnerID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find day closing: %w", err)
	}
	return closing, nil
}

// GetOpeningBalance resolves the opening cash for a date: the date's own row
// when one exists (it may carry a drafted override), else the previous day's
// counted cash if that day was closed, else zero.
func (s *closingService) GetOpeningBalance(ctx context.Context, actingUserID string, date time.Time) (decimal.Decimal, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.openingBalanceFor(ctx, actor.OwnerID, date)
}

func (s *closingService) openingBalanceFor(ctx context.Context, ownerID string, date time.Time) (decimal.Decimal, error) {
	closing, err := s.closingRepo.FindClosingByDate(ctx, ownerID, date)
	if err == nil {
		return closing.OpeningBalance, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to find day closing: %w", err)
	}

	previous, err := s.closingRepo.FindClosingByDate(ctx, ownerID, date.AddDate(0, 0, -1))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to find previous day closing: %w", err)
	}
	if previous.Closed && previous.CountedCash != nil {
		return *previous.CountedCash, nil
	}
	return decimal.Zero, nil
}

// ListUnclosedPastDays lists dates before today with movements but no closing.
func (s *closingService) ListUnclosedPastDays(ctx context.Context, actingUserID string) ([]time.Time, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	today := utils.TruncateToDate(time.Now(), s.businessLoc)
	days, err := s.closingRepo.ListUnclosedPastDays(ctx, actor.OwnerID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list unclosed days: %w", err)
	}
	return days, nil
}

// SetOpeningBalance drafts or overwrites a date's opening balance without
// touching the closed state.
func (s *closingService) SetOpeningBalance(ctx context.Context, actingUserID string, req dto.SetOpeningBalanceRequest) (*domain.DayClosing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.EditOpeningBalance) {
		return nil, fmt.Errorf("%w: missing permission to edit the opening balance", apperrors.ErrForbidden)
	}

	date, err := utils.ParseBusinessDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	closing, err := s.closingRepo.UpsertOpeningBalance(ctx, domain.DayClosing{
		ClosingID:      uuid.NewString(),
		OwnerID:        actor.OwnerID,
		ClosingDate:    date,
		OpeningBalance: req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	})
	if err != nil {
		logger.Error("Failed to set opening balance", slog.String("error", err.Error()), slog.String("owner_id", actor.OwnerID))
		return nil, fmt.Errorf("failed to set opening balance: %w", err)
	}

	logger.Info("Opening balance set", slog.String("owner_id", actor.OwnerID), slog.String("date", req.Date), slog.String("amount", req.Amount.String()))
	return closing, nil
}

// CloseDay marks a date closed with its counted ending cash. The row is
// unique per (owner, date), so closing twice overwrites instead of
// duplicating.
func (s *closingService) CloseDay(ctx context.Context, actingUserID string, req dto.CloseDayRequest) (*domain.DayClosing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.EditClosing) {
		return nil, fmt.Errorf("%w: missing permission to close the day", apperrors.ErrForbidden)
	}

	date, err := utils.ParseBusinessDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.CountedCash.IsNegative() {
		return nil, fmt.Errorf("%w: counted cash cannot be negative", apperrors.ErrValidation)
	}

	opening, err := s.openingBalanceFor(ctx, actor.OwnerID, date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	counted := req.CountedCash
	closing, err := s.closingRepo.UpsertClose(ctx, domain.DayClosing{
		ClosingID:      uuid.NewString(),
		OwnerID:        actor.OwnerID,
		ClosingDate:    date,
		OpeningBalance: opening,
		CountedCash:    &counted,
		Closed:         true,
		ClosedAt:       &now,
		ClosedBy:       &actingUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	})
	if err != nil {
		logger.Error("Failed to close day", slog.String("error", err.Error()), slog.String("owner_id", actor.OwnerID), slog.String("date", req.Date))
		return nil, fmt.Errorf("failed to close day: %w", err)
	}

	logger.Info("Day closed", slog.String("owner_id", actor.OwnerID), slog.String("date", req.Date), slog.String("counted_cash", req.CountedCash.String()))
	return closing, nil
}

// ReopenDay clears the closed flag for a date.
func (s *closingService) ReopenDay(ctx context.Context, actingUserID string, date time.Time) (*domain.DayClosing, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.ReopenDay) {
		return nil, fmt.Errorf("%w: missing permission to reopen the day", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	if err := s.closingRepo.Reopen(ctx, actor.OwnerID, date, actingUserID, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no closing for %s", apperrors.ErrNotFound, utils.FormatBusinessDate(date))
		}
		logger.Error("Failed to reopen day", slog.String("error", err.Error()), slog.String("owner_id", actor.OwnerID))
		return nil, fmt.Errorf("failed to reopen day: %w", err)
	}

	closing, err := s.closingRepo.FindClosingByDate(ctx, actor.OwnerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to reload day closing: %w", err)
	}

	logger.Info("Day reopened", slog.String("owner_id", actor.OwnerID), slog.String("date", utils.FormatBusinessDate(date)))
	return closing, nil
}
