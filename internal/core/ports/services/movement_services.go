package services

import (
	"context"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
)

// MovementReaderSvc defines read operations over the principal ledger.
type MovementReaderSvc interface {
	// ListMovements returns the date's non-cancelled movements with their
	// splits, newest first.
	ListMovements(ctx context.Context, actingUserID string, date time.Time) ([]domain.Movement, error)

	// GetDailySummary aggregates the date's movements by cash/non-cash.
	GetDailySummary(ctx context.Context, actingUserID string, date time.Time) (*domain.DailySummary, error)

	// GetTotalsByMethod returns the per-method breakdown for the date.
	GetTotalsByMethod(ctx context.Context, actingUserID string, date time.Time) ([]domain.MethodTotals, error)
}

// MovementWriterSvc defines write operations over the principal ledger.
type MovementWriterSvc interface {
	// CreateMovement validates and records a movement with its splits.
	CreateMovement(ctx context.Context, actingUserID string, req dto.CreateMovementRequest) (*domain.Movement, error)

	// CancelMovement soft-cancels a movement. Employees need the
	// cancel-movements permission.
	CancelMovement(ctx context.Context, actingUserID, movementID, reason string) (*domain.Movement, error)

	// UpdateDescription changes the movement's description, the only other
	// mutable field.
	UpdateDescription(ctx context.Context, actingUserID, movementID, description string) error
}

// MovementSvcFacade combines all principal-ledger service interfaces.
type MovementSvcFacade interface {
	MovementReaderSvc
	MovementWriterSvc
}
