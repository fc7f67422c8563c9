package repositories

import (
	"context"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
)

// MovementReadRepository defines read operations over the principal ledger.
type MovementReadRepository interface {
	// FindMovementByID retrieves one movement with its splits, scoped to the owner.
	FindMovementByID(ctx context.Context, ownerID, movementID string) (*domain.Movement, error)

	// FindMovementsByDate retrieves the non-cancelled movements of a business
	// date with their splits, newest first.
	FindMovementsByDate(ctx context.Context, ownerID string, date time.Time) ([]domain.Movement, error)

	// GetDailySummary aggregates the non-cancelled splits of a date,
	// partitioned by the payment method's cash flag.
	GetDailySummary(ctx context.Context, ownerID string, date time.Time) (*domain.DailySummary, error)

	// GetTotalsByMethod returns the per-method inflow/outflow totals of a date.
	GetTotalsByMethod(ctx context.Context, ownerID string, date time.Time) ([]domain.MethodTotals, error)
}

// MovementWriteRepository defines write operations over the principal ledger.
type MovementWriteRepository interface {
	// SaveMovement inserts the movement and its splits as one transaction.
	// Either the movement row and every split persist, or nothing does.
	SaveMovement(ctx context.Context, movement domain.Movement) error

	// MarkMovementCancelled soft-cancels a movement, stamping reason and time.
	MarkMovementCancelled(ctx context.Context, ownerID, movementID, reason, cancelledBy string, at time.Time) error

	// UpdateMovementDescription updates the movement's free-text description.
	UpdateMovementDescription(ctx context.Context, ownerID, movementID, description, updatedBy string, at time.Time) error
}

// MovementRepository is the full principal-ledger repository contract.
type MovementRepository interface {
	MovementReadRepository
	MovementWriteRepository
}

// MovementRepositoryWithTx extends MovementRepository with transaction support.
type MovementRepositoryWithTx interface {
	MovementRepository
	TransactionManager
}
