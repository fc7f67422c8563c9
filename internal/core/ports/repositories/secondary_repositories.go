package repositories

import (
	"context"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SecondaryRepository manages the secondary cash box sub-ledger. Every
// multi-row operation here is one database transaction serialized per owner,
// so the conservation invariant against the principal ledger holds at all
// times, not eventually.
type SecondaryRepository interface {
	// SaveTransferPair inserts the principal movement (with its cash split,
	// carried in movement.Splits) and the mirrored secondary movement in one
	// transaction. When enforceBalance is true the secondary balance is
	// checked under the owner lock and the operation fails with
	// ErrInsufficientFunds if secondary.Amount exceeds it.
	SaveTransferPair(ctx context.Context, principal domain.Movement, secondary domain.SecondaryMovement, enforceBalance bool) error

	// SaveSecondaryExpense inserts an expense movement after checking the
	// balance under the owner lock. Touches only the secondary ledger.
	SaveSecondaryExpense(ctx context.Context, expense domain.SecondaryMovement) error

	// FindSecondaryMovementByID retrieves one secondary movement.
	FindSecondaryMovementByID(ctx context.Context, ownerID, secondaryMovementID string) (*domain.SecondaryMovement, error)

	// ListSecondaryMovements lists non-cancelled secondary movements, newest
	// first; date optionally restricts to one business date.
	ListSecondaryMovements(ctx context.Context, ownerID string, date *time.Time) ([]domain.SecondaryMovement, error)

	// GetSecondaryBalance sums non-cancelled movements (inflow minus outflow).
	GetSecondaryBalance(ctx context.Context, ownerID string) (decimal.Decimal, error)

	// CancelTransferPair soft-cancels the secondary movement and its paired
	// principal movement in one transaction.
	CancelTransferPair(ctx context.Context, ownerID, secondaryMovementID, pairedMovementID, reason, cancelledBy string, at time.Time) error

	// DeleteSecondaryExpense hard-deletes an expense movement. Expenses never
	// touch the principal ledger, so nothing else is affected.
	DeleteSecondaryExpense(ctx context.Context, ownerID, secondaryMovementID string) error
}
