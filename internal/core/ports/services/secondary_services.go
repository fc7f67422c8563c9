package services

import (
	"context"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/shopspring/decimal"
)

// SecondaryReaderSvc defines read operations over the secondary cash box.
type SecondaryReaderSvc interface {
	// GetBalance returns the box's current balance; never negative.
	GetBalance(ctx context.Context, actingUserID string) (decimal.Decimal, error)

	// ListMovements lists the box's non-cancelled movements, optionally for
	// one business date.
	ListMovements(ctx context.Context, actingUserID string, date *time.Time) ([]domain.SecondaryMovement, error)
}

// SecondaryWriterSvc defines mutations over the secondary cash box. Each
// transfer keeps the principal ledger and the box consistent atomically.
type SecondaryWriterSvc interface {
	// TransferToSecondary moves cash from the principal ledger into the box.
	TransferToSecondary(ctx context.Context, actingUserID string, req dto.TransferRequest) (*domain.SecondaryMovement, error)

	// ReintegrateToPrincipal moves cash back out of the box; fails with
	// ErrInsufficientFunds when amount exceeds the balance.
	ReintegrateToPrincipal(ctx context.Context, actingUserID string, req dto.TransferRequest) (*domain.SecondaryMovement, error)

	// RegisterExpense records an expense paid from the box.
	RegisterExpense(ctx context.Context, actingUserID string, req dto.SecondaryExpenseRequest) (*domain.SecondaryMovement, error)

	// TransferFromReconciliation moves a counted surplus into the box on
	// behalf of the reconciliation flow.
	TransferFromReconciliation(ctx context.Context, actingUserID string, amount decimal.Decimal, date time.Time, description string) (*domain.SecondaryMovement, error)

	// CancelMovement cancels a secondary movement, dispatching on its origin:
	// transfers cascade to the paired principal movement, expenses are
	// removed from the box only.
	CancelMovement(ctx context.Context, actingUserID, secondaryMovementID, reason string) error
}

// SecondarySvcFacade combines the secondary cash box service interfaces.
type SecondarySvcFacade interface {
	SecondaryReaderSvc
	SecondaryWriterSvc
}
