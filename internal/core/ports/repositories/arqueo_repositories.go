package repositories

import (
	"context"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateArqueoParams carries everything the repository needs to create an
// arqueo and, when the difference is nonzero, its adjustment movement. IDs
// are pre-generated by the service; the expected cash and difference are
// computed inside the repository's transaction so a concurrent movement or
// arqueo cannot make them stale.
type CreateArqueoParams struct {
	Arqueo domain.Arqueo // ExpectedCash/Difference/AdjustmentMovementID filled by the repository

	AdjustmentMovementID string
	AdjustmentSplitID    string
	AdjustmentCategoryID string // System cash-adjustment category
	CashMethodID         string // System cash payment method
}

// ArqueoRepository manages cash reconciliations.
type ArqueoRepository interface {
	// CreateArqueo computes the expected cash under a per-(owner,date)
	// advisory lock, persists the arqueo and, if counted differs from
	// expected, exactly one adjustment movement, all in one transaction.
	CreateArqueo(ctx context.Context, params CreateArqueoParams) (*domain.Arqueo, error)

	// ComputeExpectedCash returns opening balance plus the date's cash
	// inflows minus cash outflows, as of now.
	ComputeExpectedCash(ctx context.Context, ownerID string, date time.Time) (decimal.Decimal, error)

	// FindArqueoByID retrieves one arqueo scoped to the owner.
	FindArqueoByID(ctx context.Context, ownerID, arqueoID string) (*domain.Arqueo, error)

	// ListArqueosByDate lists a date's arqueos, most recent first.
	ListArqueosByDate(ctx context.Context, ownerID string, date time.Time) ([]domain.Arqueo, error)

	// DeleteArqueo removes the arqueo row. The adjustment movement, if any,
	// is left in place.
	DeleteArqueo(ctx context.Context, ownerID, arqueoID string) error
}
