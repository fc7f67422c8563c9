package services

import (
	"context"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ArqueoReaderSvc defines read operations for cash reconciliations.
type ArqueoReaderSvc interface {
	// ExpectedCash computes the theoretical cash-on-hand for a business date
	// at this moment, without persisting anything.
	ExpectedCash(ctx context.Context, actingUserID string, date time.Time) (decimal.Decimal, error)

	// ListArqueos returns the reconciliations recorded for a business date,
	// most recent first.
	ListArqueos(ctx context.Context, actingUserID string, date time.Time) ([]domain.Arqueo, error)

	// LatestArqueo returns the most recent reconciliation of a date, or
	// ErrNotFound when the date has none.
	LatestArqueo(ctx context.Context, actingUserID string, date time.Time) (*domain.Arqueo, error)
}

// ArqueoWriterSvc defines mutations for cash reconciliations.
type ArqueoWriterSvc interface {
	// CreateArqueo snapshots expected cash, records the count and, when the
	// counted amount differs, posts the compensating adjustment movement in
	// the same transaction.
	CreateArqueo(ctx context.Context, actingUserID string, req dto.CreateArqueoRequest) (*domain.Arqueo, error)

	// DeleteArqueo removes a reconciliation record. Its adjustment movement,
	// if any, stays on the ledger.
	DeleteArqueo(ctx context.Context, actingUserID, arqueoID string) error

	// MoveSurplusToSecondary transfers a positive counted surplus into the
	// secondary cash box after a reconciliation.
	MoveSurplusToSecondary(ctx context.Context, actingUserID, arqueoID string) (*domain.SecondaryMovement, error)
}

// ArqueoSvcFacade combines the reconciliation service interfaces.
type ArqueoSvcFacade interface {
	ArqueoReaderSvc
	ArqueoWriterSvc
}
