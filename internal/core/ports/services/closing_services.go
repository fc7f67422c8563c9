package services

import (
	"context"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ClosingReaderSvc defines read operations over day closings.
type ClosingReaderSvc interface {
	// GetClosing returns the closing row for a business date, or nil when the
	// date has never been touched.
	GetClosing(ctx context.Context, actingUserID string, date time.Time) (*domain.DayClosing, error)

	// GetOpeningBalance returns the opening balance effective for a date:
	// the stored override when there is one, otherwise the previous day's
	// closing balance, otherwise zero.
	GetOpeningBalance(ctx context.Context, actingUserID string, date time.Time) (decimal.Decimal, error)

	// ListUnclosedPastDays lists business dates strictly before today that
	// had activity but were never closed.
	ListUnclosedPastDays(ctx context.Context, actingUserID string) ([]time.Time, error)
}

// ClosingWriterSvc defines mutations over day closings.
type ClosingWriterSvc interface {
	// SetOpeningBalance records or overwrites the opening balance for a date.
	SetOpeningBalance(ctx context.Context, actingUserID string, req dto.SetOpeningBalanceRequest) (*domain.DayClosing, error)

	// CloseDay marks a date closed, snapshotting the computed closing balance
	// and the optional counted cash.
	CloseDay(ctx context.Context, actingUserID string, req dto.CloseDayRequest) (*domain.DayClosing, error)

	// ReopenDay clears the closed flag for a date.
	ReopenDay(ctx context.Context, actingUserID string, date time.Time) (*domain.DayClosing, error)
}

// ClosingSvcFacade combines the day closing service interfaces.
type ClosingSvcFacade interface {
	ClosingReaderSvc
	ClosingWriterSvc
}
