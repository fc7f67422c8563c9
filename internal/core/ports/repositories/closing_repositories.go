package repositories

import (
	"context"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
)

// ClosingRepository manages per-day closing records, unique per (owner, date).
type ClosingRepository interface {
	// FindClosingByDate retrieves the closing row for a date, if any.
	FindClosingByDate(ctx context.Context, ownerID string, date time.Time) (*domain.DayClosing, error)

	// UpsertOpeningBalance inserts or updates the row's opening balance
	// without touching the closed state.
	UpsertOpeningBalance(ctx context.Context, closing domain.DayClosing) (*domain.DayClosing, error)

	// UpsertClose inserts or updates the row as closed with the counted cash.
	// Repeated calls for the same (owner, date) overwrite.
	UpsertClose(ctx context.Context, closing domain.DayClosing) (*domain.DayClosing, error)

	// Reopen clears the closed state of an existing closing row.
	Reopen(ctx context.Context, ownerID string, date time.Time, updatedBy string, at time.Time) error

	// ListUnclosedPastDays returns dates strictly before the given day that
	// have at least one non-cancelled movement but no closed closing row,
	// ascending.
	ListUnclosedPastDays(ctx context.Context, ownerID string, before time.Time) ([]time.Time, error)
}
