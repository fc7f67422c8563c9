package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portsrepo "github.com/cajadiaria/caja_diaria_app/internal/core/ports/repositories"
	"github.com/cajadiaria/caja_diaria_app/internal/models"
	"github.com/cajadiaria/caja_diaria_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClosingRepository struct {
	BaseRepository
}

// newPgxClosingRepository creates a new repository for day closings.
func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepository {
	return &PgxClosingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ClosingRepository = (*PgxClosingRepository)(nil)

const closingColumns = `closing_id, owner_id, closing_date, opening_balance, counted_cash, closed,
	closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by`

func scanClosing(row pgx.Row) (models.DayClosing, error) {
	var c models.DayClosing
	err := row.Scan(
		&c.ClosingID,
		&c.OwnerID,
		&c.ClosingDate,
		&c.OpeningBalance,
		&c.CountedCash,
		&c.Closed,
		&c.ClosedAt,
		&c.ClosedBy,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// FindClosingByDate retrieves the closing row for a date, if any.
func (r *PgxClosingRepository) FindClosingByDate(ctx context.Context, ownerID string, date time.Time) (*domain.DayClosing, error) {
	query := `
		SELECT ` + closingColumns + `
		FROM day_closings
		WHERE owner_id = $1 AND closing_date = $2;
	`
	c, err := scanClosing(r.Pool.QueryRow(ctx, query, ownerID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find day closing", err)
	}

	closing := mapping.ToDomainDayClosing(c)
	return &closing, nil
}

// UpsertOpeningBalance inserts or updates the row's opening balance without
// touching the closed state. The UNIQUE(owner_id, closing_date) constraint
// makes repeated calls overwrite.
func (r *PgxClosingRepository) UpsertOpeningBalance(ctx context.Context, closing domain.DayClosing) (*domain.DayClosing, error) {
	query := `
		INSERT INTO day_closings (` + closingColumns + `)
		VALUES ($1, $2, $3, $4, NULL, FALSE, NULL, NULL, $5, $6, $7, $8)
		ON CONFLICT (owner_id, closing_date) DO UPDATE
		SET opening_balance = EXCLUDED.opening_balance,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + closingColumns + `;
	`
	c := mapping.ToModelDayClosing(closing)
	saved, err := scanClosing(r.Pool.QueryRow(ctx, query,
		c.ClosingID, c.OwnerID, c.ClosingDate, c.OpeningBalance,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert opening balance", err)
	}

	result := mapping.ToDomainDayClosing(saved)
	return &result, nil
}

// UpsertClose inserts or updates the row as closed with the counted cash.
func (r *PgxClosingRepository) UpsertClose(ctx context.Context, closing domain.DayClosing) (*domain.DayClosing, error) {
	query := `
		INSERT INTO day_closings (` + closingColumns + `)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (owner_id, closing_date) DO UPDATE
		SET counted_cash = EXCLUDED.counted_cash,
		    closed = TRUE,
		    closed_at = EXCLUDED.closed_at,
		    closed_by = EXCLUDED.closed_by,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + closingColumns + `;
	`
	c := mapping.ToModelDayClosing(closing)
	saved, err := scanClosing(r.Pool.QueryRow(ctx, query,
		c.ClosingID, c.OwnerID, c.ClosingDate, c.OpeningBalance, c.CountedCash,
		c.ClosedAt, c.ClosedBy, c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert day closing", err)
	}

	result := mapping.ToDomainDayClosing(saved)
	return &result, nil
}

// Reopen clears the closed state of an existing closing row.
func (r *PgxClosingRepository) Reopen(ctx context.Context, ownerID string, date time.Time, updatedBy string, at time.Time) error {
	query := `
		UPDATE day_closings
		SET closed = FALSE, closed_at = NULL, closed_by = NULL,
		    last_updated_at = $3, last_updated_by = $4
		WHERE owner_id = $1 AND closing_date = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, ownerID, date, at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reopen day", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListUnclosedPastDays returns dates before the given day that have at least
// one non-cancelled movement but no closed closing row, ascending.
func (r *PgxClosingRepository) ListUnclosedPastDays(ctx context.Context, ownerID string, before time.Time) ([]time.Time, error) {
	query := `
		SELECT DISTINCT m.movement_date
		FROM movements m
		LEFT JOIN day_closings dc
		  ON dc.owner_id = m.owner_id AND dc.closing_date = m.movement_date AND dc.closed
		WHERE m.owner_id = $1 AND m.movement_date < $2 AND m.cancelled = FALSE
		  AND dc.closing_id IS NULL
		ORDER BY m.movement_date;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, before)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unclosed days", err)
	}
	defer rows.Close()

	days := []time.Time{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan unclosed day row", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unclosed day rows", err)
	}
	return days, nil
}
