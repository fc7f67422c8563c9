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
	"github.com/shopspring/decimal"
)

type PgxArqueoRepository struct {
	BaseRepository
}

// newPgxArqueoRepository creates a new repository for cash reconciliations.
func newPgxArqueoRepository(pool *pgxpool.Pool) portsrepo.ArqueoRepository {
	return &PgxArqueoRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ArqueoRepository = (*PgxArqueoRepository)(nil)

const arqueoColumns = `arqueo_id, owner_id, arqueo_date, expected_cash, counted_cash, difference,
	difference_reason, adjustment_movement_id, created_at, created_by, last_updated_at, last_updated_by`

// expectedCashQuery resolves the opening balance for the date (the date's
// own closing row if present, else the previous day's counted cash when that
// day was closed, else zero) and adds the date's net cash flow.
const expectedCashQuery = `
	SELECT COALESCE(
		(SELECT dc.opening_balance FROM day_closings dc
		 WHERE dc.owner_id = $1 AND dc.closing_date = $2),
		(SELECT dc.counted_cash FROM day_closings dc
		 WHERE dc.owner_id = $1 AND dc.closing_date = $2::date - 1 AND dc.closed),
		0)
	+ COALESCE(
		(SELECT SUM(CASE WHEN m.direction = 'INFLOW' THEN s.amount ELSE -s.amount END)
		 FROM movements m
		 JOIN payment_splits s ON s.movement_id = m.movement_id
		 JOIN payment_methods pm ON pm.method_id = s.method_id
		 WHERE m.owner_id = $1 AND m.movement_date = $2 AND m.cancelled = FALSE AND pm.is_cash),
		0);
`

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func expectedCash(ctx context.Context, q rowQuerier, ownerID string, date time.Time) (decimal.Decimal, error) {
	var expected decimal.Decimal
	if err := q.QueryRow(ctx, expectedCashQuery, ownerID, date).Scan(&expected); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute expected cash", err)
	}
	return expected, nil
}

// ComputeExpectedCash returns the ledger-implied cash for the date as of now.
func (r *PgxArqueoRepository) ComputeExpectedCash(ctx context.Context, ownerID string, date time.Time) (decimal.Decimal, error) {
	return expectedCash(ctx, r.Pool, ownerID, date)
}

// CreateArqueo computes expected cash under a per-(owner,date) advisory lock
// and persists the arqueo plus, when counted differs, exactly one adjustment
// movement, all in one transaction.
func (r *PgxArqueoRepository) CreateArqueo(ctx context.Context, params portsrepo.CreateArqueoParams) (*domain.Arqueo, error) {
	arqueo := params.Arqueo

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Serialize reconciliation per owner and day so two concurrent arqueos
	// cannot both read the same expected value and double-adjust.
	dateKey := arqueo.ArqueoDate.Format("2006-01-02")
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`, arqueo.OwnerID, dateKey); err != nil {
		return nil, apperrors.NewAppError(500, "failed to acquire reconciliation lock", err)
	}

	expected, err := expectedCash(ctx, tx, arqueo.OwnerID, arqueo.ArqueoDate)
	if err != nil {
		return nil, err
	}
	arqueo.ExpectedCash = expected
	arqueo.Difference = arqueo.CountedCash.Sub(expected)

	if adjustment, ok := domain.BuildCashAdjustment(domain.CashAdjustmentSpec{
		MovementID: params.AdjustmentMovementID,
		SplitID:    params.AdjustmentSplitID,
		OwnerID:    arqueo.OwnerID,
		CategoryID: params.AdjustmentCategoryID,
		MethodID:   params.CashMethodID,
		Date:       arqueo.ArqueoDate,
		Difference: arqueo.Difference,
		Audit:      arqueo.AuditFields,
	}); ok {
		if err := insertMovementInTx(ctx, tx, adjustment); err != nil {
			return nil, err
		}
		adjustmentID := params.AdjustmentMovementID
		arqueo.AdjustmentMovementID = &adjustmentID
	}

	insertQuery := `
		INSERT INTO arqueos (` + arqueoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	a := mapping.ToModelArqueo(arqueo)
	_, err = tx.Exec(ctx, insertQuery,
		a.ArqueoID, a.OwnerID, a.ArqueoDate, a.ExpectedCash, a.CountedCash, a.Difference,
		a.DifferenceReason, a.AdjustmentMovementID, a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert arqueo "+a.ArqueoID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &arqueo, nil
}

func scanArqueo(row pgx.Row) (models.Arqueo, error) {
	var a models.Arqueo
	err := row.Scan(
		&a.ArqueoID,
		&a.OwnerID,
		&a.ArqueoDate,
		&a.ExpectedCash,
		&a.CountedCash,
		&a.Difference,
		&a.DifferenceReason,
		&a.AdjustmentMovementID,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

// FindArqueoByID retrieves one arqueo scoped to the owner.
func (r *PgxArqueoRepository) FindArqueoByID(ctx context.Context, ownerID, arqueoID string) (*domain.Arqueo, error) {
	query := `
		SELECT ` + arqueoColumns + `
		FROM arqueos
		WHERE owner_id = $1 AND arqueo_id = $2;
	`
	a, err := scanArqueo(r.Pool.QueryRow(ctx, query, ownerID, arqueoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find arqueo by ID "+arqueoID, err)
	}

	arqueo := mapping.ToDomainArqueo(a)
	return &arqueo, nil
}

// ListArqueosByDate lists a date's arqueos, most recent first.
func (r *PgxArqueoRepository) ListArqueosByDate(ctx context.Context, ownerID string, date time.Time) ([]domain.Arqueo, error) {
	query := `
		SELECT ` + arqueoColumns + `
		FROM arqueos
		WHERE owner_id = $1 AND arqueo_date = $2
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query arqueos by date", err)
	}
	defer rows.Close()

	arqueos := []models.Arqueo{}
	for rows.Next() {
		a, err := scanArqueo(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan arqueo row", err)
		}
		arqueos = append(arqueos, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating arqueo rows", err)
	}
	return mapping.ToDomainArqueoSlice(arqueos), nil
}

// DeleteArqueo removes the arqueo row; its adjustment movement stays.
func (r *PgxArqueoRepository) DeleteArqueo(ctx context.Context, ownerID, arqueoID string) error {
	query := `DELETE FROM arqueos WHERE owner_id = $1 AND arqueo_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, ownerID, arqueoID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete arqueo "+arqueoID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
