package pgsql

import (
	"context"
	"errors"
	"fmt"
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

type PgxSecondaryRepository struct {
	BaseRepository
}

// newPgxSecondaryRepository creates a new repository for the secondary cash
// box sub-ledger.
func newPgxSecondaryRepository(pool *pgxpool.Pool) portsrepo.SecondaryRepository {
	return &PgxSecondaryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SecondaryRepository = (*PgxSecondaryRepository)(nil)

const secondaryColumns = `secondary_movement_id, owner_id, movement_date, direction, origin, amount,
	category_id, description, paired_movement_id, cancelled, cancelled_at, cancel_reason,
	created_at, created_by, last_updated_at, last_updated_by`

const insertSecondaryQuery = `
	INSERT INTO secondary_movements (` + secondaryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
`

const secondaryBalanceQuery = `
	SELECT COALESCE(SUM(CASE WHEN direction = 'INFLOW' THEN amount ELSE -amount END), 0)
	FROM secondary_movements
	WHERE owner_id = $1 AND cancelled = FALSE;
`

// lockOwner serializes secondary-box writes per owner for the duration of
// the transaction, so a balance check cannot race a concurrent draw-down.
func lockOwner(ctx context.Context, tx pgx.Tx, ownerID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, ownerID); err != nil {
		return apperrors.NewAppError(500, "failed to acquire owner lock", err)
	}
	return nil
}

func insertSecondaryInTx(ctx context.Context, tx pgx.Tx, movement domain.SecondaryMovement) error {
	m := mapping.ToModelSecondaryMovement(movement)
	_, err := tx.Exec(ctx, insertSecondaryQuery,
		m.SecondaryMovementID, m.OwnerID, m.MovementDate, m.Direction, m.Origin, m.Amount,
		m.CategoryID, m.Description, m.PairedMovementID, m.Cancelled, m.CancelledAt, m.CancelReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert secondary movement "+m.SecondaryMovementID, err)
	}
	return nil
}

// SaveTransferPair inserts the principal movement and the mirrored secondary
// movement in one transaction. With enforceBalance the box balance is
// re-read under the owner lock and the transfer fails when it cannot cover
// the amount.
func (r *PgxSecondaryRepository) SaveTransferPair(ctx context.Context, principal domain.Movement, secondary domain.SecondaryMovement, enforceBalance bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockOwner(ctx, tx, secondary.OwnerID); err != nil {
		return err
	}

	if enforceBalance {
		var balance decimal.Decimal
		if err := tx.QueryRow(ctx, secondaryBalanceQuery, secondary.OwnerID).Scan(&balance); err != nil {
			return apperrors.NewAppError(500, "failed to read secondary balance", err)
		}
		if secondary.Amount.GreaterThan(balance) {
			return fmt.Errorf("%w: secondary balance is %s", apperrors.ErrInsufficientFunds, balance.String())
		}
	}

	if err := insertMovementInTx(ctx, tx, principal); err != nil {
		return err
	}
	if err := insertSecondaryInTx(ctx, tx, secondary); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveSecondaryExpense inserts an expense after checking the balance under
// the owner lock. Only the secondary ledger is touched.
func (r *PgxSecondaryRepository) SaveSecondaryExpense(ctx context.Context, expense domain.SecondaryMovement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockOwner(ctx, tx, expense.OwnerID); err != nil {
		return err
	}

	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, secondaryBalanceQuery, expense.OwnerID).Scan(&balance); err != nil {
		return apperrors.NewAppError(500, "failed to read secondary balance", err)
	}
	if expense.Amount.GreaterThan(balance) {
		return fmt.Errorf("%w: secondary balance is %s", apperrors.ErrInsufficientFunds, balance.String())
	}

	if err := insertSecondaryInTx(ctx, tx, expense); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func scanSecondaryMovement(row pgx.Row) (models.SecondaryMovement, error) {
	var m models.SecondaryMovement
	err := row.Scan(
		&m.SecondaryMovementID,
		&m.OwnerID,
		&m.MovementDate,
		&m.Direction,
		&m.Origin,
		&m.Amount,
		&m.CategoryID,
		&m.Description,
		&m.PairedMovementID,
		&m.Cancelled,
		&m.CancelledAt,
		&m.CancelReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindSecondaryMovementByID retrieves one secondary movement.
func (r *PgxSecondaryRepository) FindSecondaryMovementByID(ctx context.Context, ownerID, secondaryMovementID string) (*domain.SecondaryMovement, error) {
	query := `
		SELECT ` + secondaryColumns + `
		FROM secondary_movements
		WHERE owner_id = $1 AND secondary_movement_id = $2;
	`
	m, err := scanSecondaryMovement(r.Pool.QueryRow(ctx, query, ownerID, secondaryMovementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find secondary movement by ID "+secondaryMovementID, err)
	}

	movement := mapping.ToDomainSecondaryMovement(m)
	return &movement, nil
}

// ListSecondaryMovements lists non-cancelled movements newest first,
// optionally for one business date.
func (r *PgxSecondaryRepository) ListSecondaryMovements(ctx context.Context, ownerID string, date *time.Time) ([]domain.SecondaryMovement, error) {
	query := `
		SELECT ` + secondaryColumns + `
		FROM secondary_movements
		WHERE owner_id = $1 AND cancelled = FALSE
		  AND ($2::date IS NULL OR movement_date = $2)
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query secondary movements", err)
	}
	defer rows.Close()

	movements := []models.SecondaryMovement{}
	for rows.Next() {
		m, err := scanSecondaryMovement(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan secondary movement row", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating secondary movement rows", err)
	}
	return mapping.ToDomainSecondaryMovementSlice(movements), nil
}

// GetSecondaryBalance sums non-cancelled movements, inflow minus outflow.
func (r *PgxSecondaryRepository) GetSecondaryBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, secondaryBalanceQuery, ownerID).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute secondary balance", err)
	}
	return balance, nil
}

// CancelTransferPair soft-cancels the secondary movement and its paired
// principal movement together. The cancel fails when removing an inflow
// would drive the box balance negative.
func (r *PgxSecondaryRepository) CancelTransferPair(ctx context.Context, ownerID, secondaryMovementID, pairedMovementID, reason, cancelledBy string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockOwner(ctx, tx, ownerID); err != nil {
		return err
	}

	secondaryQuery := `
		UPDATE secondary_movements
		SET cancelled = TRUE, cancelled_at = $4, cancel_reason = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE owner_id = $1 AND secondary_movement_id = $2 AND cancelled = FALSE;
	`
	tag, err := tx.Exec(ctx, secondaryQuery, ownerID, secondaryMovementID, reason, at, cancelledBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel secondary movement "+secondaryMovementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	principalQuery := `
		UPDATE movements
		SET cancelled = TRUE, cancelled_at = $4, cancel_reason = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE owner_id = $1 AND movement_id = $2 AND cancelled = FALSE;
	`
	tag, err = tx.Exec(ctx, principalQuery, ownerID, pairedMovementID, reason, at, cancelledBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel paired movement "+pairedMovementID, err)
	}
	if tag.RowsAffected() == 0 {
		// The pair is out of sync; abort rather than half-cancel.
		return apperrors.NewAppError(500, "paired movement "+pairedMovementID+" missing or already cancelled", nil)
	}

	// Dropping an inflow must still leave the box able to cover what it has
	// already spent; re-read the balance under the owner lock with the
	// cancelled rows excluded.
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, secondaryBalanceQuery, ownerID).Scan(&balance); err != nil {
		return apperrors.NewAppError(500, "failed to read secondary balance", err)
	}
	if balance.IsNegative() {
		return fmt.Errorf("%w: cancelling would leave the secondary balance at %s", apperrors.ErrInsufficientFunds, balance.String())
	}

	return r.Commit(ctx, tx)
}

// DeleteSecondaryExpense hard-deletes an expense movement.
func (r *PgxSecondaryRepository) DeleteSecondaryExpense(ctx context.Context, ownerID, secondaryMovementID string) error {
	query := `
		DELETE FROM secondary_movements
		WHERE owner_id = $1 AND secondary_movement_id = $2 AND origin = 'EXPENSE';
	`
	tag, err := r.Pool.Exec(ctx, query, ownerID, secondaryMovementID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete secondary expense "+secondaryMovementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
