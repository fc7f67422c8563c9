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

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for principal-ledger data.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryWithTx {
	return &PgxMovementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.MovementRepositoryWithTx = (*PgxMovementRepository)(nil)

const insertMovementQuery = `
	INSERT INTO movements (
		movement_id, owner_id, movement_date, direction, total_amount,
		category_id, description, cancelled, cancelled_at, cancel_reason,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

const insertSplitQuery = `
	INSERT INTO payment_splits (split_id, movement_id, method_id, amount)
	VALUES ($1, $2, $3, $4);
`

// SaveMovement inserts a movement and its splits within one DB transaction.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertMovementInTx(ctx, tx, movement); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// insertMovementInTx writes a movement row plus its splits using the given
// transaction. The secondary and arqueo repositories reuse it for their
// paired principal movements.
func insertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	modelMovement := mapping.ToModelMovement(movement)
	_, err := tx.Exec(ctx, insertMovementQuery,
		modelMovement.MovementID,
		modelMovement.OwnerID,
		modelMovement.MovementDate,
		modelMovement.Direction,
		modelMovement.TotalAmount,
		modelMovement.CategoryID,
		modelMovement.Description,
		modelMovement.Cancelled,
		modelMovement.CancelledAt,
		modelMovement.CancelReason,
		modelMovement.CreatedAt,
		modelMovement.CreatedBy,
		modelMovement.LastUpdatedAt,
		modelMovement.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert movement "+modelMovement.MovementID, err)
	}

	batch := &pgx.Batch{}
	for _, split := range movement.Splits {
		modelSplit := mapping.ToModelPaymentSplit(split)
		batch.Queue(insertSplitQuery,
			modelSplit.SplitID,
			modelSplit.MovementID,
			modelSplit.MethodID,
			modelSplit.Amount,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert payment splits for movement "+modelMovement.MovementID, err)
	}
	return nil
}

// FindMovementByID retrieves a movement with its splits, scoped to the owner.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, ownerID, movementID string) (*domain.Movement, error) {
	query := `
		SELECT movement_id, owner_id, movement_date, direction, total_amount,
		       category_id, description, cancelled, cancelled_at, cancel_reason,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM movements
		WHERE owner_id = $1 AND movement_id = $2;
	`
	var m models.Movement
	err := r.Pool.QueryRow(ctx, query, ownerID, movementID).Scan(
		&m.MovementID,
		&m.OwnerID,
		&m.MovementDate,
		&m.Direction,
		&m.TotalAmount,
		&m.CategoryID,
		&m.Description,
		&m.Cancelled,
		&m.CancelledAt,
		&m.CancelReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find movement by ID "+movementID, err)
	}

	domainMovement := mapping.ToDomainMovement(m)
	splits, err := r.findSplitsByMovementIDs(ctx, []string{movementID})
	if err != nil {
		return nil, err
	}
	domainMovement.Splits = splits[movementID]
	return &domainMovement, nil
}

// FindMovementsByDate retrieves the date's non-cancelled movements with
// their splits, newest first.
func (r *PgxMovementRepository) FindMovementsByDate(ctx context.Context, ownerID string, date time.Time) ([]domain.Movement, error) {
	query := `
		SELECT movement_id, owner_id, movement_date, direction, total_amount,
		       category_id, description, cancelled, cancelled_at, cancel_reason,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM movements
		WHERE owner_id = $1 AND movement_date = $2 AND cancelled = FALSE
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements by date", err)
	}
	defer rows.Close()

	modelMovements := []models.Movement{}
	movementIDs := []string{}
	for rows.Next() {
		var m models.Movement
		err := rows.Scan(
			&m.MovementID,
			&m.OwnerID,
			&m.MovementDate,
			&m.Direction,
			&m.TotalAmount,
			&m.CategoryID,
			&m.Description,
			&m.Cancelled,
			&m.CancelledAt,
			&m.CancelReason,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement row", err)
		}
		modelMovements = append(modelMovements, m)
		movementIDs = append(movementIDs, m.MovementID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating movement rows", err)
	}

	splitsByMovement, err := r.findSplitsByMovementIDs(ctx, movementIDs)
	if err != nil {
		return nil, err
	}

	movements := make([]domain.Movement, len(modelMovements))
	for i, m := range modelMovements {
		movements[i] = mapping.ToDomainMovement(m)
		movements[i].Splits = splitsByMovement[m.MovementID]
	}
	return movements, nil
}

// findSplitsByMovementIDs loads the splits of several movements in one query.
func (r *PgxMovementRepository) findSplitsByMovementIDs(ctx context.Context, movementIDs []string) (map[string][]domain.PaymentSplit, error) {
	result := make(map[string][]domain.PaymentSplit, len(movementIDs))
	if len(movementIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT split_id, movement_id, method_id, amount
		FROM payment_splits
		WHERE movement_id = ANY($1)
		ORDER BY split_id;
	`
	rows, err := r.Pool.Query(ctx, query, movementIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment splits", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.PaymentSplit
		if err := rows.Scan(&s.SplitID, &s.MovementID, &s.MethodID, &s.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment split row", err)
		}
		result[s.MovementID] = append(result[s.MovementID], mapping.ToDomainPaymentSplit(s))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment split rows", err)
	}
	return result, nil
}

// MarkMovementCancelled soft-cancels a movement, stamping reason and time.
func (r *PgxMovementRepository) MarkMovementCancelled(ctx context.Context, ownerID, movementID, reason, cancelledBy string, at time.Time) error {
	query := `
		UPDATE movements
		SET cancelled = TRUE, cancelled_at = $4, cancel_reason = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE owner_id = $1 AND movement_id = $2 AND cancelled = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, ownerID, movementID, reason, at, cancelledBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel movement "+movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateMovementDescription updates the movement's description only.
func (r *PgxMovementRepository) UpdateMovementDescription(ctx context.Context, ownerID, movementID, description, updatedBy string, at time.Time) error {
	query := `
		UPDATE movements
		SET description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE owner_id = $1 AND movement_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, ownerID, movementID, description, at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update movement description "+movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetDailySummary aggregates the date's non-cancelled splits, partitioned by
// the payment method's cash flag.
func (r *PgxMovementRepository) GetDailySummary(ctx context.Context, ownerID string, date time.Time) (*domain.DailySummary, error) {
	query := `
		SELECT
			COALESCE(SUM(s.amount) FILTER (WHERE m.direction = 'INFLOW'), 0) AS total_in,
			COALESCE(SUM(s.amount) FILTER (WHERE m.direction = 'OUTFLOW'), 0) AS total_out,
			COALESCE(SUM(s.amount) FILTER (WHERE m.direction = 'INFLOW' AND pm.is_cash), 0) AS cash_in,
			COALESCE(SUM(s.amount) FILTER (WHERE m.direction = 'OUTFLOW' AND pm.is_cash), 0) AS cash_out,
			COALESCE(SUM(s.amount) FILTER (WHERE m.direction = 'INFLOW' AND NOT pm.is_cash), 0) AS non_cash_in,
			COALESCE(SUM(s.amount) FILTER (WHERE m.direction = 'OUTFLOW' AND NOT pm.is_cash), 0) AS non_cash_out
		FROM movements m
		JOIN payment_splits s ON s.movement_id = m.movement_id
		JOIN payment_methods pm ON pm.method_id = s.method_id
		WHERE m.owner_id = $1 AND m.movement_date = $2 AND m.cancelled = FALSE;
	`
	var summary domain.DailySummary
	err := r.Pool.QueryRow(ctx, query, ownerID, date).Scan(
		&summary.TotalIn,
		&summary.TotalOut,
		&summary.CashIn,
		&summary.CashOut,
		&summary.NonCashIn,
		&summary.NonCashOut,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute daily summary", err)
	}

	summary.Balance = summary.TotalIn.Sub(summary.TotalOut)
	summary.CashBalance = summary.CashIn.Sub(summary.CashOut)
	return &summary, nil
}

// GetTotalsByMethod returns the per-method inflow/outflow totals of a date.
func (r *PgxMovementRepository) GetTotalsByMethod(ctx context.Context, ownerID string, date time.Time) ([]domain.MethodTotals, error) {
	query := `
		SELECT pm.method_id, pm.name, pm.is_cash,
			COALESCE(SUM(s.amount) FILTER (WHERE m.direction = 'INFLOW'), 0) AS total_in,
			COALESCE(SUM(s.amount) FILTER (WHERE m.direction = 'OUTFLOW'), 0) AS total_out
		FROM movements m
		JOIN payment_splits s ON s.movement_id = m.movement_id
		JOIN payment_methods pm ON pm.method_id = s.method_id
		WHERE m.owner_id = $1 AND m.movement_date = $2 AND m.cancelled = FALSE
		GROUP BY pm.method_id, pm.name, pm.is_cash
		ORDER BY pm.name;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, date)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query totals by method", err)
	}
	defer rows.Close()

	totals := []domain.MethodTotals{}
	for rows.Next() {
		var t domain.MethodTotals
		if err := rows.Scan(&t.MethodID, &t.MethodName, &t.IsCash, &t.TotalIn, &t.TotalOut); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan method totals row", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating method totals rows", err)
	}
	return totals, nil
}
