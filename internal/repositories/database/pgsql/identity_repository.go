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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxIdentityRepository struct {
	BaseRepository
}

// newPgxIdentityRepository creates a new repository for employment links.
func newPgxIdentityRepository(pool *pgxpool.Pool) portsrepo.IdentityRepository {
	return &PgxIdentityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.IdentityRepository = (*PgxIdentityRepository)(nil)

const employmentColumns = `owner_id, employee_user_id,
	can_cancel_movements, can_add_categories, can_add_payment_methods, can_edit_closing,
	can_edit_opening_balance, can_reopen_day, can_delete_arqueos, can_manage_secondary,
	is_active, joined_at, created_at, created_by, last_updated_at, last_updated_by`

func scanEmployment(row pgx.Row) (models.Employment, error) {
	var e models.Employment
	err := row.Scan(
		&e.OwnerID,
		&e.EmployeeUserID,
		&e.CancelMovements,
		&e.AddCategories,
		&e.AddPaymentMethods,
		&e.EditClosing,
		&e.EditOpeningBalance,
		&e.ReopenDay,
		&e.DeleteArqueos,
		&e.ManageSecondary,
		&e.IsActive,
		&e.JoinedAt,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// FindEmploymentByUser retrieves the active employment of the acting user.
func (r *PgxIdentityRepository) FindEmploymentByUser(ctx context.Context, employeeUserID string) (*domain.Employment, error) {
	query := `
		SELECT ` + employmentColumns + `
		FROM employments
		WHERE employee_user_id = $1 AND is_active = TRUE;
	`
	e, err := scanEmployment(r.Pool.QueryRow(ctx, query, employeeUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find employment for user "+employeeUserID, err)
	}

	employment := mapping.ToDomainEmployment(e)
	return &employment, nil
}

// ListEmployments lists an owner's active employees.
func (r *PgxIdentityRepository) ListEmployments(ctx context.Context, ownerID string) ([]domain.Employment, error) {
	query := `
		SELECT ` + employmentColumns + `
		FROM employments
		WHERE owner_id = $1 AND is_active = TRUE
		ORDER BY joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employments", err)
	}
	defer rows.Close()

	employments := []domain.Employment{}
	for rows.Next() {
		e, err := scanEmployment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employment row", err)
		}
		employments = append(employments, mapping.ToDomainEmployment(e))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employment rows", err)
	}
	return employments, nil
}

// UpsertEmployment inserts or updates an employment and its permissions.
func (r *PgxIdentityRepository) UpsertEmployment(ctx context.Context, employment domain.Employment) error {
	query := `
		INSERT INTO employments (` + employmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (owner_id, employee_user_id) DO UPDATE
		SET can_cancel_movements = EXCLUDED.can_cancel_movements,
		    can_add_categories = EXCLUDED.can_add_categories,
		    can_add_payment_methods = EXCLUDED.can_add_payment_methods,
		    can_edit_closing = EXCLUDED.can_edit_closing,
		    can_edit_opening_balance = EXCLUDED.can_edit_opening_balance,
		    can_reopen_day = EXCLUDED.can_reopen_day,
		    can_delete_arqueos = EXCLUDED.can_delete_arqueos,
		    can_manage_secondary = EXCLUDED.can_manage_secondary,
		    is_active = TRUE,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	e := mapping.ToModelEmployment(employment)
	_, err := r.Pool.Exec(ctx, query,
		e.OwnerID, e.EmployeeUserID,
		e.CancelMovements, e.AddCategories, e.AddPaymentMethods, e.EditClosing,
		e.EditOpeningBalance, e.ReopenDay, e.DeleteArqueos, e.ManageSecondary,
		e.IsActive, e.JoinedAt, e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The user already has an active employment with another owner.
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to upsert employment for user "+e.EmployeeUserID, err)
	}
	return nil
}

// DeactivateEmployment soft-removes an employee from the owner.
func (r *PgxIdentityRepository) DeactivateEmployment(ctx context.Context, ownerID, employeeUserID, updatedBy string) error {
	query := `
		UPDATE employments
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE owner_id = $1 AND employee_user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, ownerID, employeeUserID, time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate employment for user "+employeeUserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
