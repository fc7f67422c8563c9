package pgsql

import (
	"context"
	"errors"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portsrepo "github.com/cajadiaria/caja_diaria_app/internal/core/ports/repositories"
	"github.com/cajadiaria/caja_diaria_app/internal/models"
	"github.com/cajadiaria/caja_diaria_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for categories and
// payment methods.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepository {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CatalogRepository = (*PgxCatalogRepository)(nil)

const categoryColumns = `category_id, owner_id, name, direction, is_system, system_code, is_active, display_order,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.CategoryID,
		&c.OwnerID,
		&c.Name,
		&c.Direction,
		&c.IsSystem,
		&c.SystemCode,
		&c.IsActive,
		&c.DisplayOrder,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// ListCategories returns active system and owner categories ordered by
// display order. A direction filter also matches BOTH rows.
func (r *PgxCatalogRepository) ListCategories(ctx context.Context, ownerID string, direction *domain.CatalogDirection) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE (owner_id IS NULL OR owner_id = $1) AND is_active = TRUE
		  AND ($2::text IS NULL OR direction = $2 OR direction = 'BOTH')
		ORDER BY display_order, name;
	`
	var directionFilter *string
	if direction != nil {
		value := string(*direction)
		directionFilter = &value
	}

	rows, err := r.Pool.Query(ctx, query, ownerID, directionFilter)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}
	return mapping.ToDomainCategorySlice(categories), nil
}

// FindCategoryByID retrieves a category visible to the owner.
func (r *PgxCatalogRepository) FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $2 AND (owner_id IS NULL OR owner_id = $1);
	`
	c, err := scanCategory(r.Pool.QueryRow(ctx, query, ownerID, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find category by ID "+categoryID, err)
	}

	category := mapping.ToDomainCategory(c)
	return &category, nil
}

// FindSystemCategory resolves a well-known system category by stable code.
func (r *PgxCatalogRepository) FindSystemCategory(ctx context.Context, code domain.SystemCode) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE is_system = TRUE AND system_code = $1;
	`
	c, err := scanCategory(r.Pool.QueryRow(ctx, query, string(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("system category " + string(code) + " is missing")
		}
		return nil, apperrors.NewAppError(500, "failed to find system category "+string(code), err)
	}

	category := mapping.ToDomainCategory(c)
	return &category, nil
}

// SaveCategory inserts a custom category.
func (r *PgxCatalogRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	c := mapping.ToModelCategory(category)
	_, err := r.Pool.Exec(ctx, query,
		c.CategoryID, c.OwnerID, c.Name, c.Direction, c.IsSystem, c.SystemCode, c.IsActive, c.DisplayOrder,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert category "+c.CategoryID, err)
	}
	return nil
}

// UpdateCategory updates a custom category's mutable attributes. System rows
// are excluded at the SQL level as well.
func (r *PgxCatalogRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories
		SET name = $3, is_active = $4, display_order = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE category_id = $2 AND owner_id = $1 AND is_system = FALSE;
	`
	c := mapping.ToModelCategory(category)
	tag, err := r.Pool.Exec(ctx, query,
		c.OwnerID, c.CategoryID, c.Name, c.IsActive, c.DisplayOrder,
		c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update category "+c.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const methodColumns = `method_id, owner_id, name, is_cash, is_system, system_code, is_active, display_order,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPaymentMethod(row pgx.Row) (models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(
		&m.MethodID,
		&m.OwnerID,
		&m.Name,
		&m.IsCash,
		&m.IsSystem,
		&m.SystemCode,
		&m.IsActive,
		&m.DisplayOrder,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// ListPaymentMethods returns active system and owner payment methods.
func (r *PgxCatalogRepository) ListPaymentMethods(ctx context.Context, ownerID string) ([]domain.PaymentMethod, error) {
	query := `
		SELECT ` + methodColumns + `
		FROM payment_methods
		WHERE (owner_id IS NULL OR owner_id = $1) AND is_active = TRUE
		ORDER BY display_order, name;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment methods", err)
	}
	defer rows.Close()

	methods := []models.PaymentMethod{}
	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment method row", err)
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment method rows", err)
	}
	return mapping.ToDomainPaymentMethodSlice(methods), nil
}

// FindPaymentMethodByID retrieves a method visible to the owner.
func (r *PgxCatalogRepository) FindPaymentMethodByID(ctx context.Context, ownerID, methodID string) (*domain.PaymentMethod, error) {
	query := `
		SELECT ` + methodColumns + `
		FROM payment_methods
		WHERE method_id = $2 AND (owner_id IS NULL OR owner_id = $1);
	`
	m, err := scanPaymentMethod(r.Pool.QueryRow(ctx, query, ownerID, methodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment method by ID "+methodID, err)
	}

	method := mapping.ToDomainPaymentMethod(m)
	return &method, nil
}

// FindPaymentMethodsByIDs retrieves several visible methods keyed by ID.
// Missing IDs are simply absent from the map.
func (r *PgxCatalogRepository) FindPaymentMethodsByIDs(ctx context.Context, ownerID string, methodIDs []string) (map[string]domain.PaymentMethod, error) {
	result := make(map[string]domain.PaymentMethod, len(methodIDs))
	if len(methodIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + methodColumns + `
		FROM payment_methods
		WHERE method_id = ANY($2) AND (owner_id IS NULL OR owner_id = $1);
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, methodIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment methods by IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment method row", err)
		}
		result[m.MethodID] = mapping.ToDomainPaymentMethod(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment method rows", err)
	}
	return result, nil
}

// FindSystemPaymentMethod resolves a well-known system method by stable code.
func (r *PgxCatalogRepository) FindSystemPaymentMethod(ctx context.Context, code domain.SystemCode) (*domain.PaymentMethod, error) {
	query := `
		SELECT ` + methodColumns + `
		FROM payment_methods
		WHERE is_system = TRUE AND system_code = $1;
	`
	m, err := scanPaymentMethod(r.Pool.QueryRow(ctx, query, string(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("system payment method " + string(code) + " is missing")
		}
		return nil, apperrors.NewAppError(500, "failed to find system payment method "+string(code), err)
	}

	method := mapping.ToDomainPaymentMethod(m)
	return &method, nil
}

// SavePaymentMethod inserts a custom payment method.
func (r *PgxCatalogRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (` + methodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	m := mapping.ToModelPaymentMethod(method)
	_, err := r.Pool.Exec(ctx, query,
		m.MethodID, m.OwnerID, m.Name, m.IsCash, m.IsSystem, m.SystemCode, m.IsActive, m.DisplayOrder,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment method "+m.MethodID, err)
	}
	return nil
}

// UpdatePaymentMethod updates a custom method's mutable attributes.
func (r *PgxCatalogRepository) UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	query := `
		UPDATE payment_methods
		SET name = $3, is_active = $4, display_order = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE method_id = $2 AND owner_id = $1 AND is_system = FALSE;
	`
	m := mapping.ToModelPaymentMethod(method)
	tag, err := r.Pool.Exec(ctx, query,
		m.OwnerID, m.MethodID, m.Name, m.IsActive, m.DisplayOrder,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment method "+m.MethodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
