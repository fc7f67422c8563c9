package repositories

import (
	"context"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
)

// CatalogRepository manages categories and payment methods: the owner's
// custom rows unioned with the shared system rows.
type CatalogRepository interface {
	// ListCategories returns active system and owner categories, optionally
	// filtered to those applying to a direction, ordered by display order.
	ListCategories(ctx context.Context, ownerID string, direction *domain.CatalogDirection) ([]domain.Category, error)

	// FindCategoryByID retrieves a category visible to the owner (system or own).
	FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error)

	// FindSystemCategory resolves a well-known system category by stable code.
	FindSystemCategory(ctx context.Context, code domain.SystemCode) (*domain.Category, error)

	// SaveCategory inserts a custom category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates a custom category's mutable attributes.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// ListPaymentMethods returns active system and owner payment methods.
	ListPaymentMethods(ctx context.Context, ownerID string) ([]domain.PaymentMethod, error)

	// FindPaymentMethodByID retrieves a method visible to the owner.
	FindPaymentMethodByID(ctx context.Context, ownerID, methodID string) (*domain.PaymentMethod, error)

	// FindPaymentMethodsByIDs retrieves several visible methods at once,
	// keyed by method ID. Missing IDs are simply absent from the map.
	FindPaymentMethodsByIDs(ctx context.Context, ownerID string, methodIDs []string) (map[string]domain.PaymentMethod, error)

	// FindSystemPaymentMethod resolves a well-known system method by stable code.
	FindSystemPaymentMethod(ctx context.Context, code domain.SystemCode) (*domain.PaymentMethod, error)

	// SavePaymentMethod inserts a custom payment method.
	SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error

	// UpdatePaymentMethod updates a custom method's mutable attributes.
	UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) error
}
