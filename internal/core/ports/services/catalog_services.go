package services

import (
	"context"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
)

// CatalogReaderSvc defines lookup operations over categories and methods.
type CatalogReaderSvc interface {
	// ListCategories returns system plus owner categories, active only,
	// optionally filtered by direction.
	ListCategories(ctx context.Context, actingUserID string, direction *domain.CatalogDirection) ([]domain.Category, error)

	// ListPaymentMethods returns system plus owner methods, active only.
	ListPaymentMethods(ctx context.Context, actingUserID string) ([]domain.PaymentMethod, error)
}

// CatalogWriterSvc defines mutations over custom catalog rows. System rows
// are immutable through this interface.
type CatalogWriterSvc interface {
	CreateCategory(ctx context.Context, actingUserID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, actingUserID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	CreatePaymentMethod(ctx context.Context, actingUserID string, req dto.CreatePaymentMethodRequest) (*domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, actingUserID, methodID string, req dto.UpdatePaymentMethodRequest) (*domain.PaymentMethod, error)
}

// CatalogSvcFacade combines the catalog service interfaces.
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogWriterSvc
}
