package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portsrepo "github.com/cajadiaria/caja_diaria_app/internal/core/ports/repositories"
	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/cajadiaria/caja_diaria_app/internal/middleware"
)

// catalogService manages categories and payment methods. System rows are
// shared and read-only; custom rows belong to one owner.
type catalogService struct {
	catalogRepo portsrepo.CatalogRepository
	identitySvc portssvc.IdentitySvc
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo portsrepo.CatalogRepository, identitySvc portssvc.IdentitySvc) portssvc.CatalogSvcFacade {
	return &catalogService{
		catalogRepo: catalogRepo,
		identitySvc: identitySvc,
	}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

// ListCategories returns the active system and owner categories, optionally
// restricted to one direction.
func (s *catalogService) ListCategories(ctx context.Context, actingUserID string, direction *domain.CatalogDirection) ([]domain.Category, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	categories, err := s.catalogRepo.ListCategories(ctx, actor.OwnerID, direction)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListPaymentMethods returns the active system and owner payment methods.
func (s *catalogService) ListPaymentMethods(ctx context.Context, actingUserID string) ([]domain.PaymentMethod, error) {
	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	methods, err := s.catalogRepo.ListPaymentMethods(ctx, actor.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

// CreateCategory creates a custom category for the acting owner.
func (s *catalogService) CreateCategory(ctx context.Context, actingUserID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.AddCategories) {
		return nil, fmt.Errorf("%w: missing permission to add categories", apperrors.ErrForbidden)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	ownerID := actor.OwnerID
	category := domain.Category{
		CategoryID:   uuid.NewString(),
		OwnerID:      &ownerID,
		Name:         name,
		Direction:    req.Direction,
		IsSystem:     false,
		IsActive:     true,
		DisplayOrder: req.DisplayOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.catalogRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("owner_id", ownerID))
	return &category, nil
}

// UpdateCategory updates a custom category. System categories are immutable.
func (s *catalogService) UpdateCategory(ctx context.Context, actingUserID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.AddCategories) {
		return nil, fmt.Errorf("%w: missing permission to edit categories", apperrors.ErrForbidden)
	}

	category, err := s.catalogRepo.FindCategoryByID(ctx, actor.OwnerID, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category.IsSystem {
		return nil, fmt.Errorf("%w: system categories cannot be modified", apperrors.ErrValidation)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
		}
		category.Name = name
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = actingUserID

	if err := s.catalogRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// CreatePaymentMethod creates a custom payment method for the acting owner.
func (s *catalogService) CreatePaymentMethod(ctx context.Context, actingUserID string, req dto.CreatePaymentMethodRequest) (*domain.PaymentMethod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.AddPaymentMethods) {
		return nil, fmt.Errorf("%w: missing permission to add payment methods", apperrors.ErrForbidden)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: payment method name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	ownerID := actor.OwnerID
	method := domain.PaymentMethod{
		MethodID:     uuid.NewString(),
		OwnerID:      &ownerID,
		Name:         name,
		IsCash:       req.IsCash,
		IsSystem:     false,
		IsActive:     true,
		DisplayOrder: req.DisplayOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.catalogRepo.SavePaymentMethod(ctx, method); err != nil {
		logger.Error("Failed to save payment method", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save payment method: %w", err)
	}

	logger.Info("Payment method created", slog.String("method_id", method.MethodID), slog.String("owner_id", ownerID))
	return &method, nil
}

// UpdatePaymentMethod updates a custom payment method. System methods are
// immutable, and the cash flag is frozen after creation because flipping it
// would rewrite history in every past summary and reconciliation.
func (s *catalogService) UpdatePaymentMethod(ctx context.Context, actingUserID, methodID string, req dto.UpdatePaymentMethodRequest) (*domain.PaymentMethod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.identitySvc.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.Allows(actor.Permissions.AddPaymentMethods) {
		return nil, fmt.Errorf("%w: missing permission to edit payment methods", apperrors.ErrForbidden)
	}

	method, err := s.catalogRepo.FindPaymentMethodByID(ctx, actor.OwnerID, methodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: payment method %s", apperrors.ErrNotFound, methodID)
		}
		return nil, fmt.Errorf("failed to find payment method: %w", err)
	}
	if method.IsSystem {
		return nil, fmt.Errorf("%w: system payment methods cannot be modified", apperrors.ErrValidation)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: payment method name cannot be empty", apperrors.ErrValidation)
		}
		method.Name = name
	}
	if req.DisplayOrder != nil {
		method.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}
	method.LastUpdatedAt = time.Now().UTC()
	method.LastUpdatedBy = actingUserID

	if err := s.catalogRepo.UpdatePaymentMethod(ctx, *method); err != nil {
		logger.Error("Failed to update payment method", slog.String("error", err.Error()), slog.String("method_id", methodID))
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}

	return method, nil
}
