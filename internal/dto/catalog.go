package dto

import (
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a custom category.
type CreateCategoryRequest struct {
	Name         string                  `json:"name" binding:"required"`
	Direction    domain.CatalogDirection `json:"direction" binding:"required,oneof=INFLOW OUTFLOW BOTH"`
	DisplayOrder int                     `json:"displayOrder"`
}

// UpdateCategoryRequest updates a custom category. Pointers distinguish
// omitted fields from zero values.
type UpdateCategoryRequest struct {
	Name         *string `json:"name"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID   string                  `json:"categoryID"`
	Name         string                  `json:"name"`
	Direction    domain.CatalogDirection `json:"direction"`
	IsSystem     bool                    `json:"isSystem"`
	IsActive     bool                    `json:"isActive"`
	DisplayOrder int                     `json:"displayOrder"`
}

// CreatePaymentMethodRequest defines the data needed to create a custom method.
type CreatePaymentMethodRequest struct {
	Name         string `json:"name" binding:"required"`
	IsCash       bool   `json:"isCash"`
	DisplayOrder int    `json:"displayOrder"`
}

// UpdatePaymentMethodRequest updates a custom payment method.
type UpdatePaymentMethodRequest struct {
	Name         *string `json:"name"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// PaymentMethodResponse defines the data returned for a payment method.
type PaymentMethodResponse struct {
	MethodID     string `json:"methodID"`
	Name         string `json:"name"`
	IsCash       bool   `json:"isCash"`
	IsSystem     bool   `json:"isSystem"`
	IsActive     bool   `json:"isActive"`
	DisplayOrder int    `json:"displayOrder"`
}

// ToCategoryResponse converts a domain category.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:   c.CategoryID,
		Name:         c.Name,
		Direction:    c.Direction,
		IsSystem:     c.IsSystem,
		IsActive:     c.IsActive,
		DisplayOrder: c.DisplayOrder,
	}
}

// ToListCategoryResponse converts a slice of domain categories.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}

// ToPaymentMethodResponse converts a domain payment method.
func ToPaymentMethodResponse(m *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		MethodID:     m.MethodID,
		Name:         m.Name,
		IsCash:       m.IsCash,
		IsSystem:     m.IsSystem,
		IsActive:     m.IsActive,
		DisplayOrder: m.DisplayOrder,
	}
}

// ToListPaymentMethodResponse converts a slice of domain payment methods.
func ToListPaymentMethodResponse(methods []domain.PaymentMethod) []PaymentMethodResponse {
	res := make([]PaymentMethodResponse, len(methods))
	for i := range methods {
		res[i] = ToPaymentMethodResponse(&methods[i])
	}
	return res
}
