package mapping

import (
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/models"
)

// ToModelCategory converts a domain category to its table row.
func ToModelCategory(c domain.Category) models.Category {
	var code *string
	if c.SystemCode != nil {
		s := string(*c.SystemCode)
		code = &s
	}
	return models.Category{
		CategoryID:   c.CategoryID,
		OwnerID:      c.OwnerID,
		Name:         c.Name,
		Direction:    string(c.Direction),
		IsSystem:     c.IsSystem,
		SystemCode:   code,
		IsActive:     c.IsActive,
		DisplayOrder: c.DisplayOrder,
		AuditFields:  ToModelAuditFields(c.AuditFields),
	}
}

// ToDomainCategory converts a categories row to a domain category.
func ToDomainCategory(c models.Category) domain.Category {
	var code *domain.SystemCode
	if c.SystemCode != nil {
		s := domain.SystemCode(*c.SystemCode)
		code = &s
	}
	return domain.Category{
		CategoryID:   c.CategoryID,
		OwnerID:      c.OwnerID,
		Name:         c.Name,
		Direction:    domain.CatalogDirection(c.Direction),
		IsSystem:     c.IsSystem,
		SystemCode:   code,
		IsActive:     c.IsActive,
		DisplayOrder: c.DisplayOrder,
		AuditFields:  ToDomainAuditFields(c.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of categories rows.
func ToDomainCategorySlice(categories []models.Category) []domain.Category {
	result := make([]domain.Category, len(categories))
	for i, c := range categories {
		result[i] = ToDomainCategory(c)
	}
	return result
}

// ToModelPaymentMethod converts a domain payment method to its table row.
func ToModelPaymentMethod(m domain.PaymentMethod) models.PaymentMethod {
	var code *string
	if m.SystemCode != nil {
		s := string(*m.SystemCode)
		code = &s
	}
	return models.PaymentMethod{
		MethodID:     m.MethodID,
		OwnerID:      m.OwnerID,
		Name:         m.Name,
		IsCash:       m.IsCash,
		IsSystem:     m.IsSystem,
		SystemCode:   code,
		IsActive:     m.IsActive,
		DisplayOrder: m.DisplayOrder,
		AuditFields:  ToModelAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentMethod converts a payment_methods row to a domain method.
func ToDomainPaymentMethod(m models.PaymentMethod) domain.PaymentMethod {
	var code *domain.SystemCode
	if m.SystemCode != nil {
		s := domain.SystemCode(*m.SystemCode)
		code = &s
	}
	return domain.PaymentMethod{
		MethodID:     m.MethodID,
		OwnerID:      m.OwnerID,
		Name:         m.Name,
		IsCash:       m.IsCash,
		IsSystem:     m.IsSystem,
		SystemCode:   code,
		IsActive:     m.IsActive,
		DisplayOrder: m.DisplayOrder,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentMethodSlice converts a slice of payment_methods rows.
func ToDomainPaymentMethodSlice(methods []models.PaymentMethod) []domain.PaymentMethod {
	result := make([]domain.PaymentMethod, len(methods))
	for i, m := range methods {
		result[i] = ToDomainPaymentMethod(m)
	}
	return result
}
