package domain

// CatalogDirection restricts which movement directions a category applies to.
type CatalogDirection string

const (
	CatalogInflow  CatalogDirection = "INFLOW"
	CatalogOutflow CatalogDirection = "OUTFLOW"
	CatalogBoth    CatalogDirection = "BOTH"
)

// SystemCode identifies the well-known system catalog rows the engine depends
// on. Operations that need one of these rows fail closed if it is missing;
// there is no fallback to an arbitrary category or method.
type SystemCode string

const (
	SystemCash           SystemCode = "CASH"            // The cash payment method
	SystemCashAdjustment SystemCode = "CASH_ADJUSTMENT" // Reconciliation adjustment category
	SystemToSecondary    SystemCode = "TO_SECONDARY"    // Transfer-to-secondary category
	SystemFromSecondary  SystemCode = "FROM_SECONDARY"  // Reintegration category
)

// Category classifies a movement. System categories (OwnerID == nil) are
// shared across all owners and immutable by end users; custom categories
// belong to one owner and can be edited or soft-deactivated.
type Category struct {
	CategoryID   string           `json:"categoryID"`
	OwnerID      *string          `json:"ownerID,omitempty"` // nil = system-wide
	Name         string           `json:"name"`
	Direction    CatalogDirection `json:"direction"`
	IsSystem     bool             `json:"isSystem"`
	SystemCode   *SystemCode      `json:"systemCode,omitempty"`
	IsActive     bool             `json:"isActive"`
	DisplayOrder int              `json:"displayOrder"`
	AuditFields
}

// AppliesTo reports whether the category accepts movements of the given direction.
func (c Category) AppliesTo(direction MovementDirection) bool {
	switch c.Direction {
	case CatalogBoth:
		return true
	case CatalogInflow:
		return direction == Inflow
	case CatalogOutflow:
		return direction == Outflow
	}
	return false
}

// PaymentMethod is one way a movement split can be paid. IsCash determines
// whether the split counts toward the cash balance consumed by reconciliation
// and the secondary cash box.
type PaymentMethod struct {
	MethodID     string      `json:"methodID"`
	OwnerID      *string     `json:"ownerID,omitempty"` // nil = system-wide
	Name         string      `json:"name"`
	IsCash       bool        `json:"isCash"`
	IsSystem     bool        `json:"isSystem"`
	SystemCode   *SystemCode `json:"systemCode,omitempty"`
	IsActive     bool        `json:"isActive"`
	DisplayOrder int         `json:"displayOrder"`
	AuditFields
}
