package models

// Category is the categories table row. OwnerID and SystemCode are nullable.
type Category struct {
	CategoryID   string  `db:"category_id"`
	OwnerID      *string `db:"owner_id"`
	Name         string  `db:"name"`
	Direction    string  `db:"direction"`
	IsSystem     bool    `db:"is_system"`
	SystemCode   *string `db:"system_code"`
	IsActive     bool    `db:"is_active"`
	DisplayOrder int     `db:"display_order"`
	AuditFields
}

// PaymentMethod is the payment_methods table row.
type PaymentMethod struct {
	MethodID     string  `db:"method_id"`
	OwnerID      *string `db:"owner_id"`
	Name         string  `db:"name"`
	IsCash       bool    `db:"is_cash"`
	IsSystem     bool    `db:"is_system"`
	SystemCode   *string `db:"system_code"`
	IsActive     bool    `db:"is_active"`
	DisplayOrder int     `db:"display_order"`
	AuditFields
}
