package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}

// Employment is the employments table row: one employee user acting on behalf
// of one owner, with the named permission flags the owner granted.
type Employment struct {
	OwnerID            string    `db:"owner_id"`
	EmployeeUserID     string    `db:"employee_user_id"`
	CancelMovements    bool      `db:"can_cancel_movements"`
	AddCategories      bool      `db:"can_add_categories"`
	AddPaymentMethods  bool      `db:"can_add_payment_methods"`
	EditClosing        bool      `db:"can_edit_closing"`
	EditOpeningBalance bool      `db:"can_edit_opening_balance"`
	ReopenDay          bool      `db:"can_reopen_day"`
	DeleteArqueos      bool      `db:"can_delete_arqueos"`
	ManageSecondary    bool      `db:"can_manage_secondary"`
	IsActive           bool      `db:"is_active"`
	JoinedAt           time.Time `db:"joined_at"`
	AuditFields
}
