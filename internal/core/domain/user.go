package domain

import "time"

// User represents an authenticated user of the application. A user is either
// an owner (their own ledger) or an employee of exactly one owner; that
// resolution lives in Employment, not here.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
