package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDirection indicates whether a movement brings cash in or takes it out.
type MovementDirection string

const (
	Inflow  MovementDirection = "INFLOW"
	Outflow MovementDirection = "OUTFLOW"
)

// Movement represents a single entry in the principal daily cash ledger.
// A movement is created atomically with its payment splits and is never
// hard-deleted: cancellation is a soft flag so the audit trail survives.
type Movement struct {
	MovementID   string            `json:"movementID"`   // Primary Key (UUID)
	OwnerID      string            `json:"ownerID"`      // Owning business/user
	MovementDate time.Time         `json:"movementDate"` // Business date (owner timezone)
	Direction    MovementDirection `json:"direction"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"` // Always equals the sum of split amounts
	CategoryID   string            `json:"categoryID"`
	Description  string            `json:"description"`
	Cancelled    bool              `json:"cancelled"`
	CancelledAt  *time.Time        `json:"cancelledAt,omitempty"`
	CancelReason string            `json:"cancelReason,omitempty"`
	AuditFields
	Splits []PaymentSplit `json:"splits"` // Loaded with the movement
}

// PaymentSplit is the portion of a movement paid through one payment method.
// Splits are owned by their movement: created together with it, never mutated
// independently afterwards.
type PaymentSplit struct {
	SplitID    string          `json:"splitID"`
	MovementID string          `json:"movementID"`
	MethodID   string          `json:"methodID"`
	Amount     decimal.Decimal `json:"amount"` // Positive
}
