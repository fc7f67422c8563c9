package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDirection mirrors domain.MovementDirection at the storage layer.
type MovementDirection string

const (
	Inflow  MovementDirection = "INFLOW"
	Outflow MovementDirection = "OUTFLOW"
)

// Movement is the movements table row.
type Movement struct {
	MovementID   string            `db:"movement_id"`
	OwnerID      string            `db:"owner_id"`
	MovementDate time.Time         `db:"movement_date"`
	Direction    MovementDirection `db:"direction"`
	TotalAmount  decimal.Decimal   `db:"total_amount"`
	CategoryID   string            `db:"category_id"`
	Description  string            `db:"description"`
	Cancelled    bool              `db:"cancelled"`
	CancelledAt  *time.Time        `db:"cancelled_at"`
	CancelReason string            `db:"cancel_reason"`
	AuditFields
}

// PaymentSplit is the payment_splits table row.
type PaymentSplit struct {
	SplitID    string          `db:"split_id"`
	MovementID string          `db:"movement_id"`
	MethodID   string          `db:"method_id"`
	Amount     decimal.Decimal `db:"amount"`
}
