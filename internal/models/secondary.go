package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SecondaryMovement is the secondary_movements table row.
type SecondaryMovement struct {
	SecondaryMovementID string            `db:"secondary_movement_id"`
	OwnerID             string            `db:"owner_id"`
	MovementDate        time.Time         `db:"movement_date"`
	Direction           MovementDirection `db:"direction"`
	Origin              string            `db:"origin"`
	Amount              decimal.Decimal   `db:"amount"`
	CategoryID          *string           `db:"category_id"`
	Description         string            `db:"description"`
	PairedMovementID    *string           `db:"paired_movement_id"`
	Cancelled           bool              `db:"cancelled"`
	CancelledAt         *time.Time        `db:"cancelled_at"`
	CancelReason        string            `db:"cancel_reason"`
	AuditFields
}
