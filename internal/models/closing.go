package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayClosing is the day_closings table row, unique per (owner_id, closing_date).
type DayClosing struct {
	ClosingID      string           `db:"closing_id"`
	OwnerID        string           `db:"owner_id"`
	ClosingDate    time.Time        `db:"closing_date"`
	OpeningBalance decimal.Decimal  `db:"opening_balance"`
	CountedCash    *decimal.Decimal `db:"counted_cash"`
	Closed         bool             `db:"closed"`
	ClosedAt       *time.Time       `db:"closed_at"`
	ClosedBy       *string          `db:"closed_by"`
	AuditFields
}
