package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Arqueo is the arqueos table row.
type Arqueo struct {
	ArqueoID             string          `db:"arqueo_id"`
	OwnerID              string          `db:"owner_id"`
	ArqueoDate           time.Time       `db:"arqueo_date"`
	ExpectedCash         decimal.Decimal `db:"expected_cash"`
	CountedCash          decimal.Decimal `db:"counted_cash"`
	Difference           decimal.Decimal `db:"difference"`
	DifferenceReason     string          `db:"difference_reason"`
	AdjustmentMovementID *string         `db:"adjustment_movement_id"`
	AuditFields
}
