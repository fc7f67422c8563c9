package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Arqueo records one cash reconciliation: the cash balance the ledger implied
// at the moment of counting, the physically counted amount, and the
// difference. A nonzero difference produces exactly one adjustment movement
// in the principal ledger, created in the same transaction as the arqueo.
//
// Deleting an arqueo does not reverse its adjustment movement; once created
// the two are decoupled.
type Arqueo struct {
	ArqueoID             string          `json:"arqueoID"`
	OwnerID              string          `json:"ownerID"`
	ArqueoDate           time.Time       `json:"arqueoDate"`
	ExpectedCash         decimal.Decimal `json:"expectedCash"` // Computed at creation time
	CountedCash          decimal.Decimal `json:"countedCash"`  // User input
	Difference           decimal.Decimal `json:"difference"`   // counted - expected
	DifferenceReason     string          `json:"differenceReason,omitempty"`
	AdjustmentMovementID *string         `json:"adjustmentMovementID,omitempty"`
	AuditFields
}

// CashAdjustmentSpec carries the identifiers and context for building the
// movement that compensates a count difference.
type CashAdjustmentSpec struct {
	MovementID string
	SplitID    string
	OwnerID    string
	CategoryID string
	MethodID   string
	Date       time.Time
	Difference decimal.Decimal // counted - expected
	Audit      AuditFields
}

// BuildCashAdjustment maps a count difference to its compensating movement:
// a surplus posts an inflow, a shortage an outflow for the absolute amount,
// always as a single cash split. A zero difference needs no adjustment and
// returns ok=false.
func BuildCashAdjustment(spec CashAdjustmentSpec) (Movement, bool) {
	if spec.Difference.IsZero() {
		return Movement{}, false
	}

	direction := Inflow
	amount := spec.Difference
	if spec.Difference.IsNegative() {
		direction = Outflow
		amount = spec.Difference.Neg()
	}

	return Movement{
		MovementID:   spec.MovementID,
		OwnerID:      spec.OwnerID,
		MovementDate: spec.Date,
		Direction:    direction,
		TotalAmount:  amount,
		CategoryID:   spec.CategoryID,
		Description:  "Cash count adjustment",
		AuditFields:  spec.Audit,
		Splits: []PaymentSplit{{
			SplitID:    spec.SplitID,
			MovementID: spec.MovementID,
			MethodID:   spec.MethodID,
			Amount:     amount,
		}},
	}, true
}
