package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SecondaryOrigin tags how a secondary cash box movement came to exist.
// Cancellation behaviour dispatches on this tag: transfer origins cascade to
// their paired principal movement, expenses are removed outright.
type SecondaryOrigin string

const (
	OriginTransferIn       SecondaryOrigin = "TRANSFER_IN"
	OriginTransferOut      SecondaryOrigin = "TRANSFER_OUT"
	OriginExpense          SecondaryOrigin = "EXPENSE"
	OriginReconciliationIn SecondaryOrigin = "RECONCILIATION_IN"
)

// HasPrincipalPair reports whether movements of this origin are mirrored by a
// principal-ledger movement that must be cancelled together with them.
func (o SecondaryOrigin) HasPrincipalPair() bool {
	return o == OriginTransferIn || o == OriginTransferOut || o == OriginReconciliationIn
}

// SecondaryMovement is one entry in the secondary cash box: a cash-only
// sub-ledger fed by transfers from the principal ledger and its own expenses.
type SecondaryMovement struct {
	SecondaryMovementID string            `json:"secondaryMovementID"`
	OwnerID             string            `json:"ownerID"`
	MovementDate        time.Time         `json:"movementDate"`
	Direction           MovementDirection `json:"direction"`
	Origin              SecondaryOrigin   `json:"origin"`
	Amount              decimal.Decimal   `json:"amount"` // Always cash, single implicit amount
	CategoryID          *string           `json:"categoryID,omitempty"` // Set for expenses
	Description         string            `json:"description"`
	PairedMovementID    *string           `json:"pairedMovementID,omitempty"` // Principal movement for transfer origins
	Cancelled           bool              `json:"cancelled"`
	CancelledAt         *time.Time        `json:"cancelledAt,omitempty"`
	CancelReason        string            `json:"cancelReason,omitempty"`
	AuditFields
}
