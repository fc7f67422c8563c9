package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayClosing is the per-day closing record. It moves through three states:
// no record, open (opening balance drafted, Closed false) and closed. A
// closed day can be reopened. The row is unique per (owner, date), so
// repeated closings for the same day overwrite rather than duplicate.
type DayClosing struct {
	ClosingID      string           `json:"closingID"`
	OwnerID        string           `json:"ownerID"`
	ClosingDate    time.Time        `json:"closingDate"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"` // Carried from the prior day's counted cash
	CountedCash    *decimal.Decimal `json:"countedCash,omitempty"`
	Closed         bool             `json:"closed"`
	ClosedAt       *time.Time       `json:"closedAt,omitempty"`
	ClosedBy       *string          `json:"closedBy,omitempty"`
	AuditFields
}
