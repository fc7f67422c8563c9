package dto

import (
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/utils"
	"github.com/shopspring/decimal"
)

// TransferRequest moves cash between the principal ledger and the secondary box.
type TransferRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // yyyy-mm-dd; defaults to today
}

// SecondaryExpenseRequest records an expense paid out of the secondary box.
type SecondaryExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	CategoryID  string          `json:"categoryID" binding:"required"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// CancelSecondaryMovementRequest carries the cancellation reason.
type CancelSecondaryMovementRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SecondaryMovementResponse defines the data returned for a secondary movement.
type SecondaryMovementResponse struct {
	SecondaryMovementID string                   `json:"secondaryMovementID"`
	Date                string                   `json:"date"`
	Direction           domain.MovementDirection `json:"direction"`
	Origin              domain.SecondaryOrigin   `json:"origin"`
	Amount              decimal.Decimal          `json:"amount"`
	CategoryID          *string                  `json:"categoryID,omitempty"`
	Description         string                   `json:"description"`
	PairedMovementID    *string                  `json:"pairedMovementID,omitempty"`
	Cancelled           bool                     `json:"cancelled"`
	CreatedAt           time.Time                `json:"createdAt"`
	CreatedBy           string                   `json:"createdBy"`
}

// SecondaryBalanceResponse is the current secondary box balance.
type SecondaryBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// ToSecondaryMovementResponse converts a domain secondary movement.
func ToSecondaryMovementResponse(m *domain.SecondaryMovement) SecondaryMovementResponse {
	return SecondaryMovementResponse{
		SecondaryMovementID: m.SecondaryMovementID,
		Date:                utils.FormatBusinessDate(m.MovementDate),
		Direction:           m.Direction,
		Origin:              m.Origin,
		Amount:              m.Amount,
		CategoryID:          m.CategoryID,
		Description:         m.Description,
		PairedMovementID:    m.PairedMovementID,
		Cancelled:           m.Cancelled,
		CreatedAt:           m.CreatedAt,
		CreatedBy:           m.CreatedBy,
	}
}

// ToListSecondaryMovementResponse converts a slice of secondary movements.
func ToListSecondaryMovementResponse(movements []domain.SecondaryMovement) []SecondaryMovementResponse {
	res := make([]SecondaryMovementResponse, len(movements))
	for i := range movements {
		res[i] = ToSecondaryMovementResponse(&movements[i])
	}
	return res
}
