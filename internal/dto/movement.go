package dto

import (
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateSplitRequest is one payment-method portion of a new movement.
type CreateSplitRequest struct {
	MethodID string          `json:"methodID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required,dgt0"`
}

// CreateMovementRequest defines the data needed to record a movement.
// The total is computed server-side from the splits.
type CreateMovementRequest struct {
	Direction   domain.MovementDirection `json:"direction" binding:"required,oneof=INFLOW OUTFLOW"`
	CategoryID  string                   `json:"categoryID" binding:"required"`
	Description string                   `json:"description"`
	Date        string                   `json:"date"` // yyyy-mm-dd; defaults to today in the business timezone
	Splits      []CreateSplitRequest     `json:"splits" binding:"required,min=1,dive"`
}

// CancelMovementRequest carries the mandatory cancellation reason.
type CancelMovementRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UpdateDescriptionRequest updates a movement's free-text description.
type UpdateDescriptionRequest struct {
	Description string `json:"description"`
}

// SplitResponse is one split of a returned movement.
type SplitResponse struct {
	SplitID  string          `json:"splitID"`
	MethodID string          `json:"methodID"`
	Amount   decimal.Decimal `json:"amount"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID   string                   `json:"movementID"`
	Date         string                   `json:"date"`
	Direction    domain.MovementDirection `json:"direction"`
	TotalAmount  decimal.Decimal          `json:"totalAmount"`
	CategoryID   string                   `json:"categoryID"`
	Description  string                   `json:"description"`
	Cancelled    bool                     `json:"cancelled"`
	CancelledAt  *time.Time               `json:"cancelledAt,omitempty"`
	CancelReason string                   `json:"cancelReason,omitempty"`
	Splits       []SplitResponse          `json:"splits"`
	CreatedAt    time.Time                `json:"createdAt"`
	CreatedBy    string                   `json:"createdBy"`
}

// DailySummaryResponse is the aggregated view of one day's movements.
type DailySummaryResponse struct {
	Date        string          `json:"date"`
	TotalIn     decimal.Decimal `json:"totalIn"`
	TotalOut    decimal.Decimal `json:"totalOut"`
	Balance     decimal.Decimal `json:"balance"`
	CashIn      decimal.Decimal `json:"cashIn"`
	CashOut     decimal.Decimal `json:"cashOut"`
	CashBalance decimal.Decimal `json:"cashBalance"`
	NonCashIn   decimal.Decimal `json:"nonCashIn"`
	NonCashOut  decimal.Decimal `json:"nonCashOut"`
}

// MethodTotalsResponse is one row of the per-method breakdown.
type MethodTotalsResponse struct {
	MethodID   string          `json:"methodID"`
	MethodName string          `json:"methodName"`
	IsCash     bool            `json:"isCash"`
	TotalIn    decimal.Decimal `json:"totalIn"`
	TotalOut   decimal.Decimal `json:"totalOut"`
}

// ToSplitResponse converts a domain split to its response DTO.
func ToSplitResponse(s domain.PaymentSplit) SplitResponse {
	return SplitResponse{
		SplitID:  s.SplitID,
		MethodID: s.MethodID,
		Amount:   s.Amount,
	}
}

// ToMovementResponse converts a domain movement to its response DTO.
func ToMovementResponse(m *domain.Movement) MovementResponse {
	splits := make([]SplitResponse, len(m.Splits))
	for i, s := range m.Splits {
		splits[i] = ToSplitResponse(s)
	}
	return MovementResponse{
		MovementID:   m.MovementID,
		Date:         utils.FormatBusinessDate(m.MovementDate),
		Direction:    m.Direction,
		TotalAmount:  m.TotalAmount,
		CategoryID:   m.CategoryID,
		Description:  m.Description,
		Cancelled:    m.Cancelled,
		CancelledAt:  m.CancelledAt,
		CancelReason: m.CancelReason,
		Splits:       splits,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

// ToListMovementResponse converts a slice of domain movements.
func ToListMovementResponse(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i := range movements {
		res[i] = ToMovementResponse(&movements[i])
	}
	return res
}

// ToDailySummaryResponse converts a domain summary for the given date.
func ToDailySummaryResponse(date time.Time, s *domain.DailySummary) DailySummaryResponse {
	return DailySummaryResponse{
		Date:        utils.FormatBusinessDate(date),
		TotalIn:     s.TotalIn,
		TotalOut:    s.TotalOut,
		Balance:     s.Balance,
		CashIn:      s.CashIn,
		CashOut:     s.CashOut,
		CashBalance: s.CashBalance,
		NonCashIn:   s.NonCashIn,
		NonCashOut:  s.NonCashOut,
	}
}

// ToMethodTotalsResponses converts the per-method breakdown.
func ToMethodTotalsResponses(totals []domain.MethodTotals) []MethodTotalsResponse {
	res := make([]MethodTotalsResponse, len(totals))
	for i, t := range totals {
		res[i] = MethodTotalsResponse{
			MethodID:   t.MethodID,
			MethodName: t.MethodName,
			IsCash:     t.IsCash,
			TotalIn:    t.TotalIn,
			TotalOut:   t.TotalOut,
		}
	}
	return res
}
