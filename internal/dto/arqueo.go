package dto

import (
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateArqueoRequest records a physical cash count for a date. CountedCash
// may legitimately be zero, so it carries no positivity binding; the service
// rejects negative values.
type CreateArqueoRequest struct {
	Date        string          `json:"date" binding:"required"`
	CountedCash decimal.Decimal `json:"countedCash"`
	Reason      string          `json:"reason"`
}

// ArqueoResponse defines the data returned for a reconciliation.
type ArqueoResponse struct {
	ArqueoID             string          `json:"arqueoID"`
	Date                 string          `json:"date"`
	ExpectedCash         decimal.Decimal `json:"expectedCash"`
	CountedCash          decimal.Decimal `json:"countedCash"`
	Difference           decimal.Decimal `json:"difference"`
	DifferenceReason     string          `json:"differenceReason,omitempty"`
	AdjustmentMovementID *string         `json:"adjustmentMovementID,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	CreatedBy            string          `json:"createdBy"`
}

// ExpectedCashResponse is the ledger-implied cash for a date at call time.
type ExpectedCashResponse struct {
	Date         string          `json:"date"`
	ExpectedCash decimal.Decimal `json:"expectedCash"`
}

// ToArqueoResponse converts a domain arqueo to its response DTO.
func ToArqueoResponse(a *domain.Arqueo) ArqueoResponse {
	return ArqueoResponse{
		ArqueoID:             a.ArqueoID,
		Date:                 utils.FormatBusinessDate(a.ArqueoDate),
		ExpectedCash:         a.ExpectedCash,
		CountedCash:          a.CountedCash,
		Difference:           a.Difference,
		DifferenceReason:     a.DifferenceReason,
		AdjustmentMovementID: a.AdjustmentMovementID,
		CreatedAt:            a.CreatedAt,
		CreatedBy:            a.CreatedBy,
	}
}

// ToListArqueoResponse converts a slice of arqueos.
func ToListArqueoResponse(arqueos []domain.Arqueo) []ArqueoResponse {
	res := make([]ArqueoResponse, len(arqueos))
	for i := range arqueos {
		res[i] = ToArqueoResponse(&arqueos[i])
	}
	return res
}
