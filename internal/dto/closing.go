package dto

import (
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/utils"
	"github.com/shopspring/decimal"
)

// SetOpeningBalanceRequest drafts a day's starting cash without closing it.
type SetOpeningBalanceRequest struct {
	Date   string          `json:"date" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// CloseDayRequest finalizes a day with its counted ending cash.
type CloseDayRequest struct {
	Date        string          `json:"date" binding:"required"`
	CountedCash decimal.Decimal `json:"countedCash"`
}

// DayClosingResponse defines the data returned for a day closing.
type DayClosingResponse struct {
	ClosingID      string           `json:"closingID"`
	Date           string           `json:"date"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	CountedCash    *decimal.Decimal `json:"countedCash,omitempty"`
	Closed         bool             `json:"closed"`
	ClosedAt       *time.Time       `json:"closedAt,omitempty"`
	ClosedBy       *string          `json:"closedBy,omitempty"`
}

// OpeningBalanceResponse is the opening cash carried into a date.
type OpeningBalanceResponse struct {
	Date           string          `json:"date"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UnclosedDaysResponse lists past days still pending a closing.
type UnclosedDaysResponse struct {
	Days []string `json:"days"`
}

// ToDayClosingResponse converts a domain day closing.
func ToDayClosingResponse(c *domain.DayClosing) DayClosingResponse {
	return DayClosingResponse{
		ClosingID:      c.ClosingID,
		Date:           utils.FormatBusinessDate(c.ClosingDate),
		OpeningBalance: c.OpeningBalance,
		CountedCash:    c.CountedCash,
		Closed:         c.Closed,
		ClosedAt:       c.ClosedAt,
		ClosedBy:       c.ClosedBy,
	}
}

// ToUnclosedDaysResponse formats the pending dates.
func ToUnclosedDaysResponse(days []time.Time) UnclosedDaysResponse {
	formatted := make([]string, len(days))
	for i, d := range days {
		formatted[i] = utils.FormatBusinessDate(d)
	}
	return UnclosedDaysResponse{Days: formatted}
}
