package mapping

import (
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/models"
)

// ToModelDayClosing converts a domain day closing to its table row.
func ToModelDayClosing(c domain.DayClosing) models.DayClosing {
	return models.DayClosing{
		ClosingID:      c.ClosingID,
		OwnerID:        c.OwnerID,
		ClosingDate:    c.ClosingDate,
		OpeningBalance: c.OpeningBalance,
		CountedCash:    c.CountedCash,
		Closed:         c.Closed,
		ClosedAt:       c.ClosedAt,
		ClosedBy:       c.ClosedBy,
		AuditFields:    ToModelAuditFields(c.AuditFields),
	}
}

// ToDomainDayClosing converts a day_closings row to its domain type.
func ToDomainDayClosing(c models.DayClosing) domain.DayClosing {
	return domain.DayClosing{
		ClosingID:      c.ClosingID,
		OwnerID:        c.OwnerID,
		ClosingDate:    c.ClosingDate,
		OpeningBalance: c.OpeningBalance,
		CountedCash:    c.CountedCash,
		Closed:         c.Closed,
		ClosedAt:       c.ClosedAt,
		ClosedBy:       c.ClosedBy,
		AuditFields:    ToDomainAuditFields(c.AuditFields),
	}
}
