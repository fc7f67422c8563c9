package mapping

import (
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/models"
)

// ToModelSecondaryMovement converts a domain secondary movement to its table row.
func ToModelSecondaryMovement(m domain.SecondaryMovement) models.SecondaryMovement {
	return models.SecondaryMovement{
		SecondaryMovementID: m.SecondaryMovementID,
		OwnerID:             m.OwnerID,
		MovementDate:        m.MovementDate,
		Direction:           models.MovementDirection(m.Direction),
		Origin:              string(m.Origin),
		Amount:              m.Amount,
		CategoryID:          m.CategoryID,
		Description:         m.Description,
		PairedMovementID:    m.PairedMovementID,
		Cancelled:           m.Cancelled,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
		AuditFields:         ToModelAuditFields(m.AuditFields),
	}
}

// ToDomainSecondaryMovement converts a secondary_movements row to its domain type.
func ToDomainSecondaryMovement(m models.SecondaryMovement) domain.SecondaryMovement {
	return domain.SecondaryMovement{
		SecondaryMovementID: m.SecondaryMovementID,
		OwnerID:             m.OwnerID,
		MovementDate:        m.MovementDate,
		Direction:           domain.MovementDirection(m.Direction),
		Origin:              domain.SecondaryOrigin(m.Origin),
		Amount:              m.Amount,
		CategoryID:          m.CategoryID,
		Description:         m.Description,
		PairedMovementID:    m.PairedMovementID,
		Cancelled:           m.Cancelled,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSecondaryMovementSlice converts a slice of secondary_movements rows.
func ToDomainSecondaryMovementSlice(movements []models.SecondaryMovement) []domain.SecondaryMovement {
	result := make([]domain.SecondaryMovement, len(movements))
	for i, m := range movements {
		result[i] = ToDomainSecondaryMovement(m)
	}
	return result
}
