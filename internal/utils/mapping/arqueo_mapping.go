package mapping

import (
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/models"
)

// ToModelArqueo converts a domain arqueo to its table row.
func ToModelArqueo(a domain.Arqueo) models.Arqueo {
	return models.Arqueo{
		ArqueoID:             a.ArqueoID,
		OwnerID:              a.OwnerID,
		ArqueoDate:           a.ArqueoDate,
		ExpectedCash:         a.ExpectedCash,
		CountedCash:          a.CountedCash,
		Difference:           a.Difference,
		DifferenceReason:     a.DifferenceReason,
		AdjustmentMovementID: a.AdjustmentMovementID,
		AuditFields:          ToModelAuditFields(a.AuditFields),
	}
}

// ToDomainArqueo converts an arqueos row to a domain arqueo.
func ToDomainArqueo(a models.Arqueo) domain.Arqueo {
	return domain.Arqueo{
		ArqueoID:             a.ArqueoID,
		OwnerID:              a.OwnerID,
		ArqueoDate:           a.ArqueoDate,
		ExpectedCash:         a.ExpectedCash,
		CountedCash:          a.CountedCash,
		Difference:           a.Difference,
		DifferenceReason:     a.DifferenceReason,
		AdjustmentMovementID: a.AdjustmentMovementID,
		AuditFields:          ToDomainAuditFields(a.AuditFields),
	}
}

// ToDomainArqueoSlice converts a slice of arqueos rows.
func ToDomainArqueoSlice(arqueos []models.Arqueo) []domain.Arqueo {
	result := make([]domain.Arqueo, len(arqueos))
	for i, a := range arqueos {
		result[i] = ToDomainArqueo(a)
	}
	return result
}
