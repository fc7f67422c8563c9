package mapping

import (
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/models"
)

// ToModelMovement converts a domain movement (without splits) to its table row.
func ToModelMovement(m domain.Movement) models.Movement {
	return models.Movement{
		MovementID:   m.MovementID,
		OwnerID:      m.OwnerID,
		MovementDate: m.MovementDate,
		Direction:    models.MovementDirection(m.Direction),
		TotalAmount:  m.TotalAmount,
		CategoryID:   m.CategoryID,
		Description:  m.Description,
		Cancelled:    m.Cancelled,
		CancelledAt:  m.CancelledAt,
		CancelReason: m.CancelReason,
		AuditFields:  ToModelAuditFields(m.AuditFields),
	}
}

// ToDomainMovement converts a movements row to a domain movement. Splits are
// attached separately by the caller.
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:   m.MovementID,
		OwnerID:      m.OwnerID,
		MovementDate: m.MovementDate,
		Direction:    domain.MovementDirection(m.Direction),
		TotalAmount:  m.TotalAmount,
		CategoryID:   m.CategoryID,
		Description:  m.Description,
		Cancelled:    m.Cancelled,
		CancelledAt:  m.CancelledAt,
		CancelReason: m.CancelReason,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPaymentSplit converts a domain split to its table row.
func ToModelPaymentSplit(s domain.PaymentSplit) models.PaymentSplit {
	return models.PaymentSplit{
		SplitID:    s.SplitID,
		MovementID: s.MovementID,
		MethodID:   s.MethodID,
		Amount:     s.Amount,
	}
}

// ToDomainPaymentSplit converts a payment_splits row to a domain split.
func ToDomainPaymentSplit(s models.PaymentSplit) domain.PaymentSplit {
	return domain.PaymentSplit{
		SplitID:    s.SplitID,
		MovementID: s.MovementID,
		MethodID:   s.MethodID,
		Amount:     s.Amount,
	}
}

// ToDomainPaymentSplitSlice converts a slice of payment_splits rows.
func ToDomainPaymentSplitSlice(splits []models.PaymentSplit) []domain.PaymentSplit {
	result := make([]domain.PaymentSplit, len(splits))
	for i, s := range splits {
		result[i] = ToDomainPaymentSplit(s)
	}
	return result
}
