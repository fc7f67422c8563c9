package services

import (
	"context"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
)

// IdentitySvc resolves who a user acts as and what they may do.
type IdentitySvc interface {
	// ResolveActor maps a user to the cash-box owner they operate on and the
	// permissions they hold there. Owners get every permission implicitly.
	ResolveActor(ctx context.Context, userID string) (*domain.Actor, error)

	// ListEmployments lists the active employees of the acting owner.
	ListEmployments(ctx context.Context, actingUserID string) ([]domain.Employment, error)

	// UpsertEmployment grants or updates an employee's permission set.
	// Only the owner may call it.
	UpsertEmployment(ctx context.Context, actingUserID string, req dto.UpsertEmploymentRequest) (*domain.Employment, error)

	// DeactivateEmployment revokes an employee's access to the owner's box.
	DeactivateEmployment(ctx context.Context, actingUserID, employeeUserID string) error
}
