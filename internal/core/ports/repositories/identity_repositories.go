package repositories

import (
	"context"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
)

// IdentityRepository manages employment links between employees and owners.
type IdentityRepository interface {
	// FindEmploymentByUser retrieves the active employment of the acting
	// user, or ErrNotFound if the user acts as their own owner.
	FindEmploymentByUser(ctx context.Context, employeeUserID string) (*domain.Employment, error)

	// ListEmployments lists an owner's active employees.
	ListEmployments(ctx context.Context, ownerID string) ([]domain.Employment, error)

	// UpsertEmployment inserts or updates an employment and its permissions.
	UpsertEmployment(ctx context.Context, employment domain.Employment) error

	// DeactivateEmployment soft-removes an employee from the owner.
	DeactivateEmployment(ctx context.Context, ownerID, employeeUserID, updatedBy string) error
}
