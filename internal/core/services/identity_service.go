package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	portsrepo "github.com/cajadiaria/caja_diaria_app/internal/core/ports/repositories"
	portssvc "github.com/cajadiaria/caja_diaria_app/internal/core/ports/services"
	"github.com/cajadiaria/caja_diaria_app/internal/dto"
	"github.com/cajadiaria/caja_diaria_app/internal/middleware"
)

// identityService resolves who a user acts as. A user with an active
// employment acts on their employer's ledger with the granted permissions;
// everyone else acts as their own owner with every permission.
type identityService struct {
	identityRepo portsrepo.IdentityRepository
	userRepo     portsrepo.UserRepository
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(identityRepo portsrepo.IdentityRepository, userRepo portsrepo.UserRepository) portssvc.IdentitySvc {
	return &identityService{
		identityRepo: identityRepo,
		userRepo:     userRepo,
	}
}

var _ portssvc.IdentitySvc = (*identityService)(nil)

// ResolveActor maps a user to the owner they operate on plus the permissions
// they hold there. Every write path in the other services calls this first.
func (s *identityService) ResolveActor(ctx context.Context, userID string) (*domain.Actor, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	employment, err := s.identityRepo.FindEmploymentByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No employment: the user is their own owner.
			return &domain.Actor{
				OwnerID:      userID,
				ActingUserID: userID,
				IsOwner:      true,
				Permissions:  domain.AllPermissions(),
			}, nil
		}
		return nil, fmt.Errorf("failed to resolve employment for user %s: %w", userID, err)
	}

	return &domain.Actor{
		OwnerID:      employment.OwnerID,
		ActingUserID: userID,
		IsOwner:      false,
		Permissions:  employment.Permissions,
	}, nil
}

// ListEmployments lists the active employees of the acting owner.
func (s *identityService) ListEmployments(ctx context.Context, actingUserID string) ([]domain.Employment, error) {
	actor, err := s.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.IsOwner {
		return nil, fmt.Errorf("%w: only the owner may list employees", apperrors.ErrForbidden)
	}

	employments, err := s.identityRepo.ListEmployments(ctx, actor.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employments: %w", err)
	}
	return employments, nil
}

// UpsertEmployment grants or updates an employee's permission set. Only the
// owner may call it, and the employee must be an existing user that is not
// the owner themselves.
func (s *identityService) UpsertEmployment(ctx context.Context, actingUserID string, req dto.UpsertEmploymentRequest) (*domain.Employment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.ResolveActor(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actor.IsOwner {
		return nil, fmt.Errorf("%w: only the owner may manage employees", apperrors.ErrForbidden)
	}
	if req.EmployeeUserID == actor.OwnerID {
		return nil, fmt.Errorf("%w: the owner cannot be their own employee", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindUserByID(ctx, req.EmployeeUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, req.EmployeeUserID)
		}
		return nil, fmt.Errorf("failed to find employee user: %w", err)
	}

	now := time.Now().UTC()
	employment := domain.Employment{
		OwnerID:        actor.OwnerID,
		EmployeeUserID: req.EmployeeUserID,
		Permissions:    req.Permissions,
		IsActive:       true,
		JoinedAt:       now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.identityRepo.UpsertEmployment(ctx, employment); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user %s is already employed by another owner", apperrors.ErrDuplicate, req.EmployeeUserID)
		}
		logger.Error("Failed to upsert employment", slog.String("error", err.Error()), slog.String("employee_user_id", req.EmployeeUserID))
		return nil, fmt.Errorf("failed to save employment: %w", err)
	}

	logger.Info("Employment saved", slog.String("owner_id", actor.OwnerID), slog.String("employee_user_id", req.EmployeeUserID))
	return &employment, nil
}

// DeactivateEmployment revokes an employee's access to the owner's ledger.
func (s *identityService) DeactivateEmployment(ctx context.Context, actingUserID, employeeUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.ResolveActor(ctx, actingUserID)
	if err != nil {
		return err
	}
	if !actor.IsOwner {
		return fmt.Errorf("%w: only the owner may manage employees", apperrors.ErrForbidden)
	}

	if err := s.identityRepo.DeactivateEmployment(ctx, actor.OwnerID, employeeUserID, actingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: employment for user %s", apperrors.ErrNotFound, employeeUserID)
		}
		logger.Error("Failed to deactivate employment", slog.String("error", err.Error()), slog.String("employee_user_id", employeeUserID))
		return fmt.Errorf("failed to deactivate employment: %w", err)
	}

	logger.Info("Employment deactivated", slog.String("owner_id", actor.OwnerID), slog.String("employee_user_id", employeeUserID))
	return nil
}
