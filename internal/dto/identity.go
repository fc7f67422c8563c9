package dto

import (
	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
)

// UpsertEmploymentRequest grants or updates an employee's permissions.
type UpsertEmploymentRequest struct {
	EmployeeUserID string               `json:"employeeUserID" binding:"required"`
	Permissions    domain.PermissionSet `json:"permissions"`
}

// EmploymentResponse defines the data returned for an employment.
type EmploymentResponse struct {
	EmployeeUserID string               `json:"employeeUserID"`
	Permissions    domain.PermissionSet `json:"permissions"`
	IsActive       bool                 `json:"isActive"`
}

// ActorResponse exposes the resolved effective owner for the current caller.
type ActorResponse struct {
	OwnerID      string               `json:"ownerID"`
	ActingUserID string               `json:"actingUserID"`
	IsOwner      bool                 `json:"isOwner"`
	Permissions  domain.PermissionSet `json:"permissions"`
}

// ToEmploymentResponse converts a domain employment.
func ToEmploymentResponse(e *domain.Employment) EmploymentResponse {
	return EmploymentResponse{
		EmployeeUserID: e.EmployeeUserID,
		Permissions:    e.Permissions,
		IsActive:       e.IsActive,
	}
}

// ToListEmploymentResponse converts a slice of employments.
func ToListEmploymentResponse(employments []domain.Employment) []EmploymentResponse {
	res := make([]EmploymentResponse, len(employments))
	for i := range employments {
		res[i] = ToEmploymentResponse(&employments[i])
	}
	return res
}

// ToActorResponse converts a resolved actor.
func ToActorResponse(a domain.Actor) ActorResponse {
	return ActorResponse{
		OwnerID:      a.OwnerID,
		ActingUserID: a.ActingUserID,
		IsOwner:      a.IsOwner,
		Permissions:  a.Permissions,
	}
}
