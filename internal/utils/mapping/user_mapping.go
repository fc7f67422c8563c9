package mapping

import (
	"database/sql"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/cajadiaria/caja_diaria_app/internal/models"
)

// ToModelUser converts a domain user to its table row.
func ToModelUser(u domain.User) models.User {
	m := models.User{
		UserID:       u.UserID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		AuditFields:  ToModelAuditFields(u.AuditFields),
		DeletedAt:    u.DeletedAt,
	}
	if u.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: u.RefreshTokenHash, Valid: true}
	}
	if u.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *u.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a users row to a domain user.
func ToDomainUser(u models.User) domain.User {
	d := domain.User{
		UserID:       u.UserID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		AuditFields:  ToDomainAuditFields(u.AuditFields),
		DeletedAt:    u.DeletedAt,
	}
	if u.RefreshTokenHash.Valid {
		d.RefreshTokenHash = u.RefreshTokenHash.String
	}
	if u.RefreshTokenExpiryTime.Valid {
		t := u.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	return d
}

// ToDomainEmployment converts an employments row to its domain type.
func ToDomainEmployment(e models.Employment) domain.Employment {
	return domain.Employment{
		OwnerID:        e.OwnerID,
		EmployeeUserID: e.EmployeeUserID,
		Permissions: domain.PermissionSet{
			CancelMovements:    e.CancelMovements,
			AddCategories:      e.AddCategories,
			AddPaymentMethods:  e.AddPaymentMethods,
			EditClosing:        e.EditClosing,
			EditOpeningBalance: e.EditOpeningBalance,
			ReopenDay:          e.ReopenDay,
			DeleteArqueos:      e.DeleteArqueos,
			ManageSecondary:    e.ManageSecondary,
		},
		IsActive:    e.IsActive,
		JoinedAt:    e.JoinedAt,
		AuditFields: ToDomainAuditFields(e.AuditFields),
	}
}

// ToModelEmployment converts a domain employment to its table row.
func ToModelEmployment(e domain.Employment) models.Employment {
	return models.Employment{
		OwnerID:            e.OwnerID,
		EmployeeUserID:     e.EmployeeUserID,
		CancelMovements:    e.Permissions.CancelMovements,
		AddCategories:      e.Permissions.AddCategories,
		AddPaymentMethods:  e.Permissions.AddPaymentMethods,
		EditClosing:        e.Permissions.EditClosing,
		EditOpeningBalance: e.Permissions.EditOpeningBalance,
		ReopenDay:          e.Permissions.ReopenDay,
		DeleteArqueos:      e.Permissions.DeleteArqueos,
		ManageSecondary:    e.Permissions.ManageSecondary,
		IsActive:           e.IsActive,
		JoinedAt:           e.JoinedAt,
		AuditFields:        ToModelAuditFields(e.AuditFields),
	}
}
