package domain

import "time"

// PermissionSet enumerates the named write permissions an employee can hold.
// A fixed set of booleans keeps the authorization checks statically checkable
// instead of stringly-typed lookups.
type PermissionSet struct {
	CancelMovements    bool `json:"cancelMovements"`
	AddCategories      bool `json:"addCategories"`
	AddPaymentMethods  bool `json:"addPaymentMethods"`
	EditClosing        bool `json:"editClosing"`
	EditOpeningBalance bool `json:"editOpeningBalance"`
	ReopenDay          bool `json:"reopenDay"`
	DeleteArqueos      bool `json:"deleteArqueos"`
	ManageSecondary    bool `json:"manageSecondary"`
}

// AllPermissions is what an owner implicitly holds over their own ledger.
func AllPermissions() PermissionSet {
	return PermissionSet{
		CancelMovements:    true,
		AddCategories:      true,
		AddPaymentMethods:  true,
		EditClosing:        true,
		EditOpeningBalance: true,
		ReopenDay:          true,
		DeleteArqueos:      true,
		ManageSecondary:    true,
	}
}

// Actor is the resolved effective owner for a request: the ledger all
// operations are scoped to, the user actually acting, and the permissions
// that user holds over the ledger.
type Actor struct {
	OwnerID      string        `json:"ownerID"`
	ActingUserID string        `json:"actingUserID"`
	IsOwner      bool          `json:"isOwner"`
	Permissions  PermissionSet `json:"permissions"`
}

// Allows reports whether the actor may perform an operation gated by the
// given permission flag. Owners always may.
func (a Actor) Allows(granted bool) bool {
	return a.IsOwner || granted
}

// Employment links an employee user to the owner they act on behalf of,
// together with the permissions the owner granted them.
type Employment struct {
	OwnerID        string        `json:"ownerID"`
	EmployeeUserID string        `json:"employeeUserID"`
	Permissions    PermissionSet `json:"permissions"`
	IsActive       bool          `json:"isActive"`
	JoinedAt       time.Time     `json:"joinedAt"`
	AuditFields
}
