package domain_test

import (
	"testing"

	"github.com/cajadiaria/caja_diaria_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCategory_AppliesTo(t *testing.T) {
	tests := []struct {
		name      string
		category  domain.Category
		direction domain.MovementDirection
		want      bool
	}{
		{
			name:      "both accepts inflow",
			category:  domain.Category{Direction: domain.CatalogBoth},
			direction: domain.Inflow,
			want:      true,
		},
		{
			name:      "both accepts outflow",
			category:  domain.Category{Direction: domain.CatalogBoth},
			direction: domain.Outflow,
			want:      true,
		},
		{
			name:      "inflow-only accepts inflow",
			category:  domain.Category{Direction: domain.CatalogInflow},
			direction: domain.Inflow,
			want:      true,
		},
		{
			name:      "inflow-only rejects outflow",
			category:  domain.Category{Direction: domain.CatalogInflow},
			direction: domain.Outflow,
			want:      false,
		},
		{
			name:      "outflow-only rejects inflow",
			category:  domain.Category{Direction: domain.CatalogOutflow},
			direction: domain.Inflow,
			want:      false,
		},
		{
			name:      "empty direction rejects everything",
			category:  domain.Category{},
			direction: domain.Inflow,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.AppliesTo(tt.direction))
		})
	}
}

func TestSecondaryOrigin_HasPrincipalPair(t *testing.T) {
	tests := []struct {
		name   string
		origin domain.SecondaryOrigin
		want   bool
	}{
		{name: "transfer in is paired", origin: domain.OriginTransferIn, want: true},
		{name: "transfer out is paired", origin: domain.OriginTransferOut, want: true},
		{name: "reconciliation surplus is paired", origin: domain.OriginReconciliationIn, want: true},
		{name: "expense is not paired", origin: domain.OriginExpense, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.origin.HasPrincipalPair())
		})
	}
}

func TestActor_Allows(t *testing.T) {
	owner := domain.Actor{IsOwner: true, Permissions: domain.PermissionSet{}}
	employee := domain.Actor{IsOwner: false, Permissions: domain.PermissionSet{CancelMovements: true}}

	// Owners pass every gate regardless of the flag.
	assert.True(t, owner.Allows(owner.Permissions.CancelMovements))
	assert.True(t, owner.Allows(owner.Permissions.ReopenDay))

	assert.True(t, employee.Allows(employee.Permissions.CancelMovements))
	assert.False(t, employee.Allows(employee.Permissions.ReopenDay))
}
