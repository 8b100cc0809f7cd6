package actor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseDepartmentIsExact(t *testing.T) {
	assert.Equal(t, DepartmentSales, ParseDepartment("Sales"))
	assert.Equal(t, DepartmentSales, ParseDepartment("  sales department "))
	assert.Equal(t, DepartmentAccounts, ParseDepartment("Accounts"))
	assert.Equal(t, DepartmentOther, ParseDepartment("presales"))
	assert.Equal(t, DepartmentOther, ParseDepartment("sales-ops"))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleDepartmentHead, ParseRole("Department Head"))
	assert.Equal(t, RoleDepartmentUser, ParseRole("department_user"))
	assert.Equal(t, RoleSuperAdmin, ParseRole("super-admin"))
	assert.Equal(t, RoleUnknown, ParseRole("admin"))
}

func TestActorCapabilities(t *testing.T) {
	a := New(uuid.New(), "Asha", RoleDepartmentHead, DepartmentSales, CanApproveRfp, CanViewRfp)
	assert.True(t, a.Can(CanApproveRfp))
	assert.False(t, a.Can(CanCreateRfp))
	assert.Equal(t, []Capability{CanApproveRfp, CanViewRfp}, a.Capabilities())
	assert.Equal(t, "sales:department_head", a.RoleLabel())
}

func TestSystemActorIsStable(t *testing.T) {
	a := System("payment-webhook", CanSubmitToAccounts)
	b := System("payment-webhook")
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, KindSystem, a.Kind)
	assert.Equal(t, "system:payment-webhook", a.RoleLabel())
	assert.True(t, a.Can(CanSubmitToAccounts))
	assert.False(t, b.Can(CanSubmitToAccounts))
}
