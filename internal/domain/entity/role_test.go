package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleCustomer.IsValid())
	assert.True(t, RoleStaff.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleSuperuser.IsValid())
	assert.False(t, Role("owner").IsValid())
}

func TestRolesOf(t *testing.T) {
	// Every user is at least a customer.
	roles := RolesOf(&User{})
	assert.Equal(t, Roles{RoleCustomer}, roles)

	roles = RolesOf(&User{IsStaff: true})
	assert.True(t, roles.Contains(RoleStaff))
	assert.False(t, roles.Contains(RoleAdmin))

	roles = RolesOf(&User{IsStaff: true, IsAdmin: true, IsSuperuser: true})
	assert.Equal(t, Roles{RoleCustomer, RoleStaff, RoleAdmin, RoleSuperuser}, roles)
}

func TestRoles_ToStrings(t *testing.T) {
	roles := Roles{RoleCustomer, RoleAdmin}
	assert.Equal(t, []string{"customer", "admin"}, roles.ToStrings())
}
