// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents an authorization role derived from a user's flags.
type Role string

const (
	// RoleCustomer indicates a regular storefront customer.
	RoleCustomer Role = "customer"
	// RoleStaff indicates catalog management permission.
	RoleStaff Role = "staff"
	// RoleAdmin indicates order and discount management permission.
	RoleAdmin Role = "admin"
	// RoleSuperuser indicates full permission, including user management.
	RoleSuperuser Role = "superuser"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin, RoleSuperuser:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesOf derives the role set from a user's flags. Every user is at least a
// customer; the flag-based roles stack on top.
func RolesOf(user *User) Roles {
	roles := Roles{RoleCustomer}
	if user.IsStaff {
		roles = append(roles, RoleStaff)
	}
	if user.IsAdmin {
		roles = append(roles, RoleAdmin)
	}
	if user.IsSuperuser {
		roles = append(roles, RoleSuperuser)
	}

	return roles
}
