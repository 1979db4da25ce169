// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the core identity entity, keyed by email.
// Role flags mirror the store's authorization model: staff can manage the
// catalog, admins can manage discounts and orders, superusers can do both
// plus manage other users.
type User struct {
	ID           uuid.UUID  `json:"id"`                  // The unique identifier for the user.
	Email        string     `json:"email"`               // The user's login identifier. Unique, never empty.
	PasswordHash string     `json:"-"`                   // Bcrypt hash of the password. Never serialized outward.
	FirstName    string     `json:"first_name"`          // Optional given name.
	LastName     string     `json:"last_name"`           // Optional family name.
	AvatarURL    string     `json:"avatar_url"`          // Public URL of the uploaded avatar, empty if none.
	IsActive     bool       `json:"is_active"`           // Soft-disable flag; inactive users cannot authenticate.
	IsStaff      bool       `json:"is_staff"`            // Catalog management permission.
	IsAdmin      bool       `json:"is_admin"`            // Order/discount management permission.
	IsSuperuser  bool       `json:"is_superuser"`        // Full permission, implies staff and admin.
	Addresses    []*Address `json:"addresses,omitempty"` // Shipping addresses owned by this user.
	CreatedAt    time.Time  `json:"created_at"`          // Timestamp of when this account was created.
	UpdatedAt    time.Time  `json:"updated_at"`          // Timestamp of the last modification.
}

// FullName returns the first and last name joined by a space,
// falling back to the email when both are empty.
func (u *User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Email
	}

	return full
}

// IsValidSuperuser reports whether the role flags satisfy the superuser
// invariant: a superuser must also be staff and admin.
func (u *User) IsValidSuperuser() bool {
	return u.IsStaff && u.IsAdmin && u.IsSuperuser
}
