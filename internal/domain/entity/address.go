// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a shipping address owned by exactly one user.
// At most one address per user carries IsDefault=true; the exclusivity is
// enforced transactionally by the address usecase, never in memory.
type Address struct {
	ID         uuid.UUID `json:"id"`          // The unique identifier for the address.
	UserID     uuid.UUID `json:"user_id"`     // The owning user. Addresses are deleted with their user.
	Recipient  string    `json:"recipient"`   // Name of the person receiving shipments.
	Province   string    `json:"province"`    // Province or state.
	City       string    `json:"city"`        // City.
	Street     string    `json:"street"`      // Street address, including house number.
	PostalCode string    `json:"postal_code"` // Optional postal code.
	IsDefault  bool      `json:"is_default"`  // Whether this is the user's pre-selected checkout address.
	CreatedAt  time.Time `json:"created_at"`  // Timestamp of when this address was created.
	UpdatedAt  time.Time `json:"updated_at"`  // Timestamp of the last modification.
}
