package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents a long-lived token for persistent sessions.
// Only the hash of the token is stored.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
