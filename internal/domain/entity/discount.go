package entity

import (
	"time"

	"github.com/google/uuid"
)

// DiscountCode is a promotional code with a validity window. Amount is the
// flat reduction applied to a cart on redemption.
//
// UsageLimitPerUser is stored and validated (>= 1) but the enforced cap is a
// single redemption per user per code, backed by the (user, discount_code)
// unique index that also serves as the concurrency guard.
type DiscountCode struct {
	ID                uuid.UUID `json:"id"`
	Code              string    `json:"code"`   // Unique, case-sensitive.
	Amount            int64     `json:"amount"` // Flat discount amount, always >= 1.
	UsageLimitPerUser int       `json:"usage_limit_per_user"`
	IsActive          bool      `json:"is_active"`
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"` // Always after Start; enforced at creation.
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RedeemableAt reports whether the code itself admits redemption at the given
// instant: active and inside the [Start, End] window. Per-user usage history
// is checked separately against the usage records.
func (d *DiscountCode) RedeemableAt(t time.Time) bool {
	if !d.IsActive {
		return false
	}

	return !t.Before(d.Start) && !t.After(d.End)
}

// DiscountUsage records one redemption of a code by a user. The pair
// (UserID, DiscountCodeID) is unique; a concurrent double redemption loses on
// the constraint instead of silently double-applying.
type DiscountUsage struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	DiscountCodeID uuid.UUID `json:"discount_code_id"`
	UsedAt         time.Time `json:"used_at"`
}
