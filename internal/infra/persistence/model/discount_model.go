package model

import (
	"time"

	"github.com/google/uuid"
)

// DiscountCodeModel mirrors the 'discount_codes' table.
type DiscountCodeModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code              string    `gorm:"type:varchar(64);unique;not null"`
	Amount            int64     `gorm:"not null;check:amount >= 1"`
	UsageLimitPerUser int       `gorm:"not null;default:1;check:usage_limit_per_user >= 1"`
	IsActive          bool      `gorm:"not null;default:true"`
	StartAt           time.Time `gorm:"not null"`
	EndAt             time.Time `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (DiscountCodeModel) TableName() string {
	return "discount_codes"
}

// DiscountUsageModel mirrors the 'discount_usages' table. The unique
// (user, discount_code) pair is the arbiter for concurrent redemptions.
// The code reference is RESTRICTed so redemption history outlives admin
// cleanup attempts; redeemed codes are deactivated, not deleted.
type DiscountUsageModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_discount_usages_user_code"`
	DiscountCodeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_discount_usages_user_code"`
	UsedAt         time.Time `gorm:"not null"`

	DiscountCode *DiscountCodeModel `gorm:"foreignKey:DiscountCodeID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (DiscountUsageModel) TableName() string {
	return "discount_usages"
}
