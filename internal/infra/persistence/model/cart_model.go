package model

import (
	"time"

	"github.com/google/uuid"
)

// CartModel mirrors the 'carts' table. One open cart per user.
type CartModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID         uuid.UUID  `gorm:"type:uuid;unique;not null"`
	TotalPrice     int64      `gorm:"not null;default:0"`
	DiscountPrice  int64      `gorm:"not null;default:0"`
	DiscountCodeID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items        []*CartItemModel   `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	DiscountCode *DiscountCodeModel `gorm:"foreignKey:DiscountCodeID"`
}

// TableName explicitly sets the table name for GORM.
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel mirrors the 'cart_items' table. The (cart, product) pair is
// unique; re-adding a product updates the existing row.
type CartItemModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CartID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity      int       `gorm:"not null;check:quantity >= 1"`
	Price         int64     `gorm:"not null"`
	DiscountPrice int64     `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}
