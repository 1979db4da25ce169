package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Totals are copied from the cart at
// checkout and never recomputed.
type OrderModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	TransportID   *uuid.UUID `gorm:"type:uuid"`
	TotalPrice    int64      `gorm:"not null"`
	DiscountPrice int64      `gorm:"not null;default:0"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items     []*OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Transport *TransportModel   `gorm:"foreignKey:TransportID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. ProductTitle and ProductSKU
// are frozen snapshots; the product reference is RESTRICTed so products with
// order history cannot be hard-deleted.
type OrderItemModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_product"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_product"`
	ProductTitle  string    `gorm:"type:varchar(200);not null"`
	ProductSKU    string    `gorm:"type:varchar(200);not null"`
	Quantity      int       `gorm:"not null;check:quantity >= 1"`
	Price         int64     `gorm:"not null"`
	DiscountPrice int64     `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// TransportModel mirrors the 'transports' table.
type TransportModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CompanyName  string     `gorm:"type:varchar(100);not null"`
	TrackingCode string     `gorm:"type:varchar(100)"`
	SendDate     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransportModel) TableName() string {
	return "transports"
}
