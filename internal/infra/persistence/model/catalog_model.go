package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CategoryModel mirrors the 'categories' table. The self-referencing parent
// is RESTRICTed so a category with children cannot be removed.
type CategoryModel struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name     string     `gorm:"type:varchar(100);unique;not null"`
	Slug     string     `gorm:"type:varchar(120);unique;not null"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`

	Parent    *CategoryModel `gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// PublisherModel mirrors the 'publishers' table.
type PublisherModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Slug        string    `gorm:"type:varchar(120);unique;not null"`
	Description string    `gorm:"type:text"`
	LogoURL     string    `gorm:"type:varchar(500)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (PublisherModel) TableName() string {
	return "publishers"
}

// ProductModel mirrors the 'products' table. Category and publisher references
// are RESTRICTed; reference data in use cannot be deleted.
type ProductModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Slug           string          `gorm:"type:varchar(200);unique;not null"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Price          int64           `gorm:"not null;check:price >= 0"`
	DiscountPrice  *int64          `gorm:"check:discount_price >= 0"`
	Stock          int             `gorm:"not null;default:0;check:stock >= 0"`
	Author         string          `gorm:"type:varchar(200)"`
	Translator     string          `gorm:"type:varchar(200)"`
	Language       string          `gorm:"type:varchar(50)"`
	MainTopic      string          `gorm:"type:varchar(100)"`
	SecondaryTopic string          `gorm:"type:varchar(100)"`
	Description    string          `gorm:"type:text"`
	More           json.RawMessage `gorm:"type:jsonb;not null;default:'{}'"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PublisherID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Category  *CategoryModel  `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Publisher *PublisherModel `gorm:"foreignKey:PublisherID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
