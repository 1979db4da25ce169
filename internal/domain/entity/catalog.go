package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Product is a book in the catalog. Prices are stored as integer amounts in
// the store currency. DiscountPrice is the promotional unit price and is nil
// when the product is not on sale.
type Product struct {
	ID             uuid.UUID       `json:"id"`
	Slug           string          `json:"slug"` // Unique, doubles as the SKU snapshotted onto order items.
	Name           string          `json:"name"`
	Price          int64           `json:"price"`                    // Unit price, never negative.
	DiscountPrice  *int64          `json:"discount_price,omitempty"` // Promotional unit price, nil when absent.
	Stock          int             `json:"stock"`
	Author         string          `json:"author"`
	Translator     string          `json:"translator,omitempty"`
	Language       string          `json:"language"`
	MainTopic      string          `json:"main_topic,omitempty"`
	SecondaryTopic string          `json:"secondary_topic,omitempty"`
	Description    string          `json:"description"`
	More           json.RawMessage `json:"more,omitempty"` // Free-form supplementary details (page count, ISBN, ...).
	CategoryID     uuid.UUID       `json:"category_id"`
	PublisherID    uuid.UUID       `json:"publisher_id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// EffectivePrice returns the discounted unit price when one is set,
// otherwise the regular price.
func (p *Product) EffectivePrice() int64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}

	return p.Price
}

// Category is a node in the catalog taxonomy tree. ParentID is nil for roots.
// Categories referenced by products or child categories cannot be deleted.
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"` // Unique.
	Slug      string     `json:"slug"` // Unique.
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Publisher is shared reference data for products. Deletion is blocked while
// any product references it.
type Publisher struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"` // Unique.
	Slug        string    `json:"slug"` // Unique.
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"` // Public URL of the uploaded logo, empty if none.
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
