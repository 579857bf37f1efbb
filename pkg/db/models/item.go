package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a purchasable inventory entry. Suppliers are referenced by name,
// not id: the upstream dataset predates supplier ids and the UI still keys
// on the display name.
type Item struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string           `gorm:"column:name;not null" json:"name"`
	KhmerName     *string          `gorm:"column:khmer_name" json:"khmerName,omitempty"`
	Supplier      string           `gorm:"column:supplier;not null" json:"supplier"`
	Unit          *string          `gorm:"column:unit" json:"unit,omitempty"`
	Price         *decimal.Decimal `gorm:"column:price;type:numeric" json:"price,omitempty"`
	LastOrderedAt *time.Time       `gorm:"column:last_ordered_at" json:"lastOrderedAt,omitempty"`
	OrderCount    *int             `gorm:"column:order_count" json:"orderCount,omitempty"`
	LastHeldAt    *time.Time       `gorm:"column:last_held_at" json:"lastHeldAt,omitempty"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
