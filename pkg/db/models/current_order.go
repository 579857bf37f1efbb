package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rithysok/restock-backend/pkg/enums"
)

// CurrentOrder is the singleton row holding the active cart. The table holds
// at most one logical row; pushes update it in place once it exists.
type CurrentOrder struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Items         []OrderItem         `gorm:"column:items;type:jsonb;serializer:json" json:"items"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null;default:'CASH ON DELIVERY'" json:"paymentMethod"`
	StoreTag      *enums.StoreTag     `gorm:"column:store_tag" json:"storeTag,omitempty"`
	UpdatedAt     time.Time           `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName keeps the singular storage name used by the remote schema.
func (CurrentOrder) TableName() string {
	return "current_order"
}
