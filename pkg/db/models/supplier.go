package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rithysok/restock-backend/pkg/enums"
)

// Supplier is a vendor the business orders from.
type Supplier struct {
	ID                   uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name                 string              `gorm:"column:name;not null" json:"name"`
	Contact              *string             `gorm:"column:contact" json:"contact,omitempty"`
	Telegram             *string             `gorm:"column:telegram" json:"telegram,omitempty"`
	DefaultPaymentMethod enums.PaymentMethod `gorm:"column:default_payment_method;not null;default:'CASH ON DELIVERY'" json:"defaultPaymentMethod"`
	CreatedAt            time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
