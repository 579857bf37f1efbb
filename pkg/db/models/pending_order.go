package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rithysok/restock-backend/pkg/enums"
)

// PendingOrder is an order that has been placed with a supplier but not yet
// finalized. At most one open (pending|processing) order exists per
// (supplier, store tag); AddPendingOrder merges into it instead of creating
// a duplicate.
type PendingOrder struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Supplier      string               `gorm:"column:supplier;not null" json:"supplier"`
	Items         []PendingOrderItem   `gorm:"column:items;type:jsonb;serializer:json" json:"items"`
	Status        enums.OrderStatus    `gorm:"column:status;not null;default:'pending'" json:"status"`
	StoreTag      *enums.StoreTag      `gorm:"column:store_tag" json:"storeTag,omitempty"`
	PaymentMethod *enums.PaymentMethod `gorm:"column:payment_method" json:"paymentMethod,omitempty"`
	ContactPerson *string              `gorm:"column:contact_person" json:"contactPerson,omitempty"`
	Notes         *string              `gorm:"column:notes" json:"notes,omitempty"`
	InvoiceRef    *string              `gorm:"column:invoice_ref" json:"invoiceRef,omitempty"`
	Amount        *decimal.Decimal     `gorm:"column:amount;type:numeric" json:"amount,omitempty"`
	Received      *bool                `gorm:"column:received" json:"received,omitempty"`
	Paid          *bool                `gorm:"column:paid" json:"paid,omitempty"`
	CompletedAt   *time.Time           `gorm:"column:completed_at" json:"completedAt,omitempty"`
	CreatedAt     time.Time            `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt     time.Time            `gorm:"column:updated_at" json:"updatedAt"`
}

// IsOpen reports whether new line items may still be merged in.
func (o *PendingOrder) IsOpen() bool {
	return o.Status.IsOpen()
}
