package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/rithysok/restock-backend/pkg/enums"
)

// CompletedOrder is the terminal snapshot of an order. StoreTags records the
// distinct outlets the source cart ordered for.
type CompletedOrder struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Supplier      string               `gorm:"column:supplier;not null" json:"supplier"`
	Items         []PendingOrderItem   `gorm:"column:items;type:jsonb;serializer:json" json:"items"`
	StoreTags     pq.StringArray       `gorm:"column:store_tags;type:text[]" json:"storeTags"`
	PaymentMethod *enums.PaymentMethod `gorm:"column:payment_method" json:"paymentMethod,omitempty"`
	ContactPerson *string              `gorm:"column:contact_person" json:"contactPerson,omitempty"`
	Notes         *string              `gorm:"column:notes" json:"notes,omitempty"`
	InvoiceRef    *string              `gorm:"column:invoice_ref" json:"invoiceRef,omitempty"`
	Amount        *decimal.Decimal     `gorm:"column:amount;type:numeric" json:"amount,omitempty"`
	Received      *bool                `gorm:"column:received" json:"received,omitempty"`
	Paid          *bool                `gorm:"column:paid" json:"paid,omitempty"`
	CompletedAt   time.Time            `gorm:"column:completed_at;not null" json:"completedAt"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
