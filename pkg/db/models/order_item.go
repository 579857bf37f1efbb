package models

import (
	"github.com/google/uuid"

	"github.com/rithysok/restock-backend/pkg/enums"
)

// OrderItem is one line of the active cart. Lines are unique per
// (item id, store tag); adding the same pair again increments Quantity.
type OrderItem struct {
	ItemID    uuid.UUID       `json:"itemId"`
	Name      string          `json:"name"`
	KhmerName *string         `json:"khmerName,omitempty"`
	Quantity  float64         `json:"quantity"`
	StoreTag  *enums.StoreTag `json:"storeTag,omitempty"`
	IsNew     *bool           `json:"isNew,omitempty"`
}

// PendingOrderItem is a cart line once it has moved onto an order; the store
// tag lives on the containing order instead of the line.
type PendingOrderItem struct {
	ItemID    uuid.UUID `json:"itemId"`
	Name      string    `json:"name"`
	KhmerName *string   `json:"khmerName,omitempty"`
	Quantity  float64   `json:"quantity"`
	IsNew     *bool     `json:"isNew,omitempty"`
}
