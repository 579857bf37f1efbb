package state

import (
	"context"

	"github.com/rithysok/restock-backend/internal/cart"
	"github.com/rithysok/restock-backend/pkg/db/models"
)

// CurrentOrderSnapshot is the cart portion of an exported snapshot.
type CurrentOrderSnapshot struct {
	Items    []models.OrderItem `json:"items"`
	Metadata cart.Metadata      `json:"metadata"`
}

// Snapshot is the wholesale export/import surface. Import is
// additive-by-presence: a nil collection leaves the store's copy untouched,
// so `{items: [...]}` restores items without clearing anything else.
type Snapshot struct {
	Items           []models.Item           `json:"items,omitempty"`
	Suppliers       []models.Supplier       `json:"suppliers,omitempty"`
	PendingOrders   []models.PendingOrder   `json:"pendingOrders,omitempty"`
	CompletedOrders []models.CompletedOrder `json:"completedOrders,omitempty"`
	CurrentOrder    *CurrentOrderSnapshot   `json:"currentOrder,omitempty"`
}

// ExportData copies all five collections into a snapshot.
func (s *Store) ExportData() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Items:           append([]models.Item{}, s.items...),
		Suppliers:       append([]models.Supplier{}, s.suppliers...),
		PendingOrders:   append([]models.PendingOrder{}, s.pendingOrders...),
		CompletedOrders: append([]models.CompletedOrder{}, s.completedOrders...),
		CurrentOrder: &CurrentOrderSnapshot{
			Items:    append([]models.OrderItem{}, s.cartItems...),
			Metadata: s.cartMeta,
		},
	}
}

// ImportData overwrites each collection that is present in the snapshot and
// schedules pushes for exactly those collections.
func (s *Store) ImportData(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return err
	}

	if snap.Items != nil {
		s.items = append([]models.Item{}, snap.Items...)
		s.scheduleItemsPush()
	}
	if snap.Suppliers != nil {
		s.suppliers = append([]models.Supplier{}, snap.Suppliers...)
		s.scheduleSuppliersPush()
	}
	if snap.PendingOrders != nil {
		s.pendingOrders = append([]models.PendingOrder{}, snap.PendingOrders...)
		s.schedulePendingOrdersPush()
	}
	if snap.CompletedOrders != nil {
		s.completedOrders = append([]models.CompletedOrder{}, snap.CompletedOrders...)
		s.scheduleCompletedOrdersPush()
	}
	if snap.CurrentOrder != nil {
		s.cartItems = append([]models.OrderItem{}, snap.CurrentOrder.Items...)
		s.cartMeta = snap.CurrentOrder.Metadata
		s.scheduleCartPush()
	}
	return nil
}
