package state

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/enums"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
)

// PendingOrderDraft is the caller-supplied shape for a new pending order.
type PendingOrderDraft struct {
	Supplier      string
	Items         []models.PendingOrderItem
	StoreTag      *enums.StoreTag
	PaymentMethod *enums.PaymentMethod
	ContactPerson *string
	Notes         *string
	InvoiceRef    *string
	Amount        *decimal.Decimal
}

// PendingOrderPatch is a partial update. Nil fields are left untouched;
// UpdatedAt is stamped on every call regardless.
type PendingOrderPatch struct {
	Supplier      *string
	Items         *[]models.PendingOrderItem
	Status        *enums.OrderStatus
	StoreTag      *enums.StoreTag
	PaymentMethod *enums.PaymentMethod
	ContactPerson *string
	Notes         *string
	InvoiceRef    *string
	Amount        *decimal.Decimal
	Received      *bool
	Paid          *bool
	CompletedAt   *time.Time
}

// AddPendingOrder creates a pending order. If an open order for the same
// (supplier, store tag) already exists, the draft's lines merge into it
// instead: quantities sum per item id, unseen items append. Both paths
// return the surviving order, so callers get the same id on repeat adds.
func (s *Store) AddPendingOrder(ctx context.Context, draft PendingOrderDraft) (models.PendingOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return models.PendingOrder{}, err
	}
	if draft.Supplier == "" {
		return models.PendingOrder{}, pkgerrors.New(pkgerrors.CodeValidation, "order supplier is required")
	}

	now := time.Now().UTC()

	for i := range s.pendingOrders {
		existing := &s.pendingOrders[i]
		if existing.Supplier != draft.Supplier || !sameStoreTag(existing.StoreTag, draft.StoreTag) || !existing.IsOpen() {
			continue
		}
		existing.Items = mergeOrderLines(existing.Items, draft.Items)
		existing.UpdatedAt = now
		s.schedulePendingOrdersPush()
		return *existing, nil
	}

	items := draft.Items
	if items == nil {
		items = []models.PendingOrderItem{}
	}
	order := models.PendingOrder{
		ID:            uuid.New(),
		Supplier:      draft.Supplier,
		Items:         items,
		Status:        enums.OrderStatusPending,
		StoreTag:      draft.StoreTag,
		PaymentMethod: draft.PaymentMethod,
		ContactPerson: draft.ContactPerson,
		Notes:         draft.Notes,
		InvoiceRef:    draft.InvoiceRef,
		Amount:        draft.Amount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.pendingOrders = append(s.pendingOrders, order)
	s.schedulePendingOrdersPush()
	return order, nil
}

// UpdatePendingOrder applies a partial update to one pending order.
func (s *Store) UpdatePendingOrder(ctx context.Context, id uuid.UUID, patch PendingOrderPatch) (models.PendingOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return models.PendingOrder{}, err
	}
	idx := s.pendingOrderIndexLocked(id)
	if idx < 0 {
		return models.PendingOrder{}, pkgerrors.New(pkgerrors.CodeNotFound, "pending order not found")
	}

	order := &s.pendingOrders[idx]
	if patch.Supplier != nil {
		order.Supplier = *patch.Supplier
	}
	if patch.Items != nil {
		order.Items = *patch.Items
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.StoreTag != nil {
		order.StoreTag = patch.StoreTag
	}
	if patch.PaymentMethod != nil {
		order.PaymentMethod = patch.PaymentMethod
	}
	if patch.ContactPerson != nil {
		order.ContactPerson = patch.ContactPerson
	}
	if patch.Notes != nil {
		order.Notes = patch.Notes
	}
	if patch.InvoiceRef != nil {
		order.InvoiceRef = patch.InvoiceRef
	}
	if patch.Amount != nil {
		order.Amount = patch.Amount
	}
	if patch.Received != nil {
		order.Received = patch.Received
	}
	if patch.Paid != nil {
		order.Paid = patch.Paid
	}
	if patch.CompletedAt != nil {
		order.CompletedAt = patch.CompletedAt
	}
	order.UpdatedAt = time.Now().UTC()

	s.schedulePendingOrdersPush()
	return *order, nil
}

// DeletePendingOrder removes the order locally, schedules a push, then
// issues the remote row delete. Local removal stands even on remote failure.
func (s *Store) DeletePendingOrder(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if err := s.ensureReadyLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	idx := s.pendingOrderIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeNotFound, "pending order not found")
	}
	s.pendingOrders = append(s.pendingOrders[:idx], s.pendingOrders[idx+1:]...)
	s.schedulePendingOrdersPush()
	s.mu.Unlock()

	if err := s.remote.DeletePendingOrder(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting remote pending order")
	}
	return nil
}

func (s *Store) pendingOrderIndexLocked(id uuid.UUID) int {
	for i := range s.pendingOrders {
		if s.pendingOrders[i].ID == id {
			return i
		}
	}
	return -1
}

// mergeOrderLines folds incoming lines into existing ones by item id,
// summing quantities for matches and appending the rest in input order.
func mergeOrderLines(existing, incoming []models.PendingOrderItem) []models.PendingOrderItem {
	merged := append([]models.PendingOrderItem(nil), existing...)
	for _, line := range incoming {
		found := false
		for i := range merged {
			if merged[i].ItemID == line.ItemID {
				merged[i].Quantity += line.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, line)
		}
	}
	return merged
}
