package state

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rithysok/restock-backend/internal/cart"
	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/enums"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
)

// MetadataPatch is a partial update of the cart metadata.
type MetadataPatch struct {
	PaymentMethod *enums.PaymentMethod
	StoreTag      *enums.StoreTag
}

// AddToOrder adds quantity of an item to the cart. Lines are keyed by
// (item id, store tag): a second add for the same pair increments the
// existing line instead of creating another one.
func (s *Store) AddToOrder(ctx context.Context, itemID uuid.UUID, quantity float64, storeTag *enums.StoreTag) (models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return models.OrderItem{}, err
	}
	if quantity <= 0 {
		return models.OrderItem{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	itemIdx := s.itemIndexLocked(itemID)
	if itemIdx < 0 {
		return models.OrderItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	item := s.items[itemIdx]

	if idx := s.cartLineIndexLocked(itemID, storeTag); idx >= 0 {
		s.cartItems[idx].Quantity += quantity
		s.scheduleCartPush()
		return s.cartItems[idx], nil
	}

	line := models.OrderItem{
		ItemID:    item.ID,
		Name:      item.Name,
		KhmerName: item.KhmerName,
		Quantity:  quantity,
		StoreTag:  storeTag,
	}
	s.cartItems = append(s.cartItems, line)
	s.scheduleCartPush()
	return line, nil
}

// UpdateOrderItem replaces the quantity of the matching cart line. A missing
// line is a no-op, mirroring how the cart UI retries stale edits.
func (s *Store) UpdateOrderItem(ctx context.Context, itemID uuid.UUID, quantity float64, storeTag *enums.StoreTag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return err
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	idx := s.cartLineIndexLocked(itemID, storeTag)
	if idx < 0 {
		return nil
	}
	s.cartItems[idx].Quantity = quantity
	s.scheduleCartPush()
	return nil
}

// RemoveFromOrder drops the matching cart line. A missing line is a no-op.
func (s *Store) RemoveFromOrder(ctx context.Context, itemID uuid.UUID, storeTag *enums.StoreTag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return err
	}
	idx := s.cartLineIndexLocked(itemID, storeTag)
	if idx < 0 {
		return nil
	}
	s.cartItems = append(s.cartItems[:idx], s.cartItems[idx+1:]...)
	s.scheduleCartPush()
	return nil
}

// UpdateOrderMetadata merges the patch into the cart metadata.
func (s *Store) UpdateOrderMetadata(ctx context.Context, patch MetadataPatch) (cart.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return cart.Metadata{}, err
	}
	if patch.PaymentMethod != nil {
		s.cartMeta.PaymentMethod = *patch.PaymentMethod
	}
	if patch.StoreTag != nil {
		s.cartMeta.StoreTag = patch.StoreTag
	}
	s.scheduleCartPush()
	return s.cartMeta, nil
}

// ClearOrder empties the cart and resets its metadata to the default
// payment method.
func (s *Store) ClearOrder(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return err
	}
	s.cartItems = []models.OrderItem{}
	s.cartMeta = cart.DefaultMetadata()
	s.scheduleCartPush()
	return nil
}

// CompleteOrder finalizes the cart into exactly one CompletedOrder, then
// clears the cart. An empty cart is a no-op returning nil. The supplier is
// taken from the first line's item; lines for other suppliers ride along
// unvalidated. Pending orders are never touched.
func (s *Store) CompleteOrder(ctx context.Context) (*models.CompletedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return nil, err
	}
	if len(s.cartItems) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()

	supplier := ""
	if idx := s.itemIndexLocked(s.cartItems[0].ItemID); idx >= 0 {
		supplier = s.items[idx].Supplier
	}

	var tags pq.StringArray
	seen := map[enums.StoreTag]bool{}
	lines := make([]models.PendingOrderItem, 0, len(s.cartItems))
	for _, line := range s.cartItems {
		if line.StoreTag != nil && !seen[*line.StoreTag] {
			seen[*line.StoreTag] = true
			tags = append(tags, line.StoreTag.String())
		}
		lines = append(lines, models.PendingOrderItem{
			ItemID:    line.ItemID,
			Name:      line.Name,
			KhmerName: line.KhmerName,
			Quantity:  line.Quantity,
			IsNew:     line.IsNew,
		})
	}

	method := s.cartMeta.PaymentMethod
	order := models.CompletedOrder{
		ID:            uuid.New(),
		Supplier:      supplier,
		Items:         lines,
		StoreTags:     tags,
		PaymentMethod: &method,
		CompletedAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.completedOrders = append(s.completedOrders, order)
	s.stampOrderedItemsLocked(lines, now)

	s.cartItems = []models.OrderItem{}
	s.cartMeta = cart.DefaultMetadata()

	s.scheduleCompletedOrdersPush()
	s.scheduleItemsPush()
	s.scheduleCartPush()
	return &order, nil
}

// stampOrderedItemsLocked records the completion on each distinct ordered
// item: bumps the order count and the last-ordered timestamp.
func (s *Store) stampOrderedItemsLocked(lines []models.PendingOrderItem, now time.Time) {
	done := map[uuid.UUID]bool{}
	for _, line := range lines {
		if done[line.ItemID] {
			continue
		}
		done[line.ItemID] = true
		idx := s.itemIndexLocked(line.ItemID)
		if idx < 0 {
			continue
		}
		item := &s.items[idx]
		count := 1
		if item.OrderCount != nil {
			count = *item.OrderCount + 1
		}
		stamped := now
		item.OrderCount = &count
		item.LastOrderedAt = &stamped
		item.UpdatedAt = now
	}
}

func (s *Store) cartLineIndexLocked(itemID uuid.UUID, storeTag *enums.StoreTag) int {
	for i := range s.cartItems {
		if s.cartItems[i].ItemID == itemID && sameStoreTag(s.cartItems[i].StoreTag, storeTag) {
			return i
		}
	}
	return -1
}

func sameStoreTag(a, b *enums.StoreTag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
