package state

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rithysok/restock-backend/pkg/db/models"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
)

// ItemDraft is the caller-supplied shape for a new item. ID is optional;
// when present it must not collide with an existing item.
type ItemDraft struct {
	ID        *uuid.UUID
	Name      string
	KhmerName *string
	Supplier  string
	Unit      *string
	Price     *decimal.Decimal
}

// ItemPatch is a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Name       *string
	KhmerName  *string
	Supplier   *string
	Unit       *string
	Price      *decimal.Decimal
	LastHeldAt *time.Time
}

// AddItem appends a new item and schedules an items push.
func (s *Store) AddItem(ctx context.Context, draft ItemDraft) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return models.Item{}, err
	}
	if draft.Name == "" {
		return models.Item{}, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if draft.Supplier == "" {
		return models.Item{}, pkgerrors.New(pkgerrors.CodeValidation, "item supplier is required")
	}

	id := uuid.New()
	if draft.ID != nil {
		id = *draft.ID
		if s.itemIndexLocked(id) >= 0 {
			return models.Item{}, pkgerrors.New(pkgerrors.CodeConflict, "item id already exists")
		}
	}

	now := time.Now().UTC()
	item := models.Item{
		ID:        id,
		Name:      draft.Name,
		KhmerName: draft.KhmerName,
		Supplier:  draft.Supplier,
		Unit:      draft.Unit,
		Price:     draft.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.items = append(s.items, item)
	s.scheduleItemsPush()
	return item, nil
}

// UpdateItem applies a partial update to one item.
func (s *Store) UpdateItem(ctx context.Context, id uuid.UUID, patch ItemPatch) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return models.Item{}, err
	}
	idx := s.itemIndexLocked(id)
	if idx < 0 {
		return models.Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}

	item := &s.items[idx]
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.KhmerName != nil {
		item.KhmerName = patch.KhmerName
	}
	if patch.Supplier != nil {
		item.Supplier = *patch.Supplier
	}
	if patch.Unit != nil {
		item.Unit = patch.Unit
	}
	if patch.Price != nil {
		item.Price = patch.Price
	}
	if patch.LastHeldAt != nil {
		item.LastHeldAt = patch.LastHeldAt
	}
	item.UpdatedAt = time.Now().UTC()

	s.scheduleItemsPush()
	return *item, nil
}

// DeleteItem removes the item locally, schedules an items push, then issues
// the remote row delete. The local removal stands even when the remote
// delete fails; that failure is reported to the caller.
func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if err := s.ensureReadyLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	idx := s.itemIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.scheduleItemsPush()
	s.mu.Unlock()

	if err := s.remote.DeleteItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting remote item")
	}
	return nil
}

func (s *Store) itemIndexLocked(id uuid.UUID) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) ensureReadyLocked() error {
	if s.phase != PhaseReady {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "store is not ready")
	}
	return nil
}
