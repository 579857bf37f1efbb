package state

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/enums"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
)

// SupplierDraft is the caller-supplied shape for a new supplier. A nil
// payment method falls back to CASH ON DELIVERY.
type SupplierDraft struct {
	ID                   *uuid.UUID
	Name                 string
	Contact              *string
	Telegram             *string
	DefaultPaymentMethod *enums.PaymentMethod
}

// SupplierPatch is a partial update. Nil fields are left untouched.
type SupplierPatch struct {
	Name                 *string
	Contact              *string
	Telegram             *string
	DefaultPaymentMethod *enums.PaymentMethod
}

// AddSupplier appends a new supplier and schedules a suppliers push.
func (s *Store) AddSupplier(ctx context.Context, draft SupplierDraft) (models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return models.Supplier{}, err
	}
	if draft.Name == "" {
		return models.Supplier{}, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}

	id := uuid.New()
	if draft.ID != nil {
		id = *draft.ID
		if s.supplierIndexLocked(id) >= 0 {
			return models.Supplier{}, pkgerrors.New(pkgerrors.CodeConflict, "supplier id already exists")
		}
	}

	method := enums.DefaultPaymentMethod
	if draft.DefaultPaymentMethod != nil {
		method = *draft.DefaultPaymentMethod
	}

	now := time.Now().UTC()
	supplier := models.Supplier{
		ID:                   id,
		Name:                 draft.Name,
		Contact:              draft.Contact,
		Telegram:             draft.Telegram,
		DefaultPaymentMethod: method,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	s.suppliers = append(s.suppliers, supplier)
	s.scheduleSuppliersPush()
	return supplier, nil
}

// UpdateSupplier applies a partial update to one supplier.
func (s *Store) UpdateSupplier(ctx context.Context, id uuid.UUID, patch SupplierPatch) (models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureReadyLocked(); err != nil {
		return models.Supplier{}, err
	}
	idx := s.supplierIndexLocked(id)
	if idx < 0 {
		return models.Supplier{}, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}

	supplier := &s.suppliers[idx]
	if patch.Name != nil {
		supplier.Name = *patch.Name
	}
	if patch.Contact != nil {
		supplier.Contact = patch.Contact
	}
	if patch.Telegram != nil {
		supplier.Telegram = patch.Telegram
	}
	if patch.DefaultPaymentMethod != nil {
		supplier.DefaultPaymentMethod = *patch.DefaultPaymentMethod
	}
	supplier.UpdatedAt = time.Now().UTC()

	s.scheduleSuppliersPush()
	return *supplier, nil
}

// DeleteSupplier removes the supplier locally, schedules a suppliers push,
// then issues the remote row delete. Items referencing the supplier by name
// keep the dangling name; the catalog never cascades.
func (s *Store) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if err := s.ensureReadyLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	idx := s.supplierIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}
	s.suppliers = append(s.suppliers[:idx], s.suppliers[idx+1:]...)
	s.scheduleSuppliersPush()
	s.mu.Unlock()

	if err := s.remote.DeleteSupplier(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting remote supplier")
	}
	return nil
}

func (s *Store) supplierIndexLocked(id uuid.UUID) int {
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			return i
		}
	}
	return -1
}
