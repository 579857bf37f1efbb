package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/enums"
)

// Metadata is the ephemeral cart state that is not tied to any line.
type Metadata struct {
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	StoreTag      *enums.StoreTag     `json:"storeTag,omitempty"`
}

// DefaultMetadata is the reset state of the cart.
func DefaultMetadata() Metadata {
	return Metadata{PaymentMethod: enums.DefaultPaymentMethod}
}

// Repository persists the active cart as a singleton row.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to cart operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PushSingleton writes the cart. The table holds at most one logical row:
// the first push inserts, later pushes update that row by its id.
func (r *Repository) PushSingleton(ctx context.Context, items []models.OrderItem, meta Metadata) error {
	var existing models.CurrentOrder
	err := r.db.WithContext(ctx).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row := models.CurrentOrder{
		ID:            existing.ID,
		Items:         items,
		PaymentMethod: meta.PaymentMethod,
		StoreTag:      meta.StoreTag,
		UpdatedAt:     time.Now().UTC(),
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row.ID = uuid.New()
		return r.db.WithContext(ctx).Create(&row).Error
	}
	return r.db.WithContext(ctx).Save(&row).Error
}

// FetchSingleton loads the cart. An absent row yields the default cart:
// no items, CASH ON DELIVERY.
func (r *Repository) FetchSingleton(ctx context.Context) ([]models.OrderItem, Metadata, error) {
	var row models.CurrentOrder
	err := r.db.WithContext(ctx).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.OrderItem{}, DefaultMetadata(), nil
	}
	if err != nil {
		return nil, Metadata{}, err
	}

	meta := Metadata{PaymentMethod: row.PaymentMethod, StoreTag: row.StoreTag}
	if meta.PaymentMethod == "" {
		meta.PaymentMethod = enums.DefaultPaymentMethod
	}
	items := row.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	return items, meta, nil
}
