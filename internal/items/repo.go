package items

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rithysok/restock-backend/pkg/db/models"
)

// Repository handles item persistence against the remote store.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to item operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PushAll upserts every item keyed on id, overwriting all fields
// (last-writer-wins, no version check). The loop fails fast on the first row
// error; rows written before the failure are not rolled back, so a failed
// push can leave the remote store partially updated.
func (r *Repository) PushAll(ctx context.Context, items []models.Item) error {
	now := time.Now().UTC()
	for i := range items {
		item := items[i]
		item.UpdatedAt = now
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(&item).Error
		if err != nil {
			return fmt.Errorf("upserting item %s: %w", item.ID, err)
		}
	}
	return nil
}

// FetchAll returns every item ordered by name. An empty table yields an
// empty slice, not an error.
func (r *Repository) FetchAll(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteByID removes a single row. Errors propagate to the caller; the
// in-memory copy is the state store's responsibility.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error
}
