package suppliers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rithysok/restock-backend/pkg/db/models"
)

// Repository handles supplier persistence against the remote store.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to supplier operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PushAll upserts every supplier keyed on id, overwriting all fields.
// Fail-fast; previously written rows stay written.
func (r *Repository) PushAll(ctx context.Context, records []models.Supplier) error {
	now := time.Now().UTC()
	for i := range records {
		supplier := records[i]
		supplier.UpdatedAt = now
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(&supplier).Error
		if err != nil {
			return fmt.Errorf("upserting supplier %s: %w", supplier.ID, err)
		}
	}
	return nil
}

// FetchAll returns every supplier ordered by name.
func (r *Repository) FetchAll(ctx context.Context) ([]models.Supplier, error) {
	records := []models.Supplier{}
	if err := r.db.WithContext(ctx).Order("name asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteByID removes a single row by identity.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Supplier{}, "id = ?", id).Error
}
