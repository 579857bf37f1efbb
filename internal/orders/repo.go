package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rithysok/restock-backend/pkg/db/models"
)

// Repository handles pending and completed order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to order operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PushAllPending upserts every pending order keyed on id. Fail-fast; rows
// written before a failure are not rolled back.
func (r *Repository) PushAllPending(ctx context.Context, records []models.PendingOrder) error {
	now := time.Now().UTC()
	for i := range records {
		order := records[i]
		order.UpdatedAt = now
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(&order).Error
		if err != nil {
			return fmt.Errorf("upserting pending order %s: %w", order.ID, err)
		}
	}
	return nil
}

// FetchAllPending returns pending orders, newest first.
func (r *Repository) FetchAllPending(ctx context.Context) ([]models.PendingOrder, error) {
	records := []models.PendingOrder{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// DeletePendingByID removes a single pending order row.
func (r *Repository) DeletePendingByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PendingOrder{}, "id = ?", id).Error
}

// PushAllCompleted upserts completed order snapshots keyed on id.
func (r *Repository) PushAllCompleted(ctx context.Context, records []models.CompletedOrder) error {
	now := time.Now().UTC()
	for i := range records {
		order := records[i]
		order.UpdatedAt = now
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(&order).Error
		if err != nil {
			return fmt.Errorf("upserting completed order %s: %w", order.ID, err)
		}
	}
	return nil
}

// FetchAllCompleted returns completed orders, newest completion first.
func (r *Repository) FetchAllCompleted(ctx context.Context) ([]models.CompletedOrder, error) {
	records := []models.CompletedOrder{}
	if err := r.db.WithContext(ctx).Order("completed_at desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
