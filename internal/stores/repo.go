package stores

import (
	"context"

	"gorm.io/gorm"

	"github.com/rithysok/restock-backend/pkg/db/models"
)

// Repository reads the outlet registry. Stores are seeded by migration and
// never mutated through this service.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store lookups.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FetchAll returns every outlet ordered by name.
func (r *Repository) FetchAll(ctx context.Context) ([]models.Store, error) {
	records := []models.Store{}
	if err := r.db.WithContext(ctx).Order("name asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
