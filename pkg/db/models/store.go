package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rithysok/restock-backend/pkg/enums"
)

// Store is a physical outlet orders are scoped to.
type Store struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Tag       enums.StoreTag `gorm:"column:tag;not null;uniqueIndex" json:"tag"`
	Active    bool           `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
