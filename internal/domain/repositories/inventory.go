package repositories

import (
	"context"
	"time"

	"kptshop/internal/domain/models"
)

// InventoryPatch names the fields an update writes. Nil fields are left as
// stored.
type InventoryPatch struct {
	Name          *string
	Description   *string
	Price         *float64
	Quantity      *int
	ImageURL      *string
	ImagePublicID *string
	Category      *string
	UpdatedAt     time.Time
}

// InventoryFilter narrows an inventory listing. Zero value lists everything.
type InventoryFilter struct {
	Category string
}

// InventoryRepository defines data access operations for inventory items
type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id string) (*models.InventoryItem, error)
	// List returns items, newest first
	List(ctx context.Context, filter InventoryFilter) ([]models.InventoryItem, error)
	// Update writes only the fields set in patch and returns the stored result
	Update(ctx context.Context, id string, patch InventoryPatch) (*models.InventoryItem, error)
	// SetCategory changes only the category field and returns the updated item
	SetCategory(ctx context.Context, id, category string) (*models.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}
