package repositories

import (
	"context"
	"time"

	"kptshop/internal/domain/models"
)

// CategoryPatch names the fields an update writes. Nil fields are left as
// stored.
type CategoryPatch struct {
	Name        *string
	Description *string
	UpdatedAt   time.Time
}

// CategoryRepository defines data access operations for categories.
// Create and Update return a *domain.ConflictError on duplicate names.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	// List returns all categories ordered by name
	List(ctx context.Context) ([]models.Category, error)
	// Update writes only the fields set in patch and returns the stored result
	Update(ctx context.Context, id string, patch CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}
