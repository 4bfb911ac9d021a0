package repositories

import (
	"context"

	"kptshop/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a folder and fills in its ID
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// ListChildren lists immediate child folders ordered by name (nil parent = roots)
	ListChildren(ctx context.Context, parentID *string) ([]models.Folder, error)

	// HasChildren reports whether any folder names id as its parent
	HasChildren(ctx context.Context, id string) (bool, error)

	// Delete deletes a folder
	Delete(ctx context.Context, id string) error
}
