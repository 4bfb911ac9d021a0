package repositories

import (
	"context"
	"time"

	"kptshop/internal/domain/models"
)

// ImagePatch names the fields an update writes. Nil fields are left as
// stored. The folder is written only when SetFolder is true, and a nil
// FolderID then files the image nowhere.
type ImagePatch struct {
	Name      *string
	Tags      *[]string
	SetFolder bool
	FolderID  *string
	UpdatedAt time.Time
}

// ImageFilter narrows an image listing. Empty fields are ignored.
type ImageFilter struct {
	FolderID string
	Tag      string
}

// ImageRepository defines data access operations for hosted images
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id string) (*models.Image, error)
	// List returns images, newest first
	List(ctx context.Context, filter ImageFilter) ([]models.Image, error)
	Update(ctx context.Context, id string, patch ImagePatch) (*models.Image, error)
	Delete(ctx context.Context, id string) error
	// CountInFolder counts images filed directly under the folder
	CountInFolder(ctx context.Context, folderID string) (int64, error)
}
