package repositories

import (
	"context"
	"time"

	"kptshop/internal/domain/models"
)

// GalleryPatch names the fields an update writes. Nil fields are left as
// stored.
type GalleryPatch struct {
	Name      *string
	Detail    *string
	ImageURL  *string
	Folder    *string
	PublicID  *string
	Width     *int
	Height    *int
	Format    *string
	Bytes     *int64
	UpdatedAt time.Time
}

// GalleryFilter narrows a gallery listing. Zero value lists everything.
type GalleryFilter struct {
	Folder string
}

// GalleryRepository defines data access operations for gallery images
type GalleryRepository interface {
	Create(ctx context.Context, image *models.GalleryImage) error
	GetByID(ctx context.Context, id string) (*models.GalleryImage, error)
	// List returns gallery images, newest first
	List(ctx context.Context, filter GalleryFilter) ([]models.GalleryImage, error)
	Update(ctx context.Context, id string, patch GalleryPatch) (*models.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}
