package services

import (
	"context"

	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
)

// GalleryService handles gallery image business logic
type GalleryService interface {
	CreateGalleryImage(ctx context.Context, req *CreateGalleryImageRequest) (*models.GalleryImage, error)
	GetGalleryImage(ctx context.Context, id string) (*models.GalleryImage, error)
	ListGalleryImages(ctx context.Context, filter repositories.GalleryFilter) ([]models.GalleryImage, error)
	UpdateGalleryImage(ctx context.Context, id string, req *UpdateGalleryImageRequest) (*models.GalleryImage, error)
	// DeleteGalleryImage removes the record; the hosted image is destroyed best-effort
	DeleteGalleryImage(ctx context.Context, id string) error
}

// CreateGalleryImageRequest carries the metadata of an image already uploaded
// to the media host by the client.
type CreateGalleryImageRequest struct {
	Name     string `json:"name"`
	Detail   string `json:"detail"`
	ImageURL string `json:"imageUrl"`
	Folder   string `json:"folder"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
}

// UpdateGalleryImageRequest is a partial update; nil fields are left unchanged
type UpdateGalleryImageRequest struct {
	Name     *string `json:"name,omitempty"`
	Detail   *string `json:"detail,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Folder   *string `json:"folder,omitempty"`
	PublicID *string `json:"publicId,omitempty"`
	Width    *int    `json:"width,omitempty"`
	Height   *int    `json:"height,omitempty"`
	Format   *string `json:"format,omitempty"`
	Bytes    *int64  `json:"bytes,omitempty"`
}
