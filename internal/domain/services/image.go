package services

import (
	"context"
	"io"

	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
	"kptshop/internal/httputil"
)

// ImageService handles hosted image business logic
type ImageService interface {
	// UploadImage sends the file to the media host and records the result
	UploadImage(ctx context.Context, req *UploadImageRequest) (*models.Image, error)
	GetImage(ctx context.Context, id string) (*models.Image, error)
	ListImages(ctx context.Context, filter repositories.ImageFilter) ([]models.Image, error)
	UpdateImage(ctx context.Context, id string, req *UpdateImageRequest) (*models.Image, error)
	// DeleteImage removes the record; the hosted image is destroyed best-effort
	DeleteImage(ctx context.Context, id string) error
}

// UploadImageRequest represents a multipart image upload
type UploadImageRequest struct {
	Filename string
	Content  io.Reader
	FolderID *string
	Tags     []string
}

// UpdateImageRequest is a partial update. Folder is tri-state: absent leaves
// it unchanged, null unfiles the image, a value refiles it.
type UpdateImageRequest struct {
	Name   *string                 `json:"name,omitempty"`
	Tags   *[]string               `json:"tags,omitempty"`
	Folder httputil.OptionalString `json:"folder"`
}
