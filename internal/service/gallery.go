package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kptshop/internal/config"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
)

type galleryService struct {
	repo   repositories.GalleryRepository
	media  services.MediaHost
	logger *slog.Logger
}

// NewGalleryService creates a new gallery service
func NewGalleryService(repo repositories.GalleryRepository, media services.MediaHost, logger *slog.Logger) services.GalleryService {
	return &galleryService{repo: repo, media: media, logger: logger}
}

func (s *galleryService) CreateGalleryImage(ctx context.Context, req *services.CreateGalleryImageRequest) (*models.GalleryImage, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Detail = strings.TrimSpace(req.Detail)
	req.Folder = strings.TrimSpace(req.Folder)

	if err := validateNewGalleryImage(req); err != nil {
		return nil, err
	}

	folder := req.Folder
	if folder == "" {
		folder = config.DefaultGalleryFolder
	}

	now := time.Now().UTC()
	image := &models.GalleryImage{
		Name:      req.Name,
		Detail:    req.Detail,
		ImageURL:  req.ImageURL,
		Folder:    folder,
		PublicID:  req.PublicID,
		Width:     req.Width,
		Height:    req.Height,
		Format:    req.Format,
		Bytes:     req.Bytes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, image); err != nil {
		return nil, err
	}

	s.logger.Info("gallery image created",
		"id", image.ID,
		"name", image.Name,
		"folder", image.Folder,
	)
	return image, nil
}

func (s *galleryService) GetGalleryImage(ctx context.Context, id string) (*models.GalleryImage, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *galleryService) ListGalleryImages(ctx context.Context, filter repositories.GalleryFilter) ([]models.GalleryImage, error) {
	filter.Folder = strings.TrimSpace(filter.Folder)
	images, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return images, nil
}

func (s *galleryService) UpdateGalleryImage(ctx context.Context, id string, req *services.UpdateGalleryImageRequest) (*models.GalleryImage, error) {
	image, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := repositories.GalleryPatch{UpdatedAt: time.Now().UTC()}
	if req.Name != nil {
		image.Name = strings.TrimSpace(*req.Name)
		patch.Name = &image.Name
	}
	if req.Detail != nil {
		image.Detail = strings.TrimSpace(*req.Detail)
		patch.Detail = &image.Detail
	}
	if req.ImageURL != nil {
		image.ImageURL = *req.ImageURL
		patch.ImageURL = &image.ImageURL
	}
	if req.Folder != nil {
		image.Folder = strings.TrimSpace(*req.Folder)
		if image.Folder == "" {
			image.Folder = config.DefaultGalleryFolder
		}
		patch.Folder = &image.Folder
	}
	if req.PublicID != nil {
		image.PublicID = *req.PublicID
		patch.PublicID = &image.PublicID
	}
	if req.Width != nil {
		image.Width = *req.Width
		patch.Width = &image.Width
	}
	if req.Height != nil {
		image.Height = *req.Height
		patch.Height = &image.Height
	}
	if req.Format != nil {
		image.Format = *req.Format
		patch.Format = &image.Format
	}
	if req.Bytes != nil {
		image.Bytes = *req.Bytes
		patch.Bytes = &image.Bytes
	}

	if err := validateGalleryImage(image); err != nil {
		return nil, err
	}

	image, err = s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("gallery image updated", "id", image.ID, "name", image.Name)
	return image, nil
}

// DeleteGalleryImage destroys the hosted image (best-effort) and then the record
func (s *galleryService) DeleteGalleryImage(ctx context.Context, id string) error {
	image, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	destroyHosted(ctx, s.media, s.logger, image.PublicID, "gallery_id", image.ID)

	if err := s.repo.Delete(ctx, image.ID); err != nil {
		return err
	}

	s.logger.Info("gallery image deleted", "id", image.ID, "name", image.Name)
	return nil
}
