package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
)

type ImageRepository struct {
	store *Store
}

func (r *ImageRepository) Create(ctx context.Context, image *models.Image) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	image.ID = insert(r.store, r.store.images, copyImage(*image))
	r.store.images[image.ID].value.ID = image.ID
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id string) (*models.Image, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.images[id]
	if !ok {
		return nil, fmt.Errorf("image %s: %w", id, domain.ErrNotFound)
	}
	image := copyImage(rec.value)
	return &image, nil
}

func (r *ImageRepository) List(ctx context.Context, filter repositories.ImageFilter) ([]models.Image, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	recs := make([]*record[models.Image], 0, len(r.store.images))
	for _, rec := range r.store.images {
		if filter.FolderID != "" && (rec.value.FolderID == nil || *rec.value.FolderID != filter.FolderID) {
			continue
		}
		if filter.Tag != "" && !slices.Contains(rec.value.Tags, filter.Tag) {
			continue
		}
		recs = append(recs, rec)
	}
	newestFirst(recs, func(img *models.Image) time.Time { return img.CreatedAt })

	images := make([]models.Image, len(recs))
	for i, rec := range recs {
		images[i] = copyImage(rec.value)
	}
	return images, nil
}

func (r *ImageRepository) Update(ctx context.Context, id string, patch repositories.ImagePatch) (*models.Image, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.images[id]
	if !ok {
		return nil, fmt.Errorf("image %s: %w", id, domain.ErrNotFound)
	}
	apply(&rec.value.Name, patch.Name)
	if patch.Tags != nil {
		rec.value.Tags = slices.Clone(*patch.Tags)
	}
	if patch.SetFolder {
		rec.value.FolderID = cloneString(patch.FolderID)
	}
	rec.value.UpdatedAt = patch.UpdatedAt

	image := copyImage(rec.value)
	return &image, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.images[id]; !ok {
		return fmt.Errorf("image %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.images, id)
	return nil
}

func (r *ImageRepository) CountInFolder(ctx context.Context, folderID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, rec := range r.store.images {
		if rec.value.FolderID != nil && *rec.value.FolderID == folderID {
			n++
		}
	}
	return n, nil
}

func copyImage(img models.Image) models.Image {
	img.FolderID = cloneString(img.FolderID)
	img.Tags = slices.Clone(img.Tags)
	if img.Tags == nil {
		img.Tags = []string{}
	}
	return img
}
