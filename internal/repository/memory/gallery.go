package memory

import (
	"context"
	"fmt"
	"time"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
)

type GalleryRepository struct {
	store *Store
}

func (r *GalleryRepository) Create(ctx context.Context, image *models.GalleryImage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	image.ID = insert(r.store, r.store.gallery, *image)
	r.store.gallery[image.ID].value.ID = image.ID
	return nil
}

func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.gallery[id]
	if !ok {
		return nil, fmt.Errorf("gallery image %s: %w", id, domain.ErrNotFound)
	}
	image := rec.value
	return &image, nil
}

func (r *GalleryRepository) List(ctx context.Context, filter repositories.GalleryFilter) ([]models.GalleryImage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	recs := make([]*record[models.GalleryImage], 0, len(r.store.gallery))
	for _, rec := range r.store.gallery {
		if filter.Folder != "" && rec.value.Folder != filter.Folder {
			continue
		}
		recs = append(recs, rec)
	}
	newestFirst(recs, func(g *models.GalleryImage) time.Time { return g.CreatedAt })

	images := make([]models.GalleryImage, len(recs))
	for i, rec := range recs {
		images[i] = rec.value
	}
	return images, nil
}

func (r *GalleryRepository) Update(ctx context.Context, id string, patch repositories.GalleryPatch) (*models.GalleryImage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.gallery[id]
	if !ok {
		return nil, fmt.Errorf("gallery image %s: %w", id, domain.ErrNotFound)
	}
	v := &rec.value
	apply(&v.Name, patch.Name)
	apply(&v.Detail, patch.Detail)
	apply(&v.ImageURL, patch.ImageURL)
	apply(&v.Folder, patch.Folder)
	apply(&v.PublicID, patch.PublicID)
	apply(&v.Width, patch.Width)
	apply(&v.Height, patch.Height)
	apply(&v.Format, patch.Format)
	apply(&v.Bytes, patch.Bytes)
	v.UpdatedAt = patch.UpdatedAt

	image := rec.value
	return &image, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.gallery[id]; !ok {
		return fmt.Errorf("gallery image %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.gallery, id)
	return nil
}
