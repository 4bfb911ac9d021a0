package memory

import (
	"context"
	"fmt"
	"time"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
)

type InventoryRepository struct {
	store *Store
}

func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item.ID = insert(r.store, r.store.inventory, *item)
	r.store.inventory[item.ID].value.ID = item.ID
	return nil
}

func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.inventory[id]
	if !ok {
		return nil, fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
	}
	item := rec.value
	return &item, nil
}

func (r *InventoryRepository) List(ctx context.Context, filter repositories.InventoryFilter) ([]models.InventoryItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	recs := make([]*record[models.InventoryItem], 0, len(r.store.inventory))
	for _, rec := range r.store.inventory {
		if filter.Category != "" && rec.value.Category != filter.Category {
			continue
		}
		recs = append(recs, rec)
	}
	newestFirst(recs, func(item *models.InventoryItem) time.Time { return item.CreatedAt })

	items := make([]models.InventoryItem, len(recs))
	for i, rec := range recs {
		items[i] = rec.value
	}
	return items, nil
}

func (r *InventoryRepository) Update(ctx context.Context, id string, patch repositories.InventoryPatch) (*models.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.inventory[id]
	if !ok {
		return nil, fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
	}
	v := &rec.value
	apply(&v.Name, patch.Name)
	apply(&v.Description, patch.Description)
	apply(&v.Price, patch.Price)
	apply(&v.Quantity, patch.Quantity)
	apply(&v.ImageURL, patch.ImageURL)
	apply(&v.ImagePublicID, patch.ImagePublicID)
	apply(&v.Category, patch.Category)
	v.UpdatedAt = patch.UpdatedAt

	item := rec.value
	return &item, nil
}

func (r *InventoryRepository) SetCategory(ctx context.Context, id, category string) (*models.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.inventory[id]
	if !ok {
		return nil, fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
	}
	rec.value.Category = category
	rec.value.UpdatedAt = time.Now().UTC()
	item := rec.value
	return &item, nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.inventory[id]; !ok {
		return fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.inventory, id)
	return nil
}
