package memory

import (
	"context"
	"fmt"
	"sort"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
)

type FolderRepository struct {
	store *Store
}

func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	folder.ID = insert(r.store, r.store.folders, copyFolder(*folder))
	r.store.folders[folder.ID].value.ID = folder.ID
	return nil
}

func (r *FolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	folder := copyFolder(rec.value)
	return &folder, nil
}

func (r *FolderRepository) ListChildren(ctx context.Context, parentID *string) ([]models.Folder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	folders := make([]models.Folder, 0)
	for _, rec := range r.store.folders {
		if sameParent(rec.value.ParentID, parentID) {
			folders = append(folders, copyFolder(rec.value))
		}
	}
	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})
	return folders, nil
}

func (r *FolderRepository) HasChildren(ctx context.Context, id string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, rec := range r.store.folders {
		if rec.value.ParentID != nil && *rec.value.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.folders[id]; !ok {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.folders, id)
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyFolder(f models.Folder) models.Folder {
	f.ParentID = cloneString(f.ParentID)
	return f
}
