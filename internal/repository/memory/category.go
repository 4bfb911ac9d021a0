package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
)

// CategoryRepository enforces unique names case-sensitively, the same as
// the unique index in MongoDB
type CategoryRepository struct {
	store *Store
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkUnique(category.Name, ""); err != nil {
		return err
	}
	category.ID = insert(r.store, r.store.categories, *category)
	r.store.categories[category.ID].value.ID = category.ID
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	category := rec.value
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categories := make([]models.Category, 0, len(r.store.categories))
	for _, rec := range r.store.categories {
		categories = append(categories, rec.value)
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.Compare(categories[i].Name, categories[j].Name) < 0
	})
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, patch repositories.CategoryPatch) (*models.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	if patch.Name != nil {
		if err := r.checkUnique(*patch.Name, id); err != nil {
			return nil, err
		}
	}
	apply(&rec.value.Name, patch.Name)
	apply(&rec.value.Description, patch.Description)
	rec.value.UpdatedAt = patch.UpdatedAt

	category := rec.value
	return &category, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.categories, id)
	return nil
}

// checkUnique runs under the write lock
func (r *CategoryRepository) checkUnique(name, exceptID string) error {
	for id, rec := range r.store.categories {
		if id != exceptID && rec.value.Name == name {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("category %q already exists", name),
				ResourceType: "category",
				ResourceID:   id,
			}
		}
	}
	return nil
}
