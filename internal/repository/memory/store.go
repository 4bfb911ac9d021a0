// Package memory holds in-process repository implementations used in dev
// mode and by service tests. Data lives for the lifetime of the process.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"

	"github.com/google/uuid"
)

// Store is the shared state behind the memory repositories
type Store struct {
	mu  sync.RWMutex
	seq uint64

	folders    map[string]*record[models.Folder]
	categories map[string]*record[models.Category]
	gallery    map[string]*record[models.GalleryImage]
	images     map[string]*record[models.Image]
	inventory  map[string]*record[models.InventoryItem]
}

// record keeps insertion order so newest-first listings are stable when
// timestamps collide
type record[T any] struct {
	seq   uint64
	value T
}

func NewStore() *Store {
	return &Store{
		folders:    make(map[string]*record[models.Folder]),
		categories: make(map[string]*record[models.Category]),
		gallery:    make(map[string]*record[models.GalleryImage]),
		images:     make(map[string]*record[models.Image]),
		inventory:  make(map[string]*record[models.InventoryItem]),
	}
}

// New returns every repository backed by a fresh Store
func New() repositories.Repositories {
	store := NewStore()
	return repositories.Repositories{
		Folders:    &FolderRepository{store: store},
		Categories: &CategoryRepository{store: store},
		Gallery:    &GalleryRepository{store: store},
		Images:     &ImageRepository{store: store},
		Inventory:  &InventoryRepository{store: store},
		Ping:       func(ctx context.Context) error { return nil },
	}
}

// Clear drops all data
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.folders)
	clear(s.categories)
	clear(s.gallery)
	clear(s.images)
	clear(s.inventory)
}

// insert stores value under a new id; caller holds the write lock
func insert[T any](s *Store, m map[string]*record[T], value T) string {
	s.seq++
	id := uuid.NewString()
	m[id] = &record[T]{seq: s.seq, value: value}
	return id
}

// newestFirst sorts records by timestamp descending, latest insert first on ties
func newestFirst[T any](recs []*record[T], createdAt func(*T) time.Time) {
	sort.Slice(recs, func(i, j int) bool {
		ti, tj := createdAt(&recs[i].value), createdAt(&recs[j].value)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return recs[i].seq > recs[j].seq
	})
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// apply overwrites *dst when the patch carries a value
func apply[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}
