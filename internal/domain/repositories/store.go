package repositories

import "context"

// Repositories bundles one implementation of every repository, so binaries
// can switch between the MongoDB and in-memory backends in one place.
type Repositories struct {
	Folders    FolderRepository
	Categories CategoryRepository
	Gallery    GalleryRepository
	Images     ImageRepository
	Inventory  InventoryRepository

	// Ping checks the backing store is reachable
	Ping func(ctx context.Context) error
}
