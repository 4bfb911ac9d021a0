package mongo

import (
	"kptshop/internal/domain/repositories"
)

// New builds every repository on the shared connection
func New(config *RepositoryConfig) repositories.Repositories {
	return repositories.Repositories{
		Folders:    NewFolderRepository(config),
		Categories: NewCategoryRepository(config),
		Gallery:    NewGalleryRepository(config),
		Images:     NewImageRepository(config),
		Inventory:  NewInventoryRepository(config),
		Ping:       config.Conn.Ping,
	}
}
