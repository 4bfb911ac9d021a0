package services

import (
	"context"

	"kptshop/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a folder and materializes its path from the parent
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder by ID
	GetFolder(ctx context.Context, id string) (*models.Folder, error)

	// ListFolders lists direct children of parentID (nil = root folders)
	ListFolders(ctx context.Context, parentID *string) ([]models.Folder, error)

	// DeleteFolder deletes a folder (must be empty)
	DeleteFolder(ctx context.Context, id string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent,omitempty"` // nil or "" for root
	Order    int     `json:"order,omitempty"`
}
